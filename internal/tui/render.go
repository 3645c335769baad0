package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/shouni/gesture-gen-kit/pkg/imgutil"
)

const emptyGalleryText = "まだ生成された画像はありません。左のフォームから生成してください。"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	alertStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	reportStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).MarginLeft(2)

	tierStyles = map[domain.ScoreTier]lipgloss.Style{
		domain.ScoreHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		domain.ScoreMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		domain.ScoreLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
	flaggedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// renderModeButtons は選択中のモードだけを強調したボタン列を描画します。
func renderModeButtons(selected map[domain.GenerationMode]bool) string {
	buttons := make([]string, 0, len(domain.Modes))
	for _, m := range domain.Modes {
		if selected[m] {
			buttons = append(buttons, selectedStyle.Render("[● "+string(m)+"]"))
		} else {
			buttons = append(buttons, faintStyle.Render("[○ "+string(m)+"]"))
		}
	}
	return strings.Join(buttons, " ")
}

// renderPreview はプレビュー領域を描画します。画像はサイズと形式だけを表示します。
func renderPreview(label string, p domain.Preview) string {
	if p.IsPlaceholder() {
		return boxStyle.Render(titleStyle.Render(label) + "\n" + faintStyle.Render(p.Placeholder))
	}
	mime, data, err := imgutil.DecodeDataURL(p.DataURL)
	if err != nil {
		return boxStyle.Render(titleStyle.Render(label) + "\n" + alertStyle.Render("プレビューを表示できません"))
	}
	return boxStyle.Render(titleStyle.Render(label) + "\n" + fmt.Sprintf("✔ %s %s", mime, humanSize(len(data))))
}

// renderItem はギャラリーの1アイテムを、分析状態に応じたオーバーレイ付きで描画します。
func renderItem(item domain.GalleryItem, selected bool, spin string) string {
	line := "  " + item.Filename
	if selected {
		line = selectedStyle.Render("▸ " + item.Filename)
	}

	switch item.Analysis {
	case domain.AnalysisLoading:
		return line + "\n" + reportStyle.Render(spin+" 分析中...")
	case domain.AnalysisDone:
		if item.Result != nil {
			return line + "\n" + reportStyle.Render(renderReport(item.Result.Report()))
		}
	case domain.AnalysisError:
		return line + "  " + faintStyle.Render("(分析失敗: 再分析できます)")
	}
	return line
}

// renderReport は分析レポートを描画します。点数は段階ごとに色分けし、問題点がある場合は強調します。
func renderReport(r domain.AnalysisReport) string {
	style, ok := tierStyles[r.Tier]
	if !ok {
		style = lipgloss.NewStyle()
	}
	issues := r.Issues
	if r.IssuesFlagged {
		issues = flaggedStyle.Render(issues)
	}
	return strings.Join([]string{
		titleStyle.Render("分析レポート"),
		"指の本数: " + r.FingerCount,
		"リアリズム: " + style.Render(r.Score),
		"照明: " + r.Lighting,
		"問題点: " + issues,
	}, "\n")
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
