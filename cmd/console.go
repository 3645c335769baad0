package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// consoleUI はワンショットのコマンド向けに、UI 更新を標準出力とログへ流します。
type consoleUI struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	label   string
	enabled bool
}

func newConsoleUI(out, errOut io.Writer) *consoleUI {
	return &consoleUI{out: out, errOut: errOut, label: "generate", enabled: true}
}

func (c *consoleUI) ShowPreview(region domain.PreviewRegion, p domain.Preview) {
	slog.Debug("プレビューを更新しました", "region", region, "placeholder", p.IsPlaceholder())
}

func (c *consoleUI) SubmitLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *consoleUI) SetSubmitEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

func (c *consoleUI) SetSubmitLabel(label string) {
	c.mu.Lock()
	c.label = label
	c.mu.Unlock()
	slog.Debug("送信ボタンのラベルを更新しました", "label", label)
}

func (c *consoleUI) Alert(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.errOut, "⚠", message)
}

func (c *consoleUI) ItemsAdded(items []domain.GalleryItem) {
	slog.Info("ギャラリーに追加しました", "count", len(items))
}

// ItemChanged は分析が完了したアイテムのレポートを表示します。
func (c *consoleUI) ItemChanged(item domain.GalleryItem) {
	if item.Analysis != domain.AnalysisDone || item.Result == nil {
		return
	}
	r := item.Result.Report()
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "[%s]\n  指の本数: %s\n  リアリズム: %s (%s)\n  照明: %s\n  問題点: %s\n",
		item.Filename, r.FingerCount, r.Score, r.Tier, r.Lighting, r.Issues)
}

func (c *consoleUI) PlaceholderRemoved() {}
