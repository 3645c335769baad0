// Package tui はジェスチャー生成スタジオの対話セッションを bubbletea で提供します。
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shouni/gesture-gen-kit/internal/builder"
	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

const appTitle = "🖐 Gesture Studio"

const helpText = "Tab = 次の項目 • Ctrl+T = モード切替 • Ctrl+G = 生成 • Ctrl+N/P = 画像選択 • Ctrl+A = 分析 • Ctrl+L = 全件分析 • Ctrl+X = レポートを閉じる • Ctrl+E = 保存 • Ctrl+S = 全件保存 • Esc = 終了"

// 入力欄の並び順
const (
	fieldAPIKey = iota
	fieldModel
	fieldPrompt
	fieldBatch
	fieldSeed
	fieldReference
	fieldCount
)

var fieldLabels = [fieldCount]string{"API Key", "Model", "Prompt", "Batch", "Seed Image", "Reference Image"}

// Model は対話セッションの bubbletea モデルです。
type Model struct {
	app    *builder.AppContext
	bridge *Bridge
	ctx    context.Context
	cancel context.CancelFunc

	inputs   [fieldCount]textinput.Model
	focus    int
	selected int
	spin     spinner.Model
	status   string

	width int
}

// New は AppContext と、その UI として渡した Bridge からモデルを作成します。
func New(app *builder.AppContext, bridge *Bridge) Model {
	ctx, cancel := context.WithCancel(context.Background())

	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.CharLimit = 0
		inputs[i] = ti
	}
	inputs[fieldAPIKey].EchoMode = textinput.EchoPassword
	inputs[fieldPrompt].Placeholder = "例: a hand showing a peace sign"
	inputs[fieldSeed].Placeholder = "ローカルパス または gs://..."
	inputs[fieldReference].Placeholder = "ローカルパス または gs://..."

	snap := app.Form.Snapshot()
	inputs[fieldAPIKey].SetValue(snap.APIKey)
	inputs[fieldModel].SetValue(snap.ModelName)
	inputs[fieldBatch].SetValue(strconv.Itoa(snap.BatchSize))
	inputs[fieldPrompt].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		app:    app,
		bridge: bridge,
		ctx:    ctx,
		cancel: cancel,
		inputs: inputs,
		focus:  fieldPrompt,
		spin:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, waitForRefresh(m.bridge))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		m.clampSelection()
		return m, waitForRefresh(m.bridge)

	case submitDoneMsg:
		if msg.err == nil {
			m.selected = 0
			m.status = fmt.Sprintf("%d 枚の画像を追加しました", msg.count)
		} else {
			m.status = ""
		}
		return m, nil

	case fileSelectedMsg:
		if msg.err != nil {
			m.bridge.Alert(fmt.Sprintf("ファイルを読み込めませんでした: %v", msg.err))
		}
		return m, nil

	case analyzeDoneMsg:
		if msg.err != nil && msg.id == "" {
			m.status = fmt.Sprintf("一括分析を中断しました: %v", msg.err)
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.bridge.Alert(msg.err.Error())
		} else {
			m.status = fmt.Sprintf("%d 件保存しました: %s", len(msg.paths), strings.Join(msg.paths, ", "))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancel()
		return m, tea.Quit

	case "tab", "shift+tab", "enter":
		leaving := m.focus
		if msg.String() == "shift+tab" {
			m.moveFocus(-1)
		} else {
			m.moveFocus(1)
		}
		return m, m.commitField(leaving)

	case "ctrl+t":
		m.app.Modes.Toggle()
		m.syncReferenceInput()
		return m, nil

	case "ctrl+g":
		cmd := m.commitField(m.focus)
		m.syncForm()
		if err := m.app.Form.Validate(); err != nil {
			m.bridge.Alert(err.Error())
			return m, cmd
		}
		return m, tea.Batch(cmd, submitCmd(m.ctx, m.app))

	case "ctrl+n":
		m.selected++
		m.clampSelection()
		return m, nil

	case "ctrl+p":
		m.selected--
		m.clampSelection()
		return m, nil

	case "ctrl+a":
		if item, ok := m.current(); ok {
			m.syncForm()
			return m, analyzeCmd(m.ctx, m.app, item.ID)
		}
		return m, nil

	case "ctrl+l":
		m.syncForm()
		return m, analyzeAllCmd(m.ctx, m.app)

	case "ctrl+x":
		if item, ok := m.current(); ok {
			_, _ = m.app.Analyzer.Dismiss(item.ID)
		}
		return m, nil

	case "ctrl+e":
		if item, ok := m.current(); ok {
			return m, exportCmd(m.ctx, m.app, []domain.GalleryItem{item})
		}
		return m, nil

	case "ctrl+s":
		if items := m.app.Gallery.Items(); len(items) > 0 {
			return m, exportCmd(m.ctx, m.app, items)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// moveFocus は表示中の入力欄の間でフォーカスを移動します。
func (m *Model) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	visible := m.visibleFields()
	pos := 0
	for i, f := range visible {
		if f == m.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(visible)) % len(visible)
	m.focus = visible[pos]
	m.inputs[m.focus].Focus()
}

func (m Model) visibleFields() []int {
	fields := []int{fieldAPIKey, fieldModel, fieldPrompt, fieldBatch, fieldSeed}
	if m.app.Form.Snapshot().ReferenceVisible {
		fields = append(fields, fieldReference)
	}
	return fields
}

// commitField はファイル入力欄の値が変わっていれば読み込みを開始します。
func (m Model) commitField(field int) tea.Cmd {
	snap := m.app.Form.Snapshot()
	value := strings.TrimSpace(m.inputs[field].Value())
	switch field {
	case fieldSeed:
		if value != snap.SeedPath {
			return selectFileCmd(m.ctx, m.app, domain.RegionSeed, value)
		}
	case fieldReference:
		if snap.ReferenceVisible && value != snap.ReferencePath {
			return selectFileCmd(m.ctx, m.app, domain.RegionReference, value)
		}
	}
	return nil
}

// syncForm はテキスト入力欄の値をフォームに反映します。
func (m Model) syncForm() {
	f := m.app.Form
	f.SetAPIKey(m.inputs[fieldAPIKey].Value())
	f.SetModelName(strings.TrimSpace(m.inputs[fieldModel].Value()))
	f.SetPrompt(m.inputs[fieldPrompt].Value())
	n, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldBatch].Value()))
	if err != nil {
		n = 1
	}
	f.SetBatchSize(n)
}

// syncReferenceInput はモード切り替え後の参照画像欄を入力欄に反映します。
func (m *Model) syncReferenceInput() {
	snap := m.app.Form.Snapshot()
	if !snap.ReferenceVisible {
		m.inputs[fieldReference].SetValue("")
		if m.focus == fieldReference {
			m.moveFocus(-1)
		}
	}
}

func (m Model) current() (domain.GalleryItem, bool) {
	items := m.app.Gallery.Items()
	if m.selected < 0 || m.selected >= len(items) {
		return domain.GalleryItem{}, false
	}
	return items[m.selected], true
}

func (m *Model) clampSelection() {
	n := m.app.Gallery.Len()
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) View() string {
	screen := m.bridge.Screen()
	snap := m.app.Form.Snapshot()

	header := titleStyle.Render(appTitle) + "  " + renderModeButtons(snap.Selected)

	var fields []string
	for _, f := range m.visibleFields() {
		label := fieldLabels[f]
		if f == fieldReference && snap.ReferenceRequired {
			label += " *"
		}
		fields = append(fields, faintStyle.Render(label)+"\n"+m.inputs[f].View())
	}

	previews := []string{renderPreview("Seed", screen.Seed)}
	if snap.ReferenceVisible {
		previews = append(previews, renderPreview("Reference", screen.Reference))
	}

	submit := "[ " + screen.SubmitLabel + " ]"
	if screen.SubmitEnabled {
		submit = selectedStyle.Render(submit)
	} else {
		submit = faintStyle.Render(submit) + " " + m.spin.View()
	}

	left := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(fields, "\n"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, previews...),
		"",
		submit,
	))

	right := boxStyle.Render(m.renderGallery())

	var footer []string
	if screen.LastAlert != "" {
		footer = append(footer, alertStyle.Render("⚠ "+screen.LastAlert))
	}
	if m.status != "" {
		footer = append(footer, m.status)
	}
	help := faintStyle
	if m.width > 0 {
		help = help.Width(m.width)
	}
	footer = append(footer, help.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
		strings.Join(footer, "\n"),
	)
}

func (m Model) renderGallery() string {
	title := titleStyle.Render("Gallery")
	if m.app.Gallery.HasPlaceholder() {
		return title + "\n" + faintStyle.Render(emptyGalleryText)
	}
	items := m.app.Gallery.Items()
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, title)
	for i, it := range items {
		lines = append(lines, renderItem(it, i == m.selected, m.spin.View()))
	}
	return strings.Join(lines, "\n")
}
