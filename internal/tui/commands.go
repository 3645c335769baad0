package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shouni/gesture-gen-kit/internal/builder"
	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/shouni/gesture-gen-kit/pkg/generator"
)

// ---------- messages ----------

type refreshMsg struct{}

type submitDoneMsg struct {
	count int
	err   error
}

type fileSelectedMsg struct {
	region domain.PreviewRegion
	path   string
	err    error
}

type analyzeDoneMsg struct {
	id      string
	started bool
	err     error
}

type exportDoneMsg struct {
	paths []string
	err   error
}

// ---------- commands ----------

func waitForRefresh(b *Bridge) tea.Cmd {
	return func() tea.Msg {
		<-b.Refresh()
		return refreshMsg{}
	}
}

func submitCmd(ctx context.Context, app *builder.AppContext) tea.Cmd {
	return func() tea.Msg {
		items, err := app.Generator.Submit(ctx)
		if errors.Is(err, generator.ErrBusy) {
			return nil
		}
		return submitDoneMsg{count: len(items), err: err}
	}
}

func selectFileCmd(ctx context.Context, app *builder.AppContext, region domain.PreviewRegion, path string) tea.Cmd {
	return func() tea.Msg {
		err := app.Form.SelectFile(ctx, region, path)
		return fileSelectedMsg{region: region, path: path, err: err}
	}
}

func analyzeCmd(ctx context.Context, app *builder.AppContext, id string) tea.Cmd {
	return func() tea.Msg {
		started, err := app.Analyzer.Analyze(ctx, id)
		return analyzeDoneMsg{id: id, started: started, err: err}
	}
}

func analyzeAllCmd(ctx context.Context, app *builder.AppContext) tea.Cmd {
	return func() tea.Msg {
		_, err := app.Analyzer.AnalyzeAll(ctx, app.Config.AnalyzeInterval)
		return analyzeDoneMsg{err: err}
	}
}

func exportCmd(ctx context.Context, app *builder.AppContext, items []domain.GalleryItem) tea.Cmd {
	return func() tea.Msg {
		paths, err := app.Exporter.ExportAll(ctx, items)
		return exportDoneMsg{paths: paths, err: err}
	}
}
