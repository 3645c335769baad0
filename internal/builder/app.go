package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gesture-gen-kit/internal/config"
	"github.com/shouni/gesture-gen-kit/pkg/adapters"
	"github.com/shouni/gesture-gen-kit/pkg/analyzer"
	"github.com/shouni/gesture-gen-kit/pkg/export"
	"github.com/shouni/gesture-gen-kit/pkg/form"
	"github.com/shouni/gesture-gen-kit/pkg/gallery"
	"github.com/shouni/gesture-gen-kit/pkg/generator"
	"github.com/shouni/gesture-gen-kit/pkg/mode"
	"github.com/shouni/gesture-gen-kit/pkg/preview"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// UI はセッションの画面側が実装する窓口の集合です。
// TUI とワンショットのコンソール出力の両方がこれを満たします。
type UI interface {
	preview.Sink
	generator.SubmitControl
	gallery.Observer
	Alert(message string)
}

// AppContext は、セッションの実行に必要なコンポーネントを保持します。
// これを cmd と TUI に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config    *config.Config
	Client    *adapters.StudioClient
	Fetcher   *adapters.ImageFetcher
	Form      *form.Form
	Previews  *preview.Loader
	Modes     *mode.Controller
	Gallery   *gallery.Gallery
	Generator *generator.Orchestrator
	Analyzer  *analyzer.Orchestrator
	Exporter  *export.Exporter
}

// NewAppContext は設定と UI から全コンポーネントを組み立てます。
func NewAppContext(ctx context.Context, cfg *config.Config, ui UI) (*AppContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if ui == nil {
		return nil, fmt.Errorf("ui is required")
	}

	imageCache := cache.New(config.DefaultCacheTTL, config.DefaultCacheCleanup)
	reader, writer := initializeIO(ctx)

	previews, err := preview.NewLoader(reader, ui)
	if err != nil {
		return nil, fmt.Errorf("プレビューローダーの初期化に失敗しました: %w", err)
	}

	f := form.New(previews)
	f.SetAPIKey(cfg.APIKey)
	f.SetModelName(cfg.Model)

	modes, err := mode.NewController(f, previews)
	if err != nil {
		return nil, fmt.Errorf("モードコントローラーの初期化に失敗しました: %w", err)
	}

	g := gallery.New()
	g.SetObserver(ui)

	client, err := adapters.NewStudioClient(cfg.ServerURL, resty.New().SetTimeout(cfg.HTTPTimeout))
	if err != nil {
		return nil, fmt.Errorf("サーバークライアントの初期化に失敗しました: %w", err)
	}

	fetcher, err := adapters.NewImageFetcher(httpkit.New(cfg.HTTPTimeout), imageCache, config.DefaultCacheTTL, cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("画像フェッチャーの初期化に失敗しました: %w", err)
	}

	gen, err := generator.NewOrchestrator(client, modes, f, g, ui, ui)
	if err != nil {
		return nil, fmt.Errorf("生成オーケストレーターの初期化に失敗しました: %w", err)
	}

	an, err := analyzer.NewOrchestrator(client, fetcher, f, g, ui)
	if err != nil {
		return nil, fmt.Errorf("分析オーケストレーターの初期化に失敗しました: %w", err)
	}

	exp, err := export.NewExporter(writer, fetcher, cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("エクスポーターの初期化に失敗しました: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		Client:    client,
		Fetcher:   fetcher,
		Form:      f,
		Previews:  previews,
		Modes:     modes,
		Gallery:   g,
		Generator: gen,
		Analyzer:  an,
		Exporter:  exp,
	}, nil
}

// initializeIO は GCS 対応のリーダーとライターを作成します。
// 認証情報が無いなどで GCS クライアントを作れない場合はローカルファイルシステムを使います。
func initializeIO(ctx context.Context) (preview.InputReader, export.Writer) {
	factory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		slog.WarnContext(ctx, "GCSクライアントを初期化できないためローカルファイルを使用します", "error", err)
		return export.LocalReader{}, export.LocalWriter{}
	}

	var reader preview.InputReader = export.LocalReader{}
	var writer export.Writer = export.LocalWriter{}
	if r, err := factory.NewInputReader(); err != nil {
		slog.WarnContext(ctx, "リーダーの作成に失敗しました", "error", err)
	} else {
		reader = r
	}
	if w, err := factory.NewOutputWriter(); err != nil {
		slog.WarnContext(ctx, "ライターの作成に失敗しました", "error", err)
	} else {
		writer = w
	}
	return reader, writer
}
