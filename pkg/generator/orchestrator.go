package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/gesture-gen-kit/pkg/adapters"
	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/shouni/gesture-gen-kit/pkg/utils"
)

const (
	// BusyLabel は送信中に送信ボタンへ表示するラベルです。
	BusyLabel = "生成中... ⏳"

	msgMalformed     = "エラー: サーバーの応答形式が正しくありません"
	msgUnknownServer = "不明なエラーが発生しました"
)

// ErrBusy は送信処理中に再度送信しようとしたことを表します。リクエストは送られません。
var ErrBusy = errors.New("generation already in progress")

// Orchestrator はフォームの内容から生成要求を組み立てて送信し、結果をギャラリーに追加します。
type Orchestrator struct {
	transport Transport
	modes     ModeSource
	form      FormReader
	gallery   Gallery
	control   SubmitControl
	notifier  Notifier
	now       func() time.Time

	mu   sync.Mutex
	busy bool
}

// Option は Orchestrator の任意設定です。
type Option func(*Orchestrator)

// WithClock はファイル名のタイムスタンプに使う時計を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator は依存関係を注入して Orchestrator を初期化します。
func NewOrchestrator(transport Transport, modes ModeSource, form FormReader, gallery Gallery, control SubmitControl, notifier Notifier, opts ...Option) (*Orchestrator, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if modes == nil {
		return nil, fmt.Errorf("modes is required")
	}
	if form == nil {
		return nil, fmt.Errorf("form is required")
	}
	if gallery == nil {
		return nil, fmt.Errorf("gallery is required")
	}
	if control == nil {
		return nil, fmt.Errorf("control is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}

	o := &Orchestrator{
		transport: transport,
		modes:     modes,
		form:      form,
		gallery:   gallery,
		control:   control,
		notifier:  notifier,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Busy は送信処理中かどうかを返します。
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Submit は生成要求を1回送信し、ギャラリーに追加したアイテムを挿入順で返します。
// 送信中は送信ボタンを無効化し、どの結果でも終了時に元のラベルと有効状態に戻します。
// 送信中に呼ばれた場合は何もせず ErrBusy を返します。
func (o *Orchestrator) Submit(ctx context.Context) ([]domain.GalleryItem, error) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		slog.DebugContext(ctx, "送信処理中のため新しい送信を無視しました")
		return nil, ErrBusy
	}
	o.busy = true
	o.mu.Unlock()

	originalLabel := o.control.SubmitLabel()
	o.control.SetSubmitEnabled(false)
	o.control.SetSubmitLabel(BusyLabel)
	defer func() {
		o.control.SetSubmitEnabled(true)
		o.control.SetSubmitLabel(originalLabel)
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	req := o.buildRequest()
	slog.InfoContext(ctx, "生成リクエストを送信します",
		"mode", req.Mode,
		"model", req.ModelName,
		"batch_size", req.BatchSize,
		"has_reference", req.ReferenceImage != nil)

	images, err := o.transport.Generate(ctx, req)
	if err != nil {
		o.notifier.Alert(userMessage(err))
		slog.WarnContext(ctx, "生成に失敗しました", "mode", req.Mode, "error", err)
		return nil, &domain.AlertedError{Err: fmt.Errorf("生成に失敗しました: %w", err)}
	}

	filenames := BatchFilenames(req.Mode, req.Prompt, o.now(), len(images))
	items, err := o.gallery.Prepend(images, filenames)
	if err != nil {
		o.notifier.Alert("エラー: " + err.Error())
		return nil, &domain.AlertedError{Err: fmt.Errorf("ギャラリーへの追加に失敗しました: %w", err)}
	}
	o.gallery.RemovePlaceholder()

	slog.InfoContext(ctx, "生成結果をギャラリーに追加しました", "count", len(items), "mode", req.Mode)
	return items, nil
}

// buildRequest は現在のフォームとモードから送信ごとに新しい要求を作ります。
func (o *Orchestrator) buildRequest() domain.GenerationRequest {
	v := o.form.Values()
	m := o.modes.Current()

	req := domain.GenerationRequest{
		APIKey:    v.APIKey,
		ModelName: utils.FirstNonEmpty(v.ModelName, domain.DefaultModelName),
		Prompt:    v.Prompt,
		Mode:      m,
		BatchSize: utils.ClampBatchSize(v.BatchSize),
	}
	if v.SeedImage != nil {
		req.SeedImage = cloneFile(*v.SeedImage)
	}
	if m.RequiresReference() && v.ReferenceImage != nil {
		ref := cloneFile(*v.ReferenceImage)
		req.ReferenceImage = &ref
	}
	return req
}

func cloneFile(f domain.ImageFile) domain.ImageFile {
	return domain.ImageFile{Name: f.Name, Data: append([]byte(nil), f.Data...)}
}

// userMessage はエラーの種類に応じてユーザーに見せる文言を返します。
func userMessage(err error) string {
	var se *adapters.ServerError
	var te *adapters.TransportError
	switch {
	case errors.Is(err, adapters.ErrMalformedResponse):
		return msgMalformed
	case errors.As(err, &se):
		return "エラー: " + utils.FirstNonEmpty(se.Message, msgUnknownServer)
	case errors.As(err, &te):
		return "ネットワークエラー: " + te.Err.Error()
	default:
		return "ネットワークエラー: " + err.Error()
	}
}
