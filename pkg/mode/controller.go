package mode

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// View はモード切り替えに伴って更新される UI 側の窓口です。
type View interface {
	// SetModeSelected はモードボタンの選択状態を設定します。
	SetModeSelected(mode domain.GenerationMode, selected bool)
	// SetReferenceInput は参照画像入力欄の表示と必須指定を設定します。
	SetReferenceInput(visible, required bool)
	// ClearReferenceInput は参照画像入力欄で選択済みのファイルを取り消します。
	ClearReferenceInput()
}

// PreviewResetter はプレビュー領域をプレースホルダーに戻します。
type PreviewResetter interface {
	Reset(region domain.PreviewRegion)
}

// Controller は現在の生成モードを保持し、切り替え時の UI 更新を行います。
type Controller struct {
	mu       sync.RWMutex
	current  domain.GenerationMode
	uiMu     sync.Mutex
	view     View
	previews PreviewResetter
}

// NewController は variation モードで Controller を初期化し、UI を初期状態に揃えます。
// previews は nil を許容します。
func NewController(view View, previews PreviewResetter) (*Controller, error) {
	if view == nil {
		return nil, fmt.Errorf("view is required")
	}
	c := &Controller{view: view, previews: previews}
	c.SetMode(domain.ModeVariation)
	return c, nil
}

// Current は現在のモードを返します。
func (c *Controller) Current() domain.GenerationMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SetMode はモードを切り替えます。選択状態は指定されたモードのボタンだけになります。
// variation に切り替えると参照画像の入力欄は非表示・任意になり、選択済みファイルと
// プレビューも初期状態に戻ります。
func (c *Controller) SetMode(mode domain.GenerationMode) {
	if _, err := domain.ParseMode(string(mode)); err != nil {
		slog.Warn("不明なモードへの切り替えを無視しました", "mode", mode)
		return
	}

	c.uiMu.Lock()
	defer c.uiMu.Unlock()

	c.mu.Lock()
	c.current = mode
	c.mu.Unlock()

	for _, m := range domain.Modes {
		c.view.SetModeSelected(m, m == mode)
	}

	if mode.RequiresReference() {
		c.view.SetReferenceInput(true, true)
		return
	}
	c.view.SetReferenceInput(false, false)
	c.view.ClearReferenceInput()
	if c.previews != nil {
		c.previews.Reset(domain.RegionReference)
	}
}

// Toggle はもう一方のモードに切り替えて、切り替え後のモードを返します。
func (c *Controller) Toggle() domain.GenerationMode {
	next := domain.ModeModification
	if c.Current() == domain.ModeModification {
		next = domain.ModeVariation
	}
	c.SetMode(next)
	return next
}
