package tui

import (
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/shouni/gesture-gen-kit/pkg/preview"
)

// DefaultSubmitLabel は送信ボタンの通常時のラベルです。
const DefaultSubmitLabel = "画像を生成 ✨"

// Bridge はオーケストレーターからの UI 更新を受け取り、画面状態として保持します。
// 更新のたびに refresh チャネルへ合図を送り、表示側はそれを受けて再描画します。
// 合図は1件に集約されるため、Update の中から呼ばれてもブロックしません。
type Bridge struct {
	mu            sync.Mutex
	previews      map[domain.PreviewRegion]domain.Preview
	submitLabel   string
	submitEnabled bool
	alerts        []string

	refresh chan struct{}
}

// NewBridge はプレースホルダー表示と有効な送信ボタンで Bridge を初期化します。
func NewBridge() *Bridge {
	return &Bridge{
		previews: map[domain.PreviewRegion]domain.Preview{
			domain.RegionSeed:      {Placeholder: preview.Placeholder(domain.RegionSeed)},
			domain.RegionReference: {Placeholder: preview.Placeholder(domain.RegionReference)},
		},
		submitLabel:   DefaultSubmitLabel,
		submitEnabled: true,
		refresh:       make(chan struct{}, 1),
	}
}

// ShowPreview は preview.Sink の実装です。
func (b *Bridge) ShowPreview(region domain.PreviewRegion, p domain.Preview) {
	b.mu.Lock()
	b.previews[region] = p
	b.mu.Unlock()
	b.notify()
}

// SubmitLabel は generator.SubmitControl の実装です。
func (b *Bridge) SubmitLabel() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submitLabel
}

func (b *Bridge) SetSubmitEnabled(enabled bool) {
	b.mu.Lock()
	b.submitEnabled = enabled
	b.mu.Unlock()
	b.notify()
}

func (b *Bridge) SetSubmitLabel(label string) {
	b.mu.Lock()
	b.submitLabel = label
	b.mu.Unlock()
	b.notify()
}

// Alert はユーザーへの通知を追加します。
func (b *Bridge) Alert(message string) {
	b.mu.Lock()
	b.alerts = append(b.alerts, message)
	b.mu.Unlock()
	b.notify()
}

// ItemsAdded, ItemChanged, PlaceholderRemoved は gallery.Observer の実装です。
// 表示はギャラリーから直接読むため、ここでは再描画の合図だけを送ります。
func (b *Bridge) ItemsAdded([]domain.GalleryItem) { b.notify() }
func (b *Bridge) ItemChanged(domain.GalleryItem)  { b.notify() }
func (b *Bridge) PlaceholderRemoved()             { b.notify() }

// Screen は描画用の画面状態です。
type Screen struct {
	Seed          domain.Preview
	Reference     domain.Preview
	SubmitLabel   string
	SubmitEnabled bool
	LastAlert     string
	AlertCount    int
}

// Screen は現在の画面状態を複製して返します。
func (b *Bridge) Screen() Screen {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := Screen{
		Seed:          b.previews[domain.RegionSeed],
		Reference:     b.previews[domain.RegionReference],
		SubmitLabel:   b.submitLabel,
		SubmitEnabled: b.submitEnabled,
		AlertCount:    len(b.alerts),
	}
	if n := len(b.alerts); n > 0 {
		s.LastAlert = b.alerts[n-1]
	}
	return s
}

// Refresh は再描画の合図を受け取るチャネルです。
func (b *Bridge) Refresh() <-chan struct{} {
	return b.refresh
}

func (b *Bridge) notify() {
	select {
	case b.refresh <- struct{}{}:
	default:
	}
}
