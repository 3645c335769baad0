package gallery

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

var (
	// ErrNotFound は指定されたIDのアイテムが存在しないことを表します。
	ErrNotFound = errors.New("gallery item not found")
	// ErrInvalidID は img-<ULID> 形式ではないアイテムIDを表します。
	ErrInvalidID = errors.New("invalid gallery item id")
	// ErrInvalidTransition は現在の状態から許可されていない分析状態の遷移です。
	ErrInvalidTransition = errors.New("invalid analysis state transition")
)

// Observer はギャラリーの変化を受け取る UI 側の窓口です。
type Observer interface {
	ItemsAdded(items []domain.GalleryItem)
	ItemChanged(item domain.GalleryItem)
	PlaceholderRemoved()
}

// Gallery はセッション中に生成されたアイテムを新しいもの順に保持します。
// 生成側は先頭への追加だけを、分析側はアイテムごとの分析状態だけを変更します。
type Gallery struct {
	mu          sync.RWMutex
	items       []*domain.GalleryItem
	index       map[string]*domain.GalleryItem
	placeholder bool
	observer    Observer
}

// New は空のギャラリーを作成します。空表示のプレースホルダーが有効な状態で始まります。
func New() *Gallery {
	return &Gallery{
		index:       make(map[string]*domain.GalleryItem),
		placeholder: true,
	}
}

// SetObserver は変更通知先を設定します。nil で通知を止めます。
func (g *Gallery) SetObserver(o Observer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observer = o
}

// Prepend は画像を配列順に1枚ずつ先頭へ挿入し、作成したアイテムを挿入順で返します。
// filenames は images と同じ長さである必要があります。空のファイル名は既定名になります。
func (g *Gallery) Prepend(images, filenames []string) ([]domain.GalleryItem, error) {
	if len(images) != len(filenames) {
		return nil, fmt.Errorf("images and filenames length mismatch: %d != %d", len(images), len(filenames))
	}

	g.mu.Lock()
	added := make([]domain.GalleryItem, 0, len(images))
	for i, data := range images {
		name := filenames[i]
		if name == "" {
			name = domain.DefaultFilename
		}
		item := &domain.GalleryItem{
			ID:        NewID(),
			ImageData: data,
			Filename:  name,
			Analysis:  domain.AnalysisNone,
		}
		g.items = append([]*domain.GalleryItem{item}, g.items...)
		g.index[item.ID] = item
		added = append(added, *item)
	}
	obs := g.observer
	g.mu.Unlock()

	if obs != nil && len(added) > 0 {
		obs.ItemsAdded(added)
	}
	return added, nil
}

// RemovePlaceholder は空表示のプレースホルダーがあれば取り除きます。取り除いた場合は true です。
func (g *Gallery) RemovePlaceholder() bool {
	g.mu.Lock()
	if !g.placeholder {
		g.mu.Unlock()
		return false
	}
	g.placeholder = false
	obs := g.observer
	g.mu.Unlock()

	if obs != nil {
		obs.PlaceholderRemoved()
	}
	return true
}

// HasPlaceholder は空表示のプレースホルダーが残っているかを返します。
func (g *Gallery) HasPlaceholder() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.placeholder
}

// Items は現在のアイテムのスナップショットを表示順で返します。
func (g *Gallery) Items() []domain.GalleryItem {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.GalleryItem, len(g.items))
	for i, it := range g.items {
		out[i] = *it
	}
	return out
}

// Len はアイテム数を返します。
func (g *Gallery) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.items)
}

// Get は指定IDのアイテムのコピーを返します。
func (g *Gallery) Get(id string) (domain.GalleryItem, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	it, ok := g.index[id]
	if !ok {
		return domain.GalleryItem{}, false
	}
	return *it, true
}

// BeginAnalysis は分析状態を loading に切り替えます。
// 既に読み込み中かレポート表示中の場合は何もせず false を返します。
func (g *Gallery) BeginAnalysis(id string) (domain.GalleryItem, bool, error) {
	return g.transition(id, func(it *domain.GalleryItem) (bool, error) {
		if !it.Analysis.CanStart() {
			return false, nil
		}
		it.Analysis = domain.AnalysisLoading
		it.Result = nil
		it.LastError = ""
		return true, nil
	})
}

// CompleteAnalysis は loading のアイテムに結果を設定し done にします。
func (g *Gallery) CompleteAnalysis(id string, result domain.AnalysisResult) (domain.GalleryItem, error) {
	item, _, err := g.transition(id, func(it *domain.GalleryItem) (bool, error) {
		if it.Analysis != domain.AnalysisLoading {
			return false, fmt.Errorf("%w: %s -> done", ErrInvalidTransition, it.Analysis)
		}
		r := result
		it.Analysis = domain.AnalysisDone
		it.Result = &r
		return true, nil
	})
	return item, err
}

// FailAnalysis は loading のアイテムを error にします。error 状態からは再分析できます。
func (g *Gallery) FailAnalysis(id string, message string) (domain.GalleryItem, error) {
	item, _, err := g.transition(id, func(it *domain.GalleryItem) (bool, error) {
		if it.Analysis != domain.AnalysisLoading {
			return false, fmt.Errorf("%w: %s -> error", ErrInvalidTransition, it.Analysis)
		}
		it.Analysis = domain.AnalysisError
		it.LastError = message
		return true, nil
	})
	return item, err
}

// DismissReport は表示中のレポートを閉じ、状態を none に戻します。
// レポートが無い場合は false を返します。
func (g *Gallery) DismissReport(id string) (bool, error) {
	_, changed, err := g.transition(id, func(it *domain.GalleryItem) (bool, error) {
		if it.Analysis != domain.AnalysisDone {
			return false, nil
		}
		it.Analysis = domain.AnalysisNone
		it.Result = nil
		return true, nil
	})
	return changed, err
}

func (g *Gallery) transition(id string, fn func(*domain.GalleryItem) (bool, error)) (domain.GalleryItem, bool, error) {
	g.mu.Lock()
	it, ok := g.index[id]
	if !ok {
		g.mu.Unlock()
		return domain.GalleryItem{}, false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	changed, err := fn(it)
	snapshot := *it
	obs := g.observer
	g.mu.Unlock()

	if err != nil {
		return snapshot, false, err
	}
	if changed && obs != nil {
		obs.ItemChanged(snapshot)
	}
	return snapshot, changed, nil
}
