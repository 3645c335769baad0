package gallery

import (
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// recordingObserver は通知内容を記録する Observer のモックです。
type recordingObserver struct {
	mu                 sync.Mutex
	added              [][]domain.GalleryItem
	changed            []domain.GalleryItem
	placeholderRemoved int
}

func (o *recordingObserver) ItemsAdded(items []domain.GalleryItem) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.added = append(o.added, items)
}

func (o *recordingObserver) ItemChanged(item domain.GalleryItem) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.changed = append(o.changed, item)
}

func (o *recordingObserver) PlaceholderRemoved() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.placeholderRemoved++
}
