package gallery

import (
	"sync"
	"testing"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageData(items []domain.GalleryItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ImageData
	}
	return out
}

func TestGallery_Prepend(t *testing.T) {
	t.Run("配列順に先頭へ挿入される", func(t *testing.T) {
		g := New()
		_, err := g.Prepend([]string{"x", "y"}, []string{"x.png", "y.png"})
		require.NoError(t, err)

		added, err := g.Prepend([]string{"a", "b", "c"}, []string{"a.png", "b.png", "c.png"})
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, imageData(added))
		assert.Equal(t, []string{"c", "b", "a", "y", "x"}, imageData(g.Items()))
		assert.Equal(t, 5, g.Len())
	})

	t.Run("各アイテムは一意なIDと none 状態で作られる", func(t *testing.T) {
		g := New()
		added, err := g.Prepend([]string{"a", "b"}, []string{"", "b.png"})
		require.NoError(t, err)

		assert.NotEqual(t, added[0].ID, added[1].ID)
		for _, it := range added {
			assert.True(t, IsValidID(it.ID), it.ID)
			assert.Equal(t, domain.AnalysisNone, it.Analysis)
		}
		assert.Equal(t, domain.DefaultFilename, added[0].Filename)
	})

	t.Run("長さが違う場合はエラーでギャラリーは変わらない", func(t *testing.T) {
		g := New()
		_, err := g.Prepend([]string{"a"}, nil)
		assert.Error(t, err)
		assert.Zero(t, g.Len())
	})

	t.Run("追加がObserverに通知される", func(t *testing.T) {
		g := New()
		obs := &recordingObserver{}
		g.SetObserver(obs)
		_, err := g.Prepend([]string{"a"}, []string{"a.png"})
		require.NoError(t, err)
		require.Len(t, obs.added, 1)
		assert.Equal(t, "a", obs.added[0][0].ImageData)
	})
}

func TestGallery_RemovePlaceholder(t *testing.T) {
	g := New()
	obs := &recordingObserver{}
	g.SetObserver(obs)

	assert.True(t, g.HasPlaceholder())
	assert.True(t, g.RemovePlaceholder())
	assert.False(t, g.RemovePlaceholder())
	assert.False(t, g.HasPlaceholder())
	assert.Equal(t, 1, obs.placeholderRemoved)
}

func TestGallery_AnalysisTransitions(t *testing.T) {
	newItem := func(t *testing.T) (*Gallery, string) {
		t.Helper()
		g := New()
		added, err := g.Prepend([]string{"a"}, []string{"a.png"})
		require.NoError(t, err)
		return g, added[0].ID
	}

	t.Run("none -> loading -> done -> dismiss -> none", func(t *testing.T) {
		g, id := newItem(t)

		item, started, err := g.BeginAnalysis(id)
		require.NoError(t, err)
		assert.True(t, started)
		assert.Equal(t, domain.AnalysisLoading, item.Analysis)

		item, err = g.CompleteAnalysis(id, domain.AnalysisResult{RealismScore: 9})
		require.NoError(t, err)
		assert.Equal(t, domain.AnalysisDone, item.Analysis)
		require.NotNil(t, item.Result)

		_, started, err = g.BeginAnalysis(id)
		require.NoError(t, err)
		assert.False(t, started, "レポート表示中は再分析できない")

		dismissed, err := g.DismissReport(id)
		require.NoError(t, err)
		assert.True(t, dismissed)

		item, _ = g.Get(id)
		assert.Equal(t, domain.AnalysisNone, item.Analysis)
		assert.Nil(t, item.Result)

		_, started, err = g.BeginAnalysis(id)
		require.NoError(t, err)
		assert.True(t, started)
	})

	t.Run("失敗後は再分析できる", func(t *testing.T) {
		g, id := newItem(t)
		_, _, err := g.BeginAnalysis(id)
		require.NoError(t, err)

		item, err := g.FailAnalysis(id, "boom")
		require.NoError(t, err)
		assert.Equal(t, domain.AnalysisError, item.Analysis)
		assert.Equal(t, "boom", item.LastError)

		_, started, err := g.BeginAnalysis(id)
		require.NoError(t, err)
		assert.True(t, started)
	})

	t.Run("loading 以外からの完了は不正な遷移", func(t *testing.T) {
		g, id := newItem(t)
		_, err := g.CompleteAnalysis(id, domain.AnalysisResult{})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = g.FailAnalysis(id, "x")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("レポートが無いときの dismiss は何もしない", func(t *testing.T) {
		g, id := newItem(t)
		dismissed, err := g.DismissReport(id)
		require.NoError(t, err)
		assert.False(t, dismissed)
	})

	t.Run("存在しないIDは ErrNotFound", func(t *testing.T) {
		g := New()
		_, _, err := g.BeginAnalysis("img-missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("同時に開始できるのは1回だけ", func(t *testing.T) {
		g, id := newItem(t)
		var wg sync.WaitGroup
		var mu sync.Mutex
		starts := 0
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok, _ := g.BeginAnalysis(id); ok {
					mu.Lock()
					starts++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, starts)
	})
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.True(t, IsValidID(id), id)
		assert.False(t, seen[id], "重複したIDが生成された")
		seen[id] = true
	}
	assert.False(t, IsValidID("jan_01h"))
}
