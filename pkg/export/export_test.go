package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestExporter_Export(t *testing.T) {
	ctx := context.Background()
	images := &mockImages{data: map[string][]byte{"/static/a.png": pngHeader}}

	t.Run("ファイル名で出力ディレクトリに保存する", func(t *testing.T) {
		w := newMockWriter()
		e, err := NewExporter(w, images, "output/")
		require.NoError(t, err)

		p, err := e.Export(ctx, domain.GalleryItem{ID: "img-1", ImageData: "/static/a.png", Filename: "gesture_var_1.png"})
		require.NoError(t, err)
		assert.Equal(t, "output/gesture_var_1.png", p)
		assert.Equal(t, pngHeader, w.files[p])
		assert.Equal(t, "image/png", w.types[p])
	})

	t.Run("ファイル名が空の場合は既定名", func(t *testing.T) {
		w := newMockWriter()
		e, err := NewExporter(w, images, "")
		require.NoError(t, err)

		p, err := e.Export(ctx, domain.GalleryItem{ImageData: "/static/a.png"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultFilename, p)
	})

	t.Run("取得失敗", func(t *testing.T) {
		e, err := NewExporter(newMockWriter(), images, "out")
		require.NoError(t, err)
		_, err = e.Export(ctx, domain.GalleryItem{ID: "img-x", ImageData: "/missing.png"})
		assert.ErrorContains(t, err, "画像の取得に失敗しました")
	})
}

func TestExporter_ExportAll(t *testing.T) {
	ctx := context.Background()
	images := &mockImages{data: map[string][]byte{"a": pngHeader, "b": pngHeader}}
	items := []domain.GalleryItem{
		{ImageData: "a", Filename: "a.png"},
		{ImageData: "b", Filename: "b.png"},
	}

	t.Run("入力順にパスを返す", func(t *testing.T) {
		w := newMockWriter()
		e, err := NewExporter(w, images, "gs://bucket/out")
		require.NoError(t, err)

		paths, err := e.ExportAll(ctx, items)
		require.NoError(t, err)
		assert.Equal(t, []string{"gs://bucket/out/a.png", "gs://bucket/out/b.png"}, paths)
		assert.Len(t, w.files, 2)
	})

	t.Run("1件失敗するとエラー", func(t *testing.T) {
		w := newMockWriter()
		w.failFor = "out/b.png"
		e, err := NewExporter(w, images, "out")
		require.NoError(t, err)

		paths, err := e.ExportAll(ctx, items)
		assert.Nil(t, paths)
		assert.ErrorContains(t, err, "permission denied")
	})
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "gs://bucket/dir/x.png", JoinPath("gs://bucket/dir", "x.png"))
	assert.Equal(t, "out/x.png", JoinPath("out/", "/x.png"))
	assert.Equal(t, "x.png", JoinPath("", "x.png"))
}

func TestLocalWriter(t *testing.T) {
	ctx := context.Background()
	dst := filepath.Join(t.TempDir(), "nested", "x.png")

	require.NoError(t, LocalWriter{}.Write(ctx, dst, strings.NewReader("data"), "image/png"))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	rc, err := LocalReader{}.Open(ctx, dst)
	require.NoError(t, err)
	defer rc.Close()
}
