// Package export はギャラリーの生成画像を出力先（ローカルまたは gs://）へ保存します。
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// Writer は保存先への書き込みを抽象化します。remoteio.OutputWriter が満たします。
type Writer interface {
	Write(ctx context.Context, path string, r io.Reader, contentType string) error
}

// ImageSource はアイテムの画像参照からバイト列を取り出します。
type ImageSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Exporter はギャラリーアイテムを出力ディレクトリにファイル名付きで保存します。
type Exporter struct {
	writer Writer
	images ImageSource
	dir    string
}

// NewExporter は依存関係を注入して Exporter を初期化します。dir が空の場合はファイル名のみで保存します。
func NewExporter(writer Writer, images ImageSource, dir string) (*Exporter, error) {
	if writer == nil {
		return nil, fmt.Errorf("writer is required")
	}
	if images == nil {
		return nil, fmt.Errorf("images is required")
	}
	return &Exporter{writer: writer, images: images, dir: dir}, nil
}

// Export はアイテムを1件保存し、保存先のパスを返します。
func (e *Exporter) Export(ctx context.Context, item domain.GalleryItem) (string, error) {
	data, err := e.images.Fetch(ctx, item.ImageData)
	if err != nil {
		return "", fmt.Errorf("画像の取得に失敗しました (%s): %w", item.ID, err)
	}

	name := item.Filename
	if name == "" {
		name = domain.DefaultFilename
	}
	dst := JoinPath(e.dir, name)
	contentType := mimetype.Detect(data).String()

	if err := e.writer.Write(ctx, dst, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました (%s): %w", dst, err)
	}
	slog.InfoContext(ctx, "画像を保存しました", "path", dst, "content_type", contentType, "bytes", len(data))
	return dst, nil
}

// ExportAll はアイテムを並列に保存し、保存先のパスを入力と同じ順序で返します。
// 1件でも失敗した場合は残りをキャンセルし、最初のエラーを返します。
func (e *Exporter) ExportAll(ctx context.Context, items []domain.GalleryItem) ([]string, error) {
	paths := make([]string, len(items))
	var saved atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	for i, item := range items {
		eg.Go(func() error {
			p, err := e.Export(egCtx, item)
			if err != nil {
				return err
			}
			paths[i] = p
			saved.Add(1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("一括保存に失敗しました (%d/%d 件保存済み): %w", saved.Load(), len(items), err)
	}
	return paths, nil
}

// JoinPath はローカルパスと gs:// URI の両方を壊さずに結合します。
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + strings.TrimPrefix(name, "/")
}
