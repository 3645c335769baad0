package preview

import (
	"context"
	"io"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// InputReader はファイルを開くためのインターフェースです。
// remoteio.InputReader がこれを満たし、ローカルパスと gs:// の両方を扱えます。
type InputReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Sink はプレビュー領域の表示を更新する UI 側の窓口です。
type Sink interface {
	ShowPreview(region domain.PreviewRegion, p domain.Preview)
}
