package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalWriter はローカルファイルシステムへの Writer です。
// GCS クライアントを初期化できない環境でのフォールバックとして使われます。
type LocalWriter struct{}

// Write は親ディレクトリを作成してからファイルを書き込みます。
func (LocalWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ファイルの作成に失敗しました: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("ファイルへの書き込みに失敗しました: %w", err)
	}
	return f.Close()
}

// LocalReader はローカルファイルシステムからの読み込みです。
type LocalReader struct{}

// Open はローカルファイルを開きます。
func (LocalReader) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(path)
}
