package preview

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/shouni/gesture-gen-kit/pkg/imgutil"
)

// 領域ごとの既定プレースホルダー文言です。
var defaultPlaceholders = map[domain.PreviewRegion]string{
	domain.RegionSeed:      "クリックまたはドラッグでアップロード\n推奨サイズ: 320x180 (グレースケール)",
	domain.RegionReference: "真似したいジェスチャー画像をアップロード",
}

// Placeholder は領域に対応する既定の文言を返します。
func Placeholder(region domain.PreviewRegion) string {
	if text, ok := defaultPlaceholders[region]; ok {
		return text
	}
	return defaultPlaceholders[domain.RegionReference]
}

// Loader は選択されたファイルを data URL のプレビューに変換します。
type Loader struct {
	reader InputReader
	sink   Sink

	mu  sync.Mutex
	seq map[domain.PreviewRegion]uint64
}

// NewLoader は依存関係を注入して Loader を初期化します。
// 選択のたびにファイルを読み直すため、読み込み結果はキャッシュしません。
func NewLoader(reader InputReader, sink Sink) (*Loader, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	return &Loader{
		reader: reader,
		sink:   sink,
		seq:    make(map[domain.PreviewRegion]uint64),
	}, nil
}

// Load はファイルを読み込んでプレビューを表示し、読み込んだ内容を返します。
// path が空の場合はプレースホルダーに戻して nil を返します。
// 読み込みに失敗した場合もプレースホルダーに戻し、古いプレビューは残しません。
func (l *Loader) Load(ctx context.Context, region domain.PreviewRegion, path string) (*domain.ImageFile, error) {
	if path == "" {
		l.Reset(region)
		return nil, nil
	}

	token := l.next(region)

	file, dataURL, err := l.read(ctx, path)
	if err != nil {
		slog.WarnContext(ctx, "プレビュー用ファイルの読み込みに失敗しました", "region", region, "path", path, "error", err)
		if l.current(region, token) {
			l.sink.ShowPreview(region, domain.Preview{Placeholder: Placeholder(region)})
		}
		return nil, fmt.Errorf("%s の読み込みに失敗しました: %w", path, err)
	}

	// 読み込み中に Reset や別の Load があった場合は表示を上書きしない
	if !l.current(region, token) {
		slog.DebugContext(ctx, "古いプレビュー結果を破棄しました", "region", region, "path", path)
		return file, nil
	}
	l.sink.ShowPreview(region, domain.Preview{DataURL: dataURL})
	return file, nil
}

// Reset は領域をプレースホルダーに戻します。処理中の Load の結果は表示されなくなります。
func (l *Loader) Reset(region domain.PreviewRegion) {
	l.next(region)
	l.sink.ShowPreview(region, domain.Preview{Placeholder: Placeholder(region)})
}

func (l *Loader) read(ctx context.Context, path string) (*domain.ImageFile, string, error) {
	rc, err := l.reader.Open(ctx, path)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", err
	}

	mt := mimetype.Detect(data)
	dataURL := imgutil.EncodeDataURL(mt.String(), data)
	file := domain.ImageFile{Name: filepath.Base(path), Data: data}
	return &file, dataURL, nil
}

func (l *Loader) next(region domain.PreviewRegion) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq[region]++
	return l.seq[region]
}

func (l *Loader) current(region domain.PreviewRegion, token uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq[region] == token
}
