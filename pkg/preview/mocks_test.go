package preview

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// mockReader はメモリ上のファイルを返す InputReader のモックです。
type mockReader struct {
	mu    sync.Mutex
	files map[string][]byte
	opens int
	// gate が設定されている場合、Open は gate が閉じられるまで待機する
	gate chan struct{}
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opens++
	data, ok := m.files[uri]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) put(uri string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[uri] = data
}

type mockSink struct {
	mu    sync.Mutex
	shown map[domain.PreviewRegion]domain.Preview
	calls int
}

func newMockSink() *mockSink {
	return &mockSink{shown: make(map[domain.PreviewRegion]domain.Preview)}
}

func (m *mockSink) ShowPreview(region domain.PreviewRegion, p domain.Preview) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown[region] = p
	m.calls++
}

func (m *mockSink) get(region domain.PreviewRegion) domain.Preview {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shown[region]
}
