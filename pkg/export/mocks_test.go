package export

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// --- Mocks ---

type mockWriter struct {
	mu      sync.Mutex
	files   map[string][]byte
	types   map[string]string
	failFor string
}

func newMockWriter() *mockWriter {
	return &mockWriter{files: map[string][]byte{}, types: map[string]string{}}
}

func (m *mockWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	if path == m.failFor {
		return fmt.Errorf("permission denied")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	m.types[path] = contentType
	return nil
}

type mockImages struct {
	data map[string][]byte
}

func (m *mockImages) Fetch(ctx context.Context, ref string) ([]byte, error) {
	d, ok := m.data[ref]
	if !ok {
		return nil, fmt.Errorf("not found: %s", ref)
	}
	return d, nil
}
