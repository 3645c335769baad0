package analyzer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// --- Mocks ---

type mockTransport struct {
	mu      sync.Mutex
	calls   int
	apiKeys []string
	images  [][]byte
	// started は呼び出し開始時に通知される（nil なら通知しない）
	started chan struct{}
	// release が設定されている場合、閉じられるまで応答を返さない
	release     chan struct{}
	analyzeFunc func(ctx context.Context, apiKey string, image []byte) (domain.AnalysisResult, error)
}

func (m *mockTransport) Analyze(ctx context.Context, apiKey string, image []byte) (domain.AnalysisResult, error) {
	m.mu.Lock()
	m.calls++
	m.apiKeys = append(m.apiKeys, apiKey)
	m.images = append(m.images, image)
	m.mu.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, apiKey, image)
	}
	return domain.AnalysisResult{FingerCount: "5", RealismScore: 8, Lighting: "soft"}, nil
}

func (m *mockTransport) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockImages struct {
	data []byte
	err  error
	refs []string
	mu   sync.Mutex
}

func (m *mockImages) Fetch(ctx context.Context, ref string) ([]byte, error) {
	m.mu.Lock()
	m.refs = append(m.refs, ref)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

type mockCredentials struct{ key string }

func (m *mockCredentials) APIKey() string { return m.key }

type mockNotifier struct {
	mu     sync.Mutex
	alerts []string
}

func (m *mockNotifier) Alert(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, message)
}

func (m *mockNotifier) messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.alerts...)
}

// --- Helpers ---

func tinyPNG() []byte {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
