package generator

import (
	"context"
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// --- Mocks ---

type mockTransport struct {
	mu       sync.Mutex
	calls    int
	requests []domain.GenerationRequest
	// started は呼び出し開始時に通知される（nil なら通知しない）
	started chan struct{}
	// release が設定されている場合、閉じられるまで応答を返さない
	release      chan struct{}
	generateFunc func(ctx context.Context, req domain.GenerationRequest) ([]string, error)
}

func (m *mockTransport) Generate(ctx context.Context, req domain.GenerationRequest) ([]string, error) {
	m.mu.Lock()
	m.calls++
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockTransport) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockModes struct{ mode domain.GenerationMode }

func (m *mockModes) Current() domain.GenerationMode { return m.mode }

type mockForm struct{ values domain.FormValues }

func (m *mockForm) Values() domain.FormValues { return m.values }

type mockControl struct {
	mu      sync.Mutex
	label   string
	enabled bool
	history []string
}

func newMockControl() *mockControl {
	return &mockControl{label: "画像を生成 ✨", enabled: true}
}

func (m *mockControl) SubmitLabel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.label
}

func (m *mockControl) SetSubmitEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

func (m *mockControl) SetSubmitLabel(label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.label = label
	m.history = append(m.history, label)
}

func (m *mockControl) state() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.label, m.enabled
}

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockNotifier) Alert(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}
