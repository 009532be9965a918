package advisor

import (
	"context"
	"errors"
	"sync"
)

// 建议类请求统一使用的温度
const DefaultTemperature float32 = 0.1

var ErrNoProvider = errors.New("advisor: provider not configured")

// Provider 是外部大模型的最小抽象,由调用方显式传入
type Provider interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// MockProvider 返回固定内容并记录收到的提示词,用于测试和离线运行
type MockProvider struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

func NewMockProvider(response string) *MockProvider {
	return &MockProvider{Response: response}
}

func (m *MockProvider) Complete(_ context.Context, prompt string, _ float32) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Prompts 返回已收到的提示词
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func complete(ctx context.Context, p Provider, prompt string) (string, error) {
	if p == nil {
		return "", ErrNoProvider
	}
	return p.Complete(ctx, prompt, DefaultTemperature)
}
