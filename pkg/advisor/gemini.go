package advisor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/wentf9/mesh-wizard/pkg/logger"
	"google.golang.org/genai"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
)

var ErrEmptyResponse = errors.New("advisor: empty response from model")

// GeminiProvider 通过 Gemini API 完成提示词
type GeminiProvider struct {
	cli   *genai.Client
	model string
}

// NewGeminiProvider 从环境变量(或当前目录的 .env)读取 API key
func NewGeminiProvider(ctx context.Context, model, apiKeyEnv string) (*GeminiProvider, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()
	if apiKeyEnv == "" {
		apiKeyEnv = DefaultAPIKeyEnv
	}
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set", apiKeyEnv)
	}
	if model == "" {
		model = DefaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{cli: cli, model: model}, nil
}

func (g *GeminiProvider) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	logger.With("advisor").Debug("请求模型", "model", g.model, "temperature", temperature)
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{Temperature: &temperature},
	)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
