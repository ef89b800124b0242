package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

const DefaultClaudeModel = "claude-3-5-sonnet-latest"

// LangChain generates text with any langchaingo model
type LangChain struct {
	model     llms.Model
	maxTokens int
}

// NewAnthropic creates a Claude backend through langchaingo
func NewAnthropic(apiKey, model string) (*LangChain, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm: claude api key is required")
	}
	if model == "" {
		model = DefaultClaudeModel
	}

	m, err := anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("llm: create anthropic client: %w", err)
	}
	return &LangChain{model: m, maxTokens: 1024}, nil
}

// Generate sends a single-turn prompt
func (l *LangChain) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, l.model, prompt, llms.WithMaxTokens(l.maxTokens))
	if err != nil {
		return "", fmt.Errorf("llm: anthropic generate: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// Close is a no-op; langchaingo clients hold no long-lived resources
func (l *LangChain) Close() error { return nil }
