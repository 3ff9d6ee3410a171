package llm

import (
	"context"
	"fmt"

	"aiupstart.com/shadergen/internal/config"
)

// LLMClient defines the interface for interacting with different LLM providers.
// Generate returns the raw text of the model's reply.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateFunc is an adapter to allow using ordinary functions as clients.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

func (f GenerateFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NewClient builds the client for cfg.Provider.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
