package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"aiupstart.com/shadergen/internal/config"
	"aiupstart.com/shadergen/internal/metrics"
	"aiupstart.com/shadergen/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/genai"
)

// GeminiClient talks to the Gemini API through the genai SDK.
type GeminiClient struct {
	client    *genai.Client
	model     string
	genConfig *genai.GenerateContentConfig
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key required")
	}
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeoutFor(cfg)},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(cfg.Temperature),
	}
	if cfg.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(cfg.MaxTokens)
	}
	if cfg.JSONMode {
		genConfig.ResponseMIMEType = "application/json"
	}
	return &GeminiClient{client: client, model: cfg.Model, genConfig: genConfig}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	utils.Logger.Debug().Str("module", "llm").Str("model", c.model).Int("prompt_len", len(prompt)).Msg("Generating response with Gemini")

	timer := prometheus.NewTimer(metrics.LLMLatencySeconds.WithLabelValues(config.ProviderGemini))
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.genConfig)
	timer.ObserveDuration()
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(config.ProviderGemini, "error").Inc()
		utils.Logger.Error().Err(err).Str("module", "llm").Msg("Failed to generate response from Gemini")
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	metrics.LLMRequestsTotal.WithLabelValues(config.ProviderGemini, "ok").Inc()
	if u := resp.UsageMetadata; u != nil {
		metrics.LLMTokensTotal.WithLabelValues(config.ProviderGemini, "prompt").Add(float64(u.PromptTokenCount))
		metrics.LLMTokensTotal.WithLabelValues(config.ProviderGemini, "completion").Add(float64(u.CandidatesTokenCount))
		metrics.LLMTokensTotal.WithLabelValues(config.ProviderGemini, "total").Add(float64(u.TotalTokenCount))
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates returned from Gemini API")
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty content (finish_reason=%q)", resp.Candidates[0].FinishReason)
	}
	return text, nil
}
