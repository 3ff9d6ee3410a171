package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"aiupstart.com/shadergen/internal/config"
	"aiupstart.com/shadergen/internal/metrics"
	"aiupstart.com/shadergen/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	openai "github.com/sashabaranov/go-openai"
)

const defaultTimeout = 90 * time.Second

// OpenAIClient talks to the OpenAI chat completions API or any endpoint
// compatible with it (set BaseURL).
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	jsonMode    bool
}

func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeoutFor(cfg)}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		jsonMode:    cfg.JSONMode,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	utils.Logger.Debug().Str("module", "llm").Str("model", c.model).Int("prompt_len", len(prompt)).Msg("Generating response with OpenAI")

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if c.jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	timer := prometheus.NewTimer(metrics.LLMLatencySeconds.WithLabelValues(config.ProviderOpenAI))
	resp, err := c.client.CreateChatCompletion(ctx, req)
	timer.ObserveDuration()
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(config.ProviderOpenAI, "error").Inc()
		utils.Logger.Error().Err(err).Str("module", "llm").Msg("Failed to generate response from OpenAI")
		return "", fmt.Errorf("openai api error: %w", err)
	}
	metrics.LLMRequestsTotal.WithLabelValues(config.ProviderOpenAI, "ok").Inc()
	metrics.LLMTokensTotal.WithLabelValues(config.ProviderOpenAI, "prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.LLMTokensTotal.WithLabelValues(config.ProviderOpenAI, "completion").Add(float64(resp.Usage.CompletionTokens))
	metrics.LLMTokensTotal.WithLabelValues(config.ProviderOpenAI, "total").Add(float64(resp.Usage.TotalTokens))

	if len(resp.Choices) == 0 {
		utils.Logger.Error().Str("module", "llm").Msg("No choices returned from OpenAI API")
		return "", fmt.Errorf("no choices returned from OpenAI API")
	}
	choice := resp.Choices[0]
	if choice.Message.Content == "" {
		return "", fmt.Errorf("openai: empty content (finish_reason=%q, refusal=%q)", choice.FinishReason, choice.Message.Refusal)
	}
	utils.Logger.Debug().Str("module", "llm").Int("total_tokens", resp.Usage.TotalTokens).Msg("OpenAI response received")
	return choice.Message.Content, nil
}

func timeoutFor(cfg config.LLMConfig) time.Duration {
	if cfg.TimeoutSeconds > 0 {
		return time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return defaultTimeout
}
