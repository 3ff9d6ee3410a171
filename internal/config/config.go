package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"aiupstart.com/shadergen/internal/utils"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	PromptStyleJSON     = "json"
	PromptStyleSections = "sections"
)

var defaultModels = map[string]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGemini: "gemini-2.5-flash",
}

type ServerConfig struct {
	Addr                   string `yaml:"addr" json:"addr"`
	ReadTimeoutSeconds     int    `yaml:"read_timeout_seconds" json:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `yaml:"write_timeout_seconds" json:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`
}

type LLMConfig struct {
	Provider       string  `yaml:"provider" json:"provider"`
	APIKey         string  `yaml:"api_key" json:"-"`
	BaseURL        string  `yaml:"base_url" json:"base_url"`
	Model          string  `yaml:"model" json:"model"`
	Temperature    float32 `yaml:"temperature" json:"temperature"`
	MaxTokens      int     `yaml:"max_tokens" json:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	// JSONMode asks the provider to constrain output to a JSON object.
	JSONMode bool `yaml:"json_mode" json:"json_mode"`
}

type PromptConfig struct {
	Style string `yaml:"style" json:"style"`
}

type LogConfig struct {
	Level   string `yaml:"level" json:"level"`
	File    string `yaml:"file" json:"file"`
	Console bool   `yaml:"console" json:"console"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	LLM     LLMConfig     `yaml:"llm" json:"llm"`
	Prompt  PromptConfig  `yaml:"prompt" json:"prompt"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// Default returns a configuration that runs against OpenAI with JSON prompts.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                   ":8080",
			ReadTimeoutSeconds:     15,
			WriteTimeoutSeconds:    120,
			ShutdownTimeoutSeconds: 10,
		},
		LLM: LLMConfig{
			Provider:       ProviderOpenAI,
			Temperature:    0.7,
			MaxTokens:      2048,
			TimeoutSeconds: 90,
			JSONMode:       true,
		},
		Prompt:  PromptConfig{Style: PromptStyleJSON},
		Log:     LogConfig{Level: "info", Console: true},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Load reads path on top of Default and then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	cfg.normalize()
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. SHADERGEN_* variables
// always win; provider API keys only fill an empty api_key.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SHADERGEN_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("SHADERGEN_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("SHADERGEN_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SHADERGEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SHADERGEN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SHADERGEN_PROMPT_STYLE"); v != "" {
		c.Prompt.Style = v
	}

	if c.LLM.APIKey != "" {
		return
	}
	switch strings.ToLower(c.LLM.Provider) {
	case ProviderOpenAI:
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case ProviderGemini:
		c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		if c.LLM.APIKey == "" {
			c.LLM.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}
}

func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModels[c.LLM.Provider]
	}
	c.Prompt.Style = strings.ToLower(strings.TrimSpace(c.Prompt.Style))
	if c.Prompt.Style == PromptStyleSections {
		// Headed plain text cannot satisfy a JSON-only response format.
		c.LLM.JSONMode = false
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate logs every problem it finds and returns a single error if any.
func (c *Config) Validate() error {
	hasErr := false
	fail := func(field, msg string) {
		utils.Logger.Error().Str("module", "config").Str("field", field).Msg(msg)
		hasErr = true
	}

	if _, ok := defaultModels[c.LLM.Provider]; !ok {
		fail("llm.provider", fmt.Sprintf("unsupported provider %q (want openai or gemini)", c.LLM.Provider))
	}
	if c.LLM.APIKey == "" {
		fail("llm.api_key", "api key required (set api_key or the provider's API key env var)")
	}
	if c.LLM.Model == "" {
		fail("llm.model", "model required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		fail("llm.temperature", "temperature must be between 0 and 2")
	}
	if c.LLM.MaxTokens < 0 || c.LLM.MaxTokens > math.MaxInt32 {
		fail("llm.max_tokens", fmt.Sprintf("max_tokens must be between 0 and %d", math.MaxInt32))
	}
	if c.Prompt.Style != PromptStyleJSON && c.Prompt.Style != PromptStyleSections {
		fail("prompt.style", fmt.Sprintf("unknown prompt style %q (want json or sections)", c.Prompt.Style))
	}
	if c.Server.Addr == "" {
		fail("server.addr", "listen address required")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		fail("metrics.path", "metrics path must start with /")
	}

	if hasErr {
		return fmt.Errorf("invalid config: see above errors")
	}
	return nil
}
