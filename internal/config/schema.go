package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds promptlab configuration.
// Stored at: {workspace}/config.yaml (config.json is also read)
type Config struct {
	// APIKey supports ${ENV_VAR} syntax.
	APIKey string `mapstructure:"api_key" yaml:"api_key" json:"api_key"`

	// BaseURL of an OpenAI compatible endpoint. Empty uses the SDK default.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`

	ChatModel      string  `mapstructure:"chat_model" yaml:"chat_model" json:"chat_model"`
	EmbeddingModel string  `mapstructure:"embedding_model" yaml:"embedding_model" json:"embedding_model"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature" json:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens" json:"max_tokens"` // 0 = endpoint default

	RequestTimeoutSeconds int `mapstructure:"request_timeout" yaml:"request_timeout" json:"request_timeout"`

	// Batch embedding pacing for "rag vectorize".
	EmbeddingRPM     int  `mapstructure:"embedding_rpm" yaml:"embedding_rpm" json:"embedding_rpm"`
	EmbeddingRetries uint `mapstructure:"embedding_retries" yaml:"embedding_retries" json:"embedding_retries"`

	Prompts PromptsCfg `mapstructure:"prompts" yaml:"prompts" json:"prompts"`
	RAG     RAGCfg     `mapstructure:"rag" yaml:"rag" json:"rag"`
}

// PromptsCfg configures prompt building.
type PromptsCfg struct {
	// StrictDelimiters rejects values that contain their own delimiter.
	StrictDelimiters bool `mapstructure:"strict_delimiters" yaml:"strict_delimiters" json:"strict_delimiters"`
}

// RAGCfg configures retrieval.
type RAGCfg struct {
	TopK         int `mapstructure:"top_k" yaml:"top_k" json:"top_k"`
	HeaderLevels int `mapstructure:"header_levels" yaml:"header_levels" json:"header_levels"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIKey:                "${OPENAI_API_KEY}",
		ChatModel:             "gpt-4o-mini",
		EmbeddingModel:        "text-embedding-3-small",
		Temperature:           0.7,
		RequestTimeoutSeconds: 120,
		EmbeddingRPM:          500,
		EmbeddingRetries:      3,
		RAG: RAGCfg{
			TopK:         3,
			HeaderLevels: 4,
		},
	}
}

// ResolveAPIKey returns the API key with ${ENV_VAR} references expanded.
func (c *Config) ResolveAPIKey() string {
	return strings.TrimSpace(ResolveEnvVars(c.APIKey))
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate checks value ranges. The API key is not checked here; a missing
// key is reported when a request is made.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.ChatModel) == "":
		return &ValidationError{Key: "chat_model", Message: "must not be empty"}
	case strings.TrimSpace(c.EmbeddingModel) == "":
		return &ValidationError{Key: "embedding_model", Message: "must not be empty"}
	case c.Temperature < 0 || c.Temperature > 2:
		return &ValidationError{Key: "temperature", Message: fmt.Sprintf("%v is outside 0-2", c.Temperature)}
	case c.MaxTokens < 0:
		return &ValidationError{Key: "max_tokens", Message: "must not be negative"}
	case c.RequestTimeoutSeconds <= 0:
		return &ValidationError{Key: "request_timeout", Message: "must be positive"}
	case c.EmbeddingRPM <= 0:
		return &ValidationError{Key: "embedding_rpm", Message: "must be positive"}
	case c.EmbeddingRetries == 0:
		return &ValidationError{Key: "embedding_retries", Message: "must be at least 1"}
	case c.RAG.TopK <= 0:
		return &ValidationError{Key: "rag.top_k", Message: "must be positive"}
	case c.RAG.HeaderLevels < 1 || c.RAG.HeaderLevels > 6:
		return &ValidationError{Key: "rag.header_levels", Message: "must be between 1 and 6"}
	}
	return nil
}

// ValidationError is a config value out of range.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Key, e.Message)
}

func (e *ValidationError) Kind() string { return "configuration" }
