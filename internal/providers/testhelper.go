package providers

import (
	"os"
)

// TestConfig holds provider settings loaded from environment variables,
// so live tests use the same credential as the CLI.
type TestConfig struct {
	OpenAIAPIKey string
	BaseURL      string
}

// LoadTestConfig loads provider settings from environment variables.
func LoadTestConfig() TestConfig {
	return TestConfig{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		BaseURL:      os.Getenv("OPENAI_BASE_URL"),
	}
}

// HasOpenAI returns true if an OpenAI API key is configured.
func (c TestConfig) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
