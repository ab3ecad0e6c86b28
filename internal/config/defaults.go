package config

// Entry describes one config key and its default.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every config key with its default value.
// Keys use viper's dotted form.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{
			Key:         "api_key",
			Value:       d.APIKey,
			Description: "OpenAI API key (uses environment variable, loaded from .env)",
		},
		{
			Key:         "base_url",
			Value:       d.BaseURL,
			Description: "OpenAI compatible base URL; empty uses https://api.openai.com/v1",
		},
		{
			Key:         "chat_model",
			Value:       d.ChatModel,
			Description: "Model used for chat completions",
		},
		{
			Key:         "embedding_model",
			Value:       d.EmbeddingModel,
			Description: "Model used for embeddings",
		},
		{
			Key:         "temperature",
			Value:       d.Temperature,
			Description: "Sampling temperature (0-2)",
		},
		{
			Key:         "max_tokens",
			Value:       d.MaxTokens,
			Description: "Maximum completion tokens; 0 leaves the endpoint default",
		},
		{
			Key:         "request_timeout",
			Value:       d.RequestTimeoutSeconds,
			Description: "HTTP timeout in seconds for each request",
		},
		{
			Key:         "embedding_rpm",
			Value:       d.EmbeddingRPM,
			Description: "Embedding requests per minute during rag vectorize",
		},
		{
			Key:         "embedding_retries",
			Value:       d.EmbeddingRetries,
			Description: "Attempts per section when rag vectorize is rate limited",
		},
		{
			Key:         "prompts.strict_delimiters",
			Value:       d.Prompts.StrictDelimiters,
			Description: "Reject values that contain their own delimiter instead of warning",
		},
		{
			Key:         "rag.top_k",
			Value:       d.RAG.TopK,
			Description: "Number of website sections put into a RAG prompt",
		},
		{
			Key:         "rag.header_levels",
			Value:       d.RAG.HeaderLevels,
			Description: "Deepest HTML heading level (h1-hN) the splitter splits on",
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}
