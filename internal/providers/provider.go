// Package providers sends prompts to a hosted model endpoint.
//
// Every call is a single blocking request. Nothing here retries: failures
// come back as typed errors (see errors.go) and the caller decides.
package providers

import (
	"context"
	"encoding/json"
	"time"
)

// LLMClient is the interface for chat completion requests.
type LLMClient interface {
	// Chat sends one chat completion request and waits for the response.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// Name returns the client identifier (e.g., "openai").
	Name() string
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResult, error)
}

// ChatRequest is a request to an LLM.
type ChatRequest struct {
	// Required
	Messages []Message `json:"messages"`

	// Model selection (uses client default if empty)
	Model string `json:"model,omitempty"`

	// Generation parameters. A nil Temperature leaves the endpoint default.
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`

	// Timeout bounds this request on top of the client's HTTP timeout.
	Timeout time.Duration `json:"-"`

	// Request tracking (generated if empty)
	RequestID string `json:"-"`
}

// ChatResult is the response to a chat request.
type ChatResult struct {
	// Response content
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`

	// Raw is the response body as the endpoint sent it.
	Raw json.RawMessage `json:"raw,omitempty"`

	// Token counts
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	ExecutionTime time.Duration `json:"execution_time"`

	// Provider info
	Provider   string `json:"provider"`
	ModelUsed  string `json:"model_used"`
	ResponseID string `json:"response_id,omitempty"`

	// Request tracking
	RequestID string `json:"request_id"`
}

// EmbeddingRequest asks for the embedding of one text.
type EmbeddingRequest struct {
	Input     string `json:"input"`
	Model     string `json:"model,omitempty"`
	RequestID string `json:"-"`
}

// EmbeddingResult is the vector for one text.
type EmbeddingResult struct {
	Vector        []float64     `json:"vector"`
	PromptTokens  int           `json:"prompt_tokens"`
	ModelUsed     string        `json:"model_used"`
	ExecutionTime time.Duration `json:"execution_time"`
	RequestID     string        `json:"request_id"`
}

// Float returns a pointer to v, for ChatRequest.Temperature.
func Float(v float64) *float64 {
	return &v
}
