package providers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient and Embedder for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	Err          error // Returned by every request when set
	FailAfter    int   // Fail after N requests (0 = never)
	ResponseText string

	// EmbedFunc computes vectors. The default hashes the text's bytes
	// into a small fixed-size vector.
	EmbedFunc func(text string) []float64

	// State
	requestCount atomic.Int64
	mu           sync.Mutex
	chats        []*ChatRequest
	embeds       []*EmbeddingRequest
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Chat returns ResponseText.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()
	count, err := c.begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateOrder(req.Messages); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.chats = append(c.chats, req)
	c.mu.Unlock()

	// Simulate token counting
	promptTokens := 0
	for _, m := range req.Messages {
		promptTokens += len(m.Content) / 4 // Rough estimate
	}
	completionTokens := len(c.ResponseText) / 4

	return &ChatResult{
		Content:          c.ResponseText,
		FinishReason:     "stop",
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		ExecutionTime:    time.Since(start),
		Provider:         MockClientName,
		ModelUsed:        req.Model,
		RequestID:        fmt.Sprintf("mock-%d", count),
	}, nil
}

// Embed returns EmbedFunc(req.Input).
func (c *MockClient) Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResult, error) {
	start := time.Now()
	count, err := c.begin(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.embeds = append(c.embeds, req)
	c.mu.Unlock()

	embed := c.EmbedFunc
	if embed == nil {
		embed = byteHistogram
	}
	return &EmbeddingResult{
		Vector:        embed(req.Input),
		PromptTokens:  len(req.Input) / 4,
		ModelUsed:     req.Model,
		ExecutionTime: time.Since(start),
		RequestID:     fmt.Sprintf("mock-%d", count),
	}, nil
}

func (c *MockClient) begin(ctx context.Context) (int64, error) {
	count := c.requestCount.Add(1)

	if c.Err != nil {
		return count, c.Err
	}
	if c.FailAfter > 0 && int(count) > c.FailAfter {
		return count, fmt.Errorf("mock client failed after %d requests", c.FailAfter)
	}

	// Simulate latency
	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return count, ctx.Err()
		}
	}
	return count, nil
}

// RequestCount returns the number of requests made.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// ChatRequests returns the chat requests received so far.
func (c *MockClient) ChatRequests() []*ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*ChatRequest(nil), c.chats...)
}

// EmbeddingRequests returns the embedding requests received so far.
func (c *MockClient) EmbeddingRequests() []*EmbeddingRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*EmbeddingRequest(nil), c.embeds...)
}

// Reset resets the request counter and recorded requests.
func (c *MockClient) Reset() {
	c.requestCount.Store(0)
	c.mu.Lock()
	c.chats = nil
	c.embeds = nil
	c.mu.Unlock()
}

func byteHistogram(text string) []float64 {
	v := make([]float64, 8)
	for i := 0; i < len(text); i++ {
		v[int(text[i])%len(v)]++
	}
	return v
}

// Verify interface
var _ LLMClient = (*MockClient)(nil)
var _ Embedder = (*MockClient)(nil)
