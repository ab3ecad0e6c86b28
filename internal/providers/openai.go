package providers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName = "openai"

	OpenAIDefaultChatModel      = "gpt-4o-mini"
	OpenAIDefaultEmbeddingModel = "text-embedding-3-small"
	OpenAIDefaultTimeout        = 120 * time.Second

	// clientRequestIDHeader is echoed in OpenAI's logs for support requests.
	clientRequestIDHeader = "X-Client-Request-Id"
)

// OpenAIConfig holds configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration // HTTP timeout
	BaseURL        string        // Optional (tests, compatible endpoints)
	HTTPClient     *http.Client  // Optional (tests)
	Logger         *slog.Logger
}

// OpenAIClient implements LLMClient and Embedder using the official OpenAI SDK.
// SDK retries are disabled.
type OpenAIClient struct {
	apiKey         string
	chatModel      string
	embeddingModel string
	client         openai.Client
	logger         *slog.Logger
}

// NewOpenAIClient creates a new OpenAI client. A missing API key is not an
// error here; it is reported by the first request.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.ChatModel == "" {
		cfg.ChatModel = OpenAIDefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = OpenAIDefaultEmbeddingModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = OpenAIDefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		apiKey:         strings.TrimSpace(cfg.APIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		client:         openai.NewClient(opts...),
		logger:         cfg.Logger,
	}
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// ChatModel returns the configured default chat model.
func (c *OpenAIClient) ChatModel() string {
	return c.chatModel
}

// EmbeddingModel returns the configured default embedding model.
func (c *OpenAIClient) EmbeddingModel() string {
	return c.embeddingModel
}

func (c *OpenAIClient) checkCredential() error {
	if c.apiKey == "" {
		return &ConfigError{Field: "OPENAI_API_KEY", Message: "API key is not set"}
	}
	return nil
}

// Chat sends one chat completion request.
func (c *OpenAIClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	if err := c.checkCredential(); err != nil {
		return nil, err
	}
	if err := ValidateOrder(req.Messages); err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = c.chatModel
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toOpenAIMessages(req.Messages),
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	c.logger.Debug("sending chat request", "model", model, "messages", len(req.Messages), "request_id", requestID)

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params, option.WithHeader(clientRequestIDHeader, requestID))
	if err != nil {
		return nil, mapOpenAIError("chat completion", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, &TransportError{Op: "chat completion", Err: errors.New("response contained no choices")}
	}

	choice := resp.Choices[0]
	result := &ChatResult{
		Content:          choice.Message.Content,
		FinishReason:     string(choice.FinishReason),
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
		ExecutionTime:    time.Since(start),
		Provider:         OpenAIName,
		ModelUsed:        resp.Model,
		ResponseID:       resp.ID,
		RequestID:        requestID,
	}
	if raw := resp.RawJSON(); json.Valid([]byte(raw)) {
		result.Raw = json.RawMessage(raw)
	}

	c.logger.Debug("chat response received",
		"model", result.ModelUsed,
		"finish_reason", result.FinishReason,
		"total_tokens", result.TotalTokens,
		"elapsed", result.ExecutionTime,
	)
	return result, nil
}

// Embed returns the embedding vector of one text.
func (c *OpenAIClient) Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResult, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	if err := c.checkCredential(); err != nil {
		return nil, err
	}
	if req.Input == "" {
		return nil, errors.New("input is required")
	}

	model := req.Model
	if model == "" {
		model = c.embeddingModel
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	start := time.Now()
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(req.Input)},
		Model: openai.EmbeddingModel(model),
	}, option.WithHeader(clientRequestIDHeader, requestID))
	if err != nil {
		return nil, mapOpenAIError("embedding", err)
	}
	if resp == nil || len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, &TransportError{Op: "embedding", Err: errors.New("response contained no embedding")}
	}

	return &EmbeddingResult{
		Vector:        resp.Data[0].Embedding,
		PromptTokens:  int(resp.Usage.PromptTokens),
		ModelUsed:     resp.Model,
		ExecutionTime: time.Since(start),
		RequestID:     requestID,
	}, nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

var _ LLMClient = (*OpenAIClient)(nil)
var _ Embedder = (*OpenAIClient)(nil)
