package providers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestMockClient(t *testing.T) {
	t.Run("chat", func(t *testing.T) {
		c := NewMockClient()
		c.ResponseText = "hello world"

		result, err := c.Chat(context.Background(), &ChatRequest{
			Model:    "test-model",
			Messages: []Message{UserMessage("test")},
		})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if result.Content != "hello world" {
			t.Errorf("Content = %q, want %q", result.Content, "hello world")
		}
		if c.RequestCount() != 1 {
			t.Errorf("RequestCount = %d, want 1", c.RequestCount())
		}
		if got := c.ChatRequests(); len(got) != 1 || got[0].Model != "test-model" {
			t.Errorf("ChatRequests = %+v", got)
		}
	})

	t.Run("configured error", func(t *testing.T) {
		c := NewMockClient()
		c.Err = &AuthError{StatusCode: 401}

		_, err := c.Chat(context.Background(), &ChatRequest{Messages: []Message{UserMessage("x")}})
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
	})

	t.Run("fail after", func(t *testing.T) {
		c := NewMockClient()
		c.FailAfter = 1

		if _, err := c.Embed(context.Background(), &EmbeddingRequest{Input: "a"}); err != nil {
			t.Fatalf("first request failed: %v", err)
		}
		if _, err := c.Embed(context.Background(), &EmbeddingRequest{Input: "b"}); err == nil {
			t.Fatal("expected second request to fail")
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		c := NewMockClient()
		c.Latency = time.Second

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := c.Chat(ctx, &ChatRequest{Messages: []Message{UserMessage("x")}}); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("embed is deterministic", func(t *testing.T) {
		c := NewMockClient()
		a, _ := c.Embed(context.Background(), &EmbeddingRequest{Input: "same"})
		b, _ := c.Embed(context.Background(), &EmbeddingRequest{Input: "same"})
		if len(a.Vector) == 0 || len(a.Vector) != len(b.Vector) {
			t.Fatalf("unexpected vectors %v %v", a.Vector, b.Vector)
		}
		for i := range a.Vector {
			if a.Vector[i] != b.Vector[i] {
				t.Fatalf("vectors differ at %d", i)
			}
		}
	})
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name    string
		msgs    []Message
		wantErr bool
	}{
		{"user only", []Message{UserMessage("hi")}, false},
		{"system then user", []Message{SystemMessage("s"), UserMessage("u")}, false},
		{"two leading system", []Message{SystemMessage("a"), SystemMessage("b"), UserMessage("u")}, false},
		{"assistant turn", []Message{SystemMessage("s"), UserMessage("u"), AssistantMessage("a"), UserMessage("u2")}, false},
		{"empty", nil, true},
		{"system after user", []Message{UserMessage("u"), SystemMessage("s")}, true},
		{"unknown role", []Message{{Role: "tool", Content: "x"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConversation(tt.msgs...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewConversation() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"0.5", 500 * time.Millisecond},
		{"-1", 0},
		{"soon", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.in); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	future := time.Now().Add(10 * time.Second).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 0 || got > 10*time.Second {
		t.Errorf("parseRetryAfter(date) = %v", got)
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("full bucket does not block", func(t *testing.T) {
		r := NewRateLimiter(3)
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		for i := 0; i < 3; i++ {
			if err := r.Wait(ctx); err != nil {
				t.Fatalf("Wait() %d error = %v", i, err)
			}
		}
		if st := r.Status(); st.TotalConsumed != 3 {
			t.Fatalf("TotalConsumed = %d", st.TotalConsumed)
		}
	})

	t.Run("empty bucket respects context", func(t *testing.T) {
		r := NewRateLimiter(1)
		if err := r.Wait(context.Background()); err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := r.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
	})

	t.Run("record 429 drains", func(t *testing.T) {
		r := NewRateLimiter(60)
		r.Record429(2 * time.Second)
		st := r.Status()
		if st.TokensAvailable != 0 {
			t.Fatalf("TokensAvailable = %d", st.TokensAvailable)
		}
		if st.Last429Time.IsZero() {
			t.Fatal("expected Last429Time to be set")
		}
	})
}
