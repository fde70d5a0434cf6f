package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/llm"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	}, zap.NewNop())

	return srv, client
}

func TestClient_CompleteWithSystem(t *testing.T) {
	t.Run("returns content on success", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected auth header %q", auth)
			}
			w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
		})

		got, err := client.CompleteWithSystem(context.Background(), "sys", "prompt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "hello" {
			t.Errorf("CompleteWithSystem() = %q, expected %q", got, "hello")
		}
	})

	t.Run("maps 401 to ErrAuthFailed", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.CompleteWithSystem(context.Background(), "sys", "prompt")
		if !errors.Is(err, llm.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("maps 429 to ErrRateLimit", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.CompleteWithSystem(context.Background(), "sys", "prompt")
		if !errors.Is(err, llm.ErrRateLimit) {
			t.Errorf("expected ErrRateLimit, got %v", err)
		}
	})

	t.Run("surfaces API error body", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":{"message":"model offline","code":"502"}}`))
		})

		_, err := client.CompleteWithSystem(context.Background(), "sys", "prompt")
		if !errors.Is(err, llm.ErrRequestFailed) {
			t.Errorf("expected ErrRequestFailed, got %v", err)
		}
	})

	t.Run("empty choices is ErrEmptyResponse", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		})

		_, err := client.CompleteWithSystem(context.Background(), "sys", "prompt")
		if !errors.Is(err, llm.ErrEmptyResponse) {
			t.Errorf("expected ErrEmptyResponse, got %v", err)
		}
	})
}

func TestClient_CompleteWithImages(t *testing.T) {
	var captured llm.ChatRequest

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("request body is not valid JSON: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"scored"}}]}`))
	})

	urls := []string{"https://img.test/a.png", "https://img.test/b.png"}
	got, err := client.CompleteWithImages(context.Background(), "sys", "compare", urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "scored" {
		t.Errorf("CompleteWithImages() = %q, expected %q", got, "scored")
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(captured.Messages))
	}

	// user message должен содержать текст + 2 картинки
	parts, ok := captured.Messages[1].Content.([]any)
	if !ok {
		t.Fatalf("user content is %T, expected array", captured.Messages[1].Content)
	}
	if len(parts) != 3 {
		t.Errorf("user content has %d parts, expected 3 (text + 2 images)", len(parts))
	}
}
