package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/achartier/docintel/internal/infrastructure/llm"
)

func TestCompleteSendsChatMessagesAndReadsUsage(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  {\"document_type\":\"invoice\"}  "}}],"usage":{"total_tokens":123}}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, APIKey: "sk-test", Model: "gpt-4o-mini"})
	completion, err := client.Complete(context.Background(), llm.Request{
		SystemPrompt: "You classify documents.",
		UserText:     "Invoice INV-1",
		Temperature:  0.1,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completion.Text != `{"document_type":"invoice"}` {
		t.Fatalf("text = %q", completion.Text)
	}
	if completion.TokensUsed != 123 {
		t.Fatalf("tokens = %d", completion.TokensUsed)
	}

	if captured["model"] != "gpt-4o-mini" {
		t.Fatalf("model = %v", captured["model"])
	}
	messages, _ := captured["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want system+user", len(messages))
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "You classify documents." {
		t.Fatalf("system message = %v", first)
	}
}

func TestCompleteReturnsStatusErrorWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Model: "m"})
	_, err := client.Complete(context.Background(), llm.Request{UserText: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected HTTPStatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status code = %d", statusErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestCompleteFailsOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[],"usage":{"total_tokens":0}}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Model: "m"})
	_, err := client.Complete(context.Background(), llm.Request{UserText: "x"})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("expected no choices error, got %v", err)
	}
}

func TestClassifyErrorRetryDecisions(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
		record    bool
	}{
		{"server error", &HTTPStatusError{StatusCode: http.StatusBadGateway}, true, true},
		{"rate limited", &HTTPStatusError{StatusCode: http.StatusTooManyRequests}, true, true},
		{"bad request", &HTTPStatusError{StatusCode: http.StatusBadRequest}, false, false},
		{"cancellation", context.Canceled, false, false},
		{"unknown", errors.New("boom"), false, true},
	}
	for _, tc := range cases {
		class := ClassifyError(tc.err)
		if class.Retryable != tc.retryable || class.RecordFailure != tc.record {
			t.Fatalf("%s: classification = %+v, want retryable=%v record=%v",
				tc.name, class, tc.retryable, tc.record)
		}
	}
}
