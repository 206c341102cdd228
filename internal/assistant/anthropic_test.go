package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicComplete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("api key header = %q", r.Header.Get("X-Api-Key"))
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "Check with your pharmacist."}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	a := NewAnthropic(AnthropicConfig{APIKey: "test-key", Model: "claude-test", BaseURL: srv.URL})
	c, err := a.Complete(context.Background(), Request{
		System: Preamble,
		Turns:  []Turn{{Role: RoleUser, Text: "Can I take ibuprofen?"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if c.Text != "Check with your pharmacist." || c.Provider != "anthropic" || c.Model != "claude-test" {
		t.Errorf("completion = %+v", c)
	}
	if body["model"] != "claude-test" || body["max_tokens"] != float64(1024) || body["temperature"] != 0.7 {
		t.Errorf("request body = %v", body)
	}
	if _, ok := body["system"]; !ok {
		t.Error("system prompt missing from request")
	}
}

func TestAnthropicAPIError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	}))
	defer srv.Close()

	a := NewAnthropic(AnthropicConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := a.Complete(context.Background(), Request{Turns: []Turn{{Role: RoleUser, Text: "q"}}})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("got %v, want *APIError with 500", err)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want exactly 1 (no retries)", calls)
	}
}
