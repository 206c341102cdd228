// Package assistant talks to hosted language models on behalf of the chat
// and ask endpoints.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Preamble is the system instruction sent with every completion.
const Preamble = "You are MedGPT, a medical AI assistant specializing in medications, drug interactions, " +
	"and health information. Respond to the following query with accurate medical information. " +
	"If uncertain, state the limitations of your knowledge. " +
	"For serious medical concerns, always advise consulting a healthcare professional."

// Generation parameters shared by all providers.
const (
	Temperature     = 0.7
	TopK            = 40
	TopP            = 0.95
	MaxOutputTokens = 1024
)

var (
	// ErrNoProvider is returned when no configured provider is available.
	ErrNoProvider = errors.New("no assistant provider configured")
	// ErrUnexpectedResponse is returned when a reply carries no text.
	ErrUnexpectedResponse = errors.New("unexpected response format from assistant provider")
	// ErrBlocked is returned when the provider refused the prompt.
	ErrBlocked = errors.New("prompt was blocked by the assistant provider")
	// ErrEmptyPrompt is returned when the request does not end with a
	// non-blank user turn.
	ErrEmptyPrompt = errors.New("prompt must end with a non-empty user message")
)

// APIError is a non-2xx response from a provider's HTTP API.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
}

// Role of a conversation turn as understood by providers.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the conversation sent to a provider.
type Turn struct {
	Role Role
	Text string
}

// Request is a provider-neutral completion request. Turns alternate and
// end with a user turn.
type Request struct {
	System string
	Turns  []Turn
}

// Completion is a provider reply.
type Completion struct {
	Text     string
	Provider string
	Model    string
}

// Provider produces completions from a hosted model.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (*Completion, error)
}

func validate(req Request) error {
	if len(req.Turns) == 0 {
		return ErrEmptyPrompt
	}
	last := req.Turns[len(req.Turns)-1]
	if last.Role != RoleUser || strings.TrimSpace(last.Text) == "" {
		return ErrEmptyPrompt
	}
	return nil
}
