package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicName = "anthropic"

// AnthropicConfig configures the Anthropic provider.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

// Anthropic calls the Messages API through the official SDK.
type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
	}
}

func (a *Anthropic) Name() string { return anthropicName }

func (a *Anthropic) Complete(ctx context.Context, req Request) (*Completion, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	messages := make([]anthropic.MessageParam, 0, len(req.Turns))
	for _, t := range req.Turns {
		if t.Role == RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Text)))
		} else {
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Text)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   MaxOutputTokens,
		Messages:    messages,
		Temperature: anthropic.Float(Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, &APIError{Provider: anthropicName, StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON()}
		}
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	if resp.StopReason == anthropic.StopReasonRefusal {
		return nil, ErrBlocked
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, ErrUnexpectedResponse
	}

	return &Completion{
		Text:     sb.String(),
		Provider: anthropicName,
		Model:    string(resp.Model),
	}, nil
}
