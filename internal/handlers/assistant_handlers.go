package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"medgpt-backend/internal/assistant"
	"medgpt-backend/internal/models"
	"medgpt-backend/pkg/httputil"
)

// AssistantService answers single-turn questions.
type AssistantService interface {
	Ask(ctx context.Context, question string) (*assistant.Answer, error)
}

type AssistantHandlers struct {
	assistant AssistantService
}

func NewAssistantHandlers(svc AssistantService) *AssistantHandlers {
	return &AssistantHandlers{assistant: svc}
}

// assistantStatus maps an Ask failure to a status code and client message.
func assistantStatus(err error) (int, string) {
	switch {
	case errors.Is(err, assistant.ErrEmptyPrompt):
		return http.StatusBadRequest, "message cannot be empty"
	case errors.Is(err, assistant.ErrNoProvider):
		return http.StatusBadGateway, "The assistant is not configured"
	default:
		return http.StatusBadGateway, "The assistant is unavailable right now"
	}
}

// HandleAsk handles POST /v1/assistant/ask.
func (h *AssistantHandlers) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.assistant.Ask(r.Context(), req.Message)
	if err != nil {
		log.Printf("WARN [AssistantHandlers] Ask failed: %v", err)
		status, msg := assistantStatus(err)
		httputil.RespondError(w, status, msg)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.AskResponse{
		Response:     answer.Text,
		ResponseHTML: assistant.RenderHTML(answer.Text),
		Provider:     answer.Provider,
		Cached:       answer.Cached,
	})
}
