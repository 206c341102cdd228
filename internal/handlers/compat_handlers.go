package handlers

import (
	"log"
	"net/http"
	"strings"

	"medgpt-backend/internal/assistant"
	"medgpt-backend/internal/models"
	"medgpt-backend/internal/services"
	"medgpt-backend/pkg/httputil"

	"github.com/google/uuid"
)

// CompatHandlers serves the /api routes the web client was written
// against. They take the client's request shapes and reuse the /v1
// services.
type CompatHandlers struct {
	assistant    AssistantService
	medications  MedicationService
	interactions InteractionService
}

func NewCompatHandlers(a AssistantService, m MedicationService, i InteractionService) *CompatHandlers {
	return &CompatHandlers{assistant: a, medications: m, interactions: i}
}

// HandleChat handles POST /api/chat {message} and replies {response}.
// Failures still carry the apology in response so the client can show it.
func (h *CompatHandlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.CompatChatRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	answer, err := h.assistant.Ask(r.Context(), req.Message)
	if err != nil {
		log.Printf("WARN [CompatHandlers] Chat failed: %v", err)
		status, msg := assistantStatus(err)
		httputil.RespondJSON(w, status, models.CompatChatResponse{
			Response: services.Apology,
			Error:    msg,
		})
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.CompatChatResponse{
		Response:     answer.Text,
		ResponseHTML: assistant.RenderHTML(answer.Text),
	})
}

// HandleMedicationInfo handles POST /api/medications/info {medicationId}.
func (h *CompatHandlers) HandleMedicationInfo(w http.ResponseWriter, r *http.Request) {
	var req models.CompatMedicationInfoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	med, err := h.medications.Get(r.Context(), uuid.Nil, strings.TrimSpace(req.MedicationID))
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, med)
}

// HandleCheckInteractions handles POST /api/interactions/check {medications}.
func (h *CompatHandlers) HandleCheckInteractions(w http.ResponseWriter, r *http.Request) {
	var req models.CompatCheckInteractionsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := h.interactions.Check(r.Context(), req.Medications, false)
	if err != nil {
		respondInteractionError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, report)
}
