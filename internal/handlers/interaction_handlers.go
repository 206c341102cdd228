package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"medgpt-backend/internal/models"
	"medgpt-backend/internal/services"
	"medgpt-backend/pkg/httputil"
)

// InteractionService checks a medication selection for interactions.
type InteractionService interface {
	Check(ctx context.Context, refs []string, includeNone bool) (*models.InteractionReport, error)
}

type InteractionHandlers struct {
	interactions InteractionService
}

func NewInteractionHandlers(svc InteractionService) *InteractionHandlers {
	return &InteractionHandlers{interactions: svc}
}

func respondInteractionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownMedication),
		errors.Is(err, services.ErrDuplicateMedication),
		errors.Is(err, services.ErrTooFewMedications):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR [InteractionHandlers] %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to check interactions")
	}
}

// HandleCheck handles POST /v1/interactions/check.
func (h *InteractionHandlers) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req models.CheckInteractionsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := h.interactions.Check(r.Context(), req.Medications, req.IncludeNone)
	if err != nil {
		respondInteractionError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, report)
}
