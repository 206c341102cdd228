package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"medgpt-backend/internal/models"
	"medgpt-backend/internal/report"
	"medgpt-backend/internal/services"
	"medgpt-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MedicationService is what the catalog routes need.
type MedicationService interface {
	List(ctx context.Context, userID uuid.UUID, category, query string) ([]models.MedicationSummary, error)
	Get(ctx context.Context, userID uuid.UUID, id string) (*models.MedicationDetailResponse, error)
	Compare(ctx context.Context, ids []string) (*models.CompareResponse, error)
	Search(ctx context.Context, userID uuid.UUID, query, kind string) (*models.SearchResponse, error)
	Conditions(ctx context.Context) ([]models.Condition, error)
	ConditionMedications(ctx context.Context, userID uuid.UUID, conditionID string) ([]models.MedicationSummary, error)
}

// MedicationHandlers serves the medication catalog, comparison and search.
type MedicationHandlers struct {
	medications MedicationService
}

func NewMedicationHandlers(svc MedicationService) *MedicationHandlers {
	return &MedicationHandlers{medications: svc}
}

// respondMedicationError maps catalog errors to status codes.
func respondMedicationError(w http.ResponseWriter, err error) {
	var dup *services.DuplicateComparisonError
	switch {
	case errors.As(err, &dup):
		httputil.RespondError(w, http.StatusBadRequest, dup.Error())
	case errors.Is(err, services.ErrTooManyCompared):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrMedicationNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConditionNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("ERROR [MedicationHandlers] %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to load medications")
	}
}

// HandleListMedications handles GET /v1/medications?category=&q=.
func (h *MedicationHandlers) HandleListMedications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	meds, err := h.medications.List(r.Context(), userIDFromRequest(r), q.Get("category"), q.Get("q"))
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ListMedicationsResponse{Medications: meds})
}

// HandleGetMedication handles GET /v1/medications/{id}.
func (h *MedicationHandlers) HandleGetMedication(w http.ResponseWriter, r *http.Request) {
	med, err := h.medications.Get(r.Context(), userIDFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, med)
}

// HandleMedicationSheet handles GET /v1/medications/{id}/sheet.pdf.
func (h *MedicationHandlers) HandleMedicationSheet(w http.ResponseWriter, r *http.Request) {
	med, err := h.medications.Get(r.Context(), uuid.Nil, chi.URLParam(r, "id"))
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	pdf, err := report.MedicationSheet(&med.Medication)
	if err != nil {
		log.Printf("ERROR [MedicationHandlers] Failed to render sheet for %s: %v", med.ID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to render medication sheet")
		return
	}
	httputil.RespondPDF(w, "medgpt-"+med.ID+".pdf", pdf)
}

// HandleCompare handles GET /v1/medications/compare?ids=a,b,c.
func (h *MedicationHandlers) HandleCompare(w http.ResponseWriter, r *http.Request) {
	cmp, err := h.medications.Compare(r.Context(), splitIDs(r.URL.Query().Get("ids")))
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, cmp)
}

// HandleCompareSheet handles GET /v1/medications/compare.pdf?ids=a,b,c.
func (h *MedicationHandlers) HandleCompareSheet(w http.ResponseWriter, r *http.Request) {
	cmp, err := h.medications.Compare(r.Context(), splitIDs(r.URL.Query().Get("ids")))
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	pdf, err := report.ComparisonSheet(cmp)
	if err != nil {
		log.Printf("ERROR [MedicationHandlers] Failed to render comparison sheet: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to render comparison sheet")
		return
	}
	httputil.RespondPDF(w, "medgpt-comparison.pdf", pdf)
}

// HandleSearch handles GET /v1/search?q=&type=.
func (h *MedicationHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.medications.Search(r.Context(), userIDFromRequest(r), q.Get("q"), q.Get("type"))
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, res)
}

// HandleListConditions handles GET /v1/conditions.
func (h *MedicationHandlers) HandleListConditions(w http.ResponseWriter, r *http.Request) {
	conds, err := h.medications.Conditions(r.Context())
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ListConditionsResponse{Conditions: conds})
}

// HandleConditionMedications handles GET /v1/conditions/{id}/medications.
func (h *MedicationHandlers) HandleConditionMedications(w http.ResponseWriter, r *http.Request) {
	meds, err := h.medications.ConditionMedications(r.Context(), userIDFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		respondMedicationError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ListMedicationsResponse{Medications: meds})
}
