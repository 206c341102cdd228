package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"medgpt-backend/internal/auth"
	"medgpt-backend/internal/models"
	"medgpt-backend/internal/services"
	"medgpt-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// BookmarkService manages saved medications.
type BookmarkService interface {
	Add(ctx context.Context, userID uuid.UUID, medicationID string) error
	Remove(ctx context.Context, userID uuid.UUID, medicationID string) error
	List(ctx context.Context, userID uuid.UUID, query string) ([]models.MedicationSummary, error)
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
}

type BookmarkHandlers struct {
	bookmarks BookmarkService
}

func NewBookmarkHandlers(svc BookmarkService) *BookmarkHandlers {
	return &BookmarkHandlers{bookmarks: svc}
}

func respondBookmarkError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrBookmarkExists):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrMedicationNotFound),
		errors.Is(err, services.ErrBookmarkNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("ERROR [BookmarkHandlers] %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update bookmarks")
	}
}

// HandleList handles GET /v1/bookmarks?q=.
func (h *BookmarkHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	meds, err := h.bookmarks.List(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		respondBookmarkError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.BookmarksResponse{Medications: meds})
}

// HandleAdd handles PUT /v1/bookmarks/{medicationID}.
func (h *BookmarkHandlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.bookmarks.Add(r.Context(), userID, chi.URLParam(r, "medicationID")); err != nil {
		respondBookmarkError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove handles DELETE /v1/bookmarks/{medicationID}.
func (h *BookmarkHandlers) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.bookmarks.Remove(r.Context(), userID, chi.URLParam(r, "medicationID")); err != nil {
		respondBookmarkError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleClear handles DELETE /v1/bookmarks.
func (h *BookmarkHandlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	n, err := h.bookmarks.Clear(r.Context(), userID)
	if err != nil {
		respondBookmarkError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ClearBookmarksResponse{Removed: n})
}
