package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrBookmarkExists   = errors.New("medication is already bookmarked")
	ErrBookmarkNotFound = errors.New("bookmark not found")
)

// BookmarkService manages the medications a user has saved.
type BookmarkService struct {
	store store.Store
}

func NewBookmarkService(s store.Store) *BookmarkService {
	return &BookmarkService{store: s}
}

// Add bookmarks a catalog medication for userID.
func (s *BookmarkService) Add(ctx context.Context, userID uuid.UUID, medicationID string) error {
	err := s.store.AddBookmark(ctx, userID, medicationID)
	switch {
	case err == nil:
		log.Printf("[BookmarkService] User %s bookmarked medication %s", userID, medicationID)
		return nil
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrBookmarkExists
	case errors.Is(err, store.ErrNotFound):
		return ErrMedicationNotFound
	default:
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
}

// Remove deletes a single bookmark.
func (s *BookmarkService) Remove(ctx context.Context, userID uuid.UUID, medicationID string) error {
	if err := s.store.RemoveBookmark(ctx, userID, medicationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBookmarkNotFound
		}
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}

// List returns the bookmarked medications, most recently saved first.
// A non-empty query keeps only entries whose name, generic name or
// category contains it.
func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID, query string) ([]models.MedicationSummary, error) {
	ids, err := s.store.ListBookmarkIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	out := []models.MedicationSummary{}
	if len(ids) == 0 {
		return out, nil
	}

	meds, err := s.store.ListMedications(ctx, store.MedicationFilter{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarked medications: %w", err)
	}
	byID := make(map[string]models.Medication, len(meds))
	for _, m := range meds {
		byID[m.ID] = m
	}

	q := strings.ToLower(strings.TrimSpace(query))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.GenericName), q) &&
			!strings.Contains(strings.ToLower(m.Category), q) {
			continue
		}
		out = append(out, toSummary(m, true))
	}
	return out, nil
}

// Clear removes every bookmark of userID and reports how many there were.
func (s *BookmarkService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.store.ClearBookmarks(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear bookmarks: %w", err)
	}
	log.Printf("[BookmarkService] Cleared %d bookmarks for user %s", n, userID)
	return n, nil
}
