package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medgpt-backend/internal/interactions"
	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"

	"github.com/google/uuid"
)

// MaxCompared is how many medications the comparison tool shows at once.
const MaxCompared = 3

// Search result types accepted by Search.
const (
	SearchAll         = "all"
	SearchMedications = "medications"
	SearchConditions  = "conditions"
)

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrConditionNotFound  = errors.New("condition not found")
	ErrTooManyCompared    = fmt.Errorf("You can only compare up to %d medications at once", MaxCompared)
	ErrNothingToCompare   = errors.New("select at least one medication to compare")
	// ErrDuplicateMedication matches both comparison and interaction-check duplicates.
	ErrDuplicateMedication = interactions.ErrDuplicateMedication
)

// DuplicateComparisonError is returned when a medication is added to a
// comparison twice.
type DuplicateComparisonError struct {
	Name string
}

func (e *DuplicateComparisonError) Error() string {
	return e.Name + " is already in your comparison"
}

func (e *DuplicateComparisonError) Is(target error) bool {
	return target == ErrDuplicateMedication
}

// MedicationService serves the catalog views: lists, detail pages,
// comparison and search.
type MedicationService struct {
	store store.Store
}

func NewMedicationService(s store.Store) *MedicationService {
	return &MedicationService{store: s}
}

// bookmarkedSet returns the IDs userID has bookmarked. Anonymous callers
// (uuid.Nil) have none.
func bookmarkedSet(ctx context.Context, s store.Store, userID uuid.UUID) (map[string]bool, error) {
	set := make(map[string]bool)
	if userID == uuid.Nil {
		return set, nil
	}
	ids, err := s.ListBookmarkIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func toSummary(m models.Medication, bookmarked bool) models.MedicationSummary {
	return models.MedicationSummary{
		ID:               m.ID,
		Name:             m.Name,
		BrandName:        m.BrandName,
		GenericName:      m.GenericName,
		Category:         m.Category,
		DrugClass:        m.DrugClass,
		Description:      m.Description,
		InteractionCount: m.InteractionCount,
		IsBookmarked:     bookmarked,
	}
}

func (s *MedicationService) summaries(ctx context.Context, userID uuid.UUID, meds []models.Medication) ([]models.MedicationSummary, error) {
	marks, err := bookmarkedSet(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.MedicationSummary, 0, len(meds))
	for _, m := range meds {
		out = append(out, toSummary(m, marks[m.ID]))
	}
	return out, nil
}

// List returns the catalog, optionally narrowed by category and a free
// text query.
func (s *MedicationService) List(ctx context.Context, userID uuid.UUID, category, query string) ([]models.MedicationSummary, error) {
	meds, err := s.store.ListMedications(ctx, store.MedicationFilter{
		Category: strings.TrimSpace(category),
		Query:    strings.TrimSpace(query),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return s.summaries(ctx, userID, meds)
}

// Get returns the full record of one medication.
func (s *MedicationService) Get(ctx context.Context, userID uuid.UUID, id string) (*models.MedicationDetailResponse, error) {
	med, err := s.store.GetMedicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMedicationNotFound
		}
		return nil, fmt.Errorf("failed to get medication %s: %w", id, err)
	}
	marks, err := bookmarkedSet(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	return &models.MedicationDetailResponse{Medication: *med, IsBookmarked: marks[med.ID]}, nil
}

// Compare builds the side-by-side table for up to MaxCompared distinct
// medications, in the order given, plus the interactions among them.
func (s *MedicationService) Compare(ctx context.Context, ids []string) (*models.CompareResponse, error) {
	var selected []models.Medication
	seen := make(map[string]bool)
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		med, err := s.store.GetMedicationByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrMedicationNotFound, id)
			}
			return nil, fmt.Errorf("failed to get medication %s: %w", id, err)
		}
		if seen[med.ID] {
			return nil, &DuplicateComparisonError{Name: med.Name}
		}
		if len(selected) == MaxCompared {
			return nil, ErrTooManyCompared
		}
		seen[med.ID] = true
		selected = append(selected, *med)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrValidation, ErrNothingToCompare)
	}

	resp := &models.CompareResponse{
		Medications:  make([]models.ComparisonEntry, 0, len(selected)),
		Interactions: []models.InteractionResult{},
	}
	for _, m := range selected {
		resp.Medications = append(resp.Medications, models.ComparisonEntry{
			ID:            m.ID,
			Name:          m.Name,
			GenericName:   m.GenericName,
			DrugClass:     m.DrugClass,
			Ingredients:   m.Ingredients,
			Effectiveness: m.Profile.Effectiveness,
			SideEffects: models.ComparisonSideEffects{
				Severity: m.Profile.SideEffectSeverity,
				Common:   m.SideEffects.Common,
			},
			Interactions:         m.InteractionCount,
			Cost:                 m.Profile.Cost,
			AdministrationRoute:  m.Profile.AdministrationRoute,
			PrescriptionRequired: m.Profile.PrescriptionRequired,
		})
	}

	if len(selected) >= 2 {
		checker, err := loadChecker(ctx, s.store)
		if err != nil {
			return nil, err
		}
		report, err := checker.Check(selected, interactions.Options{})
		if err != nil {
			return nil, err
		}
		resp.Interactions = report.Results
	}
	return resp, nil
}

// Search matches medications and conditions against query. kind is one
// of SearchAll (or empty), SearchMedications or SearchConditions.
func (s *MedicationService) Search(ctx context.Context, userID uuid.UUID, query, kind string) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", ErrValidation)
	}
	if kind == "" {
		kind = SearchAll
	}
	if kind != SearchAll && kind != SearchMedications && kind != SearchConditions {
		return nil, fmt.Errorf("%w: unknown search type %q", ErrValidation, kind)
	}

	resp := &models.SearchResponse{
		Query:       query,
		Medications: []models.MedicationSummary{},
		Conditions:  []models.Condition{},
	}
	if kind != SearchConditions {
		meds, err := s.List(ctx, userID, "", query)
		if err != nil {
			return nil, err
		}
		resp.Medications = meds
	}
	if kind != SearchMedications {
		conds, err := s.store.ListConditions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list conditions: %w", err)
		}
		q := strings.ToLower(query)
		for _, c := range conds {
			if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Category), q) {
				resp.Conditions = append(resp.Conditions, c)
			}
		}
	}
	return resp, nil
}

// Conditions lists every searchable health condition.
func (s *MedicationService) Conditions(ctx context.Context) ([]models.Condition, error) {
	conds, err := s.store.ListConditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conditions: %w", err)
	}
	return conds, nil
}

// ConditionMedications lists the catalog medications in the category
// that treats the condition.
func (s *MedicationService) ConditionMedications(ctx context.Context, userID uuid.UUID, conditionID string) ([]models.MedicationSummary, error) {
	cond, err := s.store.GetConditionByID(ctx, conditionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConditionNotFound
		}
		return nil, fmt.Errorf("failed to get condition %s: %w", conditionID, err)
	}
	return s.List(ctx, userID, cond.Category, "")
}
