package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"medgpt-backend/internal/interactions"
	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"
)

var (
	ErrUnknownMedication = errors.New("unknown medication")
	ErrTooFewMedications = interactions.ErrTooFewMedications
)

// UnknownMedicationError lists the references that matched no catalog
// entry. It matches ErrUnknownMedication with errors.Is.
type UnknownMedicationError struct {
	Names []string
}

func (e *UnknownMedicationError) Error() string {
	return "unknown medication: " + strings.Join(e.Names, ", ")
}

func (e *UnknownMedicationError) Is(target error) bool {
	return target == ErrUnknownMedication
}

// Notifier receives reports whose highest severity is severe.
type Notifier interface {
	NotifySevereInteraction(ctx context.Context, report *models.InteractionReport) error
}

const notifyTimeout = 10 * time.Second

// InteractionService checks a selection of medications against the rule
// table held by the store.
type InteractionService struct {
	store    store.Store
	notifier Notifier
}

// NewInteractionService creates the service. notifier may be nil.
func NewInteractionService(s store.Store, notifier Notifier) *InteractionService {
	return &InteractionService{store: s, notifier: notifier}
}

func loadChecker(ctx context.Context, s store.Store) (*interactions.Checker, error) {
	rules, err := s.ListInteractionRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interaction rules: %w", err)
	}
	return interactions.NewChecker(rules), nil
}

// Check resolves refs (catalog IDs or names) and reports every pairwise
// interaction among them.
func (s *InteractionService) Check(ctx context.Context, refs []string, includeNone bool) (*models.InteractionReport, error) {
	selection, err := s.resolve(ctx, refs)
	if err != nil {
		return nil, err
	}
	checker, err := loadChecker(ctx, s.store)
	if err != nil {
		return nil, err
	}
	report, err := checker.Check(selection, interactions.Options{IncludeNone: includeNone})
	if err != nil {
		return nil, err
	}

	if report.HighestSeverity == models.SeveritySevere && s.notifier != nil {
		go s.notify(report)
	}
	return report, nil
}

func (s *InteractionService) notify(report *models.InteractionReport) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifySevereInteraction(ctx, report); err != nil {
		log.Printf("WARN [InteractionService] Failed to send severe interaction alert: %v", err)
	}
}

// resolve maps each reference to a catalog medication, keeping the
// caller's order. A reference matches an ID exactly, or a name, generic
// name or brand name ignoring case.
func (s *InteractionService) resolve(ctx context.Context, refs []string) ([]models.Medication, error) {
	catalog, err := s.store.ListMedications(ctx, store.MedicationFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	byID := make(map[string]models.Medication, len(catalog))
	byName := make(map[string]models.Medication, len(catalog)*3)
	for _, m := range catalog {
		byID[m.ID] = m
		for _, n := range []string{m.Name, m.GenericName, m.BrandName} {
			if n == "" {
				continue
			}
			key := strings.ToLower(n)
			if _, taken := byName[key]; !taken {
				byName[key] = m
			}
		}
	}

	selection := make([]models.Medication, 0, len(refs))
	var unknown []string
	for _, raw := range refs {
		ref := strings.TrimSpace(raw)
		if ref == "" {
			continue
		}
		if m, ok := byID[ref]; ok {
			selection = append(selection, m)
			continue
		}
		if m, ok := byName[strings.ToLower(ref)]; ok {
			selection = append(selection, m)
			continue
		}
		unknown = append(unknown, ref)
	}
	if len(unknown) > 0 {
		return nil, &UnknownMedicationError{Names: unknown}
	}
	return selection, nil
}
