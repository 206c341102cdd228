// Package interactions decides how the medications in a selection
// interact with each other, pair by pair, using a table of known rules.
package interactions

import (
	"errors"
	"strings"

	"medgpt-backend/internal/models"
)

var (
	ErrTooFewMedications   = errors.New("please add at least two medications to check interactions")
	ErrDuplicateMedication = errors.New("medication is already in the selection")
)

// NoKnownInteraction is the description used for pairs without a rule.
const NoKnownInteraction = "No known interaction between these medications."

// DuplicateError is returned when the same medication appears twice in a
// selection. It matches ErrDuplicateMedication with errors.Is.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return e.Name + " is already in your list"
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateMedication
}

// Options tune a single check.
type Options struct {
	// IncludeNone keeps pairs with no interaction in the results.
	IncludeNone bool
}

type pairKey struct {
	a, b string
}

func keyFor(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Checker looks up interactions in an immutable rule table.
// It is safe for concurrent use.
type Checker struct {
	rules map[pairKey]models.InteractionRule
}

// NewChecker indexes rules by unordered pair. A later rule for the same
// pair replaces an earlier one; rules pairing a medication with itself
// are ignored.
func NewChecker(rules []models.InteractionRule) *Checker {
	c := &Checker{rules: make(map[pairKey]models.InteractionRule, len(rules))}
	for _, r := range rules {
		if r.MedicationA == r.MedicationB {
			continue
		}
		c.rules[keyFor(r.MedicationA, r.MedicationB)] = r.Normalized()
	}
	return c
}

// Lookup returns the rule for a pair regardless of argument order.
func (c *Checker) Lookup(a, b string) (models.InteractionRule, bool) {
	r, ok := c.rules[keyFor(a, b)]
	return r, ok
}

// Len reports the number of indexed rules.
func (c *Checker) Len() int {
	return len(c.rules)
}

// Check evaluates every unordered pair of the selection in selection
// order and summarises the worst outcome.
func (c *Checker) Check(selection []models.Medication, opts Options) (*models.InteractionReport, error) {
	seen := make(map[string]struct{}, len(selection))
	for _, med := range selection {
		if _, dup := seen[med.ID]; dup {
			return nil, &DuplicateError{Name: med.Name}
		}
		seen[med.ID] = struct{}{}
	}
	if len(selection) < 2 {
		return nil, ErrTooFewMedications
	}

	report := &models.InteractionReport{
		Results:         []models.InteractionResult{},
		HighestSeverity: models.SeverityNone,
	}
	for i := 0; i < len(selection); i++ {
		for j := i + 1; j < len(selection); j++ {
			first, second := selection[i], selection[j]
			report.CheckedPairs++

			severity := models.SeverityNone
			description := NoKnownInteraction
			if rule, ok := c.Lookup(first.ID, second.ID); ok {
				severity = rule.Severity
				description = rule.Description
			}
			if severity.Rank() > report.HighestSeverity.Rank() {
				report.HighestSeverity = severity
			}
			if severity == models.SeverityNone && !opts.IncludeNone {
				continue
			}
			report.Results = append(report.Results, models.InteractionResult{
				Medications:   [2]string{first.Name, second.Name},
				MedicationIDs: [2]string{first.ID, second.ID},
				Severity:      severity,
				Description:   description,
			})
		}
	}
	report.Alert = AlertFor(report.HighestSeverity)
	return report, nil
}

// AlertFor returns the user-facing verdict for the worst severity found.
func AlertFor(highest models.Severity) models.InteractionAlert {
	var msg string
	switch highest {
	case models.SeveritySevere:
		msg = "Severe interactions detected! Please review carefully."
	case models.SeverityModerate:
		msg = "Moderate interactions detected. Please review."
	case models.SeverityMild:
		msg = "Mild interactions may exist. See details below."
	default:
		highest = models.SeverityNone
		msg = "No interactions found between the selected medications"
	}
	return models.InteractionAlert{Level: highest, Message: msg}
}

// Label renders a severity the way result badges show it,
// e.g. "Moderate Interaction" or "No Interaction".
func Label(s models.Severity) string {
	if s == models.SeverityNone || !s.Valid() {
		return "No Interaction"
	}
	name := string(s)
	return strings.ToUpper(name[:1]) + name[1:] + " Interaction"
}
