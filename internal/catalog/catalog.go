// Package catalog holds the built-in medication dataset and seeds it into
// a store at startup.
package catalog

import (
	"context"
	"fmt"
	"log"

	"medgpt-backend/internal/models"
)

// InteractionRules returns the known interactions between catalog
// medications, normalized so MedicationA < MedicationB.
func InteractionRules() []models.InteractionRule {
	rules := []models.InteractionRule{
		{
			MedicationA: "123", MedicationB: "678", // Lisinopril + Amlodipine
			Severity:    models.SeverityModerate,
			Description: "May cause excessive lowering of blood pressure. Monitor blood pressure closely.",
		},
		{
			MedicationA: "345", MedicationB: "012", // Omeprazole + Levothyroxine
			Severity:    models.SeverityMild,
			Description: "Omeprazole may decrease the absorption of Levothyroxine. Take these medications at least 4 hours apart.",
		},
		{
			MedicationA: "901", MedicationB: "789", // Sertraline + Metformin
			Severity:    models.SeverityNone,
			Description: "No significant interaction is expected between these medications.",
		},
		{
			MedicationA: "901", MedicationB: "567", // Sertraline + Gabapentin
			Severity:    models.SeveritySevere,
			Description: "Increased risk of serotonin syndrome. This combination should be avoided or used with extreme caution under medical supervision.",
		},
	}
	for i := range rules {
		rules[i] = rules[i].Normalized()
	}
	return rules
}

// Conditions returns the searchable health conditions.
func Conditions() []models.Condition {
	return []models.Condition{
		{ID: "111", Name: "Hypertension", MedicationCount: 28, Category: "Blood Pressure"},
		{ID: "222", Name: "Type 2 Diabetes", MedicationCount: 42, Category: "Diabetes"},
		{ID: "333", Name: "Hypercholesterolemia", MedicationCount: 16, Category: "Cholesterol"},
		{ID: "444", Name: "GERD", MedicationCount: 12, Category: "Gastrointestinal"},
		{ID: "555", Name: "Hypothyroidism", MedicationCount: 8, Category: "Thyroid"},
	}
}

// Seeder is the subset of the store used to load the catalog.
type Seeder interface {
	UpsertMedication(ctx context.Context, med *models.Medication) error
	UpsertInteractionRule(ctx context.Context, rule models.InteractionRule) error
	UpsertCondition(ctx context.Context, cond models.Condition) error
}

// Seed upserts the whole catalog. Running it repeatedly is harmless.
func Seed(ctx context.Context, s Seeder) error {
	meds := Medications()
	for i := range meds {
		if err := s.UpsertMedication(ctx, &meds[i]); err != nil {
			return fmt.Errorf("seeding medication %s: %w", meds[i].ID, err)
		}
	}
	rules := InteractionRules()
	for _, r := range rules {
		if err := s.UpsertInteractionRule(ctx, r); err != nil {
			return fmt.Errorf("seeding interaction %s/%s: %w", r.MedicationA, r.MedicationB, err)
		}
	}
	conds := Conditions()
	for _, c := range conds {
		if err := s.UpsertCondition(ctx, c); err != nil {
			return fmt.Errorf("seeding condition %s: %w", c.ID, err)
		}
	}
	log.Printf("[Catalog] Seeded %d medications, %d interaction rules, %d conditions", len(meds), len(rules), len(conds))
	return nil
}
