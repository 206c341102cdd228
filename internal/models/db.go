package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user in the database.
type User struct {
	ID             uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Severity is the clinical weight of a drug-drug interaction.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Rank orders severities so the highest one in a report can be picked.
// Unknown values rank below none.
func (s Severity) Rank() int {
	switch s {
	case SeverityNone:
		return 0
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	default:
		return -1
	}
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// SideEffects groups side effects by how urgently they need attention.
type SideEffects struct {
	Common  []string `json:"common"`
	Serious []string `json:"serious"`
}

// Dosage is one available form and strength of a medication.
type Dosage struct {
	Form         string `json:"form"`
	Strength     string `json:"strength"`
	Instructions string `json:"instructions"`
}

// KnownInteraction is an interaction listed on a medication's own label,
// including substances that are not part of the catalog.
type KnownInteraction struct {
	Medication  string   `json:"medication"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// ComparisonProfile holds the coarse ratings shown side-by-side by the
// comparison tool.
type ComparisonProfile struct {
	Effectiveness        string   `json:"effectiveness"`         // low, moderate, high
	SideEffectSeverity   Severity `json:"side_effect_severity"`  // mild, moderate, severe
	Cost                 string   `json:"cost"`                  // low, medium, high
	AdministrationRoute  string   `json:"administration_route"`  // e.g. Oral, Inhalation
	PrescriptionRequired bool     `json:"prescription_required"`
}

// Medication is a catalog entry. The detail fields are persisted as a
// single JSONB document in Postgres.
type Medication struct {
	ID                  string             `json:"id" db:"id"`
	Name                string             `json:"name" db:"name"`
	BrandName           string             `json:"brand_name" db:"brand_name"`
	GenericName         string             `json:"generic_name" db:"generic_name"`
	Category            string             `json:"category" db:"category"`
	DrugClass           string             `json:"drug_class" db:"drug_class"`
	Description         string             `json:"description" db:"description"`
	InteractionCount    int                `json:"interaction_count" db:"interaction_count"`
	Ingredients         []string           `json:"ingredients"`
	SideEffects         SideEffects        `json:"side_effects"`
	Dosages             []Dosage           `json:"dosages"`
	KnownInteractions   []KnownInteraction `json:"interactions"`
	Contraindications   []string           `json:"contraindications"`
	PregnancyCategory   string             `json:"pregnancy_category"`
	BreastfeedingSafety string             `json:"breastfeeding_safety"`
	StorageInstructions string             `json:"storage_instructions"`
	Profile             ComparisonProfile  `json:"comparison"`
}

// InteractionRule maps an unordered pair of catalog medications to a
// severity. Stores keep MedicationA < MedicationB.
type InteractionRule struct {
	MedicationA string   `json:"medication_a" db:"medication_a"`
	MedicationB string   `json:"medication_b" db:"medication_b"`
	Severity    Severity `json:"severity" db:"severity"`
	Description string   `json:"description" db:"description"`
}

// Normalized returns the rule with its pair in ascending ID order.
func (r InteractionRule) Normalized() InteractionRule {
	if r.MedicationB < r.MedicationA {
		r.MedicationA, r.MedicationB = r.MedicationB, r.MedicationA
	}
	return r
}

// Condition is a health condition users can search for.
type Condition struct {
	ID              string `json:"id" db:"id"`
	Name            string `json:"name" db:"name"`
	MedicationCount int    `json:"medication_count" db:"medication_count"`
	Category        string `json:"category" db:"category"` // medication category treating it
}

// Chat is a stored assistant conversation. ChatData holds the sealed
// (encrypted) JSON array of ChatMessage.
type Chat struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Title     string    `db:"title"`
	ChatData  []byte    `db:"chat_data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
