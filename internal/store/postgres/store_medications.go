package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"

	"github.com/jackc/pgx/v5"
)

// --- Medication Methods ---

// ListMedications builds the WHERE clause from whichever filter fields are set.
func (s *PostgresStore) ListMedications(ctx context.Context, filter store.MedicationFilter) ([]models.Medication, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(category) = LOWER($%d)", argID))
		args = append(args, filter.Category)
		argID++
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(name ILIKE $%[1]d OR brand_name ILIKE $%[1]d OR generic_name ILIKE $%[1]d OR drug_class ILIKE $%[1]d OR category ILIKE $%[1]d)",
			argID))
		args = append(args, "%"+escapeLike(q)+"%")
		argID++
	}
	if len(filter.IDs) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("id = ANY($%d)", argID))
		args = append(args, filter.IDs)
	}

	query := `SELECT detail FROM medications`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying medications: %w", err)
	}
	defer rows.Close()

	meds := []models.Medication{}
	for rows.Next() {
		var detail []byte
		if err := rows.Scan(&detail); err != nil {
			return nil, fmt.Errorf("error scanning medication row: %w", err)
		}
		var m models.Medication
		if err := json.Unmarshal(detail, &m); err != nil {
			return nil, fmt.Errorf("error decoding medication detail: %w", err)
		}
		meds = append(meds, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medication rows: %w", err)
	}
	return meds, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

const getMedicationByID = `-- name: GetMedicationByID :one
SELECT detail FROM medications WHERE id = $1;
`

func (s *PostgresStore) GetMedicationByID(ctx context.Context, id string) (*models.Medication, error) {
	var detail []byte
	if err := s.db.QueryRow(ctx, getMedicationByID, id).Scan(&detail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning medication: %w", err)
	}
	var m models.Medication
	if err := json.Unmarshal(detail, &m); err != nil {
		return nil, fmt.Errorf("error decoding medication detail: %w", err)
	}
	return &m, nil
}

const upsertMedication = `-- name: UpsertMedication :exec
INSERT INTO medications (id, name, brand_name, generic_name, category, drug_class, detail)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    brand_name = EXCLUDED.brand_name,
    generic_name = EXCLUDED.generic_name,
    category = EXCLUDED.category,
    drug_class = EXCLUDED.drug_class,
    detail = EXCLUDED.detail,
    updated_at = NOW();
`

func (s *PostgresStore) UpsertMedication(ctx context.Context, med *models.Medication) error {
	detail, err := json.Marshal(med)
	if err != nil {
		return fmt.Errorf("failed to marshal medication %s: %w", med.ID, err)
	}
	_, err = s.db.Exec(ctx, upsertMedication,
		med.ID,
		med.Name,
		med.BrandName,
		med.GenericName,
		med.Category,
		med.DrugClass,
		detail,
	)
	if err != nil {
		return mapPgError("upserting medication", err)
	}
	return nil
}

// --- Interaction Rule Methods ---

const listInteractionRules = `-- name: ListInteractionRules :many
SELECT medication_a, medication_b, severity, description
FROM interaction_rules
ORDER BY medication_a, medication_b;
`

func (s *PostgresStore) ListInteractionRules(ctx context.Context) ([]models.InteractionRule, error) {
	rows, err := s.db.Query(ctx, listInteractionRules)
	if err != nil {
		return nil, fmt.Errorf("error querying interaction rules: %w", err)
	}
	defer rows.Close()

	var rules []models.InteractionRule
	for rows.Next() {
		var r models.InteractionRule
		if err := rows.Scan(&r.MedicationA, &r.MedicationB, &r.Severity, &r.Description); err != nil {
			return nil, fmt.Errorf("error scanning interaction rule row: %w", err)
		}
		rules = append(rules, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interaction rule rows: %w", err)
	}
	return rules, nil
}

const upsertInteractionRule = `-- name: UpsertInteractionRule :exec
INSERT INTO interaction_rules (medication_a, medication_b, severity, description)
VALUES ($1, $2, $3, $4)
ON CONFLICT (medication_a, medication_b) DO UPDATE SET
    severity = EXCLUDED.severity,
    description = EXCLUDED.description;
`

func (s *PostgresStore) UpsertInteractionRule(ctx context.Context, rule models.InteractionRule) error {
	rule = rule.Normalized()
	_, err := s.db.Exec(ctx, upsertInteractionRule,
		rule.MedicationA,
		rule.MedicationB,
		string(rule.Severity),
		rule.Description,
	)
	if err != nil {
		return mapPgError("upserting interaction rule", err)
	}
	return nil
}

// --- Condition Methods ---

const listConditions = `-- name: ListConditions :many
SELECT id, name, medication_count, category
FROM conditions
ORDER BY name;
`

func (s *PostgresStore) ListConditions(ctx context.Context) ([]models.Condition, error) {
	rows, err := s.db.Query(ctx, listConditions)
	if err != nil {
		return nil, fmt.Errorf("error querying conditions: %w", err)
	}
	defer rows.Close()

	conds := []models.Condition{}
	for rows.Next() {
		var c models.Condition
		if err := rows.Scan(&c.ID, &c.Name, &c.MedicationCount, &c.Category); err != nil {
			return nil, fmt.Errorf("error scanning condition row: %w", err)
		}
		conds = append(conds, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating condition rows: %w", err)
	}
	return conds, nil
}

const getConditionByID = `-- name: GetConditionByID :one
SELECT id, name, medication_count, category
FROM conditions
WHERE id = $1;
`

func (s *PostgresStore) GetConditionByID(ctx context.Context, id string) (*models.Condition, error) {
	var c models.Condition
	err := s.db.QueryRow(ctx, getConditionByID, id).Scan(&c.ID, &c.Name, &c.MedicationCount, &c.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning condition: %w", err)
	}
	return &c, nil
}

const upsertCondition = `-- name: UpsertCondition :exec
INSERT INTO conditions (id, name, medication_count, category)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    medication_count = EXCLUDED.medication_count,
    category = EXCLUDED.category;
`

func (s *PostgresStore) UpsertCondition(ctx context.Context, cond models.Condition) error {
	_, err := s.db.Exec(ctx, upsertCondition, cond.ID, cond.Name, cond.MedicationCount, cond.Category)
	if err != nil {
		return mapPgError("upserting condition", err)
	}
	return nil
}
