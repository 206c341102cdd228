package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

//go:embed schema.sql
var schemaSQL string

// PostgreSQL error codes mapped onto store sentinels.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates any missing tables and indexes.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	log.Println("[PostgresStore] Migrate: schema is up to date")
	return nil
}

// mapPgError translates constraint violations into store sentinels and
// wraps everything else with op.
func mapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return store.ErrAlreadyExists
		case foreignKeyViolation:
			return store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] %s: PostgreSQL error: Code=%s, Message=%s, Detail=%s", op, pgErr.Code, pgErr.Message, pgErr.Detail)
	}
	return fmt.Errorf("database error %s: %w", op, err)
}

const userColumns = `id, email, hashed_password, created_at, updated_at`

func (s *PostgresStore) getUser(ctx context.Context, op, where string, arg any) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR [PostgresStore] %s: %v", op, err)
		return nil, fmt.Errorf("database error %s: %w", op, err)
	}
	return user, nil
}

// GetUserByEmail returns store.ErrNotFound for an unknown email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "fetching user by email", "email = $1", email)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getUser(ctx, "fetching user by id", "id = $1", id)
}

// CreateUser inserts a new user record and fills in the timestamps.
// A duplicate email yields store.ErrAlreadyExists.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	log.Printf("[PostgresStore] CreateUser called for user ID %s", user.ID)
	query := `
		INSERT INTO users (id, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := s.db.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.HashedPassword,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapPgError("creating user", err)
	}

	log.Printf("[PostgresStore] CreateUser: Successfully inserted user ID %s", user.ID)
	return nil
}
