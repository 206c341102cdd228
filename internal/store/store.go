package store

import (
	"context"
	"errors"

	"medgpt-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when an insert hits a uniqueness constraint.
var ErrAlreadyExists = errors.New("record already exists")

// MedicationFilter narrows ListMedications. Zero values match everything.
type MedicationFilter struct {
	Category string   // exact match, case-insensitive
	Query    string   // substring of name, brand, generic name, class or category
	IDs      []string // restrict to these IDs
}

// CreateChatParams contains parameters for creating a conversation.
type CreateChatParams struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Title    string
	ChatData []byte // sealed transcript
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// Catalog operations
	ListMedications(ctx context.Context, filter MedicationFilter) ([]models.Medication, error)
	GetMedicationByID(ctx context.Context, id string) (*models.Medication, error)
	UpsertMedication(ctx context.Context, med *models.Medication) error
	ListInteractionRules(ctx context.Context) ([]models.InteractionRule, error)
	UpsertInteractionRule(ctx context.Context, rule models.InteractionRule) error
	ListConditions(ctx context.Context) ([]models.Condition, error)
	GetConditionByID(ctx context.Context, id string) (*models.Condition, error)
	UpsertCondition(ctx context.Context, cond models.Condition) error

	// Bookmark operations
	AddBookmark(ctx context.Context, userID uuid.UUID, medicationID string) error
	RemoveBookmark(ctx context.Context, userID uuid.UUID, medicationID string) error
	ListBookmarkIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
	ClearBookmarks(ctx context.Context, userID uuid.UUID) (int64, error)

	// Chat operations
	CreateChat(ctx context.Context, arg CreateChatParams) (*models.Chat, error)
	GetChatByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.Chat, error)
	ListChatsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Chat, error)
	UpdateChatData(ctx context.Context, id uuid.UUID, userID uuid.UUID, chatData []byte) error
	DeleteChat(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}
