package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// SignupRequest defines the expected body for the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"` // bcrypt ignores bytes past 72
}

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response Structs ---

// UserResponse defines the user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Medication DTOs ---

// MedicationSummary is the card-sized view of a medication used in lists.
type MedicationSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	BrandName        string `json:"brand_name,omitempty"`
	GenericName      string `json:"generic_name"`
	Category         string `json:"category"`
	DrugClass        string `json:"drug_class"`
	Description      string `json:"description"`
	InteractionCount int    `json:"interaction_count"`
	IsBookmarked     bool   `json:"is_bookmarked"`
}

// MedicationDetailResponse is the full medication record plus per-user state.
type MedicationDetailResponse struct {
	Medication
	IsBookmarked bool `json:"is_bookmarked"`
}

// ListMedicationsResponse defines the response structure for listing medications.
type ListMedicationsResponse struct {
	Medications []MedicationSummary `json:"medications"`
}

// ComparisonSideEffects is the side-effect column of the comparison table.
type ComparisonSideEffects struct {
	Severity Severity `json:"severity"`
	Common   []string `json:"common"`
}

// ComparisonEntry is one column of the comparison table.
type ComparisonEntry struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	GenericName          string                `json:"generic_name"`
	DrugClass            string                `json:"drug_class"`
	Ingredients          []string              `json:"ingredients"`
	Effectiveness        string                `json:"effectiveness"`
	SideEffects          ComparisonSideEffects `json:"side_effects"`
	Interactions         int                   `json:"interactions"`
	Cost                 string                `json:"cost"`
	AdministrationRoute  string                `json:"administration_route"`
	PrescriptionRequired bool                  `json:"prescription_required"`
}

// CompareResponse is the result of comparing up to three medications.
// Interactions lists the known interactions among the compared set.
type CompareResponse struct {
	Medications  []ComparisonEntry   `json:"medications"`
	Interactions []InteractionResult `json:"interactions"`
}

// --- Interaction DTOs ---

// CheckInteractionsRequest is the body of POST /v1/interactions/check.
// Medications may contain catalog IDs or medication names.
type CheckInteractionsRequest struct {
	Medications []string `json:"medications" validate:"required,dive,required"`
	IncludeNone bool     `json:"include_none"`
}

// InteractionResult describes the interaction between one pair.
type InteractionResult struct {
	Medications   [2]string `json:"medications"`
	MedicationIDs [2]string `json:"medication_ids"`
	Severity      Severity  `json:"severity"`
	Description   string    `json:"description"`
}

// InteractionAlert is the one-line verdict for a whole check.
type InteractionAlert struct {
	Level   Severity `json:"level"`
	Message string   `json:"message"`
}

// InteractionReport is the outcome of checking a medication selection.
type InteractionReport struct {
	Results         []InteractionResult `json:"results"`
	HighestSeverity Severity            `json:"highest_severity"`
	Alert           InteractionAlert    `json:"alert"`
	CheckedPairs    int                 `json:"checked_pairs"`
}

// --- Search DTOs ---

// SearchResponse holds medications and conditions matching a query.
type SearchResponse struct {
	Query       string              `json:"query"`
	Medications []MedicationSummary `json:"medications"`
	Conditions  []Condition         `json:"conditions"`
}

// ListConditionsResponse defines the response structure for listing conditions.
type ListConditionsResponse struct {
	Conditions []Condition `json:"conditions"`
}

// --- Bookmark DTOs ---

// BookmarksResponse lists the caller's bookmarked medications.
type BookmarksResponse struct {
	Medications []MedicationSummary `json:"medications"`
}

// ClearBookmarksResponse reports how many bookmarks were removed.
type ClearBookmarksResponse struct {
	Removed int64 `json:"removed"`
}

// --- Chat DTOs ---

// CreateChatRequest defines the payload for creating a new conversation.
type CreateChatRequest struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,max=200"`
	InitialMessage *string `json:"initial_message,omitempty" validate:"omitempty,max=4000"`
}

// SendMessageRequest defines the payload for adding a user message to a chat.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// ChatMessageResponse is a transcript entry with its rendered HTML.
type ChatMessageResponse struct {
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Error       bool      `json:"error,omitempty"`
}

// ChatResponse defines the representation of a conversation in API responses.
type ChatResponse struct {
	ID             uuid.UUID             `json:"id"`
	Title          string                `json:"title"`
	Messages       []ChatMessageResponse `json:"messages"`
	AssistantError bool                  `json:"assistant_error,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ChatSummary is the list view of a conversation.
type ChatSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListChatsResponse defines the response structure for listing chats.
type ListChatsResponse struct {
	Chats []ChatSummary `json:"chats"`
}

// --- Assistant DTOs ---

// AskRequest is a single-turn question for the assistant.
type AskRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// AskResponse is the assistant's answer to a single-turn question.
type AskResponse struct {
	Response     string `json:"response"`
	ResponseHTML string `json:"response_html"`
	Provider     string `json:"provider"`
	Cached       bool   `json:"cached"`
}

// --- Frontend compatibility DTOs ---
// These mirror the request shapes the web client already sends.

// CompatChatRequest is the body of POST /api/chat.
type CompatChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// CompatChatResponse is the reply of POST /api/chat.
type CompatChatResponse struct {
	Response     string `json:"response"`
	ResponseHTML string `json:"response_html,omitempty"`
	Error        string `json:"error,omitempty"`
}

// CompatMedicationInfoRequest is the body of POST /api/medications/info.
type CompatMedicationInfoRequest struct {
	MedicationID string `json:"medicationId" validate:"required"`
}

// CompatCheckInteractionsRequest is the body of POST /api/interactions/check.
type CompatCheckInteractionsRequest struct {
	Medications []string `json:"medications" validate:"required,dive,required"`
}
