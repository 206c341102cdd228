package postgres

import (
	"context"
	"errors"
	"fmt"

	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// --- Chat Methods ---

const createChat = `-- name: CreateChat :one
INSERT INTO chats (
    id, user_id, title, chat_data
) VALUES (
    $1, $2, $3, $4
)
RETURNING id, user_id, title, chat_data, created_at, updated_at;
`

func (s *PostgresStore) CreateChat(ctx context.Context, arg store.CreateChatParams) (*models.Chat, error) {
	id := arg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := s.db.QueryRow(ctx, createChat,
		id,
		arg.UserID,
		arg.Title,
		arg.ChatData,
	)

	var chat models.Chat
	err := row.Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Title,
		&chat.ChatData,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError("creating chat", err)
	}
	return &chat, nil
}

const getChatByID = `-- name: GetChatByID :one
SELECT id, user_id, title, chat_data, created_at, updated_at
FROM chats
WHERE id = $1 AND user_id = $2;
`

func (s *PostgresStore) GetChatByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.Chat, error) {
	row := s.db.QueryRow(ctx, getChatByID, id, userID)

	var chat models.Chat
	err := row.Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Title,
		&chat.ChatData,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning chat: %w", err)
	}
	return &chat, nil
}

const listChatsByUser = `-- name: ListChatsByUser :many
SELECT id, user_id, title, chat_data, created_at, updated_at
FROM chats
WHERE user_id = $1
ORDER BY updated_at DESC, id
LIMIT $2 OFFSET $3;
`

func (s *PostgresStore) ListChatsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Chat, error) {
	rows, err := s.db.Query(ctx, listChatsByUser, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error querying chats: %w", err)
	}
	defer rows.Close()

	chats := []models.Chat{}
	for rows.Next() {
		var chat models.Chat
		if err := rows.Scan(
			&chat.ID,
			&chat.UserID,
			&chat.Title,
			&chat.ChatData,
			&chat.CreatedAt,
			&chat.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning chat row: %w", err)
		}
		chats = append(chats, chat)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat rows: %w", err)
	}
	return chats, nil
}

const updateChatData = `-- name: UpdateChatData :exec
UPDATE chats
SET chat_data = $1, updated_at = NOW()
WHERE id = $2 AND user_id = $3;
`

// UpdateChatData replaces the sealed transcript of a chat.
func (s *PostgresStore) UpdateChatData(ctx context.Context, id uuid.UUID, userID uuid.UUID, chatData []byte) error {
	tag, err := s.db.Exec(ctx, updateChatData, chatData, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update chat data: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

const deleteChat = `-- name: DeleteChat :exec
DELETE FROM chats
WHERE id = $1 AND user_id = $2;
`

func (s *PostgresStore) DeleteChat(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, deleteChat, id, userID)
	if err != nil {
		return fmt.Errorf("error executing delete chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
