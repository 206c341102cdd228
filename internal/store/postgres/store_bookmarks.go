package postgres

import (
	"context"
	"fmt"
	"log"

	"medgpt-backend/internal/store"

	"github.com/google/uuid"
)

// --- Bookmark Methods ---

const addBookmark = `-- name: AddBookmark :exec
INSERT INTO bookmarks (user_id, medication_id)
VALUES ($1, $2);
`

// AddBookmark returns store.ErrAlreadyExists for a repeat bookmark and
// store.ErrNotFound when the medication does not exist.
func (s *PostgresStore) AddBookmark(ctx context.Context, userID uuid.UUID, medicationID string) error {
	if _, err := s.db.Exec(ctx, addBookmark, userID, medicationID); err != nil {
		return mapPgError("adding bookmark", err)
	}
	log.Printf("[PostgresStore] AddBookmark: user %s bookmarked medication %s", userID, medicationID)
	return nil
}

const removeBookmark = `-- name: RemoveBookmark :exec
DELETE FROM bookmarks
WHERE user_id = $1 AND medication_id = $2;
`

func (s *PostgresStore) RemoveBookmark(ctx context.Context, userID uuid.UUID, medicationID string) error {
	tag, err := s.db.Exec(ctx, removeBookmark, userID, medicationID)
	if err != nil {
		return fmt.Errorf("error executing remove bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

const listBookmarkIDs = `-- name: ListBookmarkIDs :many
SELECT medication_id
FROM bookmarks
WHERE user_id = $1
ORDER BY created_at DESC, medication_id;
`

func (s *PostgresStore) ListBookmarkIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(ctx, listBookmarkIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookmarks: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning bookmark row: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmark rows: %w", err)
	}
	return ids, nil
}

const clearBookmarks = `-- name: ClearBookmarks :exec
DELETE FROM bookmarks WHERE user_id = $1;
`

func (s *PostgresStore) ClearBookmarks(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx, clearBookmarks, userID)
	if err != nil {
		return 0, fmt.Errorf("error executing clear bookmarks: %w", err)
	}
	return tag.RowsAffected(), nil
}
