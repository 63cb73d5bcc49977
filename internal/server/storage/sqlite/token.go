package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/internal/server/storage"
)

// GetOrCreateToken returns the user's existing token, inserting the
// candidate only when the user has none. The UNIQUE(user_id)
// constraint makes concurrent calls converge on a single row.
func (s *Storage) GetOrCreateToken(ctx context.Context, candidate *models.AuthToken) (*models.AuthToken, error) {
	insert := `
		INSERT INTO auth_tokens (key, user_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, insert,
		candidate.Key,
		candidate.UserID,
		candidate.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert auth token: %w", err)
	}

	query := `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE user_id = ?
	`

	token := &models.AuthToken{}
	err := s.db.QueryRowContext(ctx, query, candidate.UserID).Scan(
		&token.Key,
		&token.UserID,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth token: %w", err)
	}

	return token, nil
}

// GetTokenByKey retrieves a token by its key value
func (s *Storage) GetTokenByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	query := `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE key = ?
	`

	token := &models.AuthToken{}
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&token.Key,
		&token.UserID,
		&token.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get auth token: %w", err)
	}

	return token, nil
}

// DeleteUserTokens deletes the user's token, if any
func (s *Storage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	query := `DELETE FROM auth_tokens WHERE user_id = ?`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
