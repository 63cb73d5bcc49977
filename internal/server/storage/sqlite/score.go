package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/internal/server/storage"
)

// ListScores returns all scores, oldest first
func (s *Storage) ListScores(ctx context.Context) ([]*models.Score, error) {
	query := `
		SELECT id, user_id, score, created_at, updated_at
		FROM scores
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	scores := make([]*models.Score, 0)
	for rows.Next() {
		score := &models.Score{}
		if err := rows.Scan(
			&score.ID,
			&score.UserID,
			&score.Score,
			&score.CreatedAt,
			&score.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scores: %w", err)
	}

	return scores, nil
}

// GetScoreByUserAndValue retrieves the score row for a (user, value) pair
func (s *Storage) GetScoreByUserAndValue(ctx context.Context, userID string, value int64) (*models.Score, error) {
	query := `
		SELECT id, user_id, score, created_at, updated_at
		FROM scores
		WHERE user_id = ? AND score = ?
	`

	score := &models.Score{}
	err := s.db.QueryRowContext(ctx, query, userID, value).Scan(
		&score.ID,
		&score.UserID,
		&score.Score,
		&score.CreatedAt,
		&score.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return score, nil
}

// UpsertScore inserts the score or touches the existing row for the
// same (user, value) pair. The UNIQUE(user_id, score) constraint
// closes the lookup-then-insert race.
func (s *Storage) UpsertScore(ctx context.Context, score *models.Score) (*models.Score, error) {
	insert := `
		INSERT INTO scores (id, user_id, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, score) DO UPDATE SET updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, insert,
		score.ID,
		score.UserID,
		score.Score,
		score.CreatedAt,
		score.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert score: %w", err)
	}

	return s.GetScoreByUserAndValue(ctx, score.UserID, score.Score)
}
