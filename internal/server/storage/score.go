package storage

import (
	"context"

	"github.com/iudanet/gamebackend/internal/models"
)

// ScoreStorage defines interface for score persistence.
// A (user, score value) pair maps to at most one row, enforced by a
// unique constraint so concurrent submissions cannot duplicate it.
type ScoreStorage interface {
	// ListScores returns all scores, oldest first
	ListScores(ctx context.Context) ([]*models.Score, error)

	// GetScoreByUserAndValue retrieves the score row for the given
	// user and value. Returns ErrScoreNotFound if none exists
	GetScoreByUserAndValue(ctx context.Context, userID string, value int64) (*models.Score, error)

	// UpsertScore inserts the score, or touches the existing row if
	// the (user, value) pair is already present. Returns the stored
	// row either way
	UpsertScore(ctx context.Context, score *models.Score) (*models.Score, error)
}
