package storage

import (
	"context"

	"github.com/iudanet/gamebackend/internal/models"
)

// TokenStorage defines interface for auth token persistence.
// A user has at most one token; GetOrCreateToken never duplicates.
type TokenStorage interface {
	// GetOrCreateToken returns the user's existing token, or stores
	// candidate as the user's token if none exists yet. The returned
	// token is stable across calls for the same user.
	GetOrCreateToken(ctx context.Context, candidate *models.AuthToken) (*models.AuthToken, error)

	// GetTokenByKey retrieves a token by its key value
	// Returns ErrTokenNotFound if the key is unknown
	GetTokenByKey(ctx context.Context, key string) (*models.AuthToken, error)

	// DeleteUserTokens deletes the user's token, if any
	// Returns number of deleted tokens
	DeleteUserTokens(ctx context.Context, userID string) (int, error)
}
