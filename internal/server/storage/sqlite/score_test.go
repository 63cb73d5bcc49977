package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/internal/server/storage"
)

func TestScoreStorage_UpsertScore_Create(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	score := &models.Score{
		ID:        uuid.New().String(),
		UserID:    userID,
		Score:     42,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	stored, err := s.UpsertScore(ctx, score)
	require.NoError(t, err)
	assert.Equal(t, score.ID, stored.ID)
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, int64(42), stored.Score)
}

func TestScoreStorage_UpsertScore_NoDuplicate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	first := &models.Score{
		ID:        uuid.New().String(),
		UserID:    userID,
		Score:     42,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	stored1, err := s.UpsertScore(ctx, first)
	require.NoError(t, err)

	// Same (user, value) pair with a fresh candidate ID updates the
	// existing row instead of inserting a second one
	second := &models.Score{
		ID:        uuid.New().String(),
		UserID:    userID,
		Score:     42,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now().Add(time.Second),
	}
	stored2, err := s.UpsertScore(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, stored1.ID, stored2.ID)

	scores, err := s.ListScores(ctx)
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}

func TestScoreStorage_UpsertScore_DistinctValues(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	for _, value := range []int64{10, 20, 30} {
		_, err := s.UpsertScore(ctx, &models.Score{
			ID:        uuid.New().String(),
			UserID:    userID,
			Score:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	scores, err := s.ListScores(ctx)
	require.NoError(t, err)
	assert.Len(t, scores, 3)
}

func TestScoreStorage_GetScoreByUserAndValue(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	_, err := s.GetScoreByUserAndValue(ctx, userID, 7)
	assert.ErrorIs(t, err, storage.ErrScoreNotFound)

	stored, err := s.UpsertScore(ctx, &models.Score{
		ID:        uuid.New().String(),
		UserID:    userID,
		Score:     7,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	retrieved, err := s.GetScoreByUserAndValue(ctx, userID, 7)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, retrieved.ID)
}

func TestScoreStorage_ListScores_Empty(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	scores, err := s.ListScores(ctx)
	require.NoError(t, err)
	assert.NotNil(t, scores)
	assert.Empty(t, scores)
}

func TestScoreStorage_ListScores_AllUsers(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user1 := createTestUser(t, ctx, s)
	user2 := createTestUser(t, ctx, s)

	for _, userID := range []string{user1, user2} {
		_, err := s.UpsertScore(ctx, &models.Score{
			ID:        uuid.New().String(),
			UserID:    userID,
			Score:     99,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	// Listing is not scoped to a single user
	scores, err := s.ListScores(ctx)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}
