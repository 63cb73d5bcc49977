package storage

import (
	"context"

	"github.com/iudanet/gamebackend/internal/models"
)

// SavegameStorage defines interface for savegame persistence
type SavegameStorage interface {
	// ListSavegamesByOwner returns all savegames owned by the user,
	// oldest first
	ListSavegamesByOwner(ctx context.Context, ownerID string) ([]*models.Savegame, error)

	// ListSavegamesByOwnerAndType returns the user's savegames with
	// an exact type tag match
	ListSavegamesByOwnerAndType(ctx context.Context, ownerID, savegameType string) ([]*models.Savegame, error)

	// GetSavegameByID retrieves a savegame by ID alone, regardless of
	// owner. Returns ErrSavegameNotFound if it doesn't exist
	GetSavegameByID(ctx context.Context, id string) (*models.Savegame, error)

	// CreateSavegame stores a new savegame
	CreateSavegame(ctx context.Context, savegame *models.Savegame) error

	// UpdateSavegame overwrites an existing savegame, including its
	// owner field. Returns ErrSavegameNotFound if it doesn't exist
	UpdateSavegame(ctx context.Context, savegame *models.Savegame) error
}
