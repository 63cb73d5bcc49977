package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/internal/server/storage"
)

// ListSavegamesByOwner returns all savegames owned by the user
func (s *Storage) ListSavegamesByOwner(ctx context.Context, ownerID string) ([]*models.Savegame, error) {
	query := `
		SELECT id, owner_id, type, name, data, created_at, updated_at
		FROM savegames
		WHERE owner_id = ?
		ORDER BY created_at, id
	`

	return s.querySavegames(ctx, query, ownerID)
}

// ListSavegamesByOwnerAndType returns the user's savegames with an
// exact type tag match
func (s *Storage) ListSavegamesByOwnerAndType(ctx context.Context, ownerID, savegameType string) ([]*models.Savegame, error) {
	query := `
		SELECT id, owner_id, type, name, data, created_at, updated_at
		FROM savegames
		WHERE owner_id = ? AND type = ?
		ORDER BY created_at, id
	`

	return s.querySavegames(ctx, query, ownerID, savegameType)
}

// GetSavegameByID retrieves a savegame by ID alone
func (s *Storage) GetSavegameByID(ctx context.Context, id string) (*models.Savegame, error) {
	query := `
		SELECT id, owner_id, type, name, data, created_at, updated_at
		FROM savegames
		WHERE id = ?
	`

	savegame := &models.Savegame{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&savegame.ID,
		&savegame.OwnerID,
		&savegame.Type,
		&savegame.Name,
		&savegame.Data,
		&savegame.CreatedAt,
		&savegame.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSavegameNotFound
		}
		return nil, fmt.Errorf("failed to get savegame: %w", err)
	}

	return savegame, nil
}

// CreateSavegame stores a new savegame
func (s *Storage) CreateSavegame(ctx context.Context, savegame *models.Savegame) error {
	query := `
		INSERT INTO savegames (id, owner_id, type, name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		savegame.ID,
		savegame.OwnerID,
		savegame.Type,
		savegame.Name,
		savegame.Data,
		savegame.CreatedAt,
		savegame.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert savegame: %w", err)
	}

	return nil
}

// UpdateSavegame overwrites an existing savegame, owner included
func (s *Storage) UpdateSavegame(ctx context.Context, savegame *models.Savegame) error {
	query := `
		UPDATE savegames
		SET owner_id = ?, type = ?, name = ?, data = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		savegame.OwnerID,
		savegame.Type,
		savegame.Name,
		savegame.Data,
		savegame.UpdatedAt,
		savegame.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update savegame: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrSavegameNotFound
	}

	return nil
}

// querySavegames runs a savegame list query
func (s *Storage) querySavegames(ctx context.Context, query string, args ...any) ([]*models.Savegame, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list savegames: %w", err)
	}
	defer rows.Close()

	savegames := make([]*models.Savegame, 0)
	for rows.Next() {
		savegame := &models.Savegame{}
		if err := rows.Scan(
			&savegame.ID,
			&savegame.OwnerID,
			&savegame.Type,
			&savegame.Name,
			&savegame.Data,
			&savegame.CreatedAt,
			&savegame.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan savegame: %w", err)
		}
		savegames = append(savegames, savegame)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate savegames: %w", err)
	}

	return savegames, nil
}
