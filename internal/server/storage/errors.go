package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that auth token was not found
	ErrTokenNotFound = errors.New("auth token not found")

	// ErrScoreNotFound indicates that score was not found
	ErrScoreNotFound = errors.New("score not found")

	// ErrSavegameNotFound indicates that savegame was not found
	ErrSavegameNotFound = errors.New("savegame not found")
)
