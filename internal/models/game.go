package models

import "time"

// Score represents one submitted score. At most one row exists per
// (user, score value) pair; resubmitting the same pair updates the
// existing row instead of duplicating it.
type Score struct {
	ID        string    `json:"id"`      // UUID
	UserID    string    `json:"user_id"` // owning user
	Score     int64     `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Savegame represents one stored savegame. The payload is opaque to
// the server; Type is a client-chosen tag used for filtered listing.
type Savegame struct {
	ID        string    `json:"id"`       // UUID
	OwnerID   string    `json:"owner_id"` // owning user
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
