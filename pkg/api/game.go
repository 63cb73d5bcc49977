package api

import "time"

// ScoreRecord represents one submitted score on the wire.
type ScoreRecord struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Score     int64     `json:"score"`
}

// SavegameRecord represents one savegame on the wire. Data carries the
// client-encoded payload and is opaque to the server.
type SavegameRecord struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Data      string    `json:"data"`
}
