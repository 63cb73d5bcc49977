package models

import "time"

// User represents a game account
type User struct {
	LastLogin    *time.Time `json:"last_login,omitempty"`
	ID           string     `json:"id"`            // UUID
	Username     string     `json:"username"`      // unique username
	Email        string     `json:"email"`         // contact email, matched on account deletion
	PasswordHash string     `json:"-"`             // bcrypt hash, never serialized
	CreatedAt    time.Time  `json:"created_at"`
}

// AuthToken is the opaque authentication token, at most one per user.
// The key is handed out verbatim to the game client and reused on
// every subsequent credential validation.
type AuthToken struct {
	Key       string    `json:"key"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
