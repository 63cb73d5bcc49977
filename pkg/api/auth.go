package api

import "time"

// RegisterRequest represents a request to register a new game account.
// Bodies may arrive as JSON or as form data from the game client.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRecord is the serialized account returned on successful registration.
// The password hash is never included.
type UserRecord struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
}

// DeleteUserRequest represents a request to delete an account.
// All three fields must match the stored account.
type DeleteUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRequest represents a request for an authentication token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the opaque token key. The same key is returned
// on every successful request for the same account.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents a non-validation error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FieldErrors is the serializer-style validation error body: field name
// to list of messages. Errors that are not tied to a single field go
// under "non_field_errors".
type FieldErrors map[string][]string

// NonFieldErrorsKey is the key used for errors spanning multiple fields.
const NonFieldErrorsKey = "non_field_errors"
