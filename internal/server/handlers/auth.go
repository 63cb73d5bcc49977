package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/internal/server/storage"
	"github.com/iudanet/gamebackend/internal/validation"
	"github.com/iudanet/gamebackend/pkg/api"
)

// deleteUserMessage is intentionally generic: a failed lookup and a
// wrong password produce the same response so callers cannot probe
// which accounts exist.
const deleteUserMessage = "Could not find that user"

// AuthHandler handles account and token requests
type AuthHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens storage.TokenStorage
}

// NewAuthHandler creates a new handler for account and token requests
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, tokens storage.TokenStorage) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// Register handles POST /api/v1/users/register
// Creates a new game account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	values, err := decodeValues(r)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	username := values.Get("username")
	email := values.Get("email")
	password := values.Get("password")

	fieldErrors := api.FieldErrors{}
	if err := validation.ValidateUsername(username); err != nil {
		fieldErrors["username"] = append(fieldErrors["username"], err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		fieldErrors["email"] = append(fieldErrors["email"], err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		fieldErrors["password"] = append(fieldErrors["password"], err.Error())
	}

	if len(fieldErrors) > 0 {
		h.logger.WarnContext(ctx, "register validation failed", slog.String("username", username))
		sendJSON(h.logger, w, fieldErrors, http.StatusBadRequest)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now(),
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", username))
			fieldErrors := api.FieldErrors{
				"username": {"A user with that username already exists."},
			}
			sendJSON(h.logger, w, fieldErrors, http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", username),
		slog.String("user_id", user.ID))

	resp := api.UserRecord{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Delete handles POST /api/v1/users/delete
// Validates credentials and removes the account. Lookup failure and
// password mismatch both collapse to the same generic 400.
func (h *AuthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	values, err := decodeValues(r)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode delete request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	username := values.Get("username")
	email := values.Get("email")
	password := values.Get("password")

	user, err := h.users.GetUserByUsernameAndEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "delete failed: user not found", slog.String("username", username))
			sendError(h.logger, w, deleteUserMessage, http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		h.logger.WarnContext(ctx, "delete failed: invalid password", slog.String("username", username))
		sendError(h.logger, w, deleteUserMessage, http.StatusBadRequest)
		return
	}

	// Revoke tokens explicitly; the FK cascade on the user row is the
	// backstop, not the mechanism
	revoked, err := h.tokens.DeleteUserTokens(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke user tokens", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.users.DeleteUser(ctx, user.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user deleted",
		slog.Int("tokens_revoked", revoked),
		slog.String("username", username),
		slog.String("user_id", user.ID))

	w.WriteHeader(http.StatusNoContent)
}

// Token handles POST /api/v1/token
// Validates credentials and returns the user's opaque token, creating
// it on first use. Repeat calls return the identical key.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	values, err := decodeValues(r)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode token request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	fieldErrors := api.FieldErrors{}
	if values.Get("username") == "" {
		fieldErrors["username"] = append(fieldErrors["username"], "This field is required.")
	}
	if values.Get("password") == "" {
		fieldErrors["password"] = append(fieldErrors["password"], "This field is required.")
	}
	if len(fieldErrors) > 0 {
		sendJSON(h.logger, w, fieldErrors, http.StatusBadRequest)
		return
	}

	user, ok := h.validateCredentials(ctx, w, values)
	if !ok {
		return
	}

	key, err := generateTokenKey()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token key", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.GetOrCreateToken(ctx, &models.AuthToken{
		Key:       key,
		UserID:    user.ID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get or create token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Non-critical, log and continue
	if err := h.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "token issued",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.TokenResponse{Token: token.Key}, http.StatusOK)
}

// validateCredentials resolves the user and checks the password,
// writing the serializer-style error response on failure.
func (h *AuthHandler) validateCredentials(ctx context.Context, w http.ResponseWriter, values url.Values) (*models.User, bool) {
	username := values.Get("username")

	user, err := h.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "token request: user not found", slog.String("username", username))
			h.sendCredentialsError(w)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(values.Get("password"))); err != nil {
		h.logger.WarnContext(ctx, "token request: invalid password", slog.String("username", username))
		h.sendCredentialsError(w)
		return nil, false
	}

	return user, true
}

// sendCredentialsError writes the credential validation failure body
func (h *AuthHandler) sendCredentialsError(w http.ResponseWriter) {
	fieldErrors := api.FieldErrors{
		api.NonFieldErrorsKey: {"Unable to log in with provided credentials."},
	}
	sendJSON(h.logger, w, fieldErrors, http.StatusBadRequest)
}

// generateTokenKey creates a new random token key: 20 random bytes,
// hex-encoded to 40 characters.
func generateTokenKey() (string, error) {
	keyBytes := make([]byte, 20)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", fmt.Errorf("failed to generate random key: %w", err)
	}

	return hex.EncodeToString(keyBytes), nil
}
