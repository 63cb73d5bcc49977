package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/gamebackend/internal/server/handlers"
	"github.com/iudanet/gamebackend/internal/server/storage"
)

// AuthMiddleware creates middleware that authenticates requests by
// opaque token. The game client sends "Authorization: Token <key>".
func AuthMiddleware(logger *slog.Logger, tokens storage.TokenStorage, users storage.UserStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header")
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			// Expected format: "Token <key>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") {
				logger.Warn("Invalid Authorization header format", "header", authHeader)
				http.Error(w, "Unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			token, err := tokens.GetTokenByKey(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, storage.ErrTokenNotFound) {
					logger.Warn("Unknown auth token")
					http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
					return
				}
				logger.Error("Failed to look up auth token", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			user, err := users.GetUserByID(r.Context(), token.UserID)
			if err != nil {
				// Token rows cascade on user deletion, so a dangling
				// token means storage trouble rather than a bad key
				logger.Error("Failed to load token owner", "error", err, "user_id", token.UserID)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := handlers.WithUser(r.Context(), user.ID, user.Username)

			logger.Debug("User authenticated", "user_id", user.ID, "username", user.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
