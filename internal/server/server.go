// Package server wires the HTTP routes and middleware chain for the
// game backend API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/gamebackend/internal/server/handlers"
	"github.com/iudanet/gamebackend/internal/server/middleware"
	"github.com/iudanet/gamebackend/internal/server/storage"
)

// Paths exposed by the API
const (
	HealthPath         = "/api/v1/health"
	ScoresPath         = "/api/v1/scores"
	RegisterPath       = "/api/v1/users/register"
	DeleteUserPath     = "/api/v1/users/delete"
	TokenPath          = "/api/v1/token"
	SavegamesPath      = "/api/v1/savegames"
	SavegameFilterPath = "/api/v1/savegames/filter"
)

// Options controls router construction
type Options struct {
	Version         string
	RateLimit       int
	RateLimitWindow time.Duration
}

// Store bundles the persistence interfaces the router depends on
type Store interface {
	storage.UserStorage
	storage.TokenStorage
	storage.ScoreStorage
	storage.SavegameStorage
	handlers.Pinger
}

// NewRouter builds the complete handler chain. Every response passes
// through the status rewrite: the wire status is always 200 and the
// real status travels in the REAL_STATUS header.
func NewRouter(logger *slog.Logger, store Store, opts Options) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, store, store)
	scoreHandler := handlers.NewScoreHandler(logger, store)
	savegameHandler := handlers.NewSavegameHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store, opts.Version)

	requireAuth := middleware.AuthMiddleware(logger, store, store)

	mux := http.NewServeMux()

	mux.HandleFunc("GET "+HealthPath, healthHandler.Health)

	// Score reads are open, writes need a token
	mux.HandleFunc("GET "+ScoresPath, scoreHandler.List)
	mux.Handle("POST "+ScoresPath, requireAuth(http.HandlerFunc(scoreHandler.Submit)))

	mux.HandleFunc("POST "+RegisterPath, authHandler.Register)
	mux.HandleFunc("POST "+DeleteUserPath, authHandler.Delete)
	mux.HandleFunc("POST "+TokenPath, authHandler.Token)

	mux.Handle("GET "+SavegamesPath, requireAuth(http.HandlerFunc(savegameHandler.List)))
	mux.Handle("POST "+SavegamesPath, requireAuth(http.HandlerFunc(savegameHandler.Save)))
	mux.Handle("POST "+SavegameFilterPath, requireAuth(http.HandlerFunc(savegameHandler.Filter)))

	var handler http.Handler = mux

	// The token endpoint stays unthrottled so clients can always
	// re-authenticate
	if opts.RateLimit > 0 {
		handler = middleware.RateLimitWithExempt(opts.RateLimit, opts.RateLimitWindow, logger, []string{TokenPath})(handler)
	}

	handler = middleware.LoggingWithSkip(logger, []string{HealthPath})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	handler = middleware.UnityStatusMiddleware()(handler)

	return handler
}
