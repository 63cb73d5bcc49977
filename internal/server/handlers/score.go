package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/internal/server/storage"
	"github.com/iudanet/gamebackend/pkg/api"
)

// ScoreHandler handles score submission and retrieval
type ScoreHandler struct {
	logger *slog.Logger
	scores storage.ScoreStorage
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(logger *slog.Logger, scores storage.ScoreStorage) *ScoreHandler {
	return &ScoreHandler{
		logger: logger,
		scores: scores,
	}
}

// List handles GET /api/v1/scores
// Returns every score record, all users included. Open to
// unauthenticated callers.
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scores, err := h.scores.ListScores(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list scores", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	records := make([]api.ScoreRecord, 0, len(scores))
	for _, score := range scores {
		records = append(records, toScoreRecord(score))
	}

	sendJSON(h.logger, w, records, http.StatusOK)
}

// Submit handles POST /api/v1/scores
// The user field of the body is ignored: the record owner is always
// the authenticated caller. Resubmitting an existing (user, score)
// pair updates that row instead of creating a duplicate.
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	values, err := decodeValues(r)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode score request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	fieldErrors := api.FieldErrors{}
	scoreStr := values.Get("score")

	var value int64
	if scoreStr == "" {
		fieldErrors["score"] = append(fieldErrors["score"], "This field is required.")
	} else {
		value, err = strconv.ParseInt(scoreStr, 10, 64)
		if err != nil {
			fieldErrors["score"] = append(fieldErrors["score"], "A valid integer is required.")
		}
	}

	if len(fieldErrors) > 0 {
		h.logger.WarnContext(ctx, "score validation failed",
			slog.String("user_id", userID),
			slog.String("score", scoreStr))
		sendJSON(h.logger, w, fieldErrors, http.StatusBadRequest)
		return
	}

	now := time.Now()
	stored, err := h.scores.UpsertScore(ctx, &models.Score{
		ID:        uuid.New().String(),
		UserID:    userID,
		Score:     value,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to upsert score", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "score submitted",
		slog.String("user_id", userID),
		slog.Int64("score", value))

	sendJSON(h.logger, w, toScoreRecord(stored), http.StatusCreated)
}

// toScoreRecord converts a score to its wire form
func toScoreRecord(score *models.Score) api.ScoreRecord {
	return api.ScoreRecord{
		ID:        score.ID,
		User:      score.UserID,
		Score:     score.Score,
		CreatedAt: score.CreatedAt,
		UpdatedAt: score.UpdatedAt,
	}
}
