package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/internal/server/storage"
	"github.com/iudanet/gamebackend/pkg/api"
)

// SavegameHandler handles savegame storage and retrieval
type SavegameHandler struct {
	logger    *slog.Logger
	savegames storage.SavegameStorage
}

// NewSavegameHandler creates a new savegame handler
func NewSavegameHandler(logger *slog.Logger, savegames storage.SavegameStorage) *SavegameHandler {
	return &SavegameHandler{
		logger:    logger,
		savegames: savegames,
	}
}

// List handles GET /api/v1/savegames
// Returns the authenticated caller's savegames
func (h *SavegameHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	savegames, err := h.savegames.ListSavegamesByOwner(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list savegames", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toSavegameRecords(savegames), http.StatusOK)
}

// Save handles POST /api/v1/savegames
// When the body carries an id of an existing savegame that row is
// updated, otherwise a new one is created. The lookup is by id alone,
// not scoped to the caller; the owner field is forced to the caller
// afterwards. The game client depends on this lookup behavior, see
// the authorization note in DESIGN.md before changing it.
func (h *SavegameHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	values, err := decodeValues(r)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode savegame request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	var existing *models.Savegame
	if id := values.Get("id"); id != "" {
		savegame, err := h.savegames.GetSavegameByID(ctx, id)
		if err != nil {
			if !errors.Is(err, storage.ErrSavegameNotFound) {
				h.logger.ErrorContext(ctx, "failed to get savegame", slog.Any("error", err))
				sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
				return
			}
			// Unknown id means create, never a 404
		} else {
			existing = savegame
		}
	}

	savegameType := values.Get("type")

	fieldErrors := api.FieldErrors{}
	if savegameType == "" {
		fieldErrors["type"] = append(fieldErrors["type"], "This field is required.")
	}
	if len(fieldErrors) > 0 {
		h.logger.WarnContext(ctx, "savegame validation failed", slog.String("user_id", userID))
		sendJSON(h.logger, w, fieldErrors, http.StatusBadRequest)
		return
	}

	now := time.Now()
	var record *models.Savegame

	if existing != nil {
		existing.OwnerID = userID // owner forced to the caller
		existing.Type = savegameType
		existing.Name = values.Get("name")
		existing.Data = values.Get("data")
		existing.UpdatedAt = now

		if err := h.savegames.UpdateSavegame(ctx, existing); err != nil {
			h.logger.ErrorContext(ctx, "failed to update savegame", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
		record = existing
	} else {
		record = &models.Savegame{
			ID:        uuid.New().String(),
			OwnerID:   userID,
			Type:      savegameType,
			Name:      values.Get("name"),
			Data:      values.Get("data"),
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := h.savegames.CreateSavegame(ctx, record); err != nil {
			h.logger.ErrorContext(ctx, "failed to create savegame", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	h.logger.InfoContext(ctx, "savegame saved",
		slog.String("user_id", userID),
		slog.String("savegame_id", record.ID),
		slog.String("type", record.Type))

	sendJSON(h.logger, w, toSavegameRecord(record), http.StatusCreated)
}

// Filter handles POST /api/v1/savegames/filter
// A POST used as a read: the game client cannot attach bodies to GET
// requests. Without a SavegameType field the response is an empty
// list, not an error.
func (h *SavegameHandler) Filter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	values, err := decodeValues(r)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode filter request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !hasField(values, "SavegameType") {
		sendJSON(h.logger, w, []api.SavegameRecord{}, http.StatusOK)
		return
	}

	savegames, err := h.savegames.ListSavegamesByOwnerAndType(ctx, userID, values.Get("SavegameType"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to filter savegames", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toSavegameRecords(savegames), http.StatusOK)
}

// toSavegameRecord converts a savegame to its wire form
func toSavegameRecord(savegame *models.Savegame) api.SavegameRecord {
	return api.SavegameRecord{
		ID:        savegame.ID,
		Owner:     savegame.OwnerID,
		Type:      savegame.Type,
		Name:      savegame.Name,
		Data:      savegame.Data,
		CreatedAt: savegame.CreatedAt,
		UpdatedAt: savegame.UpdatedAt,
	}
}

// toSavegameRecords converts a savegame list to its wire form
func toSavegameRecords(savegames []*models.Savegame) []api.SavegameRecord {
	records := make([]api.SavegameRecord, 0, len(savegames))
	for _, savegame := range savegames {
		records = append(records, toSavegameRecord(savegame))
	}
	return records
}
