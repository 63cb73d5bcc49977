package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/pkg/api"
)

func authedRequest(req *http.Request, userID string) *http.Request {
	return req.WithContext(WithUser(req.Context(), userID, "player"))
}

func TestScoreHandler_List(t *testing.T) {
	scores := &mockScoreStorage{
		scores: []*models.Score{
			{ID: uuid.New().String(), UserID: "user-a", Score: 10, CreatedAt: time.Now(), UpdatedAt: time.Now()},
			{ID: uuid.New().String(), UserID: "user-b", Score: 20, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		},
	}
	handler := NewScoreHandler(testLogger(), scores)

	// No authentication needed for reads
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scores", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var records []api.ScoreRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, "user-a", records[0].User)
	assert.Equal(t, int64(20), records[1].Score)
}

func TestScoreHandler_List_Empty(t *testing.T) {
	handler := NewScoreHandler(testLogger(), &mockScoreStorage{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scores", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestScoreHandler_Submit_Create(t *testing.T) {
	scores := &mockScoreStorage{}
	handler := NewScoreHandler(testLogger(), scores)

	req := authedRequest(jsonRequest(t, http.MethodPost, "/api/v1/scores", map[string]int{"score": 42}), "user-7")
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var record api.ScoreRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&record))
	assert.Equal(t, "user-7", record.User)
	assert.Equal(t, int64(42), record.Score)
	require.Len(t, scores.scores, 1)
}

func TestScoreHandler_Submit_Resubmit_NoDuplicate(t *testing.T) {
	scores := &mockScoreStorage{}
	handler := NewScoreHandler(testLogger(), scores)

	submit := func() api.ScoreRecord {
		req := authedRequest(jsonRequest(t, http.MethodPost, "/api/v1/scores", map[string]int{"score": 42}), "user-7")
		w := httptest.NewRecorder()
		handler.Submit(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var record api.ScoreRecord
		require.NoError(t, json.NewDecoder(w.Body).Decode(&record))
		return record
	}

	first := submit()
	second := submit()

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, scores.scores, 1)
}

func TestScoreHandler_Submit_OwnerForced(t *testing.T) {
	scores := &mockScoreStorage{}
	handler := NewScoreHandler(testLogger(), scores)

	// A caller-supplied user field is ignored
	body := map[string]any{"user": "someone-else", "score": 42}
	req := authedRequest(jsonRequest(t, http.MethodPost, "/api/v1/scores", body), "user-7")
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var record api.ScoreRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&record))
	assert.Equal(t, "user-7", record.User)
}

func TestScoreHandler_Submit_ValidationErrors(t *testing.T) {
	tests := []struct {
		body map[string]any
		name string
	}{
		{name: "missing score", body: map[string]any{}},
		{name: "non-numeric score", body: map[string]any{"score": "not-a-number"}},
		{name: "float score", body: map[string]any{"score": "1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := &mockScoreStorage{}
			handler := NewScoreHandler(testLogger(), scores)

			req := authedRequest(jsonRequest(t, http.MethodPost, "/api/v1/scores", tt.body), "user-7")
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			fieldErrors := decodeFieldErrors(t, w.Body)
			assert.Contains(t, fieldErrors, "score")
			assert.Empty(t, scores.scores)
		})
	}
}

func TestScoreHandler_Submit_FormBody(t *testing.T) {
	scores := &mockScoreStorage{}
	handler := NewScoreHandler(testLogger(), scores)

	req := authedRequest(formRequest(t, http.MethodPost, "/api/v1/scores", url.Values{
		"score": {"1337"},
	}), "user-7")
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, scores.scores, 1)
	assert.Equal(t, int64(1337), scores.scores[0].Score)
}

func TestScoreHandler_Submit_Unauthenticated(t *testing.T) {
	handler := NewScoreHandler(testLogger(), &mockScoreStorage{})

	req := jsonRequest(t, http.MethodPost, "/api/v1/scores", map[string]int{"score": 42})
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
