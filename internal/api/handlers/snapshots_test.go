package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carpool-planner/internal/adapters/snapshot"
	"carpool-planner/internal/api/dto"
)

func newSnapshotHandler() *SnapshotHandler {
	return &SnapshotHandler{Store: snapshot.NewMemoryStore(), Log: zap.NewNop()}
}

func TestSnapshotSaveAndLoad(t *testing.T) {
	h := newSnapshotHandler()

	req := httptest.NewRequest(http.MethodPost, "/snapshots",
		strings.NewReader(`{"id": "session-1", "document": {"plans": []}}`))
	rec := httptest.NewRecorder()

	h.Save(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved dto.SaveSnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.Equal(t, "session-1", saved.ID)

	req = httptest.NewRequest(http.MethodGet, "/snapshots/session-1", nil)
	rec = httptest.NewRecorder()

	h.Load(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var loaded dto.SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	require.Equal(t, "session-1", loaded.ID)
	require.JSONEq(t, `{"plans": []}`, string(loaded.Document))
}

func TestSnapshotSaveGeneratesID(t *testing.T) {
	h := newSnapshotHandler()

	req := httptest.NewRequest(http.MethodPost, "/snapshots",
		strings.NewReader(`{"document": {"plans": []}}`))
	rec := httptest.NewRecorder()

	h.Save(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved dto.SaveSnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)
}

func TestSnapshotSaveRequiresDocument(t *testing.T) {
	h := newSnapshotHandler()

	req := httptest.NewRequest(http.MethodPost, "/snapshots", strings.NewReader(`{"id": "x"}`))
	rec := httptest.NewRecorder()

	h.Save(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshotLoadNotFound(t *testing.T) {
	h := newSnapshotHandler()

	req := httptest.NewRequest(http.MethodGet, "/snapshots/missing", nil)
	rec := httptest.NewRecorder()

	h.Load(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapshotLoadRequiresID(t *testing.T) {
	h := newSnapshotHandler()

	req := httptest.NewRequest(http.MethodGet, "/snapshots/", nil)
	rec := httptest.NewRecorder()

	h.Load(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
