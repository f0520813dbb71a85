package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carpool-planner/internal/api/dto"
	"carpool-planner/internal/ports"
)

type SnapshotHandler struct {
	Store ports.SnapshotStore
	Log   *zap.Logger
}

// Save stores a plan document under a client-supplied or generated id so a
// session can be reloaded later.
func (h *SnapshotHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SaveSnapshotRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(h.Log, w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Document) == 0 {
		writeError(h.Log, w, r, http.StatusBadRequest, "document is required")
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	if err := h.Store.Save(r.Context(), id, req.Document); err != nil {
		h.Log.Error("save snapshot failed", zap.String("id", id), zap.Error(err))
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusCreated, dto.SaveSnapshotResponse{ID: id})
}

// Load returns a previously saved plan document by id.
func (h *SnapshotHandler) Load(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/snapshots/")
	if id == "" || strings.Contains(id, "/") {
		writeError(h.Log, w, r, http.StatusBadRequest, "snapshot id is required")
		return
	}

	doc, err := h.Store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrSnapshotNotFound) {
			writeError(h.Log, w, r, http.StatusNotFound, "snapshot not found")
			return
		}
		h.Log.Error("load snapshot failed", zap.String("id", id), zap.Error(err))
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.SnapshotResponse{ID: id, Document: doc})
}
