package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/version"
)

type VersionsHandler struct {
	store    store.Store
	registry *version.Registry
}

func NewVersionsHandler(s store.Store, reg *version.Registry) *VersionsHandler {
	return &VersionsHandler{store: s, registry: reg}
}

type VersionsResponse struct {
	Versions []*store.CalcVersion `json:"versions"`
	Latest   string               `json:"latest"`
}

func (h *VersionsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionsResponse{
		Versions: h.registry.List(r.Context()),
		Latest:   h.registry.Latest(r.Context()),
	})
}

func (h *VersionsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var info store.CalcVersion
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.registry.Register(r.Context(), &info); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, &info)
}

type HistoryResponse struct {
	TaskID  string                `json:"task_id"`
	Entries []*store.CalcLogEntry `json:"entries"`
}

func (h *VersionsHandler) History(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "task_id")
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.store.GetCalcLog(r.Context(), taskID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []*store.CalcLogEntry{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{TaskID: taskID, Entries: entries})
}
