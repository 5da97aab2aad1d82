package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairload-app/fairload/internal/family"
	"github.com/fairload-app/fairload/internal/store"
)

type FamilyHandler struct {
	family *family.Service
}

func NewFamilyHandler(fam *family.Service) *FamilyHandler {
	return &FamilyHandler{family: fam}
}

func (h *FamilyHandler) Profile(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	profile, err := h.family.Profile(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type UpdateAdjustmentsRequest struct {
	TaskAdjustments     map[string]store.TaskAdjustment     `json:"task_adjustments,omitempty"`
	CategoryAdjustments map[string]store.CategoryAdjustment `json:"category_adjustments,omitempty"`
}

func (h *FamilyHandler) UpdateAdjustments(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	var req UpdateAdjustmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.TaskAdjustments) == 0 && len(req.CategoryAdjustments) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one adjustment is required"})
		return
	}

	profile, err := h.family.UpdateAdjustments(r.Context(), familyID, req.TaskAdjustments, req.CategoryAdjustments)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *FamilyHandler) Insights(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	insights, err := h.family.Insights(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}
