package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fairload-app/fairload/internal/burnout"
	"github.com/fairload-app/fairload/internal/store"
)

type BurnoutHandler struct {
	burnout *burnout.Service
}

func NewBurnoutHandler(bo *burnout.Service) *BurnoutHandler {
	return &BurnoutHandler{burnout: bo}
}

func (h *BurnoutHandler) Assess(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.burnout.Assess(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func (h *BurnoutHandler) Latest(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.burnout.Latest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

type BurnoutHistoryResponse struct {
	FamilyID    string                     `json:"family_id"`
	Assessments []*store.BurnoutAssessment `json:"assessments"`
}

func (h *BurnoutHandler) History(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	history, err := h.burnout.History(r.Context(), familyID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []*store.BurnoutAssessment{}
	}
	writeJSON(w, http.StatusOK, BurnoutHistoryResponse{FamilyID: familyID, Assessments: history})
}

type BurnoutAlertResponse struct {
	FamilyID string         `json:"family_id"`
	HasAlert bool           `json:"has_alert"`
	Alert    *burnout.Alert `json:"alert,omitempty"`
}

func (h *BurnoutHandler) Alert(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	alert, err := h.burnout.CheckAlert(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BurnoutAlertResponse{
		FamilyID: familyID,
		HasAlert: alert != nil,
		Alert:    alert,
	})
}
