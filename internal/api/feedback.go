package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fairload-app/fairload/internal/events"
	"github.com/fairload-app/fairload/internal/store"
)

type FeedbackHandler struct {
	store  store.Store
	events events.Client
	logger *slog.Logger
}

func NewFeedbackHandler(s store.Store, ev events.Client, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{store: s, events: ev, logger: logger}
}

type FeedbackRequest struct {
	TaskID           string  `json:"task_id"`
	FamilyID         string  `json:"family_id,omitempty"`
	CalculatedWeight float64 `json:"calculated_weight"`
	SuggestedWeight  float64 `json:"suggested_weight"`
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.TaskID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task_id is required"})
		return
	}
	if req.CalculatedWeight <= 0 || req.SuggestedWeight <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "calculated_weight and suggested_weight are required"})
		return
	}

	fb := &store.WeightFeedback{
		TaskID:           req.TaskID,
		FamilyID:         req.FamilyID,
		CalculatedWeight: req.CalculatedWeight,
		SuggestedWeight:  req.SuggestedWeight,
		Status:           store.FeedbackPending,
	}
	if err := h.store.CreateFeedback(r.Context(), fb); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	feedbackReceivedTotal.Inc()
	if h.events != nil {
		err := h.events.Publish(events.SubjectFeedbackReceived, events.FeedbackReceivedEvent{
			FeedbackID: fb.ID.String(),
			TaskID:     fb.TaskID,
			FamilyID:   fb.FamilyID,
			Adjustment: fb.Adjustment(),
		})
		if err != nil {
			h.logger.Warn("failed to publish feedback event", "task_id", fb.TaskID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, fb)
}
