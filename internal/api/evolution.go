package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairload-app/fairload/internal/evolution"
	"github.com/fairload-app/fairload/internal/store"
)

type EvolutionHandler struct {
	store  store.Store
	engine *evolution.Engine
}

func NewEvolutionHandler(s store.Store, eng *evolution.Engine) *EvolutionHandler {
	return &EvolutionHandler{store: s, engine: eng}
}

type ProcessFeedbackResponse struct {
	Processed                int `json:"processed"`
	Skipped                  int `json:"skipped"`
	GlobalAdjustmentsApplied int `json:"global_adjustments_applied"`
	FamilyAdjustmentsApplied int `json:"family_adjustments_applied"`
}

func (h *EvolutionHandler) ProcessFeedback(w http.ResponseWriter, r *http.Request) {
	batch, err := h.engine.ProcessFeedbackBatch(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := ProcessFeedbackResponse{Processed: batch.Processed, Skipped: batch.Skipped}
	if len(batch.Global) > 0 {
		resp.GlobalAdjustmentsApplied = h.engine.ApplyGlobalAdjustments(r.Context(), batch.Global)
	}
	if len(batch.Families) > 0 {
		resp.FamilyAdjustmentsApplied = h.engine.ApplyFamilyAdjustments(r.Context(), batch.Families)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *EvolutionHandler) RunCycle(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.RunEvolutionCycle(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type CorrelationsResponse struct {
	Correlations []evolution.Correlation `json:"correlations"`
	Count        int                     `json:"count"`
}

func (h *EvolutionHandler) ProfileCorrelations(w http.ResponseWriter, r *http.Request) {
	correlations, err := h.engine.AnalyzeProfileCorrelations(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if correlations == nil {
		correlations = []evolution.Correlation{}
	}
	writeJSON(w, http.StatusOK, CorrelationsResponse{Correlations: correlations, Count: len(correlations)})
}

type TaskEvolutionResponse struct {
	TaskID            string                   `json:"task_id"`
	CurrentWeight     float64                  `json:"current_weight"`
	AdjustmentHistory []store.WeightAdjustment `json:"adjustment_history"`
	RecentFeedback    []*store.WeightFeedback  `json:"recent_feedback"`
}

func (h *EvolutionHandler) TaskHistory(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")
	task, err := h.store.GetTask(r.Context(), taskID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	feedback, err := h.store.GetFeedbackByTask(r.Context(), taskID, 20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	history := task.AdjustmentHistory
	if history == nil {
		history = []store.WeightAdjustment{}
	}
	if feedback == nil {
		feedback = []*store.WeightFeedback{}
	}
	writeJSON(w, http.StatusOK, TaskEvolutionResponse{
		TaskID:            taskID,
		CurrentWeight:     task.BaseWeight,
		AdjustmentHistory: history,
		RecentFeedback:    feedback,
	})
}

type FamilyEvolutionResponse struct {
	FamilyID            string                              `json:"family_id"`
	TaskAdjustments     map[string]store.TaskAdjustment     `json:"task_adjustments"`
	CategoryAdjustments map[string]store.CategoryAdjustment `json:"category_adjustments"`
	FeedbackHistory     []*store.WeightFeedback             `json:"feedback_history"`
}

func (h *EvolutionHandler) FamilyHistory(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	profile, err := h.store.GetWeightProfile(r.Context(), familyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no weight profile for family"})
		return
	}

	feedback, err := h.store.GetFeedbackByFamily(r.Context(), familyID, 20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if feedback == nil {
		feedback = []*store.WeightFeedback{}
	}

	writeJSON(w, http.StatusOK, FamilyEvolutionResponse{
		FamilyID:            familyID,
		TaskAdjustments:     profile.TaskAdjustments,
		CategoryAdjustments: profile.CategoryAdjustments,
		FeedbackHistory:     feedback,
	})
}
