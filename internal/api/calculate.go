package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/fairload-app/fairload/internal/events"
	"github.com/fairload-app/fairload/internal/family"
	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/weights"
)

const maxBatchSize = 200

type CalcHandler struct {
	store        store.Store
	calculator   *weights.Calculator
	family       *family.Service
	events       events.Client
	batchWorkers int
	logger       *slog.Logger
}

func NewCalcHandler(s store.Store, calc *weights.Calculator, fam *family.Service, ev events.Client, batchWorkers int, logger *slog.Logger) *CalcHandler {
	if batchWorkers <= 0 {
		batchWorkers = 8
	}
	return &CalcHandler{store: s, calculator: calc, family: fam, events: ev, batchWorkers: batchWorkers, logger: logger}
}

type CalculateRequest struct {
	Task       *store.Task         `json:"task"`
	Priorities *weights.Priorities `json:"priorities,omitempty"`
	Profile    *weights.Profile    `json:"profile,omitempty"`
	Version    string              `json:"version,omitempty"`
}

func (h *CalcHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Task == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task is required"})
		return
	}

	result, err := h.calculator.Calculate(r.Context(), req.Task, req.Priorities, req.Profile, req.Version)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	calculationsTotal.WithLabelValues(result.Version, "standard").Inc()
	if h.events != nil {
		err := h.events.Publish(events.SubjectCalcCompleted, events.CalcCompletedEvent{
			TaskID:  result.TaskID,
			Version: result.Version,
			Weight:  result.Weight,
		})
		if err != nil {
			h.logger.Warn("failed to publish calculation event", "task_id", result.TaskID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

type CalculateBatchRequest struct {
	Tasks      []*store.Task       `json:"tasks"`
	Priorities *weights.Priorities `json:"priorities,omitempty"`
	Profile    *weights.Profile    `json:"profile,omitempty"`
	Version    string              `json:"version,omitempty"`
}

type CalculateBatchResponse struct {
	Results []*weights.Result `json:"results"`
	Count   int               `json:"count"`
}

func (h *CalcHandler) CalculateBatch(w http.ResponseWriter, r *http.Request) {
	var req CalculateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Tasks) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tasks are required"})
		return
	}
	if len(req.Tasks) > maxBatchSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "batch too large"})
		return
	}

	results := make([]*weights.Result, len(req.Tasks))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(h.batchWorkers)
	for i, task := range req.Tasks {
		i, task := i, task
		g.Go(func() error {
			result, err := h.calculator.Calculate(ctx, task, req.Priorities, req.Profile, req.Version)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	for _, result := range results {
		calculationsTotal.WithLabelValues(result.Version, "standard").Inc()
	}
	writeJSON(w, http.StatusOK, CalculateBatchResponse{Results: results, Count: len(results)})
}

type EnhancedCalculateRequest struct {
	Task       *store.Task         `json:"task"`
	Tasks      []*store.Task       `json:"tasks,omitempty"`
	FamilyID   string              `json:"family_id"`
	Parent     string              `json:"parent,omitempty"`
	Priorities *weights.Priorities `json:"priorities,omitempty"`
	Version    string              `json:"version,omitempty"`
}

func (h *CalcHandler) CalculateEnhanced(w http.ResponseWriter, r *http.Request) {
	var req EnhancedCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Task == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task is required"})
		return
	}
	if req.FamilyID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "family_id is required"})
		return
	}

	result, err := h.family.EnhancedCalculate(r.Context(), req.Task, req.Priorities, req.FamilyID, req.Parent, req.Version)
	if err != nil {
		writeError(w, err)
		return
	}

	calculationsTotal.WithLabelValues(result.Version, "enhanced").Inc()
	if h.events != nil {
		err := h.events.Publish(events.SubjectFamilyCalc(req.FamilyID), events.CalcCompletedEvent{
			TaskID:   result.TaskID,
			FamilyID: req.FamilyID,
			Version:  result.Version,
			Weight:   result.EnhancedWeight,
			Enhanced: true,
		})
		if err != nil {
			h.logger.Warn("failed to publish calculation event", "task_id", result.TaskID, "family_id", req.FamilyID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

type EnhancedBatchResponse struct {
	Results []*family.EnhancedResult `json:"results"`
	Count   int                      `json:"count"`
}

func (h *CalcHandler) CalculateEnhancedBatch(w http.ResponseWriter, r *http.Request) {
	var req EnhancedCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Tasks) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tasks are required"})
		return
	}
	if len(req.Tasks) > maxBatchSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "batch too large"})
		return
	}
	if req.FamilyID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "family_id is required"})
		return
	}

	results, err := h.family.EnhancedCalculateBatch(r.Context(), req.Tasks, req.Priorities, req.FamilyID, req.Parent, req.Version)
	if err != nil {
		writeError(w, err)
		return
	}

	for _, result := range results {
		calculationsTotal.WithLabelValues(result.Version, "enhanced").Inc()
	}
	writeJSON(w, http.StatusOK, EnhancedBatchResponse{Results: results, Count: len(results)})
}

type BalanceRequest struct {
	FamilyID   string              `json:"family_id,omitempty"`
	Questions  []weights.Question  `json:"questions"`
	Responses  map[string]string   `json:"responses"`
	Priorities *weights.Priorities `json:"priorities,omitempty"`
	Version    string              `json:"version,omitempty"`
}

func (h *CalcHandler) CalculateBalance(w http.ResponseWriter, r *http.Request) {
	var req BalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Questions) == 0 || len(req.Responses) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "questions and responses are required"})
		return
	}

	report := h.calculator.ScoreBalance(r.Context(), req.Questions, req.Responses, req.Priorities, req.Version)
	balanceComputationsTotal.Inc()

	if req.FamilyID != "" {
		result := &store.BalanceResult{
			FamilyID:   req.FamilyID,
			Overall:    report.Overall,
			Categories: report.Categories,
			Unparsed:   report.Unparsed,
			Version:    report.Version,
		}
		if err := h.store.CreateBalanceResult(r.Context(), result); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if h.events != nil {
			err := h.events.Publish(events.SubjectFamilyBalance(req.FamilyID), events.BalanceComputedEvent{
				FamilyID:    req.FamilyID,
				MamaPct:     report.Overall.MamaPct,
				PapaPct:     report.Overall.PapaPct,
				Imbalance:   report.Overall.Imbalance,
				BurnoutRisk: report.Overall.BurnoutRisk,
				Version:     report.Version,
			})
			if err != nil {
				h.logger.Warn("failed to publish balance event", "family_id", req.FamilyID, "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, report)
}
