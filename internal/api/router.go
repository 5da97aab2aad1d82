package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairload-app/fairload/internal/burnout"
	"github.com/fairload-app/fairload/internal/culture"
	"github.com/fairload-app/fairload/internal/events"
	"github.com/fairload-app/fairload/internal/evolution"
	"github.com/fairload-app/fairload/internal/family"
	"github.com/fairload-app/fairload/internal/lifestage"
	"github.com/fairload-app/fairload/internal/relstyle"
	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/version"
	"github.com/fairload-app/fairload/internal/weights"
)

// Deps carries everything the router wires into handlers. Events and
// Evolution may be nil; the affected endpoints degrade rather than
// panic.
type Deps struct {
	Store        store.Store
	Events       events.Client
	Registry     *version.Registry
	Calculator   *weights.Calculator
	Family       *family.Service
	LifeStage    *lifestage.Service
	Culture      *culture.Service
	Relationship *relstyle.Service
	Burnout      *burnout.Service
	Evolution    *evolution.Engine

	AdminToken         string
	RateLimitPerMinute int
	BatchWorkers       int

	Logger *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(d.Logger))
	if d.RateLimitPerMinute <= 0 {
		d.RateLimitPerMinute = 120
	}
	r.Use(RateLimitMiddleware(d.RateLimitPerMinute))

	calc := NewCalcHandler(d.Store, d.Calculator, d.Family, d.Events, d.BatchWorkers, d.Logger)
	versions := NewVersionsHandler(d.Store, d.Registry)
	feedback := NewFeedbackHandler(d.Store, d.Events, d.Logger)
	fam := NewFamilyHandler(d.Family)
	analysis := NewAnalysisHandler(d.LifeStage, d.Culture, d.Relationship)
	bo := NewBurnoutHandler(d.Burnout)
	evo := NewEvolutionHandler(d.Store, d.Evolution)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calculate", calc.Calculate)
		r.Post("/calculate/batch", calc.CalculateBatch)
		r.Post("/calculate/enhanced", calc.CalculateEnhanced)
		r.Post("/calculate/enhanced/batch", calc.CalculateEnhancedBatch)
		r.Post("/calculate/balance", calc.CalculateBalance)

		r.Get("/versions", versions.List)
		r.Get("/history/{task_id}", versions.History)

		r.Post("/feedback", feedback.Create)

		r.Get("/family/{id}/profile", fam.Profile)
		r.Put("/family/{id}/adjustments", fam.UpdateAdjustments)
		r.Get("/family/{id}/insights", fam.Insights)

		r.Post("/lifestage/analyze/{id}", analysis.LifeStageAnalyze)
		r.Get("/lifestage/latest/{id}", analysis.LifeStageLatest)
		r.Get("/lifestage/recommendations/{id}", analysis.LifeStageRecommendations)

		r.Post("/culture/analyze/{id}", analysis.CultureAnalyze)
		r.Get("/culture/latest/{id}", analysis.CultureLatest)
		r.Get("/culture/suggestions/{id}/{topic}", analysis.CultureSuggestions)

		r.Post("/relationship/analyze/{id}", analysis.RelationshipAnalyze)
		r.Get("/relationship/latest/{id}", analysis.RelationshipLatest)
		r.Get("/relationship/recommendations/{id}", analysis.RelationshipRecommendations)

		r.Post("/burnout/assess/{id}", bo.Assess)
		r.Get("/burnout/latest/{id}", bo.Latest)
		r.Get("/burnout/history/{id}", bo.History)
		r.Get("/burnout/alert/{id}", bo.Alert)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(d.AdminToken))
			r.Post("/versions", versions.Register)
			r.Post("/evolution/process-feedback", evo.ProcessFeedback)
			r.Post("/evolution/cycle", evo.RunCycle)
			r.Get("/evolution/profile-correlations", evo.ProfileCorrelations)
			r.Get("/evolution/task/{id}", evo.TaskHistory)
			r.Get("/evolution/family/{id}", evo.FamilyHistory)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if strings.Contains(err.Error(), "not found") {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
