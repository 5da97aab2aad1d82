package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairload-app/fairload/internal/culture"
	"github.com/fairload-app/fairload/internal/lifestage"
	"github.com/fairload-app/fairload/internal/relstyle"
)

// AnalysisHandler exposes the three family-analysis systems. Analyze
// endpoints recompute and persist a fresh snapshot; latest endpoints
// serve the cached one, recomputing only when none exists.
type AnalysisHandler struct {
	lifestage    *lifestage.Service
	culture      *culture.Service
	relationship *relstyle.Service
}

func NewAnalysisHandler(ls *lifestage.Service, cu *culture.Service, rs *relstyle.Service) *AnalysisHandler {
	return &AnalysisHandler{lifestage: ls, culture: cu, relationship: rs}
}

func (h *AnalysisHandler) LifeStageAnalyze(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.lifestage.Analyze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AnalysisHandler) LifeStageLatest(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.lifestage.Latest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AnalysisHandler) LifeStageRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.lifestage.Recommend(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *AnalysisHandler) CultureAnalyze(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.culture.Analyze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AnalysisHandler) CultureLatest(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.culture.Latest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AnalysisHandler) CultureSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.culture.Suggest(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "topic"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *AnalysisHandler) RelationshipAnalyze(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.relationship.Analyze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AnalysisHandler) RelationshipLatest(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.relationship.Latest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AnalysisHandler) RelationshipRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.relationship.Recommend(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
