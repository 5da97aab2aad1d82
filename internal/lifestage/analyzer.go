// Package lifestage derives family life-stage context from children's
// ages and adjusts task weights for the stages and transition windows
// the family is in.
package lifestage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/fairload-app/fairload/internal/store"
)

// ChildStage is one child's resolved life stage.
type ChildStage struct {
	Name       string  `json:"name,omitempty"`
	Age        float64 `json:"age"`
	Stage      string  `json:"stage"`
	StageRange string  `json:"stage_range,omitempty"`
}

// Transition is one active transition window.
type Transition struct {
	Type        string `json:"type"`
	ChildName   string `json:"child_name,omitempty"`
	Description string `json:"description"`
	Intensity   string `json:"intensity"`
}

// Contributor records which child or transition pushed a task multiplier.
type Contributor struct {
	ChildName  string  `json:"child_name,omitempty"`
	Stage      string  `json:"stage,omitempty"`
	Transition string  `json:"transition,omitempty"`
	Multiplier float64 `json:"multiplier"`
}

// TaskMultiplier is the merged multiplier for one named task. When
// several stages or transitions touch the same task, the single value
// farthest from 1.0 wins; contributors accumulate regardless.
type TaskMultiplier struct {
	Multiplier   float64       `json:"multiplier"`
	Contributors []Contributor `json:"contributors,omitempty"`
}

// Adjustments is the full weight-adjustment set for a family.
type Adjustments struct {
	Tasks      map[string]TaskMultiplier `json:"task_adjustments"`
	Categories map[string]float64        `json:"category_adjustments"`
}

// Analysis is the persisted outcome of one life-stage run.
type Analysis struct {
	FamilyID    string       `json:"family_id"`
	HasChildren bool         `json:"has_children"`
	ChildCount  int          `json:"child_count,omitempty"`
	Stages      []ChildStage `json:"life_stages,omitempty"`
	Transitions []Transition `json:"transitions,omitempty"`
	Adjustments Adjustments  `json:"weight_adjustments"`
	AnalyzedAt  time.Time    `json:"analyzed_at"`
}

// StageNames returns the distinct stage labels across children.
func (a *Analysis) StageNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range a.Stages {
		if !seen[s.Stage] {
			seen[s.Stage] = true
			names = append(names, s.Stage)
		}
	}
	return names
}

// StageFor maps a child's age in years to a life stage label.
func StageFor(age float64) (stage, stageRange string) {
	if age < 0 {
		return StageUnknown, ""
	}
	for _, b := range stageBands {
		if age >= b.minAge && age <= b.maxAge {
			return b.name, fmt.Sprintf("%g-%g years", b.minAge, b.maxAge)
		}
	}
	return StageAdult, "25+ years"
}

// IdentifyTransitions finds the transition windows a family is inside,
// based on children's ages and recent move-outs.
func IdentifyTransitions(children []store.Child, now time.Time) []Transition {
	var transitions []Transition

	type window struct {
		min, max    float64
		kind        string
		description string
		intensity   string
	}
	windows := []window{
		{0, 0.25, TransitionNewborn, "Newborn transition period (first 3 months)", "high"},
		{2, 2.5, TransitionChildcare, "Transition to childcare/preschool", "moderate"},
		{5, 5.5, TransitionSchool, "Starting elementary school", "moderate"},
		{11, 11.5, TransitionMiddleSchool, "Starting middle school", "moderate"},
		{14, 14.5, TransitionHighSchool, "Starting high school", "moderate"},
		{18, 18.5, TransitionCollege, "Transition to college/independent living", "high"},
	}

	allAdult := len(children) > 0
	recentMoveOut := false
	for _, child := range children {
		for _, w := range windows {
			if child.Age >= w.min && child.Age <= w.max {
				// Newborn window is strictly below 0.25.
				if w.kind == TransitionNewborn && child.Age >= 0.25 {
					continue
				}
				transitions = append(transitions, Transition{
					Type:        w.kind,
					ChildName:   child.Name,
					Description: w.description,
					Intensity:   w.intensity,
				})
			}
		}
		if child.Age < 18 {
			allAdult = false
		}
		if child.MovedOutAt != nil && now.Sub(*child.MovedOutAt) < 180*24*time.Hour {
			recentMoveOut = true
		}
	}

	if allAdult && recentMoveOut {
		transitions = append(transitions, Transition{
			Type:        TransitionEmptyNest,
			Description: "Empty nest transition (all children moved out)",
			Intensity:   "high",
		})
	}

	return transitions
}

func mergeTaskMultiplier(tasks map[string]TaskMultiplier, name string, m float64, c Contributor) {
	entry, ok := tasks[name]
	if !ok {
		entry = TaskMultiplier{Multiplier: 1.0}
	}
	// Most impactful single effect wins; effects never compound.
	if math.Abs(m-1) > math.Abs(entry.Multiplier-1) {
		entry.Multiplier = m
	}
	entry.Contributors = append(entry.Contributors, c)
	tasks[name] = entry
}

// ComputeAdjustments merges stage and transition multiplier tables for
// the family's current situation.
func ComputeAdjustments(stages []ChildStage, transitions []Transition) Adjustments {
	adj := Adjustments{
		Tasks:      make(map[string]TaskMultiplier),
		Categories: make(map[string]float64),
	}

	for _, child := range stages {
		table, ok := stageTaskMultipliers[child.Stage]
		if !ok {
			continue
		}
		for task, m := range table {
			mergeTaskMultiplier(adj.Tasks, task, m, Contributor{
				ChildName:  child.Name,
				Stage:      child.Stage,
				Multiplier: m,
			})
		}
		for category, m := range stageCategoryAdjustments[child.Stage] {
			adj.Categories[category] = m
		}
	}

	for _, t := range transitions {
		table, ok := transitionTaskMultipliers[t.Type]
		if !ok {
			continue
		}
		for task, m := range table {
			mergeTaskMultiplier(adj.Tasks, task, m, Contributor{
				ChildName:  t.ChildName,
				Transition: t.Type,
				Multiplier: m,
			})
		}
		for category, m := range transitionCategoryAdjustments[t.Type] {
			adj.Categories[category] = m
		}
	}

	return adj
}

// Service runs and persists life-stage analyses.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(s store.Store, logger *slog.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// Analyze computes a fresh analysis from the family record, persists a
// snapshot and updates the family's cache pointer. The pointer write is
// best-effort; a stale pointer only costs a recompute later.
func (s *Service) Analyze(ctx context.Context, familyID string) (*Analysis, error) {
	family, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("load family: %w", err)
	}
	if family == nil {
		return nil, fmt.Errorf("family %s not found", familyID)
	}

	now := time.Now().UTC()
	analysis := &Analysis{FamilyID: familyID, AnalyzedAt: now}

	if len(family.Children) == 0 {
		analysis.Adjustments = Adjustments{
			Tasks:      map[string]TaskMultiplier{},
			Categories: map[string]float64{},
		}
		s.persist(ctx, analysis)
		return analysis, nil
	}

	for _, child := range family.Children {
		stage, stageRange := StageFor(child.Age)
		analysis.Stages = append(analysis.Stages, ChildStage{
			Name:       child.Name,
			Age:        child.Age,
			Stage:      stage,
			StageRange: stageRange,
		})
	}
	sort.SliceStable(analysis.Stages, func(i, j int) bool {
		return analysis.Stages[i].Age < analysis.Stages[j].Age
	})

	analysis.HasChildren = true
	analysis.ChildCount = len(analysis.Stages)
	analysis.Transitions = IdentifyTransitions(family.Children, now)
	analysis.Adjustments = ComputeAdjustments(analysis.Stages, analysis.Transitions)

	s.persist(ctx, analysis)

	s.logger.Info("life stage analysis completed",
		"family_id", familyID,
		"children", analysis.ChildCount,
		"transitions", len(analysis.Transitions),
	)
	return analysis, nil
}

func (s *Service) persist(ctx context.Context, analysis *Analysis) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		s.logger.Error("marshal life stage analysis", "error", err)
		return
	}
	record := &store.Analysis{
		FamilyID: analysis.FamilyID,
		Kind:     store.AnalysisLifeStage,
		Payload:  payload,
	}
	if err := s.store.CreateAnalysis(ctx, record); err != nil {
		s.logger.Warn("store life stage analysis", "error", err, "family_id", analysis.FamilyID)
		return
	}
	if err := s.store.SetAnalysisPointer(ctx, analysis.FamilyID, store.AnalysisLifeStage, record.ID); err != nil {
		s.logger.Warn("update life stage pointer", "error", err, "family_id", analysis.FamilyID)
	}
}

// Latest returns the cached analysis if the family's pointer resolves,
// else the newest stored snapshot, else a fresh computation. It fails
// only when the family itself is missing.
func (s *Service) Latest(ctx context.Context, familyID string) (*Analysis, error) {
	family, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("load family: %w", err)
	}
	if family == nil {
		return nil, fmt.Errorf("family %s not found", familyID)
	}

	if id, ok := family.AnalysisPointers[store.AnalysisLifeStage]; ok {
		if record, err := s.store.GetAnalysis(ctx, id); err == nil && record != nil {
			if analysis := decode(record, s.logger); analysis != nil {
				return analysis, nil
			}
		}
	}

	if record, err := s.store.GetLatestAnalysis(ctx, familyID, store.AnalysisLifeStage); err == nil && record != nil {
		if analysis := decode(record, s.logger); analysis != nil {
			return analysis, nil
		}
	}

	return s.Analyze(ctx, familyID)
}

func decode(record *store.Analysis, logger *slog.Logger) *Analysis {
	var analysis Analysis
	if err := json.Unmarshal(record.Payload, &analysis); err != nil {
		logger.Warn("decode life stage analysis", "error", err, "analysis_id", record.ID)
		return nil
	}
	return &analysis
}
