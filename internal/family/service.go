// Package family composes the per-family views: weight profiles, the
// enhanced calculation pipeline, and cross-system insights.
package family

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairload-app/fairload/internal/burnout"
	"github.com/fairload-app/fairload/internal/culture"
	"github.com/fairload-app/fairload/internal/lifestage"
	"github.com/fairload-app/fairload/internal/relstyle"
	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/weights"
)

// Service wires the adjustment systems together for family-scoped
// operations.
type Service struct {
	store      store.Store
	calculator *weights.Calculator
	lifestage  *lifestage.Service
	culture    *culture.Service
	relstyle   *relstyle.Service
	burnout    *burnout.Service
	logger     *slog.Logger
}

func NewService(
	s store.Store,
	calc *weights.Calculator,
	ls *lifestage.Service,
	cu *culture.Service,
	rs *relstyle.Service,
	bo *burnout.Service,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:      s,
		calculator: calc,
		lifestage:  ls,
		culture:    cu,
		relstyle:   rs,
		burnout:    bo,
		logger:     logger,
	}
}

// Profile returns the family's weight profile, synthesizing an empty
// default when none has been stored yet. The default is not persisted;
// it materializes on the first write.
func (s *Service) Profile(ctx context.Context, familyID string) (*store.WeightProfile, error) {
	profile, err := s.store.GetWeightProfile(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("load weight profile: %w", err)
	}
	if profile == nil {
		profile = defaultProfile(familyID)
	}
	return profile, nil
}

func defaultProfile(familyID string) *store.WeightProfile {
	now := time.Now().UTC()
	return &store.WeightProfile{
		FamilyID:            familyID,
		TaskAdjustments:     make(map[string]store.TaskAdjustment),
		CategoryAdjustments: make(map[string]store.CategoryAdjustment),
		Version:             "1.0",
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// UpdateAdjustments merges caller-supplied overrides into the family's
// weight profile. Supplied entries replace existing ones per key;
// untouched keys are kept.
func (s *Service) UpdateAdjustments(ctx context.Context, familyID string, tasks map[string]store.TaskAdjustment, categories map[string]store.CategoryAdjustment) (*store.WeightProfile, error) {
	profile, err := s.Profile(ctx, familyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for taskID, adj := range tasks {
		if adj.Source == "" {
			adj.Source = "manual"
		}
		adj.LastAdjusted = now
		profile.TaskAdjustments[taskID] = adj
	}
	for category, adj := range categories {
		adj.LastAdjusted = now
		profile.CategoryAdjustments[category] = adj
	}

	if err := s.store.SaveWeightProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("save weight profile: %w", err)
	}
	return profile, nil
}

// CalculationProfile builds the calculation-time view of a family:
// learned task overrides, child life stages, and cultural context.
// Returns nil when the family does not exist.
func (s *Service) CalculationProfile(ctx context.Context, familyID string) (*weights.Profile, error) {
	fam, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("load family: %w", err)
	}
	if fam == nil {
		return nil, nil
	}

	profile, err := s.Profile(ctx, familyID)
	if err != nil {
		return nil, err
	}

	calc := &weights.Profile{CulturalContext: fam.CulturalContext}
	for taskID, adj := range profile.TaskAdjustments {
		calc.TaskOverrides = append(calc.TaskOverrides, weights.TaskOverride{
			TaskID:     taskID,
			Multiplier: adj.Multiplier,
		})
	}
	for _, child := range fam.Children {
		if child.MovedOutAt != nil {
			continue
		}
		stage, _ := lifestage.StageFor(child.Age)
		calc.ChildStages = append(calc.ChildStages, stage)
	}
	return calc, nil
}
