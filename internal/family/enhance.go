package family

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fairload-app/fairload/internal/culture"
	"github.com/fairload-app/fairload/internal/lifestage"
	"github.com/fairload-app/fairload/internal/relstyle"
	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/weights"
)

// EnhancedResult is a base calculation plus the family-specific
// adaptation passes applied on top of it.
type EnhancedResult struct {
	weights.Result
	EnhancedWeight        float64              `json:"enhanced_weight"`
	Adaptations           []weights.Adaptation `json:"weight_adaptations"`
	TotalAdaptationFactor float64              `json:"total_adaptation_factor"`
}

// analyses bundles the latest analysis of each adjustment system. Any
// of the three may be nil.
type analyses struct {
	lifeStage    *lifestage.Analysis
	cultural     *culture.Analysis
	relationship *relstyle.Analysis
}

// latestAnalyses loads the three analyses, degrading each failure to
// nil so a broken subsystem never blocks a calculation.
func (s *Service) latestAnalyses(ctx context.Context, familyID string) analyses {
	var out analyses
	var err error
	if out.lifeStage, err = s.lifestage.Latest(ctx, familyID); err != nil {
		s.logger.Warn("life stage analysis unavailable", "family_id", familyID, "error", err)
		out.lifeStage = nil
	}
	if out.cultural, err = s.culture.Latest(ctx, familyID); err != nil {
		s.logger.Warn("cultural analysis unavailable", "family_id", familyID, "error", err)
		out.cultural = nil
	}
	if out.relationship, err = s.relstyle.Latest(ctx, familyID); err != nil {
		s.logger.Warn("relationship analysis unavailable", "family_id", familyID, "error", err)
		out.relationship = nil
	}
	return out
}

// enhance runs the adaptation passes over one base result, in fixed
// order: life stage, cultural context, relationship style. The
// relationship pass only runs when a parent is named.
func enhance(task *store.Task, base *weights.Result, an analyses, parent string) *EnhancedResult {
	adjusted := *task
	adjusted.BaseWeight = base.Weight

	var adaptations []weights.Adaptation
	current := &adjusted

	if an.lifeStage != nil {
		if next, adaptation := lifestage.Apply(current, &an.lifeStage.Adjustments); adaptation != nil {
			adaptation.Context["life_stages"] = strings.Join(an.lifeStage.StageNames(), ", ")
			adaptations = append(adaptations, *adaptation)
			current = next
		}
	}
	if an.cultural != nil {
		if next, adaptation := culture.Apply(current, &an.cultural.Adjustments); adaptation != nil {
			adaptation.Context["value_system"] = an.cultural.ValueSystem
			adaptations = append(adaptations, *adaptation)
			current = next
		}
	}
	if an.relationship != nil && parent != "" {
		if next, adaptation := relstyle.Apply(current, parent, &an.relationship.Adjustments); adaptation != nil {
			adaptation.Context["style"] = an.relationship.Profile.Style
			adaptations = append(adaptations, *adaptation)
			current = next
		}
	}

	out := &EnhancedResult{
		Result:                *base,
		EnhancedWeight:        current.BaseWeight,
		Adaptations:           adaptations,
		TotalAdaptationFactor: 1.0,
	}
	if len(adaptations) > 0 && base.Weight != 0 {
		out.TotalAdaptationFactor = math.Round(out.EnhancedWeight/base.Weight*100) / 100
	}
	return out
}

// EnhancedCalculate computes a task's weight and then layers the
// family's life-stage, cultural and relationship adaptations on top.
func (s *Service) EnhancedCalculate(ctx context.Context, task *store.Task, priorities *weights.Priorities, familyID, parent, ver string) (*EnhancedResult, error) {
	results, err := s.EnhancedCalculateBatch(ctx, []*store.Task{task}, priorities, familyID, parent, ver)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// EnhancedCalculateBatch runs the enhanced pipeline over several tasks,
// loading the family profile and analyses once for the whole batch.
func (s *Service) EnhancedCalculateBatch(ctx context.Context, tasks []*store.Task, priorities *weights.Priorities, familyID, parent, ver string) ([]*EnhancedResult, error) {
	if familyID == "" {
		return nil, fmt.Errorf("family id is required for enhanced calculation")
	}

	profile, err := s.CalculationProfile(ctx, familyID)
	if err != nil {
		return nil, err
	}
	an := s.latestAnalyses(ctx, familyID)

	results := make([]*EnhancedResult, 0, len(tasks))
	for _, task := range tasks {
		base, err := s.calculator.Calculate(ctx, task, priorities, profile, ver)
		if err != nil {
			return nil, fmt.Errorf("calculate %s: %w", task.ID, err)
		}
		enhanced := enhance(task, base, an, parent)
		s.logCalculation(ctx, task, enhanced.EnhancedWeight, base.Version, familyID)
		results = append(results, enhanced)
	}
	return results, nil
}

// logCalculation appends a best-effort history row.
func (s *Service) logCalculation(ctx context.Context, task *store.Task, weight float64, ver, familyID string) {
	entry := &store.CalcLogEntry{
		ID:        uuid.New(),
		TaskID:    task.ID,
		FamilyID:  familyID,
		Weight:    weight,
		Version:   ver,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateCalcLogEntry(ctx, entry); err != nil {
		s.logger.Warn("failed to log calculation", "task_id", task.ID, "error", err)
	}
}
