// Package culture classifies a family's cultural value system and
// derives the task-weight adjustments its dimension profile implies.
package culture

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/fairload-app/fairload/internal/store"
)

// Contributor records which dimension level pushed a task multiplier.
type Contributor struct {
	Dimension  string  `json:"dimension"`
	Level      string  `json:"level"`
	Multiplier float64 `json:"multiplier"`
}

// TaskMultiplier is the merged multiplier for one named task. When
// several dimensions touch the same task, the single value farthest
// from 1.0 wins; contributors accumulate regardless.
type TaskMultiplier struct {
	Multiplier   float64       `json:"multiplier"`
	Contributors []Contributor `json:"contributors,omitempty"`
}

// Adjustments is the task-adjustment set a dimension profile implies.
type Adjustments struct {
	Tasks map[string]TaskMultiplier `json:"task_adjustments"`
}

// Analysis is the persisted outcome of one cultural classification.
type Analysis struct {
	FamilyID     string            `json:"family_id"`
	ValueSystem  string            `json:"value_system"`
	Explicit     bool              `json:"is_explicit_selection"`
	Dimensions   map[string]string `json:"dimension_values"`
	SpecialTasks []string          `json:"special_tasks,omitempty"`
	Adjustments  Adjustments       `json:"weight_adjustments"`
	Insights     []Insight         `json:"insights,omitempty"`
	AnalyzedAt   time.Time         `json:"analyzed_at"`
}

// backgroundRules map demographic background tags to value systems.
// First match wins, so more specific tags come first.
var backgroundRules = []struct {
	tags   []string
	system string
}{
	{[]string{"east_asian", "chinese", "japanese", "korean"}, SystemEastAsianCollectivist},
	{[]string{"south_asian", "indian", "pakistani", "bangladeshi"}, SystemSouthAsianFamilyCentric},
	{[]string{"latin", "hispanic"}, SystemLatinAmericanFamilial},
	{[]string{"african"}, SystemAfricanCommunal},
	{[]string{"middle_eastern", "arab"}, SystemMiddleEasternTraditional},
	{[]string{"scandinavian", "nordic"}, SystemNordicEgalitarian},
	{[]string{"indigenous", "native"}, SystemIndigenousCommunity},
}

var regionRules = []struct {
	substrings []string
	system     string
}{
	{[]string{"nordic", "scandinav"}, SystemNordicEgalitarian},
	{[]string{"east asia"}, SystemEastAsianCollectivist},
	{[]string{"south asia"}, SystemSouthAsianFamilyCentric},
	{[]string{"latin america"}, SystemLatinAmericanFamilial},
	{[]string{"africa"}, SystemAfricanCommunal},
	{[]string{"middle east"}, SystemMiddleEasternTraditional},
}

// surveyDimensions maps cultural-values survey keys to dimensions.
// Scores run 0-10; above 5 reads as the high level.
var surveyDimensions = map[string]string{
	"individualism":         DimIndividualism,
	"power_distance":        DimPowerDistance,
	"uncertainty_avoidance": DimUncertainty,
	"masculinity":           DimMasculinity,
	"long_term_orientation": DimLongTerm,
	"indulgence":            DimIndulgence,
}

// Classify resolves a family's value system and dimension levels.
// An explicit preference wins outright; otherwise the system is
// inferred from demographics and the dimension levels are refined by
// religion, family structure, and survey answers in that order.
func Classify(family *store.Family) (system string, dims map[string]string, explicit bool) {
	if family.CulturalPrefs != nil && family.CulturalPrefs.ValueSystem != "" {
		system = family.CulturalPrefs.ValueSystem
		dims = profileCopy(system)
		for d, level := range family.CulturalPrefs.DimensionOverrides {
			dims[d] = level
		}
		return system, dims, true
	}

	system = SystemWesternIndividualist
	if family.Demographics != nil {
		if s, ok := matchBackground(family.Demographics.BackgroundTags); ok {
			system = s
		}
		if s, ok := matchRegion(family.Demographics.Region); ok {
			system = s
		}
	}
	dims = profileCopy(system)

	if family.Demographics != nil {
		refineByReligion(dims, family.Demographics.Religion)
		refineByStructure(dims, family.Demographics.FamilyStructure)
	}
	for key, dim := range surveyDimensions {
		score, ok := family.CulturalValues[key]
		if !ok {
			continue
		}
		if score > 5 {
			dims[dim] = LevelHigh
		} else {
			dims[dim] = LevelLow
		}
	}
	return system, dims, false
}

func profileCopy(system string) map[string]string {
	dims := make(map[string]string, len(systemProfiles[system]))
	for d, level := range systemProfiles[system] {
		dims[d] = level
	}
	return dims
}

func matchBackground(tags []string) (string, bool) {
	for _, rule := range backgroundRules {
		for _, want := range rule.tags {
			for _, tag := range tags {
				if strings.EqualFold(tag, want) {
					return rule.system, true
				}
			}
		}
	}
	return "", false
}

func matchRegion(region string) (string, bool) {
	region = strings.ToLower(region)
	if region == "" {
		return "", false
	}
	// Indigenous qualifier beats the plain region rules.
	if strings.Contains(region, "indigenous") {
		return SystemIndigenousCommunity, true
	}
	for _, rule := range regionRules {
		for _, sub := range rule.substrings {
			if strings.Contains(region, sub) {
				return rule.system, true
			}
		}
	}
	return "", false
}

func refineByReligion(dims map[string]string, religion string) {
	r := strings.ToLower(religion)
	switch {
	case strings.Contains(r, "buddhis"), strings.Contains(r, "hindu"),
		strings.Contains(r, "taois"), strings.Contains(r, "confucian"):
		dims[DimIndividualism] = LevelLow
		dims[DimLongTerm] = LevelHigh
	case strings.Contains(r, "muslim"), strings.Contains(r, "islam"):
		dims[DimPowerDistance] = LevelHigh
		dims[DimUncertainty] = LevelHigh
		dims[DimIndulgence] = LevelLow
	}
}

func refineByStructure(dims map[string]string, structure string) {
	s := strings.ToLower(structure)
	if strings.Contains(s, "extended") || strings.Contains(s, "multi-generational") {
		dims[DimIndividualism] = LevelLow
	}
	if strings.Contains(s, "nuclear") || strings.Contains(s, "single parent") {
		dims[DimIndividualism] = LevelHigh
	}
}

// ComputeAdjustments resolves the task multipliers a dimension
// profile implies. Medium levels are neutral and contribute nothing.
func ComputeAdjustments(dims map[string]string) Adjustments {
	adj := Adjustments{Tasks: make(map[string]TaskMultiplier)}
	for dim, level := range dims {
		if level == LevelMedium {
			continue
		}
		table, ok := dimensionAdjustments[dim]
		if !ok {
			continue
		}
		for task, m := range table[level] {
			cur, ok := adj.Tasks[task]
			if !ok {
				cur = TaskMultiplier{Multiplier: 1.0}
			}
			if math.Abs(m-1.0) > math.Abs(cur.Multiplier-1.0) {
				cur.Multiplier = m
			}
			cur.Contributors = append(cur.Contributors, Contributor{
				Dimension:  dim,
				Level:      level,
				Multiplier: m,
			})
			adj.Tasks[task] = cur
		}
	}
	return adj
}

// SpecialTasks lists the task areas with elevated significance for a
// value system.
func SpecialTasks(system string) []string {
	return specialTaskCategories[system]
}

// Service runs cultural analyses and persists their results.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(s store.Store, logger *slog.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// Analyze classifies a family and persists the resulting analysis.
func (s *Service) Analyze(ctx context.Context, familyID string) (*Analysis, error) {
	family, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("loading family: %w", err)
	}
	if family == nil {
		return nil, fmt.Errorf("family %s not found", familyID)
	}

	system, dims, explicit := Classify(family)
	analysis := &Analysis{
		FamilyID:     familyID,
		ValueSystem:  system,
		Explicit:     explicit,
		Dimensions:   dims,
		SpecialTasks: SpecialTasks(system),
		Adjustments:  ComputeAdjustments(dims),
		Insights:     buildInsights(system, dims),
		AnalyzedAt:   time.Now().UTC(),
	}

	s.persist(ctx, analysis)
	s.logger.Info("cultural context analyzed",
		"family_id", familyID,
		"value_system", system,
		"explicit", explicit)
	return analysis, nil
}

func (s *Service) persist(ctx context.Context, analysis *Analysis) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		s.logger.Error("marshaling cultural analysis", "error", err, "family_id", analysis.FamilyID)
		return
	}
	rec := &store.Analysis{
		FamilyID: analysis.FamilyID,
		Kind:     store.AnalysisCultural,
		Payload:  payload,
	}
	if err := s.store.CreateAnalysis(ctx, rec); err != nil {
		s.logger.Error("storing cultural analysis", "error", err, "family_id", analysis.FamilyID)
		return
	}
	if err := s.store.SetAnalysisPointer(ctx, analysis.FamilyID, store.AnalysisCultural, rec.ID); err != nil {
		s.logger.Warn("updating cultural analysis pointer", "error", err, "family_id", analysis.FamilyID)
	}
}

// Latest returns the most recent cultural analysis, preferring the
// family's cache pointer and recomputing when nothing is stored.
func (s *Service) Latest(ctx context.Context, familyID string) (*Analysis, error) {
	family, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("loading family: %w", err)
	}
	if family == nil {
		return nil, fmt.Errorf("family %s not found", familyID)
	}

	if id, ok := family.AnalysisPointers[store.AnalysisCultural]; ok {
		rec, err := s.store.GetAnalysis(ctx, id)
		if err == nil && rec != nil {
			if a := decode(rec); a != nil {
				return a, nil
			}
		}
	}
	rec, err := s.store.GetLatestAnalysis(ctx, familyID, store.AnalysisCultural)
	if err == nil && rec != nil {
		if a := decode(rec); a != nil {
			return a, nil
		}
	}
	return s.Analyze(ctx, familyID)
}

func decode(rec *store.Analysis) *Analysis {
	var a Analysis
	if err := json.Unmarshal(rec.Payload, &a); err != nil {
		return nil
	}
	return &a
}

func buildInsights(system string, dims map[string]string) []Insight {
	insights := append([]Insight(nil), systemInsights[system]...)

	switch dims[DimIndividualism] {
	case LevelHigh:
		insights = append(insights, Insight{
			Topic: "Individual Focus",
			Text:  "Your family values tend to emphasize individual needs and personal development. Supporting each family member's unique path may be important.",
		})
	case LevelLow:
		insights = append(insights, Insight{
			Topic: "Group Harmony",
			Text:  "Your family values tend to emphasize group harmony and collective well-being. Maintaining family cohesion may be a higher priority than individual preferences.",
		})
	}
	switch dims[DimPowerDistance] {
	case LevelHigh:
		insights = append(insights, Insight{
			Topic: "Authority Structure",
			Text:  "Clear parental authority and defined family roles appear important in your family context. Children may be expected to show higher deference to parents.",
		})
	case LevelLow:
		insights = append(insights, Insight{
			Topic: "Egalitarian Approach",
			Text:  "Your family values suggest a preference for more equal relationship dynamics. Children may be included in family decisions and encouraged to express opinions.",
		})
	}
	return insights
}
