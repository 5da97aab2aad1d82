// Package weights implements the multiplicative task-weight algorithms
// and the family balance scorer. Both algorithm versions stay callable
// forever so historical results remain reproducible.
package weights

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/version"
)

const defaultBaseWeight = 3.0

// Priorities names up to three categories the family currently cares
// most about. Transient, supplied per request.
type Priorities struct {
	Highest   string `json:"highest_priority,omitempty"`
	Secondary string `json:"secondary_priority,omitempty"`
	Tertiary  string `json:"tertiary_priority,omitempty"`
}

// TaskOverride is one learned per-task multiplier from a family profile.
// It matches by task id first, then by task type.
type TaskOverride struct {
	TaskID     string  `json:"task_id,omitempty"`
	TaskType   string  `json:"task_type,omitempty"`
	Multiplier float64 `json:"multiplier"`
}

// Profile is the calculation-time view of a family's learned context.
// A nil Profile means no family adjustments apply.
type Profile struct {
	TaskOverrides   []TaskOverride `json:"task_overrides,omitempty"`
	ChildStages     []string       `json:"child_stages,omitempty"`
	CulturalContext string         `json:"cultural_context,omitempty"`
}

// Factors echoes the inputs a calculation used, for audit and debugging.
type Factors struct {
	BaseWeight     float64 `json:"base_weight"`
	Frequency      string  `json:"frequency,omitempty"`
	Invisibility   string  `json:"invisibility,omitempty"`
	EmotionalLabor string  `json:"emotional_labor,omitempty"`
	Category       string  `json:"category,omitempty"`
}

// Result is the outcome of one weight calculation.
type Result struct {
	TaskID       string    `json:"task_id"`
	Weight       float64   `json:"weight"`
	Version      string    `json:"calculation_version"`
	CalculatedAt time.Time `json:"calculation_date"`
	Factors      Factors   `json:"factors"`
}

func baseWeight(task *store.Task) float64 {
	if task.BaseWeight > 0 {
		return task.BaseWeight
	}
	return defaultBaseWeight
}

func priorityMultiplier(category string, priorities *Priorities) float64 {
	if priorities == nil {
		return priorityNone
	}
	switch category {
	case priorities.Highest:
		return priorityHighest
	case priorities.Secondary:
		return prioritySecondary
	case priorities.Tertiary:
		return priorityTertiary
	}
	return priorityNone
}

func lookup(table map[string]float64, key string) float64 {
	if m, ok := table[key]; ok {
		return m
	}
	return 1.0
}

// CalculateV1 is the original algorithm: base weight times the six
// fixed factor multipliers. Unknown enum values are neutral.
func CalculateV1(task *store.Task, priorities *Priorities) float64 {
	return baseWeight(task) *
		lookup(frequencyMultipliers, task.Frequency) *
		lookup(invisibilityMultipliers, task.Invisibility) *
		lookup(emotionalLaborMultipliers, task.EmotionalLabor) *
		lookup(researchImpactMultipliers, task.ResearchImpact) *
		lookup(childDevelopmentMultipliers, task.ChildDevelopment) *
		priorityMultiplier(task.Category, priorities)
}

// SeasonFor maps a timestamp to a Northern-hemisphere season name.
func SeasonFor(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "fall"
	}
	return "winter"
}

// CalculateV2 starts from V1 and layers on time, complexity, seasonal
// swing and family-profile adjustments. The multiplication order is
// fixed for reproducibility.
func CalculateV2(task *store.Task, priorities *Priorities, profile *Profile, now time.Time) float64 {
	total := CalculateV1(task, priorities)

	total *= lookup(timeRequiredMultipliers, task.TimeRequired) *
		lookup(skillComplexityMultipliers, task.SkillComplexity)

	if task.Seasonal {
		if task.RelevantSeason == SeasonFor(now) {
			total *= seasonalBoost
		} else {
			total *= seasonalDiscount
		}
	}

	if profile == nil {
		return total
	}

	for _, o := range profile.TaskOverrides {
		if (o.TaskID != "" && o.TaskID == task.ID) || (o.TaskType != "" && o.TaskType == task.Type) {
			total *= o.Multiplier
			break
		}
	}

	if task.ChildRelated && len(profile.ChildStages) > 0 {
		childCategory := task.ChildCategory
		if childCategory == "" {
			childCategory = "general"
		}
		stageMultiplier := 1.0
		for _, stage := range profile.ChildStages {
			if m, ok := lifeStageChildMultipliers[stage][childCategory]; ok {
				stageMultiplier = math.Max(stageMultiplier, m)
			}
		}
		total *= stageMultiplier
	}

	if profile.CulturalContext != "" && task.CulturalCategory != "" {
		if m, ok := culturalContextMultipliers[profile.CulturalContext][task.CulturalCategory]; ok {
			total *= m
		}
	}

	return total
}

// round2 rounds half away from zero to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Calculator dispatches weight calculations by version.
type Calculator struct {
	registry *version.Registry
	logger   *slog.Logger
}

func NewCalculator(registry *version.Registry, logger *slog.Logger) *Calculator {
	return &Calculator{registry: registry, logger: logger}
}

// Calculate resolves the requested version and runs the matching
// algorithm. Unknown versions deliberately fall back to V2 rather than
// erroring; unknown enum values are always neutral.
func (c *Calculator) Calculate(ctx context.Context, task *store.Task, priorities *Priorities, profile *Profile, ver string) (*Result, error) {
	if task == nil {
		return nil, fmt.Errorf("task is required")
	}

	resolved := ver
	if resolved == "" || resolved == "latest" {
		resolved = c.registry.Latest(ctx)
	}

	now := time.Now().UTC()
	var weight float64
	switch resolved {
	case "1.0":
		weight = CalculateV1(task, priorities)
	case "2.0":
		weight = CalculateV2(task, priorities, profile, now)
	default:
		weight = CalculateV2(task, priorities, profile, now)
	}

	return &Result{
		TaskID:       task.ID,
		Weight:       round2(weight),
		Version:      resolved,
		CalculatedAt: now,
		Factors: Factors{
			BaseWeight:     baseWeight(task),
			Frequency:      task.Frequency,
			Invisibility:   task.Invisibility,
			EmotionalLabor: task.EmotionalLabor,
			Category:       task.Category,
		},
	}, nil
}
