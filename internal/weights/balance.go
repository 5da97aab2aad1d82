package weights

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/fairload-app/fairload/internal/store"
)

// Question is one survey question from the full question set.
type Question struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	TotalWeight    float64 `json:"total_weight,omitempty"`
	BaseWeight     float64 `json:"base_weight,omitempty"`
	Frequency      string  `json:"frequency,omitempty"`
	Invisibility   string  `json:"invisibility,omitempty"`
	EmotionalLabor string  `json:"emotional_labor,omitempty"`
	TimeRequired   string  `json:"time_required,omitempty"`
	Complexity     string  `json:"complexity,omitempty"`
}

// BalanceReport is the outcome of one balance computation.
type BalanceReport struct {
	Categories   map[string]store.CategoryBalance `json:"category_balance"`
	Overall      store.OverallBalance             `json:"overall_balance"`
	Unparsed     int                              `json:"unparsed,omitempty"`
	Version      string                           `json:"calculation_version"`
	CalculatedAt time.Time                        `json:"calculation_date"`
}

var bareQuestionID = regexp.MustCompile(`^q?\d+$`)

// NormalizeResponseKey maps an externally-supplied response key to a
// canonical question identifier. Supported forms:
//
//	q12                     bare question id
//	week-1-user-123-q45     prefixed id, becomes q45
//	survey-12               trailing numeric segment, becomes 12
//
// Anything else is reported as unparseable rather than guessed at.
func NormalizeResponseKey(key string) (string, bool) {
	if bareQuestionID.MatchString(key) {
		return key, true
	}
	if i := strings.Index(key, "-q"); i >= 0 {
		id := "q" + key[i+2:]
		if bareQuestionID.MatchString(id) {
			return id, true
		}
		return "", false
	}
	if i := strings.LastIndex(key, "-"); i >= 0 {
		tail := key[i+1:]
		if bareQuestionID.MatchString(tail) {
			return tail, true
		}
	}
	return "", false
}

func validAnswer(v string) bool {
	switch v {
	case "Mama", "Papa", "Neutral", "Both", "Neither":
		return true
	}
	return false
}

type bucket struct {
	mama, papa, neutral, total float64
	questionCount              int
}

// ScoreBalance rolls weighted survey responses into per-category and
// overall mama/papa splits. Neutral-family answers split their weight
// evenly while also counting toward a separate neutral tally.
func (c *Calculator) ScoreBalance(ctx context.Context, questions []Question, responses map[string]string, priorities *Priorities, ver string) *BalanceReport {
	resolved := ver
	if resolved == "" || resolved == "latest" {
		resolved = c.registry.Latest(ctx)
	}
	now := time.Now().UTC()

	categoryWeights := make(map[string]float64, len(CategoryWeights))
	for name, w := range CategoryWeights {
		categoryWeights[name] = w
	}
	if priorities != nil {
		if _, ok := categoryWeights[priorities.Highest]; ok {
			categoryWeights[priorities.Highest] = priorityHighest
		}
		if _, ok := categoryWeights[priorities.Secondary]; ok {
			categoryWeights[priorities.Secondary] = prioritySecondary
		}
		if _, ok := categoryWeights[priorities.Tertiary]; ok {
			categoryWeights[priorities.Tertiary] = priorityTertiary
		}
	}

	byID := make(map[string]*Question, len(questions))
	possibleByCategory := make(map[string]int)
	for i := range questions {
		q := &questions[i]
		byID[q.ID] = q
		possibleByCategory[q.Category]++
	}

	buckets := make(map[string]*bucket)
	unparsed := 0

	for key, answer := range responses {
		if !validAnswer(answer) {
			continue
		}
		id, ok := NormalizeResponseKey(key)
		if !ok {
			unparsed++
			continue
		}
		q, ok := byID[id]
		if !ok || q.Category == "" {
			continue
		}
		if _, known := CategoryWeights[q.Category]; !known {
			continue
		}

		weight := c.questionWeight(q, priorities, resolved, now)

		b := buckets[q.Category]
		if b == nil {
			b = &bucket{}
			buckets[q.Category] = b
		}
		b.questionCount++
		b.total += weight
		switch answer {
		case "Mama":
			b.mama += weight
		case "Papa":
			b.papa += weight
		default: // Both, Neutral, Neither split evenly
			b.mama += weight / 2
			b.papa += weight / 2
			b.neutral += weight
		}
	}

	categories := make(map[string]store.CategoryBalance, len(buckets))
	for name, b := range buckets {
		if b.total <= 0 {
			continue
		}
		mamaPct := b.mama / b.total * 100
		papaPct := b.papa / b.total * 100
		neutralPct := b.neutral / b.total * 100

		possible := possibleByCategory[name]
		if possible == 0 {
			possible = 1
		}
		coverage := float64(b.questionCount) / float64(possible)
		coverageFactor := 1.0
		if coverage < 0.5 {
			coverageFactor = 0.5 + coverage
		}
		imbalance := math.Abs(mamaPct-papaPct) * coverageFactor

		risk := "low"
		if resolved != "1.0" {
			risk = categoryRisk(mamaPct, papaPct)
		}

		categories[name] = store.CategoryBalance{
			MamaPct:       mamaPct,
			PapaPct:       papaPct,
			NeutralPct:    neutralPct,
			Imbalance:     imbalance,
			BurnoutRisk:   risk,
			QuestionCount: b.questionCount,
			Coverage:      coverage,
		}
	}

	var totalWeight, mama, papa, neutral, imbalance float64
	for name, cb := range categories {
		catWeight, ok := categoryWeights[name]
		if !ok {
			catWeight = 1
		}
		combined := catWeight * float64(cb.QuestionCount)
		mama += cb.MamaPct * combined
		papa += cb.PapaPct * combined
		neutral += cb.NeutralPct * combined
		imbalance += cb.Imbalance * combined
		totalWeight += combined
	}

	overall := store.OverallBalance{MamaPct: 50, PapaPct: 50, BurnoutRisk: "unknown"}
	if totalWeight > 0 {
		overall = store.OverallBalance{
			MamaPct:    mama / totalWeight,
			PapaPct:    papa / totalWeight,
			NeutralPct: neutral / totalWeight,
			Imbalance:  imbalance / totalWeight,
		}
		if resolved != "1.0" {
			overall.BurnoutRisk = RiskLabel(overall.MamaPct, overall.PapaPct)
		} else {
			overall.BurnoutRisk = "unknown"
		}
	}

	return &BalanceReport{
		Categories:   categories,
		Overall:      overall,
		Unparsed:     unparsed,
		Version:      resolved,
		CalculatedAt: now,
	}
}

func (c *Calculator) questionWeight(q *Question, priorities *Priorities, ver string, now time.Time) float64 {
	if ver == "1.0" {
		if q.TotalWeight > 0 {
			return q.TotalWeight
		}
		return 1
	}
	task := &store.Task{
		ID:              q.ID,
		Category:        q.Category,
		BaseWeight:      q.BaseWeight,
		Frequency:       orDefault(q.Frequency, "weekly"),
		Invisibility:    orDefault(q.Invisibility, "partially"),
		EmotionalLabor:  orDefault(q.EmotionalLabor, "moderate"),
		TimeRequired:    orDefault(q.TimeRequired, "moderate"),
		SkillComplexity: orDefault(q.Complexity, "basic"),
	}
	return CalculateV2(task, priorities, nil, now)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// categoryRisk labels a single category's split. Heavy concentration
// on either parent dominates the plain mama/papa gap.
func categoryRisk(mamaPct, papaPct float64) string {
	switch {
	case mamaPct > 90 || papaPct > 90:
		return "severe"
	case mamaPct > 75 || papaPct > 75:
		return "high"
	case math.Abs(mamaPct-papaPct) > 40:
		return "moderate"
	}
	return "low"
}

// RiskLabel maps an overall mama/papa split to a coarse burnout-risk
// label using fixed imbalance thresholds.
func RiskLabel(mamaPct, papaPct float64) string {
	imbalance := math.Abs(mamaPct - papaPct)
	switch {
	case imbalance > 50:
		return "severe"
	case imbalance > 35:
		return "high"
	case imbalance > 20:
		return "moderate"
	case imbalance > 10:
		return "low"
	}
	return "minimal"
}
