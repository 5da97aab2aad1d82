// Package evolution turns accumulated weight feedback into gradual
// adjustments of global task weights and per-family weight profiles.
package evolution

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fairload-app/fairload/internal/events"
	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/version"
)

const (
	// batchSize bounds how many pending feedback rows one cycle consumes.
	batchSize = 100

	// minGlobalSamples is the smallest per-task sample that can move a
	// global base weight.
	minGlobalSamples = 3

	// minConfidence is the floor below which a global pattern is
	// discarded even when the mean shift is large.
	minConfidence = 0.3

	// correlationWindow is how far back profile-correlation analysis
	// looks for feedback.
	correlationWindow = 30 * 24 * time.Hour
)

// GlobalAdjustment is a proposed shift of one task's global base weight.
type GlobalAdjustment struct {
	TaskID            string  `json:"task_id"`
	Adjustment        float64 `json:"adjustment"`
	Confidence        float64 `json:"confidence"`
	SampleSize        int     `json:"sample_size"`
	AverageAdjustment float64 `json:"average_adjustment"`
	StdDev            float64 `json:"std_dev"`
}

// FamilyTaskAdjustment is a proposed per-family shift for one task.
type FamilyTaskAdjustment struct {
	TaskID     string  `json:"task_id"`
	Adjustment float64 `json:"adjustment"`
	SampleSize int     `json:"sample_size"`
}

// CategoryPattern is a learned per-category multiplier for one family.
type CategoryPattern struct {
	Multiplier        float64 `json:"multiplier"`
	SampleSize        int     `json:"sample_size"`
	AverageAdjustment float64 `json:"average_adjustment"`
}

// FamilyPatterns collects everything learned about one family in a cycle.
type FamilyPatterns struct {
	FamilyID   string                     `json:"family_id"`
	Tasks      []FamilyTaskAdjustment     `json:"tasks"`
	Categories map[string]CategoryPattern `json:"categories,omitempty"`
}

// Correlation is a cross-family pattern among families with similar
// composition, strong enough to surface but never auto-applied.
type Correlation struct {
	GroupKey         string             `json:"group_key"`
	Families         int                `json:"families"`
	SampleSize       int                `json:"sample_size"`
	SignificantTasks map[string]float64 `json:"significant_tasks"`
}

// BatchResult summarizes one consumed feedback batch, including the
// patterns both analyses extracted from it.
type BatchResult struct {
	Processed int                                `json:"processed"`
	Skipped   int                                `json:"skipped"`
	ByTask    map[string][]*store.WeightFeedback `json:"-"`
	ByFamily  map[string][]*store.WeightFeedback `json:"-"`
	Global    []GlobalAdjustment                 `json:"-"`
	Families  map[string]*FamilyPatterns         `json:"-"`
}

// CycleResult is what one full evolution cycle accomplished.
type CycleResult struct {
	FeedbackProcessed        int  `json:"feedback_processed"`
	GlobalAdjustmentsApplied int  `json:"global_adjustments_applied"`
	FamilyAdjustmentsApplied int  `json:"family_adjustments_applied"`
	CorrelationsFound        int  `json:"correlations_found"`
	Success                  bool `json:"success"`
}

// Engine runs the feedback-driven weight evolution pipeline.
type Engine struct {
	store    store.Store
	events   events.Client
	registry *version.Registry
	logger   *slog.Logger
}

// NewEngine builds an engine. The events client may be nil; cycle
// completion events are then skipped.
func NewEngine(s store.Store, ev events.Client, reg *version.Registry, logger *slog.Logger) *Engine {
	return &Engine{store: s, events: ev, registry: reg, logger: logger}
}

// ProcessFeedbackBatch consumes up to batchSize pending feedback rows,
// groups the usable ones by task and by family, and runs both pattern
// analyses. Rows are marked processed only after the analyses complete;
// malformed rows are marked too so they are never retried.
func (e *Engine) ProcessFeedbackBatch(ctx context.Context) (*BatchResult, error) {
	rows, err := e.store.GetPendingFeedback(ctx, batchSize)
	if err != nil {
		return nil, fmt.Errorf("fetch pending feedback: %w", err)
	}

	result := &BatchResult{
		ByTask:   make(map[string][]*store.WeightFeedback),
		ByFamily: make(map[string][]*store.WeightFeedback),
	}
	if len(rows) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, fb := range rows {
		ids = append(ids, fb.ID)
		if fb.TaskID == "" || fb.CalculatedWeight == 0 || fb.SuggestedWeight == 0 {
			result.Skipped++
			continue
		}
		result.Processed++
		result.ByTask[fb.TaskID] = append(result.ByTask[fb.TaskID], fb)
		if fb.FamilyID != "" {
			result.ByFamily[fb.FamilyID] = append(result.ByFamily[fb.FamilyID], fb)
		}
	}

	result.Global = e.AnalyzeGlobalPatterns(result.ByTask)
	result.Families = e.AnalyzeFamilyPatterns(ctx, result.ByFamily)

	if err := e.store.MarkFeedbackProcessed(ctx, ids); err != nil {
		return nil, fmt.Errorf("mark feedback processed: %w", err)
	}
	feedbackProcessedTotal.Add(float64(result.Processed))

	e.recordLearningEvent(ctx, "feedback_batch", map[string]interface{}{
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"tasks":     len(result.ByTask),
		"families":  len(result.ByFamily),
	})

	return result, nil
}

// AnalyzeGlobalPatterns extracts statistically defensible global weight
// shifts from per-task feedback groups. A pattern needs at least
// minGlobalSamples rows, a mean shift of at least 0.5, and a combined
// confidence of minConfidence. The applied adjustment is the mean shift
// damped by confidence.
func (e *Engine) AnalyzeGlobalPatterns(byTask map[string][]*store.WeightFeedback) []GlobalAdjustment {
	var out []GlobalAdjustment
	for taskID, rows := range byTask {
		if len(rows) < minGlobalSamples {
			continue
		}
		mean, stddev := meanStdDev(rows)
		if math.Abs(mean) < 0.5 {
			continue
		}
		conf := Confidence(len(rows), mean, stddev)
		if conf < minConfidence {
			continue
		}
		out = append(out, GlobalAdjustment{
			TaskID:            taskID,
			Adjustment:        round2(mean * conf),
			Confidence:        round2(conf),
			SampleSize:        len(rows),
			AverageAdjustment: round2(mean),
			StdDev:            round2(stddev),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out
}

// Confidence scores how trustworthy a feedback pattern is: sample size
// saturates at 10 rows, and spread relative to the mean erodes it.
func Confidence(n int, mean, stddev float64) float64 {
	if n <= 0 || mean == 0 {
		return 0
	}
	sizeFactor := math.Min(float64(n)/10, 1)
	consistency := math.Max(0, 1-stddev/math.Abs(mean))
	return sizeFactor * consistency
}

// AnalyzeFamilyPatterns extracts per-family task and category patterns.
// A family needs at least two usable rows; a task pattern needs a mean
// shift of 0.5, a category pattern a mean shift of 0.3 across at least
// two rows. Category detection degrades to nothing when task lookups fail.
func (e *Engine) AnalyzeFamilyPatterns(ctx context.Context, byFamily map[string][]*store.WeightFeedback) map[string]*FamilyPatterns {
	out := make(map[string]*FamilyPatterns)
	for familyID, rows := range byFamily {
		if len(rows) < 2 {
			continue
		}
		perTask := make(map[string][]*store.WeightFeedback)
		for _, fb := range rows {
			perTask[fb.TaskID] = append(perTask[fb.TaskID], fb)
		}

		fp := &FamilyPatterns{FamilyID: familyID}
		for taskID, trs := range perTask {
			avg := meanAdjustment(trs)
			if math.Abs(avg) < 0.5 {
				continue
			}
			fp.Tasks = append(fp.Tasks, FamilyTaskAdjustment{
				TaskID:     taskID,
				Adjustment: round2(avg),
				SampleSize: len(trs),
			})
		}
		sort.Slice(fp.Tasks, func(i, j int) bool { return fp.Tasks[i].TaskID < fp.Tasks[j].TaskID })

		fp.Categories = e.detectCategoryPatterns(ctx, rows)
		if len(fp.Tasks) > 0 || len(fp.Categories) > 0 {
			out[familyID] = fp
		}
	}
	return out
}

func (e *Engine) detectCategoryPatterns(ctx context.Context, rows []*store.WeightFeedback) map[string]CategoryPattern {
	byCategory := make(map[string][]*store.WeightFeedback)
	for _, fb := range rows {
		task, err := e.store.GetTask(ctx, fb.TaskID)
		if err != nil {
			e.logger.Warn("category pattern lookup failed", "task_id", fb.TaskID, "error", err)
			return map[string]CategoryPattern{}
		}
		if task == nil || task.Category == "" {
			continue
		}
		byCategory[task.Category] = append(byCategory[task.Category], fb)
	}

	out := make(map[string]CategoryPattern)
	for category, crs := range byCategory {
		if len(crs) < 2 {
			continue
		}
		avg := meanAdjustment(crs)
		if math.Abs(avg) < 0.3 {
			continue
		}
		out[category] = CategoryPattern{
			Multiplier:        round2(1 + avg/5),
			SampleSize:        len(crs),
			AverageAdjustment: round2(avg),
		}
	}
	return out
}

// AnalyzeProfileCorrelations looks for feedback patterns shared by
// families with similar composition over the last 30 days. Groups need
// at least 5 rows from at least 2 families; a task is significant when
// at least 3 rows agree on a mean shift of 0.7 or more. Findings are
// surfaced for review, never auto-applied.
func (e *Engine) AnalyzeProfileCorrelations(ctx context.Context) ([]Correlation, error) {
	rows, err := e.store.GetFeedbackSince(ctx, time.Now().Add(-correlationWindow))
	if err != nil {
		return nil, fmt.Errorf("fetch recent feedback: %w", err)
	}

	type groupRow struct {
		familyID string
		fb       *store.WeightFeedback
	}
	groups := make(map[string][]groupRow)
	features := make(map[string]string)
	for _, fb := range rows {
		if fb.FamilyID == "" {
			continue
		}
		key, ok := features[fb.FamilyID]
		if !ok {
			family, err := e.store.GetFamily(ctx, fb.FamilyID)
			if err != nil || family == nil {
				features[fb.FamilyID] = ""
				continue
			}
			key = profileGroupKey(family)
			features[fb.FamilyID] = key
		}
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], groupRow{familyID: fb.FamilyID, fb: fb})
	}

	var out []Correlation
	for key, grs := range groups {
		if len(grs) < 5 {
			continue
		}
		families := make(map[string]bool)
		perTask := make(map[string][]*store.WeightFeedback)
		for _, gr := range grs {
			families[gr.familyID] = true
			perTask[gr.fb.TaskID] = append(perTask[gr.fb.TaskID], gr.fb)
		}
		if len(families) < 2 {
			continue
		}

		significant := make(map[string]float64)
		for taskID, trs := range perTask {
			if len(trs) < 3 {
				continue
			}
			avg := meanAdjustment(trs)
			if math.Abs(avg) >= 0.7 {
				significant[taskID] = round2(avg)
			}
		}
		if len(significant) == 0 {
			continue
		}
		out = append(out, Correlation{
			GroupKey:         key,
			Families:         len(families),
			SampleSize:       len(grs),
			SignificantTasks: significant,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupKey < out[j].GroupKey })
	return out, nil
}

// profileGroupKey reduces a family to the coarse composition bucket used
// for cross-family correlation.
func profileGroupKey(f *store.Family) string {
	familyType := f.FamilyType
	if familyType == "" {
		familyType = "unknown"
	}
	children := "noChildren"
	if len(f.Children) > 0 {
		children = "withChildren"
	}
	cultural := f.CulturalContext
	if cultural == "" {
		cultural = "unknown"
	}
	return familyType + "-" + children + "-" + cultural
}

// ApplyGlobalAdjustments shifts global base weights, clamping to [1, 5]
// and appending an audit entry per task. Returns how many tasks moved.
func (e *Engine) ApplyGlobalAdjustments(ctx context.Context, adjustments []GlobalAdjustment) int {
	applied := 0
	algo := e.registry.Latest(ctx)
	for _, adj := range adjustments {
		task, err := e.store.GetTask(ctx, adj.TaskID)
		if err != nil || task == nil {
			e.logger.Warn("skipping global adjustment, task unavailable", "task_id", adj.TaskID, "error", err)
			continue
		}
		previous := task.BaseWeight
		if previous == 0 {
			previous = 3
		}
		next := clamp(previous+adj.Adjustment, 1, 5)
		entry := store.WeightAdjustment{
			Adjustment:       adj.Adjustment,
			PreviousWeight:   previous,
			NewWeight:        next,
			Confidence:       adj.Confidence,
			SampleSize:       adj.SampleSize,
			AlgorithmVersion: algo,
			AppliedAt:        time.Now().UTC(),
		}
		if err := e.store.UpdateTaskWeight(ctx, adj.TaskID, next, entry); err != nil {
			e.logger.Error("failed to apply global adjustment", "task_id", adj.TaskID, "error", err)
			continue
		}
		applied++
		adjustmentsAppliedTotal.WithLabelValues("global").Inc()
		e.logger.Info("global weight adjusted",
			"task_id", adj.TaskID,
			"previous", previous,
			"new", next,
			"confidence", adj.Confidence,
			"samples", adj.SampleSize)
	}
	return applied
}

// ApplyFamilyAdjustments folds learned patterns into per-family weight
// profiles. Existing entries are blended 70/30 toward the new evidence;
// new entries start at a damped multiplier. Returns how many profiles
// were updated.
func (e *Engine) ApplyFamilyAdjustments(ctx context.Context, patterns map[string]*FamilyPatterns) int {
	applied := 0
	for familyID, fp := range patterns {
		profile, err := e.store.GetWeightProfile(ctx, familyID)
		if err != nil {
			e.logger.Error("failed to load weight profile", "family_id", familyID, "error", err)
			continue
		}
		if profile == nil {
			profile = &store.WeightProfile{FamilyID: familyID}
		}
		if profile.TaskAdjustments == nil {
			profile.TaskAdjustments = make(map[string]store.TaskAdjustment)
		}
		if profile.CategoryAdjustments == nil {
			profile.CategoryAdjustments = make(map[string]store.CategoryAdjustment)
		}
		now := time.Now().UTC()

		for _, fta := range fp.Tasks {
			incoming := round2(1 + fta.Adjustment/5)
			if existing, ok := profile.TaskAdjustments[fta.TaskID]; ok {
				profile.TaskAdjustments[fta.TaskID] = store.TaskAdjustment{
					Multiplier:   round2(0.7*existing.Multiplier + 0.3*incoming),
					SampleSize:   existing.SampleSize + fta.SampleSize,
					Source:       "feedback",
					LastAdjusted: now,
				}
			} else {
				profile.TaskAdjustments[fta.TaskID] = store.TaskAdjustment{
					Multiplier:   incoming,
					SampleSize:   fta.SampleSize,
					Source:       "feedback",
					LastAdjusted: now,
				}
			}
		}
		for category, cp := range fp.Categories {
			if existing, ok := profile.CategoryAdjustments[category]; ok {
				profile.CategoryAdjustments[category] = store.CategoryAdjustment{
					Multiplier:   round2(0.7*existing.Multiplier + 0.3*cp.Multiplier),
					SampleSize:   existing.SampleSize + cp.SampleSize,
					LastAdjusted: now,
				}
			} else {
				profile.CategoryAdjustments[category] = store.CategoryAdjustment{
					Multiplier:   cp.Multiplier,
					SampleSize:   cp.SampleSize,
					LastAdjusted: now,
				}
			}
		}

		if err := e.store.SaveWeightProfile(ctx, profile); err != nil {
			e.logger.Error("failed to save weight profile", "family_id", familyID, "error", err)
			continue
		}
		applied++
		adjustmentsAppliedTotal.WithLabelValues("family").Inc()
	}
	return applied
}

// RunEvolutionCycle runs one full pass: consume feedback, analyze, apply,
// correlate, record, publish. Analysis stages that fail degrade the cycle
// rather than aborting it.
func (e *Engine) RunEvolutionCycle(ctx context.Context) (*CycleResult, error) {
	batch, err := e.ProcessFeedbackBatch(ctx)
	if err != nil {
		return nil, err
	}

	result := &CycleResult{FeedbackProcessed: batch.Processed}

	correlations, err := e.AnalyzeProfileCorrelations(ctx)
	if err != nil {
		e.logger.Warn("profile correlation analysis failed", "error", err)
	}
	result.CorrelationsFound = len(correlations)

	if len(batch.Global) > 0 {
		result.GlobalAdjustmentsApplied = e.ApplyGlobalAdjustments(ctx, batch.Global)
	}
	if len(batch.Families) > 0 {
		result.FamilyAdjustmentsApplied = e.ApplyFamilyAdjustments(ctx, batch.Families)
	}
	result.Success = true
	cyclesTotal.Inc()

	e.recordLearningEvent(ctx, "evolution_cycle", map[string]interface{}{
		"feedback_processed":         result.FeedbackProcessed,
		"global_adjustments_applied": result.GlobalAdjustmentsApplied,
		"family_adjustments_applied": result.FamilyAdjustmentsApplied,
		"correlations_found":         result.CorrelationsFound,
	})

	if e.events != nil {
		event := events.EvolutionCycleEvent{
			FeedbackProcessed: result.FeedbackProcessed,
			GlobalAdjustments: result.GlobalAdjustmentsApplied,
			FamilyAdjustments: result.FamilyAdjustmentsApplied,
			CorrelationsFound: result.CorrelationsFound,
			CompletedAt:       time.Now().UTC(),
		}
		if err := e.events.Publish(events.SubjectEvolutionCycle, event); err != nil {
			e.logger.Warn("failed to publish evolution cycle event", "error", err)
		}
	}

	e.logger.Info("evolution cycle complete",
		"feedback_processed", result.FeedbackProcessed,
		"global_applied", result.GlobalAdjustmentsApplied,
		"family_applied", result.FamilyAdjustmentsApplied,
		"correlations", result.CorrelationsFound)
	return result, nil
}

func (e *Engine) recordLearningEvent(ctx context.Context, kind string, payload map[string]interface{}) {
	event := &store.LearningEvent{ID: uuid.New(), Kind: kind, Payload: payload, CreatedAt: time.Now().UTC()}
	if err := e.store.CreateLearningEvent(ctx, event); err != nil {
		e.logger.Warn("failed to record learning event", "kind", kind, "error", err)
	}
}

func meanAdjustment(rows []*store.WeightFeedback) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, fb := range rows {
		sum += fb.Adjustment()
	}
	return sum / float64(len(rows))
}

// meanStdDev returns the mean adjustment and its population standard
// deviation.
func meanStdDev(rows []*store.WeightFeedback) (float64, float64) {
	mean := meanAdjustment(rows)
	if len(rows) == 0 {
		return 0, 0
	}
	variance := 0.0
	for _, fb := range rows {
		d := fb.Adjustment() - mean
		variance += d * d
	}
	variance /= float64(len(rows))
	return mean, math.Sqrt(variance)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// round2 rounds half away from zero to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
