package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FeedbackStatus tracks the lifecycle of a weight-feedback row.
type FeedbackStatus string

const (
	FeedbackPending   FeedbackStatus = "pending"
	FeedbackProcessed FeedbackStatus = "processed"
)

// AnalysisKind names the family-analysis domains persisted as snapshots.
type AnalysisKind string

const (
	AnalysisLifeStage    AnalysisKind = "life_stage"
	AnalysisCultural     AnalysisKind = "cultural"
	AnalysisRelationship AnalysisKind = "relationship"
)

// Parent labels used throughout balance and burnout data.
const (
	ParentMama = "mama"
	ParentPapa = "papa"
)

// Task is a unit of household or family work to be weighted.
// BaseWeight is nominally 1-5 and is mutated only by the evolution
// engine's global-adjustment step; tasks are never deleted.
type Task struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Title            string    `json:"title,omitempty"`
	Category         string    `json:"category"`
	Type             string    `json:"type,omitempty"`
	Frequency        string    `json:"frequency,omitempty"`
	Invisibility     string    `json:"invisibility,omitempty"`
	EmotionalLabor   string    `json:"emotional_labor,omitempty"`
	ResearchImpact   string    `json:"research_impact,omitempty"`
	ChildDevelopment string    `json:"child_development,omitempty"`
	TimeRequired     string    `json:"time_required,omitempty"`
	SkillComplexity  string    `json:"skill_complexity,omitempty"`
	Seasonal         bool      `json:"seasonal,omitempty"`
	RelevantSeason   string    `json:"relevant_season,omitempty"`
	ChildRelated     bool      `json:"child_related,omitempty"`
	ChildCategory    string    `json:"child_category,omitempty"`
	CulturalCategory string    `json:"cultural_category,omitempty"`
	BaseWeight       float64   `json:"base_weight"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	AdjustmentHistory []WeightAdjustment `json:"adjustment_history,omitempty"`
}

// WeightAdjustment is one immutable entry in a task's adjustment history.
type WeightAdjustment struct {
	Adjustment       float64   `json:"adjustment"`
	PreviousWeight   float64   `json:"previous_weight"`
	NewWeight        float64   `json:"new_weight"`
	Confidence       float64   `json:"confidence"`
	SampleSize       int       `json:"sample_size"`
	AlgorithmVersion string    `json:"algorithm_version"`
	AppliedAt        time.Time `json:"applied_at"`
}

// Child is one child on a family record. Age is in years; fractional
// ages matter for infant and transition detection.
type Child struct {
	Name       string     `json:"name,omitempty"`
	Age        float64    `json:"age"`
	MovedOutAt *time.Time `json:"moved_out_at,omitempty"`
}

// Demographics holds coarse, tag-based family descriptors used for
// low-trust classification. Tags come from a finite vocabulary rather
// than free text.
type Demographics struct {
	BackgroundTags  []string `json:"background_tags,omitempty"`
	Region          string   `json:"region,omitempty"`
	Religion        string   `json:"religion,omitempty"`
	Religiosity     string   `json:"religiosity,omitempty"`
	FamilyStructure string   `json:"family_structure,omitempty"`
}

// CulturalPreferences is the explicit, highest-trust cultural setting.
type CulturalPreferences struct {
	ValueSystem        string            `json:"value_system,omitempty"`
	DimensionOverrides map[string]string `json:"dimension_overrides,omitempty"`
}

// RelationshipSurvey captures direct answers about how the couple operates.
type RelationshipSurvey struct {
	DecisionMaking string `json:"decision_making,omitempty"`
	Communication  string `json:"communication,omitempty"`
	ConflictStyle  string `json:"conflict_style,omitempty"`
}

// LaborSurvey captures the family's stated division-of-labor approach.
type LaborSurvey struct {
	Approach string `json:"approach,omitempty"`
}

// Family is the aggregate record the adjustment modules classify.
// Analysis pointers are cache hints; a stale or missing pointer means
// the module recomputes from scratch.
type Family struct {
	ID              string               `json:"id"`
	Name            string               `json:"name,omitempty"`
	FamilyType      string               `json:"family_type,omitempty"`
	CulturalContext string               `json:"cultural_context,omitempty"`
	Children        []Child              `json:"children,omitempty"`
	Demographics    *Demographics        `json:"demographics,omitempty"`
	CulturalPrefs   *CulturalPreferences `json:"cultural_preferences,omitempty"`
	CulturalValues  map[string]float64   `json:"cultural_values,omitempty"`
	Relationship    *RelationshipSurvey  `json:"relationship_survey,omitempty"`
	Labor           *LaborSurvey         `json:"labor_survey,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`

	AnalysisPointers map[AnalysisKind]uuid.UUID `json:"analysis_pointers,omitempty"`
}

// TaskAdjustment is a learned per-task multiplier on a family's profile.
type TaskAdjustment struct {
	Multiplier   float64   `json:"multiplier"`
	SampleSize   int       `json:"sample_size"`
	Source       string    `json:"source,omitempty"`
	LastAdjusted time.Time `json:"last_adjusted"`
}

// CategoryAdjustment is a learned per-category multiplier.
type CategoryAdjustment struct {
	Multiplier   float64   `json:"multiplier"`
	SampleSize   int       `json:"sample_size"`
	LastAdjusted time.Time `json:"last_adjusted"`
}

// WeightProfile holds a family's accumulated multiplier overrides.
// New evidence is always blended 70/30 with the existing value so a
// single feedback batch cannot swing the profile abruptly.
type WeightProfile struct {
	FamilyID            string                        `json:"family_id"`
	TaskAdjustments     map[string]TaskAdjustment     `json:"task_adjustments"`
	CategoryAdjustments map[string]CategoryAdjustment `json:"category_adjustments"`
	Version             string                        `json:"version"`
	CreatedAt           time.Time                     `json:"created_at"`
	UpdatedAt           time.Time                     `json:"updated_at"`
}

// WeightFeedback records a human correction to a calculated weight.
// Status moves pending -> processed exactly once.
type WeightFeedback struct {
	ID               uuid.UUID      `json:"id"`
	TaskID           string         `json:"task_id"`
	FamilyID         string         `json:"family_id,omitempty"`
	CalculatedWeight float64        `json:"calculated_weight"`
	SuggestedWeight  float64        `json:"suggested_weight"`
	Status           FeedbackStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	ProcessedAt      *time.Time     `json:"processed_at,omitempty"`
}

// Adjustment returns the signed correction the user asked for.
func (f *WeightFeedback) Adjustment() float64 {
	return f.SuggestedWeight - f.CalculatedWeight
}

// CalcVersion describes one published calculation algorithm version.
// Immutable once published except for the deprecation date.
type CalcVersion struct {
	Version         string     `json:"version"`
	Name            string     `json:"name"`
	Features        []string   `json:"features"`
	ReleaseDate     time.Time  `json:"release_date"`
	DeprecationDate *time.Time `json:"deprecation_date,omitempty"`
	IsDefault       bool       `json:"is_default,omitempty"`
}

// CategoryBalance is the per-category split of a balance computation.
type CategoryBalance struct {
	MamaPct       float64 `json:"mama_pct"`
	PapaPct       float64 `json:"papa_pct"`
	NeutralPct    float64 `json:"neutral_pct"`
	Imbalance     float64 `json:"imbalance"`
	BurnoutRisk   string  `json:"burnout_risk"`
	QuestionCount int     `json:"question_count"`
	Coverage      float64 `json:"coverage"`
}

// OverallBalance is the family-level roll-up across categories.
type OverallBalance struct {
	MamaPct     float64 `json:"mama_pct"`
	PapaPct     float64 `json:"papa_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	Imbalance   float64 `json:"imbalance"`
	BurnoutRisk string  `json:"burnout_risk"`
}

// BalanceResult is one append-only balance snapshot for a family.
type BalanceResult struct {
	ID         uuid.UUID                  `json:"id"`
	FamilyID   string                     `json:"family_id"`
	Overall    OverallBalance             `json:"overall"`
	Categories map[string]CategoryBalance `json:"categories"`
	Unparsed   int                        `json:"unparsed,omitempty"`
	Version    string                     `json:"version"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// Analysis is a persisted snapshot of one adjustment-module run.
// Payload is the module's own result structure, stored verbatim.
type Analysis struct {
	ID        uuid.UUID       `json:"id"`
	FamilyID  string          `json:"family_id"`
	Kind      AnalysisKind    `json:"kind"`
	Revision  int             `json:"revision"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// LearningEvent is an audit-log row written by the evolution engine.
type LearningEvent struct {
	ID        uuid.UUID              `json:"id"`
	Kind      string                 `json:"kind"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// CalcLogEntry is a best-effort calculation-history row. Writing it
// never blocks or fails the calculation that produced it.
type CalcLogEntry struct {
	ID        uuid.UUID `json:"id"`
	TaskID    string    `json:"task_id"`
	FamilyID  string    `json:"family_id,omitempty"`
	Weight    float64   `json:"weight"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// BurnoutSignal is one contributing indicator in a burnout assessment.
type BurnoutSignal struct {
	Type        string  `json:"type"`
	Parent      string  `json:"parent,omitempty"`
	Severity    float64 `json:"severity"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

// BurnoutIntervention is one recommended mitigation step.
type BurnoutIntervention struct {
	Type             string   `json:"type"`
	Priority         string   `json:"priority"`
	Message          string   `json:"message"`
	Description      string   `json:"description,omitempty"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
}

// BurnoutAssessment is one append-only burnout evaluation for a family.
type BurnoutAssessment struct {
	ID            uuid.UUID             `json:"id"`
	FamilyID      string                `json:"family_id"`
	HasRisk       bool                  `json:"has_risk"`
	RiskLevel     string                `json:"risk_level"`
	AtRiskParent  string                `json:"at_risk_parent,omitempty"`
	RiskScores    map[string]float64    `json:"risk_scores"`
	Signals       []BurnoutSignal       `json:"signals,omitempty"`
	Interventions []BurnoutIntervention `json:"interventions,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// Store abstracts persistence. Lookups return (nil, nil) when the row
// does not exist.
type Store interface {
	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	UpdateTaskWeight(ctx context.Context, id string, baseWeight float64, entry WeightAdjustment) error

	// Families
	CreateFamily(ctx context.Context, family *Family) error
	GetFamily(ctx context.Context, id string) (*Family, error)
	SetAnalysisPointer(ctx context.Context, familyID string, kind AnalysisKind, analysisID uuid.UUID) error

	// Weight profiles
	GetWeightProfile(ctx context.Context, familyID string) (*WeightProfile, error)
	SaveWeightProfile(ctx context.Context, profile *WeightProfile) error

	// Feedback
	CreateFeedback(ctx context.Context, fb *WeightFeedback) error
	GetPendingFeedback(ctx context.Context, limit int) ([]*WeightFeedback, error)
	MarkFeedbackProcessed(ctx context.Context, ids []uuid.UUID) error
	GetFeedbackSince(ctx context.Context, since time.Time) ([]*WeightFeedback, error)
	GetFeedbackByTask(ctx context.Context, taskID string, limit int) ([]*WeightFeedback, error)
	GetFeedbackByFamily(ctx context.Context, familyID string, limit int) ([]*WeightFeedback, error)

	// Version registry
	GetCalcVersions(ctx context.Context) ([]*CalcVersion, error)
	RegisterCalcVersion(ctx context.Context, v *CalcVersion) error
	GetDefaultCalcVersion(ctx context.Context) (string, error)

	// Balance results
	CreateBalanceResult(ctx context.Context, result *BalanceResult) error
	GetRecentBalanceResults(ctx context.Context, familyID string, limit int) ([]*BalanceResult, error)

	// Analyses
	CreateAnalysis(ctx context.Context, a *Analysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error)
	GetLatestAnalysis(ctx context.Context, familyID string, kind AnalysisKind) (*Analysis, error)

	// Audit
	CreateLearningEvent(ctx context.Context, event *LearningEvent) error
	CreateCalcLogEntry(ctx context.Context, entry *CalcLogEntry) error
	GetCalcLog(ctx context.Context, taskID string, limit int) ([]*CalcLogEntry, error)

	// Burnout
	CreateBurnoutAssessment(ctx context.Context, a *BurnoutAssessment) error
	GetLatestBurnoutAssessment(ctx context.Context, familyID string) (*BurnoutAssessment, error)
	GetBurnoutHistory(ctx context.Context, familyID string, limit int) ([]*BurnoutAssessment, error)

	Close() error
}
