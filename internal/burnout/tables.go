package burnout

// Risk thresholds over the 0-1 imbalance scale. A level applies from
// its threshold up to the next one; below ThresholdLow is minimal.
const (
	ThresholdMinimal  = 0.15
	ThresholdLow      = 0.30
	ThresholdModerate = 0.45
	ThresholdHigh     = 0.60
	ThresholdSevere   = 0.75
)

// Risk levels, ordered.
const (
	RiskMinimal  = "minimal"
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskSevere   = "severe"
	RiskUnknown  = "unknown"
)

var riskLevels = []string{RiskMinimal, RiskLow, RiskModerate, RiskHigh, RiskSevere}

// Signal types.
const (
	SignalWorkload   = "workload_imbalance"
	SignalEmotional  = "emotional_labor"
	SignalInvisible  = "invisible_tasks"
	SignalTemporal   = "temporal_concentration"
	SignalComplexity = "high_complexity"
)

// Intervention types.
const (
	InterventionRebalance     = "task_rebalancing"
	InterventionExternal      = "external_support"
	InterventionSelfCare      = "self_care_recommendation"
	InterventionCommunication = "communication_prompt"
	InterventionReduction     = "task_reduction"
)

// categoryImpact weights how strongly an imbalance in each category
// drives burnout. Invisible and emotional work drain more than the
// visible categories.
var categoryImpact = map[string]float64{
	"Visible Household Tasks":   0.7,
	"Invisible Household Tasks": 1.1,
	"Visible Parental Tasks":    0.8,
	"Invisible Parental Tasks":  1.2,
	"Administrative Tasks":      0.9,
	"Financial Tasks":           0.8,
	"Emotional Support":         1.3,
	"Healthcare Management":     1.0,
	"Education Support":         0.9,
	"Social Management":         0.8,
}
