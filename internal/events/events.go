package events

import "time"

type CalcCompletedEvent struct {
	TaskID   string  `json:"task_id"`
	FamilyID string  `json:"family_id,omitempty"`
	Version  string  `json:"version"`
	Weight   float64 `json:"weight"`
	Enhanced bool    `json:"enhanced,omitempty"`
}

type BalanceComputedEvent struct {
	FamilyID    string  `json:"family_id"`
	MamaPct     float64 `json:"mama_pct"`
	PapaPct     float64 `json:"papa_pct"`
	Imbalance   float64 `json:"imbalance"`
	BurnoutRisk string  `json:"burnout_risk"`
	Version     string  `json:"version"`
}

type FeedbackReceivedEvent struct {
	FeedbackID string  `json:"feedback_id"`
	TaskID     string  `json:"task_id"`
	FamilyID   string  `json:"family_id,omitempty"`
	Adjustment float64 `json:"adjustment"`
}

type EvolutionCycleEvent struct {
	FeedbackProcessed int       `json:"feedback_processed"`
	GlobalAdjustments int       `json:"global_adjustments_applied"`
	FamilyAdjustments int       `json:"family_adjustments_applied"`
	CorrelationsFound int       `json:"correlations_found"`
	CompletedAt       time.Time `json:"completed_at"`
}

type BurnoutAlertEvent struct {
	FamilyID  string   `json:"family_id"`
	RiskLevel string   `json:"risk_level"`
	RiskScore float64  `json:"risk_score"`
	Signals   []string `json:"signals,omitempty"`
}
