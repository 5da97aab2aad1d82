// Package burnout detects burnout risk from workload balance history
// and recommends interventions.
package burnout

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fairload-app/fairload/internal/events"
	"github.com/fairload-app/fairload/internal/store"
)

// Alert is the view returned when a family's latest assessment warrants
// immediate attention.
type Alert struct {
	FamilyID      string    `json:"family_id"`
	AssessmentID  uuid.UUID `json:"assessment_id"`
	RiskLevel     string    `json:"risk_level"`
	AtRiskParent  string    `json:"at_risk_parent"`
	Message       string    `json:"message"`
	Interventions []string  `json:"interventions,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RiskLevelFor maps a 0-1 imbalance score to a risk level.
func RiskLevelFor(imbalance float64) string {
	switch {
	case imbalance >= ThresholdSevere:
		return RiskSevere
	case imbalance >= ThresholdHigh:
		return RiskHigh
	case imbalance >= ThresholdModerate:
		return RiskModerate
	case imbalance >= ThresholdLow:
		return RiskLow
	default:
		return RiskMinimal
	}
}

// UpgradeRiskLevel bumps a level one step toward severe.
func UpgradeRiskLevel(level string) string {
	for i, l := range riskLevels {
		if l == level && i < len(riskLevels)-1 {
			return riskLevels[i+1]
		}
	}
	return level
}

// CalculateRisk evaluates burnout risk from the newest balance result,
// the preceding history, and the family profile. Balance percentages
// are on the 0-100 scale; risk scores come out on 0-1.
func CalculateRisk(latest *store.BalanceResult, history []*store.BalanceResult, family *store.Family) *store.BurnoutAssessment {
	overall := latest.Overall
	imbalance := overall.Imbalance / 100
	riskLevel := RiskLevelFor(imbalance)

	atRiskParent := store.ParentPapa
	if overall.MamaPct > overall.PapaPct {
		atRiskParent = store.ParentMama
	}

	var signals []store.BurnoutSignal
	if imbalance >= ThresholdModerate {
		signals = append(signals, store.BurnoutSignal{
			Type:        SignalWorkload,
			Parent:      atRiskParent,
			Severity:    imbalance,
			Description: fmt.Sprintf("%s is handling %.0f%% of the family workload", parentLabel(atRiskParent), math.Max(overall.MamaPct, overall.PapaPct)),
		})
	}

	for _, category := range sortedCategories(latest.Categories) {
		cb := latest.Categories[category]
		impact := categoryImpact[category]
		if impact == 0 {
			impact = 1.0
		}
		adjusted := cb.Imbalance / 100 * impact

		moreWorkParent := store.ParentPapa
		if cb.MamaPct > cb.PapaPct {
			moreWorkParent = store.ParentMama
		}

		if adjusted >= ThresholdHigh {
			signalType := SignalWorkload
			if strings.Contains(category, "Invisible") {
				signalType = SignalInvisible
			}
			signals = append(signals, store.BurnoutSignal{
				Type:        signalType,
				Parent:      moreWorkParent,
				Severity:    adjusted,
				Category:    category,
				Description: fmt.Sprintf("%s is handling %.0f%% of %s", parentLabel(moreWorkParent), math.Max(cb.MamaPct, cb.PapaPct), strings.ToLower(category)),
			})
		}
		if category == "Emotional Support" && adjusted >= ThresholdModerate {
			signals = append(signals, store.BurnoutSignal{
				Type:        SignalEmotional,
				Parent:      moreWorkParent,
				Severity:    adjusted,
				Category:    category,
				Description: fmt.Sprintf("%s is handling most of the emotional labor", parentLabel(moreWorkParent)),
			})
		}
	}

	if len(history) > 1 {
		trend := (latest.Overall.Imbalance - history[1].Overall.Imbalance) / 100
		if trend > 0.1 {
			signals = append(signals, store.BurnoutSignal{
				Type:        SignalTemporal,
				Parent:      atRiskParent,
				Severity:    trend,
				Description: fmt.Sprintf("Workload imbalance is increasing (%.0f%% change)", trend*100),
			})
		}
	}

	hasYoungChildren := false
	for _, child := range family.Children {
		if child.Age < 5 && child.MovedOutAt == nil {
			hasYoungChildren = true
			break
		}
	}

	adjustedLevel := riskLevel
	if hasYoungChildren && (riskLevel == RiskModerate || riskLevel == RiskHigh) {
		adjustedLevel = UpgradeRiskLevel(riskLevel)
		signals = append(signals, store.BurnoutSignal{
			Type:        SignalComplexity,
			Parent:      atRiskParent,
			Severity:    imbalance,
			Description: "Family has young children (under 5), increasing burnout risk",
		})
	}
	if family.FamilyType == "single_parent" && riskLevel != RiskMinimal {
		adjustedLevel = UpgradeRiskLevel(adjustedLevel)
		signals = append(signals, store.BurnoutSignal{
			Type:        SignalWorkload,
			Parent:      atRiskParent,
			Severity:    imbalance,
			Description: "Single parent status increases burnout vulnerability",
		})
	}

	return &store.BurnoutAssessment{
		ID:           uuid.New(),
		FamilyID:     family.ID,
		HasRisk:      adjustedLevel != RiskMinimal,
		RiskLevel:    adjustedLevel,
		AtRiskParent: atRiskParent,
		RiskScores: map[string]float64{
			"overall":        round2(imbalance),
			store.ParentMama: round2(parentScore(overall.MamaPct)),
			store.ParentPapa: round2(parentScore(overall.PapaPct)),
		},
		Signals:       signals,
		Interventions: GenerateInterventions(adjustedLevel, signals, atRiskParent),
		CreatedAt:     time.Now().UTC(),
	}
}

// parentScore maps a workload share to a 0-1 overload score. 50% is
// neutral; 100% is maximal.
func parentScore(pct float64) float64 {
	return math.Max(0, (pct-50)/50)
}

// GenerateInterventions builds the mitigation list for a risk level and
// its contributing signals.
func GenerateInterventions(riskLevel string, signals []store.BurnoutSignal, atRiskParent string) []store.BurnoutIntervention {
	var interventions []store.BurnoutIntervention
	name := parentLabel(atRiskParent)

	if riskLevel == RiskSevere || riskLevel == RiskHigh {
		interventions = append(interventions, store.BurnoutIntervention{
			Type:        InterventionReduction,
			Priority:    "high",
			Message:     fmt.Sprintf("%s needs immediate workload reduction", name),
			Description: "Identify 3-5 tasks that can be delegated, delayed, or dropped to provide immediate relief",
			SuggestedActions: []string{
				"Identify non-essential tasks to pause temporarily",
				"Consider short-term paid help for household tasks",
				"Simplify meal planning and preparation for 1-2 weeks",
				"Reduce standards temporarily for non-critical tasks",
			},
		}, store.BurnoutIntervention{
			Type:        InterventionExternal,
			Priority:    "high",
			Message:     fmt.Sprintf("Consider getting additional help for %s", name),
			Description: "External support can help reduce overall family workload",
			SuggestedActions: []string{
				"Explore childcare options for regular breaks",
				"Consider meal delivery or prepared meals",
				"Look into cleaning service or household help",
				"Ask extended family for specific help",
			},
		})
	}

	if riskLevel != RiskMinimal {
		priority := "high"
		if riskLevel == RiskLow {
			priority = "medium"
		}
		interventions = append(interventions, store.BurnoutIntervention{
			Type:        InterventionSelfCare,
			Priority:    priority,
			Message:     fmt.Sprintf("%s should prioritize self-care", name),
			Description: "Regular self-care is essential for preventing burnout",
			SuggestedActions: []string{
				"Schedule at least 30 minutes of daily personal time",
				"Prioritize adequate sleep",
				"Take breaks throughout the day",
				"Maintain social connections outside family responsibilities",
			},
		})
	}

	for _, signal := range signals {
		switch signal.Type {
		case SignalEmotional:
			priority := "medium"
			if signal.Severity >= ThresholdHigh {
				priority = "high"
			}
			interventions = append(interventions, store.BurnoutIntervention{
				Type:        InterventionRebalance,
				Priority:    priority,
				Message:     "Rebalance emotional labor in the family",
				Description: fmt.Sprintf("%s is carrying too much emotional labor, which is particularly draining", name),
				SuggestedActions: []string{
					"Explicitly discuss emotional labor distribution",
					"Create a system for sharing responsibility for family morale",
					"Schedule regular check-ins about emotional needs",
					"Consider therapy or counseling for additional support",
				},
			})
		case SignalInvisible:
			interventions = append(interventions, store.BurnoutIntervention{
				Type:        InterventionCommunication,
				Priority:    "medium",
				Message:     "Discuss invisible work distribution",
				Description: fmt.Sprintf("Many invisible tasks are falling to %s", name),
				SuggestedActions: []string{
					"Make a list of all invisible household and parenting tasks",
					"Discuss who currently manages these and redistribute",
					"Set up reminders for newly shared invisible tasks",
					"Check in regularly about invisible workload",
				},
			})
		case SignalComplexity:
			interventions = append(interventions, store.BurnoutIntervention{
				Type:        InterventionExternal,
				Priority:    "medium",
				Message:     "Reduce complexity through support systems",
				Description: "The complexity of current family needs is contributing to burnout risk",
				SuggestedActions: []string{
					"Identify the most complex or stressful tasks",
					"Research specific resources for these challenges",
					"Connect with other families in similar situations",
					"Simplify routines where possible",
				},
			})
		}
	}

	if riskLevel != RiskMinimal && !hasIntervention(interventions, InterventionCommunication) {
		priority := "medium"
		if riskLevel == RiskLow {
			priority = "low"
		}
		interventions = append(interventions, store.BurnoutIntervention{
			Type:        InterventionCommunication,
			Priority:    priority,
			Message:     "Schedule a workload discussion",
			Description: "Regular discussions about workload distribution can prevent burnout",
			SuggestedActions: []string{
				"Set aside time for a non-blaming conversation about family workload",
				"Review the current distribution of tasks together",
				"Identify opportunities to rebalance responsibilities",
				"Create a plan to check in regularly about workload",
			},
		})
	}

	return interventions
}

func hasIntervention(interventions []store.BurnoutIntervention, kind string) bool {
	for _, i := range interventions {
		if i.Type == kind {
			return true
		}
	}
	return false
}

func sortedCategories(categories map[string]store.CategoryBalance) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parentLabel(parent string) string {
	switch parent {
	case store.ParentMama:
		return "Mama"
	case store.ParentPapa:
		return "Papa"
	default:
		return "This parent"
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Service runs assessments against stored balance history and persists
// the results.
type Service struct {
	store  store.Store
	events events.Client
	logger *slog.Logger
}

// NewService builds a burnout service. The events client may be nil.
func NewService(s store.Store, ev events.Client, logger *slog.Logger) *Service {
	return &Service{store: s, events: ev, logger: logger}
}

// Assess evaluates the family's current burnout risk from its last
// three balance results, stores the assessment, and publishes an alert
// event when the risk is high or severe.
func (s *Service) Assess(ctx context.Context, familyID string) (*store.BurnoutAssessment, error) {
	family, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("load family: %w", err)
	}
	if family == nil {
		return nil, fmt.Errorf("family %s not found", familyID)
	}

	history, err := s.store.GetRecentBalanceResults(ctx, familyID, 3)
	if err != nil {
		return nil, fmt.Errorf("load balance history: %w", err)
	}
	if len(history) == 0 {
		return &store.BurnoutAssessment{
			ID:        uuid.New(),
			FamilyID:  familyID,
			HasRisk:   false,
			RiskLevel: RiskUnknown,
			CreatedAt: time.Now().UTC(),
		}, nil
	}

	assessment := CalculateRisk(history[0], history, family)
	if err := s.store.CreateBurnoutAssessment(ctx, assessment); err != nil {
		return nil, fmt.Errorf("store burnout assessment: %w", err)
	}

	if s.events != nil && (assessment.RiskLevel == RiskHigh || assessment.RiskLevel == RiskSevere) {
		signalTypes := make([]string, 0, len(assessment.Signals))
		for _, sig := range assessment.Signals {
			signalTypes = append(signalTypes, sig.Type)
		}
		event := events.BurnoutAlertEvent{
			FamilyID:  familyID,
			RiskLevel: assessment.RiskLevel,
			RiskScore: assessment.RiskScores["overall"],
			Signals:   signalTypes,
		}
		if err := s.events.Publish(events.SubjectFamilyBurnout(familyID), event); err != nil {
			s.logger.Warn("failed to publish burnout alert", "family_id", familyID, "error", err)
		}
	}

	s.logger.Info("burnout assessment complete", "family_id", familyID, "risk_level", assessment.RiskLevel)
	return assessment, nil
}

// Latest returns the most recent stored assessment, running a fresh one
// when none exists.
func (s *Service) Latest(ctx context.Context, familyID string) (*store.BurnoutAssessment, error) {
	assessment, err := s.store.GetLatestBurnoutAssessment(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("load latest burnout assessment: %w", err)
	}
	if assessment != nil {
		return assessment, nil
	}
	return s.Assess(ctx, familyID)
}

// History returns past assessments, newest first.
func (s *Service) History(ctx context.Context, familyID string, limit int) ([]*store.BurnoutAssessment, error) {
	return s.store.GetBurnoutHistory(ctx, familyID, limit)
}

// CheckAlert returns an alert view when the latest assessment is high
// or severe, nil otherwise.
func (s *Service) CheckAlert(ctx context.Context, familyID string) (*Alert, error) {
	assessment, err := s.Latest(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if assessment.RiskLevel != RiskHigh && assessment.RiskLevel != RiskSevere {
		return nil, nil
	}

	var urgent []string
	for _, i := range assessment.Interventions {
		if i.Priority == "high" {
			urgent = append(urgent, i.Message)
		}
	}
	return &Alert{
		FamilyID:      familyID,
		AssessmentID:  assessment.ID,
		RiskLevel:     assessment.RiskLevel,
		AtRiskParent:  assessment.AtRiskParent,
		Message:       fmt.Sprintf("Burnout Alert: %s is showing %s risk of burnout", parentLabel(assessment.AtRiskParent), assessment.RiskLevel),
		Interventions: urgent,
		CreatedAt:     assessment.CreatedAt,
	}, nil
}
