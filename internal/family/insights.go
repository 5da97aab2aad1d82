package family

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fairload-app/fairload/internal/burnout"
	"github.com/fairload-app/fairload/internal/culture"
	"github.com/fairload-app/fairload/internal/lifestage"
	"github.com/fairload-app/fairload/internal/relstyle"
	"github.com/fairload-app/fairload/internal/store"
)

// PriorityRecommendation is one cross-system recommendation, ranked by
// urgency.
type PriorityRecommendation struct {
	Source      string   `json:"source"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Actions     []string `json:"actions,omitempty"`
	Category    string   `json:"category"`
}

// ProfileSummary is the compact family descriptor on an insights view.
type ProfileSummary struct {
	FamilyType    string `json:"family_type,omitempty"`
	ChildrenCount int    `json:"children_count"`
}

// Insights combines every analysis system's latest view of one family.
type Insights struct {
	FamilyID                string                   `json:"family_id"`
	GeneratedAt             time.Time                `json:"generated_at"`
	Profile                 ProfileSummary           `json:"profile"`
	Burnout                 *store.BurnoutAssessment `json:"burnout,omitempty"`
	LifeStage               *lifestage.Analysis      `json:"life_stage,omitempty"`
	CulturalContext         *culture.Analysis        `json:"cultural_context,omitempty"`
	RelationshipStyle       *relstyle.Analysis       `json:"relationship_style,omitempty"`
	PriorityRecommendations []PriorityRecommendation `json:"priority_recommendations"`
}

// Insights aggregates the family's analyses. The four subsystems run
// concurrently; any individual failure degrades to a nil section.
func (s *Service) Insights(ctx context.Context, familyID string) (*Insights, error) {
	fam, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("load family: %w", err)
	}
	if fam == nil {
		return nil, fmt.Errorf("family %s not found", familyID)
	}

	out := &Insights{
		FamilyID:    familyID,
		GeneratedAt: time.Now().UTC(),
		Profile: ProfileSummary{
			FamilyType:    fam.FamilyType,
			ChildrenCount: len(fam.Children),
		},
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		if a, err := s.burnout.Latest(ctx, familyID); err != nil {
			s.logger.Warn("burnout section unavailable", "family_id", familyID, "error", err)
		} else {
			out.Burnout = a
		}
	}()
	go func() {
		defer wg.Done()
		if a, err := s.lifestage.Latest(ctx, familyID); err != nil {
			s.logger.Warn("life stage section unavailable", "family_id", familyID, "error", err)
		} else {
			out.LifeStage = a
		}
	}()
	go func() {
		defer wg.Done()
		if a, err := s.culture.Latest(ctx, familyID); err != nil {
			s.logger.Warn("cultural section unavailable", "family_id", familyID, "error", err)
		} else {
			out.CulturalContext = a
		}
	}()
	go func() {
		defer wg.Done()
		if a, err := s.relstyle.Latest(ctx, familyID); err != nil {
			s.logger.Warn("relationship section unavailable", "family_id", familyID, "error", err)
		} else {
			out.RelationshipStyle = a
		}
	}()
	wg.Wait()

	out.PriorityRecommendations = PriorityRecommendations(out.Burnout, out.LifeStage, out.CulturalContext, out.RelationshipStyle)
	return out, nil
}

var priorityRank = map[string]int{"critical": 3, "high": 2, "medium": 1, "low": 0}

var intensityRank = map[string]int{"high": 3, "moderate": 2, "low": 1}

// PriorityRecommendations merges the analysis systems into a single
// ranked list, capped at five entries. Severe or high burnout risk
// outranks everything else.
func PriorityRecommendations(
	assessment *store.BurnoutAssessment,
	lifeStage *lifestage.Analysis,
	cultural *culture.Analysis,
	relationship *relstyle.Analysis,
) []PriorityRecommendation {
	var recs []PriorityRecommendation

	if assessment != nil && assessment.HasRisk &&
		(assessment.RiskLevel == burnout.RiskSevere || assessment.RiskLevel == burnout.RiskHigh) {
		urgent := 0
		for _, i := range assessment.Interventions {
			if i.Priority != "high" || urgent == 2 {
				continue
			}
			recs = append(recs, PriorityRecommendation{
				Source:      "burnout",
				Priority:    "critical",
				Title:       i.Message,
				Description: i.Description,
				Actions:     i.SuggestedActions,
				Category:    "Burnout Prevention",
			})
			urgent++
		}
	}

	if lifeStage != nil && len(lifeStage.Transitions) > 0 {
		top := lifeStage.Transitions[0]
		for _, t := range lifeStage.Transitions[1:] {
			if intensityRank[t.Intensity] > intensityRank[top.Intensity] {
				top = t
			}
		}
		recs = append(recs, PriorityRecommendation{
			Source:      "lifestage",
			Priority:    "high",
			Title:       "Supporting " + strings.ReplaceAll(top.Type, "_", " "),
			Description: top.Description,
			Category:    "Life Stage Adaptation",
		})
	}

	if relationship != nil && len(relationship.Insights) > 0 {
		recs = append(recs, PriorityRecommendation{
			Source:      "relationship",
			Priority:    "medium",
			Title:       relationship.Insights[0].Topic,
			Description: relationship.Insights[0].Text,
			Category:    "Relationship Dynamics",
		})
	}

	if cultural != nil && len(cultural.Insights) > 0 {
		recs = append(recs, PriorityRecommendation{
			Source:      "culture",
			Priority:    "medium",
			Title:       cultural.Insights[0].Topic,
			Description: cultural.Insights[0].Text,
			Category:    "Cultural Context",
		})
	}

	if assessment != nil && assessment.HasRisk && assessment.RiskLevel == burnout.RiskModerate &&
		!hasSource(recs, "burnout") && len(assessment.Interventions) > 0 {
		first := assessment.Interventions[0]
		recs = append(recs, PriorityRecommendation{
			Source:      "burnout",
			Priority:    "medium",
			Title:       first.Message,
			Description: first.Description,
			Actions:     first.SuggestedActions,
			Category:    "Workload Management",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] > priorityRank[recs[j].Priority]
	})
	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}

func hasSource(recs []PriorityRecommendation, source string) bool {
	for _, r := range recs {
		if r.Source == source {
			return true
		}
	}
	return false
}
