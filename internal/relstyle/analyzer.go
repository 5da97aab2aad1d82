// Package relstyle classifies how a couple divides responsibility and
// derives per-parent task-weight adjustments from that style.
package relstyle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/fairload-app/fairload/internal/store"
)

// Profile is a resolved relationship style with its secondary axes.
type Profile struct {
	Style         string `json:"style"`
	Communication string `json:"communication_pattern"`
	Conflict      string `json:"conflict_style"`
	Division      string `json:"task_division_approach"`
	Confidence    string `json:"confidence_score"`
}

// CategoryPattern is one category with a notable parent imbalance.
type CategoryPattern struct {
	Category       string  `json:"category"`
	Imbalance      float64 `json:"imbalance"`
	MamaPct        float64 `json:"mama_pct"`
	PapaPct        float64 `json:"papa_pct"`
	MoreWorkParent string  `json:"more_work_parent"`
}

// BalanceInsights summarizes the most recent balance snapshot for
// style refinement. Percentages run 0-100.
type BalanceInsights struct {
	OverallImbalance float64           `json:"overall_imbalance"`
	MamaPct          float64           `json:"mama_pct"`
	PapaPct          float64           `json:"papa_pct"`
	Substantial      bool              `json:"has_substantial_imbalance"`
	MoreWorkParent   string            `json:"more_work_parent"`
	CategoryPatterns []CategoryPattern `json:"category_patterns,omitempty"`
}

// Adjustments maps task categories to their per-parent splits.
type Adjustments struct {
	Categories map[string]Split `json:"category_adjustments"`
}

// Analysis is the persisted outcome of one style classification.
type Analysis struct {
	FamilyID        string           `json:"family_id"`
	Profile         Profile          `json:"profile"`
	BalanceInsights *BalanceInsights `json:"balance_insights,omitempty"`
	Adjustments     Adjustments      `json:"weight_adjustments"`
	Insights        []Insight        `json:"insights,omitempty"`
	AnalyzedAt      time.Time        `json:"analyzed_at"`
}

// Insight is a short observation tied to a topic.
type Insight struct {
	Topic string `json:"topic"`
	Text  string `json:"insight"`
}

// Infer derives a style profile from demographics and surveys. The
// relationship survey is the strongest signal; demographics alone
// leave confidence low.
func Infer(family *store.Family) Profile {
	p := Profile{
		Style:         StyleEgalitarian,
		Communication: CommMixed,
		Conflict:      ConflictCompromising,
		Division:      DivisionBalanced,
		Confidence:    "low",
	}

	if d := family.Demographics; d != nil {
		for _, tag := range d.BackgroundTags {
			switch strings.ToLower(tag) {
			case "traditional", "conservative":
				p.Style = StyleTraditional
				p.Division = DivisionGendered
			case "progressive", "liberal", "egalitarian":
				p.Style = StyleEgalitarian
				p.Division = DivisionBalanced
			}
		}
		if d.Religiosity == "high" || d.Religiosity == "very high" {
			r := strings.ToLower(d.Religion)
			if strings.Contains(r, "conservative") || strings.Contains(r, "orthodox") || strings.Contains(r, "traditional") {
				p.Style = StyleTraditional
				p.Division = DivisionGendered
			}
		}
	}

	if family.Labor != nil {
		switch family.Labor.Approach {
		case "equal":
			p.Style = StyleEgalitarian
			p.Division = DivisionBalanced
		case "traditional":
			p.Style = StyleTraditional
			p.Division = DivisionGendered
		case "strengths":
			p.Style = StyleComplementary
			p.Division = DivisionExpertise
		case "preferences":
			p.Style = StyleCollaborative
			p.Division = DivisionPreference
		case "separate":
			p.Style = StyleIndependent
		}
		if family.Labor.Approach != "" {
			p.Confidence = "medium"
		}
	}

	if family.Relationship != nil {
		applySurvey(&p, family.Relationship)
	}
	return p
}

func applySurvey(p *Profile, survey *store.RelationshipSurvey) {
	p.Confidence = "high"

	switch survey.DecisionMaking {
	case "joint":
		p.Style = StyleCollaborative
	case "specialized":
		p.Style = StyleComplementary
	case "independent":
		p.Style = StyleIndependent
	case "hierarchical":
		p.Style = StyleTraditional
	case "equal":
		p.Style = StyleEgalitarian
	}
	switch survey.Communication {
	case "direct", "indirect", "emotional", "analytical", "mixed":
		p.Communication = survey.Communication
	}
	switch survey.ConflictStyle {
	case "compromise":
		p.Conflict = ConflictCompromising
	case "accommodate":
		p.Conflict = ConflictAccommodating
	case "avoid":
		p.Conflict = ConflictAvoiding
	case "compete":
		p.Conflict = ConflictCompeting
	case "collaborate":
		p.Conflict = ConflictCollaborating
	}
}

// AnalyzeBalance condenses a balance snapshot into the signals the
// style refinement cares about.
func AnalyzeBalance(result *store.BalanceResult) *BalanceInsights {
	if result == nil {
		return nil
	}

	insights := &BalanceInsights{
		OverallImbalance: result.Overall.Imbalance,
		MamaPct:          result.Overall.MamaPct,
		PapaPct:          result.Overall.PapaPct,
	}
	insights.Substantial = insights.OverallImbalance > 30
	if insights.MamaPct > insights.PapaPct {
		insights.MoreWorkParent = ParentMama
	} else {
		insights.MoreWorkParent = ParentPapa
	}

	for category, cb := range result.Categories {
		if cb.Imbalance <= 25 {
			continue
		}
		moreWork := ParentPapa
		if cb.MamaPct > cb.PapaPct {
			moreWork = ParentMama
		}
		insights.CategoryPatterns = append(insights.CategoryPatterns, CategoryPattern{
			Category:       category,
			Imbalance:      cb.Imbalance,
			MamaPct:        cb.MamaPct,
			PapaPct:        cb.PapaPct,
			MoreWorkParent: moreWork,
		})
	}
	sort.Slice(insights.CategoryPatterns, func(i, j int) bool {
		return insights.CategoryPatterns[i].Imbalance > insights.CategoryPatterns[j].Imbalance
	})
	return insights
}

// RefineFromBalance nudges an inferred profile toward what the
// measured balance actually shows.
func RefineFromBalance(p Profile, insights *BalanceInsights) Profile {
	if insights == nil {
		return p
	}

	switch {
	case insights.OverallImbalance < 15:
		if p.Division == DivisionBalanced {
			p.Style = StyleEgalitarian
		} else {
			p.Style = StyleCollaborative
		}
	case insights.OverallImbalance > 40:
		if insights.MamaPct > insights.PapaPct {
			p.Style = StyleTraditional
		} else {
			p.Style = StyleComplementary
		}
	}

	// Mixed dominance across categories reads as domain
	// specialization regardless of the overall number.
	var mamaCats, papaCats int
	for _, cp := range insights.CategoryPatterns {
		if cp.MoreWorkParent == ParentMama {
			mamaCats++
		} else {
			papaCats++
		}
	}
	if mamaCats > 0 && papaCats > 0 {
		p.Style = StyleComplementary
		p.Division = DivisionExpertise
	}
	return p
}

// ComputeAdjustments resolves the category splits for a profile. The
// division approach post-processes the style table: balanced flattens
// everything to 1.0, gendered widens existing skews by 0.1 clamped to
// [0.5, 1.5].
func ComputeAdjustments(p Profile) Adjustments {
	splits := styleSplits(p.Style)

	switch p.Division {
	case DivisionBalanced:
		for category := range splits {
			splits[category] = Split{1.0, 1.0}
		}
	case DivisionGendered:
		for category, s := range splits {
			switch {
			case s.Mama > s.Papa:
				splits[category] = Split{
					Mama: min(s.Mama+0.1, 1.5),
					Papa: max(s.Papa-0.1, 0.5),
				}
			case s.Papa > s.Mama:
				splits[category] = Split{
					Mama: max(s.Mama-0.1, 0.5),
					Papa: min(s.Papa+0.1, 1.5),
				}
			}
		}
	}
	return Adjustments{Categories: splits}
}

// Service runs relationship style analyses and persists them.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(s store.Store, logger *slog.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// Analyze classifies a family's relationship style, folding in the
// latest balance snapshot when one exists, and persists the result.
func (s *Service) Analyze(ctx context.Context, familyID string) (*Analysis, error) {
	family, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("loading family: %w", err)
	}
	if family == nil {
		return nil, fmt.Errorf("family %s not found", familyID)
	}

	profile := Infer(family)

	var insights *BalanceInsights
	results, err := s.store.GetRecentBalanceResults(ctx, familyID, 1)
	if err != nil {
		s.logger.Warn("loading balance results", "error", err, "family_id", familyID)
	} else if len(results) > 0 {
		insights = AnalyzeBalance(results[0])
		profile.Confidence = raiseConfidence(profile.Confidence)
		profile = RefineFromBalance(profile, insights)
	}

	analysis := &Analysis{
		FamilyID:        familyID,
		Profile:         profile,
		BalanceInsights: insights,
		Adjustments:     ComputeAdjustments(profile),
		Insights:        buildInsights(profile, insights),
		AnalyzedAt:      time.Now().UTC(),
	}

	s.persist(ctx, analysis)
	s.logger.Info("relationship style analyzed",
		"family_id", familyID,
		"style", profile.Style,
		"confidence", profile.Confidence)
	return analysis, nil
}

func raiseConfidence(c string) string {
	if c == "low" {
		return "medium"
	}
	return c
}

func (s *Service) persist(ctx context.Context, analysis *Analysis) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		s.logger.Error("marshaling relationship analysis", "error", err, "family_id", analysis.FamilyID)
		return
	}
	rec := &store.Analysis{
		FamilyID: analysis.FamilyID,
		Kind:     store.AnalysisRelationship,
		Payload:  payload,
	}
	if err := s.store.CreateAnalysis(ctx, rec); err != nil {
		s.logger.Error("storing relationship analysis", "error", err, "family_id", analysis.FamilyID)
		return
	}
	if err := s.store.SetAnalysisPointer(ctx, analysis.FamilyID, store.AnalysisRelationship, rec.ID); err != nil {
		s.logger.Warn("updating relationship analysis pointer", "error", err, "family_id", analysis.FamilyID)
	}
}

// Latest returns the most recent relationship analysis, preferring
// the family's cache pointer and recomputing when nothing is stored.
func (s *Service) Latest(ctx context.Context, familyID string) (*Analysis, error) {
	family, err := s.store.GetFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("loading family: %w", err)
	}
	if family == nil {
		return nil, fmt.Errorf("family %s not found", familyID)
	}

	if id, ok := family.AnalysisPointers[store.AnalysisRelationship]; ok {
		rec, err := s.store.GetAnalysis(ctx, id)
		if err == nil && rec != nil {
			if a := decode(rec); a != nil {
				return a, nil
			}
		}
	}
	rec, err := s.store.GetLatestAnalysis(ctx, familyID, store.AnalysisRelationship)
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

func parentLabel(parent string) string {
	if parent == ParentMama {
		return "Mama"
	}
	return "Papa"
}

func buildInsights(p Profile, bi *BalanceInsights) []Insight {
	var insights []Insight

	switch p.Style {
	case StyleTraditional:
		insights = append(insights, Insight{"Task Distribution", "Your family appears to follow a more traditional division of responsibilities, with distinct roles for each parent."})
		if bi != nil && bi.Substantial {
			insights = append(insights, Insight{"Work Balance", fmt.Sprintf("Current workload appears substantially higher for %s. Consider whether this balance feels sustainable and supportive for both parents.", parentLabel(bi.MoreWorkParent))})
		}
	case StyleEgalitarian:
		insights = append(insights, Insight{"Equal Partnership", "Your family appears to value equal sharing of responsibilities, with minimal role distinction between parents."})
		if bi != nil && bi.Substantial {
			insights = append(insights, Insight{"Balance Gap", fmt.Sprintf("Despite egalitarian values, current workload appears higher for %s. This gap between values and reality is common and can be addressed through explicit task rebalancing.", parentLabel(bi.MoreWorkParent))})
		}
	case StyleComplementary:
		insights = append(insights, Insight{"Complementary Strengths", "Your family appears to divide responsibilities based on individual strengths and preferences rather than traditional gender roles."})
		if bi != nil && len(bi.CategoryPatterns) > 0 {
			top := bi.CategoryPatterns[0]
			insights = append(insights, Insight{"Domain Specialization", fmt.Sprintf("There's a notable division in the %s category, with %s handling significantly more. This specialization can be efficient but may create imbalance if the total workload isn't equitable.", top.Category, parentLabel(top.MoreWorkParent))})
		}
	case StyleIndependent:
		insights = append(insights, Insight{"Autonomous Approach", "Your family appears to value individual autonomy, with each parent maintaining significant independence in their responsibilities."})
		if bi != nil && bi.Substantial {
			insights = append(insights, Insight{"Coordination Gap", fmt.Sprintf("Despite an independent approach, workload appears higher for %s. Independent styles work best when there's explicit agreement about shared responsibilities.", parentLabel(bi.MoreWorkParent))})
		}
	case StyleCollaborative:
		insights = append(insights, Insight{"Team Approach", "Your family appears to take a collaborative approach to responsibilities, working together as a team rather than dividing tasks rigidly."})
		if bi != nil && bi.Substantial {
			insights = append(insights, Insight{"Hidden Imbalance", fmt.Sprintf("Despite a collaborative approach, workload appears higher for %s. Collaborative styles can sometimes mask imbalances in mental load and invisible work.", parentLabel(bi.MoreWorkParent))})
		}
	}

	switch p.Communication {
	case CommDirect:
		insights = append(insights, Insight{"Communication Style", "Your direct communication style favors clarity and efficiency. This can be particularly helpful when addressing workload concerns directly rather than letting frustrations build."})
	case CommIndirect:
		insights = append(insights, Insight{"Communication Style", "Your indirect communication style values harmony and relationship preservation. Consider whether this sometimes makes it challenging to address workload imbalances directly."})
	case CommEmotional:
		insights = append(insights, Insight{"Communication Style", "Your emotional communication style emphasizes connection and feelings. This can help maintain relationship quality while navigating workload challenges."})
	case CommAnalytical:
		insights = append(insights, Insight{"Communication Style", "Your analytical communication style favors logic and problem-solving. This can be helpful for finding practical solutions to workload challenges."})
	}

	switch p.Conflict {
	case ConflictCompromising:
		insights = append(insights, Insight{"Handling Disagreements", "Your compromising approach to conflicts values finding middle ground. This can help ensure both parents feel their needs are partially met when addressing workload concerns."})
	case ConflictAccommodating:
		insights = append(insights, Insight{"Handling Disagreements", "Your accommodating approach to conflicts prioritizes relationship harmony, sometimes at the expense of one partner's needs. Be mindful that this doesn't lead to persistent imbalance over time."})
	case ConflictAvoiding:
		insights = append(insights, Insight{"Handling Disagreements", "Your conflict-avoiding approach may postpone addressing workload imbalances. Consider whether scheduling regular, low-pressure discussions about family responsibilities might help prevent larger issues."})
	case ConflictCollaborating:
		insights = append(insights, Insight{"Handling Disagreements", "Your collaborative approach to conflicts seeks win-win solutions. This can be particularly effective for addressing complex workload challenges that require creative solutions."})
	}
	return insights
}
