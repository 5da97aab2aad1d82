package relstyle

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Recommendation is one piece of actionable style guidance.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
}

// Recommendations is the full guidance payload for a family.
type Recommendations struct {
	FamilyID           string           `json:"family_id"`
	Style              string           `json:"style,omitempty"`
	HasRecommendations bool             `json:"has_recommendations"`
	Message            string           `json:"message,omitempty"`
	GeneratedAt        time.Time        `json:"generated_at,omitempty"`
	Recommendations    []Recommendation `json:"recommendations,omitempty"`
}

// Recommend builds style-specific guidance from the family's latest
// relationship analysis.
func (s *Service) Recommend(ctx context.Context, familyID string) (*Recommendations, error) {
	analysis, err := s.Latest(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if analysis.Profile.Style == "" {
		return &Recommendations{
			FamilyID:           familyID,
			HasRecommendations: false,
			Message:            "Insufficient relationship style information",
		}, nil
	}

	bi := analysis.BalanceInsights
	if bi == nil {
		results, err := s.store.GetRecentBalanceResults(ctx, familyID, 1)
		if err == nil && len(results) > 0 {
			bi = AnalyzeBalance(results[0])
		}
	}

	out := &Recommendations{
		FamilyID:           familyID,
		Style:              analysis.Profile.Style,
		HasRecommendations: true,
		GeneratedAt:        time.Now().UTC(),
	}

	switch analysis.Profile.Style {
	case StyleTraditional:
		out.Recommendations = traditionalRecommendations(analysis.Profile, bi)
	case StyleEgalitarian:
		out.Recommendations = egalitarianRecommendations(bi)
	case StyleComplementary:
		out.Recommendations = complementaryRecommendations(bi)
	case StyleIndependent:
		out.Recommendations = independentRecommendations(analysis.Profile, bi)
	case StyleCollaborative:
		out.Recommendations = collaborativeRecommendations(bi)
	}
	return out, nil
}

func traditionalRecommendations(p Profile, bi *BalanceInsights) []Recommendation {
	recs := []Recommendation{{
		Title:       "Honor Individual Contributions",
		Description: "In traditional arrangements, it's important to value and recognize the unique contributions of each parent, even when responsibilities differ.",
		ActionItems: []string{
			"Regularly express appreciation for each other's domain expertise",
			"Check in about satisfaction with current role division",
			"Discuss whether either parent needs more support in their primary responsibilities",
		},
	}}

	if bi != nil && bi.Substantial {
		other := ParentPapa
		if bi.MoreWorkParent == ParentPapa {
			other = ParentMama
		}
		recs = append(recs, Recommendation{
			Title:       "Balanced Workload Within Roles",
			Description: fmt.Sprintf("Current workload appears higher for %s. Even within traditional role divisions, the overall workload should feel manageable for both parents.", parentLabel(bi.MoreWorkParent)),
			ActionItems: []string{
				fmt.Sprintf("Identify a few high-impact tasks that could be shifted to %s to create better balance", parentLabel(other)),
				"Consider whether outside help (extended family, services) could reduce overall family workload",
				"Schedule regular check-ins about workload sustainability",
			},
		})
	}

	if p.Communication == CommIndirect {
		recs = append(recs, Recommendation{
			Title:       "Direct Conversations About Needs",
			Description: "While your communication style tends to be indirect, discussing workload and needs directly can prevent build-up of resentment.",
			ActionItems: []string{
				"Schedule regular \"family business\" meetings to discuss household management",
				"Use \"I feel\" statements when workload feels unbalanced",
				"Practice asking directly for specific help when needed",
			},
		})
	}
	return recs
}

func egalitarianRecommendations(bi *BalanceInsights) []Recommendation {
	recs := []Recommendation{{
		Title:       "Track Invisible Labor",
		Description: "Even in egalitarian relationships, invisible tasks like planning, scheduling, and emotional labor often fall unevenly without explicit attention.",
		ActionItems: []string{
			"Audit the \"mental load\" tasks that might not be obvious",
			"Create systems for sharing planning responsibilities",
			"Take turns being the \"default parent\" for child-related decisions",
		},
	}}

	if bi != nil && bi.Substantial {
		recs = append(recs, Recommendation{
			Title:       "Close the Values-Reality Gap",
			Description: fmt.Sprintf("Despite egalitarian values, current workload appears higher for %s. This gap between values and reality is common and can be addressed.", parentLabel(bi.MoreWorkParent)),
			ActionItems: []string{
				"Conduct a detailed task audit across all household and parenting domains",
				"Redistribute responsibilities based on time requirements rather than task count",
				"Consider whether implicit biases or gendered expectations are influencing task division",
			},
		})
	}

	if bi != nil && len(bi.CategoryPatterns) > 0 {
		top := bi.CategoryPatterns[0]
		recs = append(recs, Recommendation{
			Title:       fmt.Sprintf("Balance %s", top.Category),
			Description: fmt.Sprintf("There's a notable imbalance in the %s category, with %s handling significantly more.", top.Category, parentLabel(top.MoreWorkParent)),
			ActionItems: []string{
				fmt.Sprintf("Identify specific tasks within %s that could be redistributed", top.Category),
				"Discuss whether specialized knowledge or skills need to be shared",
				"Create a plan to gradually shift responsibilities toward balance",
			},
		})
	}
	return recs
}

func complementaryRecommendations(bi *BalanceInsights) []Recommendation {
	recs := []Recommendation{{
		Title:       "Ensure Equitable Total Workload",
		Description: "With complementary approaches, ensure domains are distributed fairly so each parent's total responsibility load feels balanced.",
		ActionItems: []string{
			"Assess whether each parent's domains require similar time and energy",
			"Discuss whether current specializations align with each parent's skills and preferences",
			"Cross-train in each other's domains for better mutual understanding",
		},
	}}

	if bi != nil && bi.Substantial {
		recs = append(recs, Recommendation{
			Title:       "Rebalance Domain Responsibilities",
			Description: fmt.Sprintf("Current workload appears higher for %s. Complementary approaches work best when the total workload feels fair.", parentLabel(bi.MoreWorkParent)),
			ActionItems: []string{
				"Identify which domains create the most workload imbalance",
				"Consider redistributing entire domains rather than individual tasks",
				"Discuss whether the current domain division aligns with each parent's capacity",
			},
		})
	}

	recs = append(recs, Recommendation{
		Title:       "Avoid Domain Isolation",
		Description: "While specialization is efficient, complete separation can create knowledge gaps and overwhelm if one parent is unavailable.",
		ActionItems: []string{
			"Create \"backup\" systems for essential domain knowledge",
			"Schedule occasional role swaps to maintain familiarity",
			"Document important processes for each domain",
		},
	})
	return recs
}

func independentRecommendations(p Profile, bi *BalanceInsights) []Recommendation {
	recs := []Recommendation{{
		Title:       "Coordinate Independent Efforts",
		Description: "Independent approaches work best with explicit coordination to ensure all family needs are met without duplication or gaps.",
		ActionItems: []string{
			"Create shared systems for tracking family tasks and responsibilities",
			"Schedule regular coordination check-ins",
			"Define clear ownership for shared domains",
		},
	}}

	if bi != nil && bi.Substantial {
		recs = append(recs, Recommendation{
			Title:       "Address Workload Imbalance",
			Description: fmt.Sprintf("Current workload appears higher for %s. Independent styles require explicit agreements about shared responsibilities.", parentLabel(bi.MoreWorkParent)),
			ActionItems: []string{
				"Review and renegotiate division of family responsibilities",
				"Consider whether certain tasks could be outsourced",
				"Create clear agreements about shared family workload",
			},
		})
	}

	if p.Conflict == ConflictAvoiding {
		recs = append(recs, Recommendation{
			Title:       "Proactive Issue Resolution",
			Description: "Independent styles combined with conflict avoidance can allow imbalances to grow. Regular check-ins can prevent this.",
			ActionItems: []string{
				"Schedule periodic \"state of the family\" discussions",
				"Use written communication tools for sensitive topics if helpful",
				"Create a structured format for addressing workload concerns",
			},
		})
	}
	return recs
}

func collaborativeRecommendations(bi *BalanceInsights) []Recommendation {
	recs := []Recommendation{{
		Title:       "Maintain Collaborative Systems",
		Description: "Collaborative approaches thrive with good systems for coordination and communication.",
		ActionItems: []string{
			"Review and refine shared planning tools and processes",
			"Check that both partners feel equally empowered in decision-making",
			"Schedule regular team meetings to discuss family management",
		},
	}}

	if bi != nil && bi.Substantial {
		recs = append(recs, Recommendation{
			Title:       "Uncover Hidden Imbalances",
			Description: fmt.Sprintf("Despite a collaborative approach, workload appears higher for %s. Collaborative styles can sometimes mask imbalances.", parentLabel(bi.MoreWorkParent)),
			ActionItems: []string{
				"Audit mental load and invisible planning work",
				"Track time spent on family responsibilities for a week",
				"Discuss perceptions of workload balance openly",
			},
		})
	}

	if bi != nil && len(bi.CategoryPatterns) > 0 {
		top := bi.CategoryPatterns[0]
		if strings.Contains(top.Category, "Invisible") {
			recs = append(recs, Recommendation{
				Title:       "Share Invisible Work",
				Description: fmt.Sprintf("There's a notable imbalance in %s, often the most overlooked area in otherwise collaborative relationships.", top.Category),
				ActionItems: []string{
					"Make invisible work visible through lists or tracking",
					"Take turns handling planning and anticipation tasks",
					"Create shared systems for managing household and family knowledge",
				},
			})
		}
	}
	return recs
}
