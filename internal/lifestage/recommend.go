package lifestage

import (
	"context"
	"sort"
	"time"
)

// RankedTask is a task name with its importance for a stage/transition.
type RankedTask struct {
	Task       string  `json:"task"`
	Importance float64 `json:"importance"`
}

// RelevantTasks lists the tasks a life stage materially amplifies,
// most important first.
func RelevantTasks(stage string) []RankedTask {
	return rankTasks(stageTaskMultipliers[stage])
}

// TransitionTasks lists the tasks a transition materially amplifies.
func TransitionTasks(transition string) []RankedTask {
	return rankTasks(transitionTaskMultipliers[transition])
}

func rankTasks(table map[string]float64) []RankedTask {
	var ranked []RankedTask
	for task, m := range table {
		if m > 1.1 {
			ranked = append(ranked, RankedTask{Task: task, Importance: m})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Importance == ranked[j].Importance {
			return ranked[i].Task < ranked[j].Task
		}
		return ranked[i].Importance > ranked[j].Importance
	})
	return ranked
}

// ChildRecommendation bundles guidance for one child's stage.
type ChildRecommendation struct {
	ChildName      string       `json:"child_name,omitempty"`
	Stage          string       `json:"life_stage"`
	Age            float64      `json:"age"`
	RelevantTasks  []RankedTask `json:"relevant_tasks"`
	ImportantAreas []string     `json:"important_areas"`
}

// TransitionRecommendation bundles guidance for one active transition.
type TransitionRecommendation struct {
	Transition    string       `json:"transition"`
	Description   string       `json:"description"`
	ChildName     string       `json:"child_name,omitempty"`
	RelevantTasks []RankedTask `json:"relevant_tasks"`
	Approaches    []string     `json:"suggested_approaches"`
}

// Recommendations is the full guidance payload for a family.
type Recommendations struct {
	FamilyID           string                     `json:"family_id"`
	HasRecommendations bool                       `json:"has_recommendations"`
	Message            string                     `json:"message,omitempty"`
	GeneratedAt        time.Time                  `json:"generated_at,omitempty"`
	PerChild           []ChildRecommendation      `json:"child_specific,omitempty"`
	PerTransition      []TransitionRecommendation `json:"transition_specific,omitempty"`
	Resources          []Resource                 `json:"resources,omitempty"`
}

const maxRankedTasks = 5

// Recommend builds stage and transition guidance from the family's
// latest analysis.
func (s *Service) Recommend(ctx context.Context, familyID string) (*Recommendations, error) {
	analysis, err := s.Latest(ctx, familyID)
	if err != nil {
		return nil, err
	}

	if !analysis.HasChildren {
		return &Recommendations{
			FamilyID: familyID,
			Message:  "No children detected for content recommendations",
		}, nil
	}

	rec := &Recommendations{
		FamilyID:           familyID,
		HasRecommendations: true,
		GeneratedAt:        time.Now().UTC(),
	}

	for _, child := range analysis.Stages {
		tasks := RelevantTasks(child.Stage)
		if len(tasks) == 0 {
			continue
		}
		if len(tasks) > maxRankedTasks {
			tasks = tasks[:maxRankedTasks]
		}
		rec.PerChild = append(rec.PerChild, ChildRecommendation{
			ChildName:      child.Name,
			Stage:          child.Stage,
			Age:            child.Age,
			RelevantTasks:  tasks,
			ImportantAreas: importantAreas[child.Stage],
		})
	}

	for _, t := range analysis.Transitions {
		tasks := TransitionTasks(t.Type)
		if len(tasks) == 0 {
			continue
		}
		if len(tasks) > maxRankedTasks {
			tasks = tasks[:maxRankedTasks]
		}
		rec.PerTransition = append(rec.PerTransition, TransitionRecommendation{
			Transition:    t.Type,
			Description:   t.Description,
			ChildName:     t.ChildName,
			RelevantTasks: tasks,
			Approaches:    transitionApproaches[t.Type],
		})
	}

	seen := make(map[string]bool)
	for _, child := range analysis.Stages {
		if r, ok := stageResources[child.Stage]; ok && !seen[r.Title] {
			seen[r.Title] = true
			rec.Resources = append(rec.Resources, r)
		}
	}
	for _, t := range analysis.Transitions {
		if r, ok := transitionResources[t.Type]; ok && !seen[r.Title] {
			seen[r.Title] = true
			rec.Resources = append(rec.Resources, r)
		}
	}

	return rec, nil
}
