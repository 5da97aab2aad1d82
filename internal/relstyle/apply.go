package relstyle

import (
	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/weights"
)

// Apply multiplies a task's base weight by the split for its category
// and the given parent. Returns the adjusted copy and the adaptation
// record, or nil when the category has no split.
func Apply(task *store.Task, parent string, adj *Adjustments) (*store.Task, *weights.Adaptation) {
	if task == nil || parent == "" || adj == nil {
		return task, nil
	}

	split, ok := adj.Categories[task.Category]
	if !ok {
		return task, nil
	}
	var multiplier float64
	switch parent {
	case ParentMama:
		multiplier = split.Mama
	case ParentPapa:
		multiplier = split.Papa
	default:
		return task, nil
	}
	if multiplier == 0 {
		return task, nil
	}

	adjusted := *task
	before := adjusted.BaseWeight
	if before == 0 {
		before = 3
	}
	adjusted.BaseWeight = before * multiplier

	return &adjusted, &weights.Adaptation{
		Type:         "relationship_style",
		Multiplier:   multiplier,
		BeforeWeight: before,
		AfterWeight:  adjusted.BaseWeight,
		Context: map[string]interface{}{
			"category": task.Category,
			"parent":   parent,
		},
	}
}
