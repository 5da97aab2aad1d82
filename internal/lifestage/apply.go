package lifestage

import (
	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/weights"
)

// Apply multiplies a task's base weight by the matched life-stage
// adjustment. An exact task-name match wins; the category adjustment
// fires only when no task match did. Returns the adjusted copy and the
// adaptation record, or nil when nothing applied.
func Apply(task *store.Task, adj *Adjustments) (*store.Task, *weights.Adaptation) {
	if task == nil || adj == nil {
		return task, nil
	}

	adjusted := *task
	before := adjusted.BaseWeight
	if before == 0 {
		before = 3
	}

	if tm, ok := adj.Tasks[task.Name]; ok && tm.Multiplier != 0 {
		adjusted.BaseWeight = before * tm.Multiplier
		return &adjusted, &weights.Adaptation{
			Type:         "life_stage",
			Multiplier:   tm.Multiplier,
			BeforeWeight: before,
			AfterWeight:  adjusted.BaseWeight,
			Context: map[string]interface{}{
				"contributors": tm.Contributors,
			},
		}
	}

	if m, ok := adj.Categories[task.Category]; ok {
		adjusted.BaseWeight = before * m
		return &adjusted, &weights.Adaptation{
			Type:         "category_life_stage",
			Multiplier:   m,
			BeforeWeight: before,
			AfterWeight:  adjusted.BaseWeight,
			Context: map[string]interface{}{
				"category": task.Category,
			},
		}
	}

	return &adjusted, nil
}
