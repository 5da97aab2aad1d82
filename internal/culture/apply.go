package culture

import (
	"sort"
	"strings"

	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/weights"
)

// Apply multiplies a task's base weight by the first cultural
// adjustment whose key appears in the task's name or title. Returns
// the adjusted copy and the adaptation record, or nil when nothing
// matched.
func Apply(task *store.Task, adj *Adjustments) (*store.Task, *weights.Adaptation) {
	if task == nil || adj == nil || len(adj.Tasks) == 0 {
		return task, nil
	}

	name := task.Name
	if name == "" {
		name = task.Title
	}

	adjusted := *task
	before := adjusted.BaseWeight
	if before == 0 {
		before = 3
	}

	keys := make([]string, 0, len(adj.Tasks))
	for key := range adj.Tasks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.Contains(name, key) {
			continue
		}
		tm := adj.Tasks[key]
		adjusted.BaseWeight = before * tm.Multiplier
		return &adjusted, &weights.Adaptation{
			Type:         "cultural_context",
			Multiplier:   tm.Multiplier,
			BeforeWeight: before,
			AfterWeight:  adjusted.BaseWeight,
			Context: map[string]interface{}{
				"matched":      key,
				"contributors": tm.Contributors,
			},
		}
	}

	return &adjusted, nil
}
