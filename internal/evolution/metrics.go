package evolution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairload_evolution_cycles_total",
		Help: "Completed evolution cycles.",
	})

	feedbackProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairload_evolution_feedback_processed_total",
		Help: "Feedback rows consumed by the evolution engine.",
	})

	adjustmentsAppliedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fairload_evolution_adjustments_applied_total",
		Help: "Weight adjustments applied, by scope.",
	}, []string{"scope"})
)
