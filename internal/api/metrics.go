package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	calculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fairload_calculations_total",
		Help: "Weight calculations served, by algorithm version and mode.",
	}, []string{"version", "mode"})

	balanceComputationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairload_balance_computations_total",
		Help: "Balance score computations served.",
	})

	feedbackReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairload_feedback_received_total",
		Help: "Weight feedback submissions accepted.",
	})
)
