package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ussdflow_turns_total",
		Help: "Completed turns by inbound operator code.",
	}, []string{"op"})

	turnErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ussdflow_turn_errors_total",
		Help: "Turns aborted by a configuration or collaborator fault.",
	})

	turnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ussdflow_turn_duration_seconds",
		Help: "Wall time of one request/response turn.",
	})
)
