package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payoff_evaluations_total",
		Help: "Total number of strategy evaluations served",
	}, []string{"strategy", "status"})

	EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "payoff_evaluation_duration_seconds",
		Help: "Time spent computing payoff curves",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payoff_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"path", "code"})
)
