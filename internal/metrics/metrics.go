// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Verdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimcheck_verdicts_total",
			Help: "Total number of verdicts returned, by deciding stage and verdict",
		},
		[]string{"stage", "verdict"},
	)

	StageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimcheck_stage_errors_total",
			Help: "Total number of dependency failures collapsed to a miss",
		},
		[]string{"stage"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "claimcheck_stage_duration_seconds",
			Help:    "Duration of a single pipeline stage lookup in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimcheck_http_requests_total",
			Help: "Total number of inbound HTTP requests",
		},
		[]string{"route", "code"},
	)
)
