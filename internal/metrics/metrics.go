package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCheckIns,
			Help: HelpTextCheckIns,
		},
	)

	StreakResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStreakResets,
			Help: HelpTextStreakResets,
		},
	)

	XPApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPApplied,
			Help: HelpTextXPApplied,
		},
		[]string{LabelDirection},
	)

	WorkspaceLevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWorkspaceLevelUps,
			Help: HelpTextWorkspaceLevelUps,
		},
	)

	ContentToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContentToggles,
			Help: HelpTextContentToggles,
		},
		[]string{LabelDirection},
	)

	TaskToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTaskToggles,
			Help: HelpTextTaskToggles,
		},
		[]string{LabelDirection},
	)

	ForcedUnlocks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameForcedUnlocks,
			Help: HelpTextForcedUnlocks,
		},
	)
)
