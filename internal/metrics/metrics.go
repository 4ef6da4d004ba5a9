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

// Job Metrics
var (
	JobTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobTicksTotal,
			Help: HelpTextJobTicksTotal,
		},
		[]string{LabelJob, LabelResult},
	)

	JobTickDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameJobTickDuration,
			Help:    HelpTextJobTickDuration,
			Buckets: JobDurationBuckets,
		},
		[]string{LabelJob},
	)

	JobItemsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobItemsProcessed,
			Help: HelpTextJobItemsProcessed,
		},
		[]string{LabelJob},
	)

	JobUnitsChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobUnitsChanged,
			Help: HelpTextJobUnitsChanged,
		},
		[]string{LabelJob},
	)

	JobRunning = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameJobRunning,
			Help: HelpTextJobRunning,
		},
		[]string{LabelJob},
	)

	JobItemErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobItemErrors,
			Help: HelpTextJobItemErrors,
		},
		[]string{LabelJob},
	)
)

// Harvest Metrics
var (
	HarvestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvestsTotal,
			Help: HelpTextHarvestsTotal,
		},
		[]string{LabelResource, LabelResult},
	)

	HarvestYield = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHarvestYield,
			Help:    HelpTextHarvestYield,
			Buckets: HarvestYieldBuckets,
		},
		[]string{LabelResource},
	)
)
