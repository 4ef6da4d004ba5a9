package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Job metric names
const (
	MetricNameJobTicksTotal     = "job_ticks_total"
	MetricNameJobTickDuration   = "job_tick_duration_seconds"
	MetricNameJobItemsProcessed = "job_items_processed_total"
	MetricNameJobUnitsChanged   = "job_units_changed_total"
	MetricNameJobRunning        = "job_running"
	MetricNameJobItemErrors     = "job_item_errors_total"
)

// Harvest metric names
const (
	MetricNameHarvestsTotal = "harvests_total"
	MetricNameHarvestYield  = "harvest_yield"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextJobTicksTotal     = "Total number of periodic job ticks by result"
	HelpTextJobTickDuration   = "Periodic job tick duration in seconds"
	HelpTextJobItemsProcessed = "Total entities updated by periodic jobs"
	HelpTextJobUnitsChanged   = "Total units (slots, tiles moved) changed by periodic jobs"
	HelpTextJobRunning        = "Whether a periodic job is currently scheduled (1) or stopped (0)"
	HelpTextJobItemErrors     = "Total per-entity failures skipped by periodic jobs"

	HelpTextHarvestsTotal = "Total harvest attempts by resource and result"
	HelpTextHarvestYield  = "Resource amount gained per successful harvest"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelJob      = "job"
	LabelResult   = "result"
	LabelResource = "resource"
)

// Label values for LabelResult
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// UnmatchedRoute is the path label for requests that matched no route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// JobDurationBuckets covers ticks from a few milliseconds up to a minute
var JobDurationBuckets = []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

// HarvestYieldBuckets spans the base yield range plus bonus headroom
var HarvestYieldBuckets = []float64{500, 800, 1000, 1200, 1500, 2000, 3000, 5000}
