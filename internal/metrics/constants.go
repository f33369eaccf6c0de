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

// Business metric names
const (
	MetricNameCheckIns          = "checkins_total"
	MetricNameStreakResets      = "streak_resets_total"
	MetricNameXPApplied         = "xp_applied_total"
	MetricNameWorkspaceLevelUps = "workspace_level_ups_total"
	MetricNameContentToggles    = "content_toggles_total"
	MetricNameTaskToggles       = "task_toggles_total"
	MetricNameForcedUnlocks     = "chapter_forced_unlocks_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextCheckIns          = "Total number of confirmed attendance check-ins"
	HelpTextStreakResets      = "Total number of attendance streaks that reset to 1"
	HelpTextXPApplied         = "Total XP applied, labeled by direction"
	HelpTextWorkspaceLevelUps = "Total workspace levels gained"
	HelpTextContentToggles    = "Total content completion toggles, labeled by direction"
	HelpTextTaskToggles       = "Total task completion toggles, labeled by direction"
	HelpTextForcedUnlocks     = "Total chapters force-unlocked while still locked"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelDirection = "direction"
)

// Direction label values
const (
	DirectionGain = "gain"
	DirectionLoss = "loss"
)

// HTTPLatencyBuckets are the histogram buckets for request latency in seconds
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
