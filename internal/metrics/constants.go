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

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameExperienceGained       = "experience_gained_total"
	MetricNamePlayerLevelUps         = "player_level_ups_total"
	MetricNameShadowsExtracted       = "shadows_extracted_total"
	MetricNameShadowLevelUps         = "shadow_level_ups_total"
	MetricNameAreasUnlocked          = "areas_unlocked_total"
	MetricNameHuntsCompleted         = "hunts_completed_total"
	MetricNameShadowsDeployed        = "shadows_deployed"
	MetricNameOfflineReconciliations = "offline_reconciliations_total"
	MetricNameSnapshotSaves          = "snapshot_saves_total"
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

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextExperienceGained       = "Total experience granted to the player, by source"
	HelpTextPlayerLevelUps         = "Total number of player levels gained"
	HelpTextShadowsExtracted       = "Total number of shadows extracted, by rarity"
	HelpTextShadowLevelUps         = "Total number of shadow levels gained"
	HelpTextAreasUnlocked          = "Total number of areas unlocked"
	HelpTextHuntsCompleted         = "Total number of completed hunt cycles, by area"
	HelpTextShadowsDeployed        = "Current number of deployed shadows"
	HelpTextOfflineReconciliations = "Total number of offline reconciliations, by outcome"
	HelpTextSnapshotSaves          = "Total number of snapshot saves, by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelSource  = "source"
	LabelRarity  = "rarity"
	LabelArea    = "area"
	LabelOutcome = "outcome"
	LabelResult  = "result"
)

// Label values
const (
	OutcomeApplied = "applied"
	OutcomeSkipped = "skipped"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
