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

// Business metric names
const (
	MetricNameTasksToggled    = "tasks_toggled_total"
	MetricNameXPAwarded       = "xp_awarded_total"
	MetricNameGoldAwarded     = "gold_awarded_total"
	MetricNameLevelUps        = "level_ups_total"
	MetricNameQuestsCompleted = "quests_completed_total"
	MetricNameBossesDefeated  = "bosses_defeated_total"
	MetricNameRewardsRedeemed = "rewards_redeemed_total"
	MetricNameGoldSpent       = "gold_spent_total"
	MetricNameStreaksReset    = "streaks_reset_total"
	MetricNameCharacterLevel  = "character_level_reached"
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

// Business metric help text
const (
	HelpTextTasksToggled    = "Total number of task completion toggles"
	HelpTextXPAwarded       = "Total XP awarded by completed tasks"
	HelpTextGoldAwarded     = "Total gold awarded by completed tasks"
	HelpTextLevelUps        = "Total number of character level ups"
	HelpTextQuestsCompleted = "Total number of quests completed"
	HelpTextBossesDefeated  = "Total number of boss quests finished"
	HelpTextRewardsRedeemed = "Total number of rewards redeemed"
	HelpTextGoldSpent       = "Total gold spent on rewards"
	HelpTextStreaksReset    = "Total number of streaks reset for inactivity"
	HelpTextCharacterLevel  = "Highest character level reached"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelDirection  = "direction"
	LabelDifficulty = "difficulty"
	LabelCategory   = "category"
)

// Label values
const (
	DirectionCompleted   = "completed"
	DirectionUncompleted = "uncompleted"
	PathUnmatched        = "unmatched"
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

const (
	LogMsgEventPayloadDecode = "Event payload could not be decoded"
	LogMsgMetricsRecorded    = "Metrics recorded for event"
)
