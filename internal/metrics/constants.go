package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every farm metric
const Namespace = "zetafarm"

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

// Farm action metric names
const (
	MetricNameActionsTotal     = "actions_total"
	MetricNameActionRejections = "action_rejections_total"
	MetricNameCropsPlanted     = "crops_planted_total"
	MetricNameCropsHarvested   = "crops_harvested_total"
	MetricNameLettersDropped   = "letters_dropped_total"
	MetricNameRewardsRedeemed  = "rewards_redeemed_total"
	MetricNameGachaDraws       = "gacha_draws_total"
	MetricNameCheckIns         = "checkins_total"
	MetricNameCoinsEarned      = "coins_earned_total"
	MetricNameCoinsSpent       = "coins_spent_total"
	MetricNameFarmsRegistered  = "farms_registered_total"
)

// Tick driver metric names
const (
	MetricNameTickDuration    = "tick_duration_seconds"
	MetricNameTickPausedPlots = "tick_paused_plots"
	MetricNameTickFarms       = "tick_farms"
	MetricNamePestsAppeared   = "pests_appeared_total"
	MetricNameTickErrors      = "tick_errors_total"
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

// Farm action metric help text
const (
	HelpTextActionsTotal     = "Farm actions by type and outcome"
	HelpTextActionRejections = "Rejected farm actions by reason code"
	HelpTextCropsPlanted     = "Crops planted by crop"
	HelpTextCropsHarvested   = "Crops harvested by crop"
	HelpTextLettersDropped   = "Letters dropped on harvest by letter"
	HelpTextRewardsRedeemed  = "Letter phrase rewards redeemed by reward"
	HelpTextGachaDraws       = "Total gacha draws"
	HelpTextCheckIns         = "Total daily check-ins"
	HelpTextCoinsEarned      = "Coins credited to players"
	HelpTextCoinsSpent       = "Coins spent by players"
	HelpTextFarmsRegistered  = "Farms created"
)

// Tick driver metric help text
const (
	HelpTextTickDuration    = "Duration of one tick pass over the active farms"
	HelpTextTickPausedPlots = "Plots paused on unmet requirements after the last tick pass"
	HelpTextTickFarms       = "Active farms visited by the last tick pass"
	HelpTextPestsAppeared   = "Pest infestations rolled by the tick driver"
	HelpTextTickErrors      = "Farms that failed to tick"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelAction = "action"
	LabelResult = "result"
	LabelReason = "reason"
	LabelCrop   = "crop"
	LabelLetter = "letter"
	LabelReward = "reward"
)

// Action outcomes for LabelResult
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// TickLatencyBuckets covers passes from 100µs up to the 1s tick budget and beyond
var TickLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)

// UnknownRoute labels requests that matched no route
const UnknownRoute = "unmatched"
