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

// Round engine metric names
const (
	MetricNameWagerBatchesApplied = "tricard_wager_batches_applied_total"
	MetricNameTicketsWagered      = "tricard_tickets_wagered_total"
	MetricNameTicketsRefunded     = "tricard_tickets_refunded_total"
	MetricNameWagerRejections     = "tricard_wager_rejections_total"
	MetricNameCompensations       = "tricard_wallet_compensations_total"
	MetricNameRoundsRevealed      = "tricard_rounds_revealed_total"
	MetricNameRoundsReset         = "tricard_rounds_reset_total"
	MetricNameTicketsPaidOut      = "tricard_tickets_paid_out_total"
	MetricNameLongShots           = "tricard_long_shots_total"
	MetricNameWalletMutations     = "tricard_wallet_mutations_total"
	MetricNameRoomQueueDepth      = "tricard_room_queue_pending_tasks"
	MetricNameRoomTaskDuration    = "tricard_room_task_duration_seconds"
	MetricNameRealtimeClients     = "tricard_realtime_clients"
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

// Round engine metric help text
const (
	HelpTextWagerBatchesApplied = "Total number of wager batches persisted"
	HelpTextTicketsWagered      = "Total tickets debited for new wagers"
	HelpTextTicketsRefunded     = "Total tickets refunded for removed wagers"
	HelpTextWagerRejections     = "Total number of rejected wager batches by reason"
	HelpTextCompensations       = "Total wallet reversals after a failed room save"
	HelpTextRoundsRevealed      = "Total number of settled reveals"
	HelpTextRoundsReset         = "Total number of round resets"
	HelpTextTicketsPaidOut      = "Total gross tickets credited as payouts"
	HelpTextLongShots           = "Total long shot wins by type"
	HelpTextWalletMutations     = "Total wallet mutations by type"
	HelpTextRoomQueueDepth      = "Room tasks submitted but not yet finished"
	HelpTextRoomTaskDuration    = "Room task execution time in seconds"
	HelpTextRealtimeClients     = "Connected realtime clients by transport"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelReason    = "reason"
	LabelResult    = "result"
	LabelTransport = "transport"
)

// Label values
const (
	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
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
