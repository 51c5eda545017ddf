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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Round engine metrics fed by the event collector
var (
	WagerBatchesApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWagerBatchesApplied,
			Help: HelpTextWagerBatchesApplied,
		},
	)

	TicketsWagered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicketsWagered,
			Help: HelpTextTicketsWagered,
		},
	)

	TicketsRefunded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicketsRefunded,
			Help: HelpTextTicketsRefunded,
		},
	)

	WagerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagerRejections,
			Help: HelpTextWagerRejections,
		},
		[]string{LabelReason},
	)

	Compensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCompensations,
			Help: HelpTextCompensations,
		},
		[]string{LabelType, LabelResult},
	)

	RoundsRevealed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsRevealed,
			Help: HelpTextRoundsRevealed,
		},
	)

	RoundsReset = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsReset,
			Help: HelpTextRoundsReset,
		},
	)

	TicketsPaidOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicketsPaidOut,
			Help: HelpTextTicketsPaidOut,
		},
	)

	LongShots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLongShots,
			Help: HelpTextLongShots,
		},
		[]string{LabelType},
	)
)

// Metrics recorded directly by their owners
var (
	WalletMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWalletMutations,
			Help: HelpTextWalletMutations,
		},
		[]string{LabelType, LabelResult},
	)

	RoomQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameRoomQueueDepth,
			Help: HelpTextRoomQueueDepth,
		},
	)

	RoomTaskDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRoomTaskDuration,
			Help:    HelpTextRoomTaskDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	RealtimeClients = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameRealtimeClients,
			Help: HelpTextRealtimeClients,
		},
		[]string{LabelTransport},
	)
)
