package metrics

import (
	"context"

	"github.com/osse101/TriCard_Go/internal/event"
	"github.com/osse101/TriCard_Go/internal/logger"
)

// EventMetricsCollector subscribes to round lifecycle events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all round lifecycle events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.WagerBatchApplied,
		event.WagerRejected,
		event.WalletCompensated,
		event.RoundRevealed,
		event.RoundReset,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.WagerBatchApplied:
		var p event.WagerBatchAppliedPayloadV1
		if p, err = event.DecodePayload[event.WagerBatchAppliedPayloadV1](evt.Payload); err == nil {
			WagerBatchesApplied.Inc()
			TicketsWagered.Add(float64(p.Debited))
			TicketsRefunded.Add(float64(p.Refunded))
		}

	case event.WagerRejected:
		var p event.WagerRejectedPayloadV1
		if p, err = event.DecodePayload[event.WagerRejectedPayloadV1](evt.Payload); err == nil {
			WagerRejections.WithLabelValues(p.Reason).Inc()
		}

	case event.WalletCompensated:
		var p event.WalletCompensatedPayloadV1
		if p, err = event.DecodePayload[event.WalletCompensatedPayloadV1](evt.Payload); err == nil {
			result := ResultSucceeded
			if !p.Succeeded {
				result = ResultFailed
			}
			Compensations.WithLabelValues(string(p.Direction), result).Inc()
		}

	case event.RoundRevealed:
		var p event.RoundRevealedPayloadV1
		if p, err = event.DecodePayload[event.RoundRevealedPayloadV1](evt.Payload); err == nil {
			RoundsRevealed.Inc()
			TicketsPaidOut.Add(float64(p.TotalPaid))
			for _, kind := range p.LongShots {
				LongShots.WithLabelValues(kind).Inc()
			}
		}

	case event.RoundReset:
		RoundsReset.Inc()
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
