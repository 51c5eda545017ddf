package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/TriCard_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Round lifecycle event types
const (
	WagerBatchApplied Type = domain.EventTypeWagerBatchApplied
	WagerRejected     Type = domain.EventTypeWagerRejected
	WalletCompensated Type = domain.EventTypeWalletCompensated
	RoundRevealed     Type = domain.EventTypeRoundRevealed
	RoundReset        Type = domain.EventTypeRoundReset
)

// Typed event payloads for type safety

// WagerBatchAppliedPayloadV1 is the typed payload for applied wager batches
type WagerBatchAppliedPayloadV1 struct {
	RoomID    string `json:"room_id"`
	MemberID  string `json:"member_id"`
	Debited   int64  `json:"debited"`
	Refunded  int64  `json:"refunded"`
	NetChange int64  `json:"net_change"`
	Deltas    int    `json:"deltas"`
	Timestamp int64  `json:"timestamp"`
}

// WagerRejectedPayloadV1 is the typed payload for rejected wager batches
type WagerRejectedPayloadV1 struct {
	RoomID    string `json:"room_id"`
	MemberID  string `json:"member_id"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// WalletCompensatedPayloadV1 is the typed payload for reversed wallet mutations
type WalletCompensatedPayloadV1 struct {
	RoomID    string                 `json:"room_id"`
	MemberID  string                 `json:"member_id"`
	Direction domain.TransactionType `json:"direction"`
	Amount    int64                  `json:"amount"`
	Succeeded bool                   `json:"succeeded"`
	Timestamp int64                  `json:"timestamp"`
}

// RoundRevealedPayloadV1 is the typed payload for settled reveals
type RoundRevealedPayloadV1 struct {
	RoomID       string   `json:"room_id"`
	Round        int      `json:"round"`
	Wagers       int      `json:"wagers"`
	TotalWagered int64    `json:"total_wagered"`
	TotalPaid    int64    `json:"total_paid"`
	LongShots    []string `json:"long_shots,omitempty"`
	Timestamp    int64    `json:"timestamp"`
}

// RoundResetPayloadV1 is the typed payload for round resets
type RoundResetPayloadV1 struct {
	RoomID    string `json:"room_id"`
	Round     int    `json:"round"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

func roomMetadata(roomID string) map[string]interface{} {
	return map[string]interface{}{MetadataKeyRoomID: roomID}
}

// NewWagerBatchAppliedEvent creates a new wager batch applied event
func NewWagerBatchAppliedEvent(roomID, memberID string, debited, refunded int64, deltas int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WagerBatchApplied,
		Payload: WagerBatchAppliedPayloadV1{
			RoomID:    roomID,
			MemberID:  memberID,
			Debited:   debited,
			Refunded:  refunded,
			NetChange: debited - refunded,
			Deltas:    deltas,
			Timestamp: time.Now().Unix(),
		},
		Metadata: roomMetadata(roomID),
	}
}

// NewWagerRejectedEvent creates a new wager rejected event
func NewWagerRejectedEvent(roomID, memberID, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WagerRejected,
		Payload: WagerRejectedPayloadV1{
			RoomID:    roomID,
			MemberID:  memberID,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
		Metadata: roomMetadata(roomID),
	}
}

// NewWalletCompensatedEvent creates a new wallet compensation event
func NewWalletCompensatedEvent(roomID, memberID string, direction domain.TransactionType, amount int64, succeeded bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WalletCompensated,
		Payload: WalletCompensatedPayloadV1{
			RoomID:    roomID,
			MemberID:  memberID,
			Direction: direction,
			Amount:    amount,
			Succeeded: succeeded,
			Timestamp: time.Now().Unix(),
		},
		Metadata: roomMetadata(roomID),
	}
}

// NewRoundRevealedEvent creates a new round revealed event
func NewRoundRevealedEvent(roomID string, round, wagers int, totalWagered, totalPaid int64, longShots []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundRevealed,
		Payload: RoundRevealedPayloadV1{
			RoomID:       roomID,
			Round:        round,
			Wagers:       wagers,
			TotalWagered: totalWagered,
			TotalPaid:    totalPaid,
			LongShots:    longShots,
			Timestamp:    time.Now().Unix(),
		},
		Metadata: roomMetadata(roomID),
	}
}

// NewRoundResetEvent creates a new round reset event
func NewRoundResetEvent(roomID string, round int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundReset,
		Payload: RoundResetPayloadV1{
			RoomID:    roomID,
			Round:     round,
			Timestamp: time.Now().Unix(),
		},
		Metadata: roomMetadata(roomID),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", fmt.Sprintf(ErrContextSubscribersFailedFormat, event.Type, len(errs)), errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
