package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/logger"
	"github.com/osse101/TriCard_Go/internal/round"
)

var errUnknownMessageType = errors.New(ErrMsgUnknownMessageType)

// Dispatcher turns inbound client frames into round operations. The acting member
// is always the connection's member; ids inside payloads are not trusted.
type Dispatcher struct {
	rounds round.Service
	hub    *Hub
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(rounds round.Service, hub *Hub) *Dispatcher {
	return &Dispatcher{rounds: rounds, hub: hub}
}

// Handle runs one inbound frame to completion. Failures are answered to the
// sending client only.
func (d *Dispatcher) Handle(ctx context.Context, c *Client, in Inbound) {
	log := logger.FromContext(ctx).With(logger.AttrKeyRoomID, c.RoomID, logger.AttrKeyMemberID, c.MemberID, "type", in.Type)

	var err error
	switch in.Type {
	case domain.InboundJoinRoom:
		err = d.joinRoom(ctx, c, in.Payload)
	case domain.InboundRequestRoomState:
		err = d.sendState(ctx, c)
	case domain.InboundSubmitWagerBatch:
		err = d.submitWagerBatch(ctx, c, in.Payload)
	case domain.InboundRemoveWager:
		err = d.removeWager(ctx, c, in.Payload)
	case domain.InboundRevealCards:
		_, err = d.rounds.Reveal(ctx, c.RoomID, c.MemberID)
	case domain.InboundResetRound:
		_, err = d.rounds.Reset(ctx, c.RoomID, c.MemberID)
	default:
		err = fmt.Errorf("%w: %q", errUnknownMessageType, in.Type)
	}

	if err != nil {
		log.Debug(LogMsgInboundFailed, "error", err)
		d.reply(c, in.Type, err)
	}
}

func (d *Dispatcher) joinRoom(ctx context.Context, c *Client, raw json.RawMessage) error {
	var p JoinRoomPayload
	if err := decode(raw, &p); err != nil {
		return err
	}
	code := p.RoomCode
	if code == "" {
		state, err := d.rounds.RoomState(ctx, c.RoomID)
		if err != nil {
			return err
		}
		code = state.Code
	}
	if _, err := d.rounds.JoinRoom(ctx, code, c.MemberID, p.Username); err != nil {
		return err
	}
	return d.sendState(ctx, c)
}

func (d *Dispatcher) sendState(ctx context.Context, c *Client) error {
	state, err := d.rounds.RoomState(ctx, c.RoomID)
	if err != nil {
		return err
	}
	d.hub.SendTo(c, domain.MessageRoomState, state)
	return nil
}

func (d *Dispatcher) submitWagerBatch(ctx context.Context, c *Client, raw json.RawMessage) error {
	var p SubmitWagerBatchPayload
	if err := decode(raw, &p); err != nil {
		return err
	}
	deltas := make([]domain.WagerDelta, 0, len(p.Deltas))
	for _, delta := range p.Deltas {
		deltas = append(deltas, domain.WagerDelta{SpotID: delta.SpotID, Amount: delta.Amount})
	}
	_, err := d.rounds.ApplyWagerBatch(ctx, c.RoomID, c.MemberID, deltas)
	return err
}

func (d *Dispatcher) removeWager(ctx context.Context, c *Client, raw json.RawMessage) error {
	var p RemoveWagerPayload
	if err := decode(raw, &p); err != nil {
		return err
	}
	_, err := d.rounds.RemoveWager(ctx, c.RoomID, c.MemberID, p.SpotID, p.Amount)
	return err
}

// reply tells the requester why its frame failed. Wager operations answer with
// wagerRejected, everything else with error.
func (d *Dispatcher) reply(c *Client, inboundType string, err error) {
	var message string
	switch {
	case errors.Is(err, errUnknownMessageType):
		message = ErrMsgUnknownMessageType
	case isDecodeError(err):
		message = ErrMsgMalformedPayload
	default:
		var notify bool
		message, notify = round.RejectionMessage(err)
		if !notify {
			return
		}
	}

	switch inboundType {
	case domain.InboundSubmitWagerBatch, domain.InboundRemoveWager:
		d.hub.SendTo(c, domain.MessageWagerRejected, domain.WagerRejectedPayload{Message: message})
	default:
		d.hub.SendTo(c, domain.MessageError, ErrorPayload{Message: message})
	}
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return ErrMsgMalformedPayload + ": " + e.err.Error() }
func (e *decodeError) Unwrap() error { return domain.ErrInvalidInput }

func isDecodeError(err error) bool {
	var de *decodeError
	return errors.As(err, &de)
}

func decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &decodeError{err: err}
	}
	return nil
}
