package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDispatcherFixture(t *testing.T) (*Dispatcher, *round.MockService, *Client) {
	t.Helper()
	svc := new(round.MockService)
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	c := hub.Register("room-1", "member-1", TransportWebSocket)
	t.Cleanup(func() { hub.Unregister(c) })
	return NewDispatcher(svc, hub), svc, c
}

func inbound(t *testing.T, typ string, payload interface{}) Inbound {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return Inbound{Type: typ, Payload: raw}
}

func TestDispatcher_SubmitWagerBatchUsesConnectionIdentity(t *testing.T) {
	d, svc, c := newDispatcherFixture(t)
	ctx := context.Background()

	deltas := []domain.WagerDelta{{SpotID: "pair", Amount: 10}, {SpotID: "flush", Amount: -5}}
	svc.On("ApplyWagerBatch", ctx, "room-1", "member-1", deltas).
		Return(&domain.BatchResult{MemberID: "member-1", NetChange: 5}, nil)

	d.Handle(ctx, c, inbound(t, domain.InboundSubmitWagerBatch, map[string]interface{}{
		"member_id": "someone-else",
		"deltas": []map[string]interface{}{
			{"spot_id": "pair", "amount": 10},
			{"spot_id": "flush", "amount": -5},
		},
	}))

	svc.AssertExpectations(t)
	assertSilent(t, c)
}

func TestDispatcher_WagerFailureRepliesWagerRejected(t *testing.T) {
	d, svc, c := newDispatcherFixture(t)
	ctx := context.Background()

	svc.On("ApplyWagerBatch", ctx, "room-1", "member-1", mock.Anything).
		Return(nil, fmt.Errorf("debit: %w", domain.ErrInsufficientFunds))

	d.Handle(ctx, c, inbound(t, domain.InboundSubmitWagerBatch, SubmitWagerBatchPayload{
		Deltas: []DeltaPayload{{SpotID: "pair", Amount: 1000}},
	}))

	msg := receive(t, c)
	assert.Equal(t, domain.MessageWagerRejected, msg.Type)
	payload, ok := msg.Payload.(domain.WagerRejectedPayload)
	require.True(t, ok)
	assert.Equal(t, "Not enough tickets for this wager.", payload.Message)
}

func TestDispatcher_SaveFailureIsSilent(t *testing.T) {
	d, svc, c := newDispatcherFixture(t)
	ctx := context.Background()

	svc.On("RemoveWager", ctx, "room-1", "member-1", "pair", int64(5)).
		Return(nil, fmt.Errorf("%w: save", domain.ErrRoomSaveFailed))

	d.Handle(ctx, c, inbound(t, domain.InboundRemoveWager, RemoveWagerPayload{SpotID: "pair", Amount: 5}))

	svc.AssertExpectations(t)
	assertSilent(t, c)
}

func TestDispatcher_RevealAndResetFailuresReplyError(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		method  string
		err     error
		message string
	}{
		{"reveal by non-dealer", domain.InboundRevealCards, "Reveal", domain.ErrNotDealer, "Only the dealer can do that."},
		{"reveal twice", domain.InboundRevealCards, "Reveal", domain.ErrAlreadyRevealed, "The cards have already been revealed."},
		{"reset during betting", domain.InboundResetRound, "Reset", domain.ErrResetDuringBetting, "The round is still open for betting."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, svc, c := newDispatcherFixture(t)
			ctx := context.Background()
			svc.On(tt.method, ctx, "room-1", "member-1").Return(nil, tt.err)

			d.Handle(ctx, c, Inbound{Type: tt.typ})

			msg := receive(t, c)
			assert.Equal(t, domain.MessageError, msg.Type)
			assert.Equal(t, ErrorPayload{Message: tt.message}, msg.Payload)
		})
	}
}

func TestDispatcher_JoinRoomResolvesCodeAndSendsState(t *testing.T) {
	d, svc, c := newDispatcherFixture(t)
	ctx := context.Background()

	state := &domain.RoomState{RoomID: "room-1", Code: "0500", Status: domain.RoomStatusBetting, Round: 1}
	svc.On("RoomState", ctx, "room-1").Return(state, nil)
	svc.On("JoinRoom", ctx, "0500", "member-1", "alice").Return(&domain.Room{ID: "room-1"}, nil)

	d.Handle(ctx, c, inbound(t, domain.InboundJoinRoom, JoinRoomPayload{Username: "alice"}))

	msg := receive(t, c)
	assert.Equal(t, domain.MessageRoomState, msg.Type)
	assert.Equal(t, state, msg.Payload)
	svc.AssertExpectations(t)
}

func TestDispatcher_RequestRoomState(t *testing.T) {
	d, svc, c := newDispatcherFixture(t)
	ctx := context.Background()
	svc.On("RoomState", ctx, "room-1").Return(nil, domain.ErrRoomNotFound)

	d.Handle(ctx, c, Inbound{Type: domain.InboundRequestRoomState})

	msg := receive(t, c)
	assert.Equal(t, domain.MessageError, msg.Type)
	assert.Equal(t, ErrorPayload{Message: "That room does not exist."}, msg.Payload)
}

func TestDispatcher_UnknownType(t *testing.T) {
	d, _, c := newDispatcherFixture(t)

	d.Handle(context.Background(), c, Inbound{Type: "shuffleDeck"})

	msg := receive(t, c)
	assert.Equal(t, domain.MessageError, msg.Type)
	assert.Equal(t, ErrorPayload{Message: ErrMsgUnknownMessageType}, msg.Payload)
}

func TestDispatcher_MalformedPayload(t *testing.T) {
	d, svc, c := newDispatcherFixture(t)

	d.Handle(context.Background(), c, Inbound{
		Type:    domain.InboundSubmitWagerBatch,
		Payload: json.RawMessage(`{"deltas": "lots"}`),
	})

	msg := receive(t, c)
	assert.Equal(t, domain.MessageWagerRejected, msg.Type)
	assert.Equal(t, domain.WagerRejectedPayload{Message: ErrMsgMalformedPayload}, msg.Payload)
	svc.AssertNotCalled(t, "ApplyWagerBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecodeError(t *testing.T) {
	err := decode(json.RawMessage(`{`), &JoinRoomPayload{})
	require.Error(t, err)
	assert.True(t, isDecodeError(err))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.NoError(t, decode(nil, &JoinRoomPayload{}))
}
