package memory

import (
	"context"
	"testing"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.Room   = (*Store)(nil)
	_ repository.Ledger = (*Store)(nil)
	_ repository.Member = (*Store)(nil)
)

func TestStore_RoomOptimisticSave(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	room := &domain.Room{ID: "r1", Code: "123", DealerID: "d", Status: domain.RoomStatusBetting}
	require.NoError(t, s.CreateRoom(ctx, room))
	assert.Equal(t, int64(1), room.Version)

	a, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	b, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)

	a.AdjustWager("m", domain.ParseSpot("slot1-odd"), 5)
	require.NoError(t, s.SaveRoom(ctx, a))
	assert.Equal(t, int64(2), a.Version)

	b.Status = domain.RoomStatusResultsPending
	assert.ErrorIs(t, s.SaveRoom(ctx, b), domain.ErrRoomVersionConflict)

	stored, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.WagerAmount("m", "slot1-odd"))
	assert.Equal(t, domain.RoomStatusBetting, stored.Status)
}

func TestStore_RoomCodesUniqueAmongOpenRooms(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.CreateRoom(ctx, &domain.Room{ID: "r1", Code: "500", Status: domain.RoomStatusBetting}))
	assert.ErrorIs(t, s.CreateRoom(ctx, &domain.Room{ID: "r2", Code: "500", Status: domain.RoomStatusBetting}), domain.ErrRoomCodeTaken)

	closed, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	closed.Status = domain.RoomStatusClosed
	require.NoError(t, s.SaveRoom(ctx, closed))

	require.NoError(t, s.CreateRoom(ctx, &domain.Room{ID: "r2", Code: "500", Status: domain.RoomStatusBetting}))
	open, err := s.GetOpenRoomByCode(ctx, "500")
	require.NoError(t, err)
	assert.Equal(t, "r2", open.ID)

	rooms, err := s.ListOpenRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestStore_GetRoomReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.CreateRoom(ctx, &domain.Room{ID: "r1", Code: "111"}))

	r, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	r.AddMember("intruder")

	again, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, again.MemberIDs)

	_, err = s.GetRoom(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestStore_Ledger(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.CreateMember(ctx, &domain.Member{ID: "m1", Username: "alice", TicketBalance: 100}))

	tx, err := s.Debit(ctx, "m1", 30, "wager")
	require.NoError(t, err)
	assert.Equal(t, int64(70), tx.ResultingBalance)
	assert.Equal(t, domain.TransactionDebit, tx.Type)

	_, err = s.Debit(ctx, "m1", 71, "too much")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	tx, err = s.Credit(ctx, "m1", 5, "refund")
	require.NoError(t, err)
	assert.Equal(t, int64(75), tx.ResultingBalance)

	balance, err := s.GetBalance(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(75), balance)

	history, err := s.ListTransactions(ctx, "m1", 10)
	require.NoError(t, err)
	require.Len(t, history, 3, "opening balance, debit, credit")
	assert.Equal(t, "refund", history[0].Reason)
	assert.Equal(t, "Opening balance", history[2].Reason)

	_, err = s.Credit(ctx, "ghost", 5, "x")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}
