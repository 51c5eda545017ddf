package round

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/osse101/TriCard_Go/internal/concurrency"
	"github.com/osse101/TriCard_Go/internal/database/memory"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/event"
	"github.com/osse101/TriCard_Go/internal/wallet"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("document store unavailable")

// flakyRooms fails SaveRoom while failSaves is set
type flakyRooms struct {
	*memory.Store
	failSaves atomic.Bool
}

func (f *flakyRooms) SaveRoom(ctx context.Context, room *domain.Room) error {
	if f.failSaves.Load() {
		return errStoreDown
	}
	return f.Store.SaveRoom(ctx, room)
}

type sentMessage struct {
	RoomID  string
	Type    string
	Payload interface{}
}

// recordingBroadcaster keeps every broadcast in order
type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []sentMessage
}

func (r *recordingBroadcaster) BroadcastToRoom(roomID, msgType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, sentMessage{RoomID: roomID, Type: msgType, Payload: payload})
}

func (r *recordingBroadcaster) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m.Type)
	}
	return out
}

func (r *recordingBroadcaster) ofType(msgType string) []sentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []sentMessage
	for _, m := range r.messages {
		if m.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}

func (r *recordingBroadcaster) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

// fixedDrawer always deals the same hand
type fixedDrawer struct {
	units [domain.SlotCount]domain.Unit
}

func (d *fixedDrawer) DrawThree() ([domain.SlotCount]domain.Unit, error) {
	return d.units, nil
}

// sequenceSource returns the given numbers in order, repeating the last one
func sequenceSource(nums ...int) func(min, max int) (int, error) {
	var mu sync.Mutex
	i := 0
	return func(min, max int) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		n := nums[i]
		if i < len(nums)-1 {
			i++
		}
		return n, nil
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []event.Event
}

func (l *eventLog) handle(ctx context.Context, evt event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
	return nil
}

func (l *eventLog) ofType(t event.Type) []event.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []event.Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	store  *memory.Store
	rooms  *flakyRooms
	wallet wallet.Service
	drawer *fixedDrawer
	bc     *recordingBroadcaster
	events *eventLog
	svc    Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store:  store,
		rooms:  &flakyRooms{Store: store},
		wallet: wallet.NewService(store, concurrency.NewLockManager()),
		drawer: &fixedDrawer{units: hand("7♦", "2♣", "K♠")},
		bc:     &recordingBroadcaster{},
		events: &eventLog{},
	}

	bus := event.NewMemoryBus()
	for _, typ := range []event.Type{event.WagerBatchApplied, event.WagerRejected, event.WalletCompensated, event.RoundRevealed, event.RoundReset} {
		bus.Subscribe(typ, f.events.handle)
	}

	f.svc = NewService(f.rooms, store, f.wallet, concurrency.NewRoomQueue(), bus, f.bc, Options{
		StartingTickets: 100,
		Drawer:          f.drawer,
		CodeSource:      sequenceSource(500, 501, 502, 503),
	})
	t.Cleanup(func() {
		_ = f.svc.Shutdown(context.Background())
	})
	return f
}

// openRoom creates a room dealt by "dealer" with the given members joined
func (f *fixture) openRoom(t *testing.T, memberIDs ...string) *domain.Room {
	t.Helper()
	ctx := context.Background()

	room, err := f.svc.CreateRoom(ctx, "dealer", "Dealer")
	require.NoError(t, err)
	for _, id := range memberIDs {
		_, err := f.svc.JoinRoom(ctx, room.Code, id, "user-"+id)
		require.NoError(t, err)
	}
	f.bc.reset()
	return room
}

func (f *fixture) balance(t *testing.T, memberID string) int64 {
	t.Helper()
	b, err := f.wallet.Balance(context.Background(), memberID)
	require.NoError(t, err)
	return b
}

func (f *fixture) room(t *testing.T, roomID string) *domain.Room {
	t.Helper()
	r, err := f.store.GetRoom(context.Background(), roomID)
	require.NoError(t, err)
	return r
}

// hand builds three units from short names such as "7♦", "A♠", "Q♥" or "W"
func hand(names ...string) [domain.SlotCount]domain.Unit {
	var units [domain.SlotCount]domain.Unit
	for i, name := range names {
		units[i] = unitFromName(name, i+1)
	}
	return units
}

func unitFromName(name string, n int) domain.Unit {
	if name == "W" {
		return domain.NewWildUnit(n)
	}
	runes := []rune(name)
	suit, _ := domain.ParseSuit(string(runes[len(runes)-1]))
	return domain.NewUnit(domain.Rank(string(runes[:len(runes)-1])), suit)
}

func delta(spotID string, amount int64) domain.WagerDelta {
	return domain.WagerDelta{SpotID: spotID, Amount: amount}
}
