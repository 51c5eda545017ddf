// Package round runs the room lifecycle: wager reconciliation, reveal and
// settlement, and reset. Every mutation of a room is a task on that room's
// serialization queue.
package round

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/TriCard_Go/internal/concurrency"
	"github.com/osse101/TriCard_Go/internal/deck"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/event"
	"github.com/osse101/TriCard_Go/internal/logger"
	"github.com/osse101/TriCard_Go/internal/payout"
	"github.com/osse101/TriCard_Go/internal/repository"
	"github.com/osse101/TriCard_Go/internal/utils"
	"github.com/osse101/TriCard_Go/internal/wallet"
)

// Service defines the interface for room and round operations
type Service interface {
	CreateRoom(ctx context.Context, dealerID, dealerName string) (*domain.Room, error)
	JoinRoom(ctx context.Context, code, memberID, username string) (*domain.Room, error)
	TakeOverDealer(ctx context.Context, roomID, memberID string) (*domain.Room, error)
	ListOpenRooms(ctx context.Context) ([]domain.Room, error)
	RoomState(ctx context.Context, roomID string) (*domain.RoomState, error)
	ApplyWagerBatch(ctx context.Context, roomID, memberID string, deltas []domain.WagerDelta) (*domain.BatchResult, error)
	RemoveWager(ctx context.Context, roomID, memberID, spotID string, amount int64) (*domain.BatchResult, error)
	Reveal(ctx context.Context, roomID, requesterID string) (*domain.RoundSummary, error)
	Reset(ctx context.Context, roomID, requesterID string) (*domain.Room, error)
	CloseRoom(ctx context.Context, roomID, requesterID string) error
	Shutdown(ctx context.Context) error
}

// Broadcaster delivers a message to every client connected to a room
type Broadcaster interface {
	BroadcastToRoom(roomID, msgType string, payload interface{})
}

// Drawer produces the three units for a reveal
type Drawer interface {
	DrawThree() ([domain.SlotCount]domain.Unit, error)
}

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	StartingTickets int64
	MemberCacheSize int
	MemberCacheTTL  time.Duration
	Drawer          Drawer
	CodeSource      deck.IntSource
}

type service struct {
	rooms       repository.Room
	members     *memberDirectory
	wallet      wallet.Service
	queue       *concurrency.RoomQueue
	bus         event.Bus
	broadcaster Broadcaster
	engine      *payout.Engine
	drawer      Drawer
	codeSource  deck.IntSource
	opening     int64
}

// NewService creates a new round service
func NewService(rooms repository.Room, members repository.Member, walletSvc wallet.Service, queue *concurrency.RoomQueue, bus event.Bus, broadcaster Broadcaster, opts Options) Service {
	if queue == nil {
		queue = concurrency.NewRoomQueue()
	}
	if broadcaster == nil {
		broadcaster = nopBroadcaster{}
	}
	if opts.Drawer == nil {
		opts.Drawer = deck.NewGenerator()
	}
	if opts.CodeSource == nil {
		opts.CodeSource = utils.SecureRandomInt
	}
	if opts.StartingTickets <= 0 {
		opts.StartingTickets = DefaultStartingTickets
	}
	return &service{
		rooms:       rooms,
		members:     newMemberDirectory(members, opts.MemberCacheSize, opts.MemberCacheTTL),
		wallet:      walletSvc,
		queue:       queue,
		bus:         bus,
		broadcaster: broadcaster,
		engine:      payout.NewEngine(),
		drawer:      opts.Drawer,
		codeSource:  opts.CodeSource,
		opening:     opts.StartingTickets,
	}
}

// Shutdown waits for queued room tasks to finish
func (s *service) Shutdown(ctx context.Context) error {
	return s.queue.Shutdown(ctx)
}

// loadRoom reads a room and refuses closed rooms
func (s *service) loadRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadRoom, err)
	}
	if room.Status == domain.RoomStatusClosed {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoomClosed, room.Code)
	}
	return room, nil
}

func (s *service) saveRoom(ctx context.Context, room *domain.Room) error {
	if err := s.rooms.SaveRoom(ctx, room); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrRoomSaveFailed, ErrContextSaveRoom, err)
	}
	return nil
}

// transition moves room to next if the round state machine allows it
func transition(room *domain.Room, next domain.RoomStatus) error {
	if !room.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, room.Status, next)
	}
	room.Status = next
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}

func (s *service) broadcast(roomID, msgType string, payload interface{}) {
	s.broadcaster.BroadcastToRoom(roomID, msgType, payload)
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToRoom(string, string, interface{}) {}
