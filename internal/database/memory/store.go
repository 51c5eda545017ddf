// Package memory is an in-process implementation of the room, ledger and member
// repositories. It backs STORAGE_DRIVER=memory and service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/osse101/TriCard_Go/internal/domain"
)

// Store keeps every document in maps guarded by one mutex
type Store struct {
	mu      sync.Mutex
	rooms   map[string]*domain.Room
	members map[string]*domain.Member
	txs     map[string][]domain.Transaction
	now     func() time.Time
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		rooms:   make(map[string]*domain.Room),
		members: make(map[string]*domain.Member),
		txs:     make(map[string][]domain.Transaction),
		now:     time.Now,
	}
}

// GetRoom returns a copy of the stored room
func (s *Store) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, id)
	}
	return room.Clone(), nil
}

// GetOpenRoomByCode finds a room that is not closed by its code
func (s *Store) GetOpenRoomByCode(ctx context.Context, code string) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, room := range s.rooms {
		if room.Code == code && room.Status != domain.RoomStatusClosed {
			return room.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: code %s", domain.ErrRoomNotFound, code)
}

// ListOpenRooms returns every room that is not closed, oldest first
func (s *Store) ListOpenRooms(ctx context.Context) ([]domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := make([]domain.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if room.Status != domain.RoomStatusClosed {
			rooms = append(rooms, *room.Clone())
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].CreatedAt.Before(rooms[j].CreatedAt) })
	return rooms, nil
}

// CreateRoom stores a new room at version 1. The code must be unused among open rooms.
func (s *Store) CreateRoom(ctx context.Context, room *domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[room.ID]; exists {
		return fmt.Errorf("room %s already exists", room.ID)
	}
	for _, other := range s.rooms {
		if other.Code == room.Code && other.Status != domain.RoomStatusClosed {
			return fmt.Errorf("%w: %s", domain.ErrRoomCodeTaken, room.Code)
		}
	}

	now := s.now()
	room.Version = 1
	room.CreatedAt = now
	room.UpdatedAt = now
	s.rooms[room.ID] = room.Clone()
	return nil
}

// SaveRoom replaces the stored room if room.Version matches the stored version
func (s *Store) SaveRoom(ctx context.Context, room *domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rooms[room.ID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrRoomNotFound, room.ID)
	}
	if stored.Version != room.Version {
		return fmt.Errorf("%w: stored %d, have %d", domain.ErrRoomVersionConflict, stored.Version, room.Version)
	}

	room.Version++
	room.UpdatedAt = s.now()
	s.rooms[room.ID] = room.Clone()
	return nil
}

// GetMember returns a copy of the member
func (s *Store) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, id)
	}
	c := *m
	return &c, nil
}

// CreateMember registers a member. An opening balance is recorded as a credit.
func (s *Store) CreateMember(ctx context.Context, member *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[member.ID]; exists {
		return fmt.Errorf("member %s already exists", member.ID)
	}
	if member.TicketBalance < 0 {
		return fmt.Errorf("%w: negative opening balance", domain.ErrInvalidAmount)
	}
	member.CreatedAt = s.now()
	c := *member
	opening := c.TicketBalance
	c.TicketBalance = 0
	s.members[c.ID] = &c
	if opening > 0 {
		s.appendLocked(&c, domain.TransactionCredit, opening, "Opening balance")
	}
	return nil
}

// Credit adds amount to the balance
func (s *Store) Credit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[memberID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, memberID)
	}
	return s.appendLocked(m, domain.TransactionCredit, amount, reason), nil
}

// Debit subtracts amount from the balance, refusing to go negative
func (s *Store) Debit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[memberID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, memberID)
	}
	if m.TicketBalance < amount {
		return nil, fmt.Errorf("%w: balance %d, requested %d", domain.ErrInsufficientFunds, m.TicketBalance, amount)
	}
	return s.appendLocked(m, domain.TransactionDebit, amount, reason), nil
}

func (s *Store) appendLocked(m *domain.Member, kind domain.TransactionType, amount int64, reason string) *domain.Transaction {
	if kind == domain.TransactionCredit {
		m.TicketBalance += amount
	} else {
		m.TicketBalance -= amount
	}
	tx := domain.Transaction{
		ID:               uuid.NewString(),
		MemberID:         m.ID,
		Type:             kind,
		Amount:           amount,
		ResultingBalance: m.TicketBalance,
		Reason:           reason,
		CreatedAt:        s.now(),
	}
	s.txs[m.ID] = append(s.txs[m.ID], tx)
	return &tx
}

// GetBalance returns the member's balance
func (s *Store) GetBalance(ctx context.Context, memberID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[memberID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, memberID)
	}
	return m.TicketBalance, nil
}

// ListTransactions returns up to limit transactions, newest first
func (s *Store) ListTransactions(ctx context.Context, memberID string, limit int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[memberID]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, memberID)
	}
	all := s.txs[memberID]
	out := make([]domain.Transaction, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
