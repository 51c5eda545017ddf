package round

import (
	"context"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateRoom(ctx context.Context, dealerID, dealerName string) (*domain.Room, error) {
	args := m.Called(ctx, dealerID, dealerName)
	return roomArg(args)
}

func (m *MockService) JoinRoom(ctx context.Context, code, memberID, username string) (*domain.Room, error) {
	args := m.Called(ctx, code, memberID, username)
	return roomArg(args)
}

func (m *MockService) TakeOverDealer(ctx context.Context, roomID, memberID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID, memberID)
	return roomArg(args)
}

func (m *MockService) ListOpenRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockService) RoomState(ctx context.Context, roomID string) (*domain.RoomState, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomState), args.Error(1)
}

func (m *MockService) ApplyWagerBatch(ctx context.Context, roomID, memberID string, deltas []domain.WagerDelta) (*domain.BatchResult, error) {
	args := m.Called(ctx, roomID, memberID, deltas)
	return batchArg(args)
}

func (m *MockService) RemoveWager(ctx context.Context, roomID, memberID, spotID string, amount int64) (*domain.BatchResult, error) {
	args := m.Called(ctx, roomID, memberID, spotID, amount)
	return batchArg(args)
}

func (m *MockService) Reveal(ctx context.Context, roomID, requesterID string) (*domain.RoundSummary, error) {
	args := m.Called(ctx, roomID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoundSummary), args.Error(1)
}

func (m *MockService) Reset(ctx context.Context, roomID, requesterID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID, requesterID)
	return roomArg(args)
}

func (m *MockService) CloseRoom(ctx context.Context, roomID, requesterID string) error {
	args := m.Called(ctx, roomID, requesterID)
	return args.Error(0)
}

func (m *MockService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func roomArg(args mock.Arguments) (*domain.Room, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func batchArg(args mock.Arguments) (*domain.BatchResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}
