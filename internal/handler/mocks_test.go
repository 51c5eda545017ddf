package handler

import (
	"context"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockWalletService is a testify mock of wallet.Service
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Credit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	args := m.Called(ctx, memberID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockWalletService) Debit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	args := m.Called(ctx, memberID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockWalletService) Balance(ctx context.Context, memberID string) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletService) Transactions(ctx context.Context, memberID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
