package wallet

import (
	"context"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockLedger is a testify mock of repository.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Credit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	args := m.Called(ctx, memberID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedger) Debit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	args := m.Called(ctx, memberID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedger) GetBalance(ctx context.Context, memberID string) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) ListTransactions(ctx context.Context, memberID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
