package repository

import (
	"context"

	"github.com/osse101/TriCard_Go/internal/domain"
)

// Ledger stores wallet balances and their append-only transaction history.
// Credit and Debit each append exactly one transaction; Debit fails with
// domain.ErrInsufficientFunds rather than letting a balance go negative.
type Ledger interface {
	Credit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error)
	Debit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error)
	GetBalance(ctx context.Context, memberID string) (int64, error)
	ListTransactions(ctx context.Context, memberID string, limit int) ([]domain.Transaction, error)
}
