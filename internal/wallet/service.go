package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/TriCard_Go/internal/concurrency"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/logger"
	"github.com/osse101/TriCard_Go/internal/metrics"
	"github.com/osse101/TriCard_Go/internal/repository"
)

// Service defines the interface for wallet ledger operations
type Service interface {
	Credit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error)
	Debit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error)
	Balance(ctx context.Context, memberID string) (int64, error)
	Transactions(ctx context.Context, memberID string, limit int) ([]domain.Transaction, error)
}

type service struct {
	repo  repository.Ledger
	locks *concurrency.LockManager
}

// NewService creates a new wallet service. Every mutation of one member's wallet
// runs under that member's lock from locks.
func NewService(repo repository.Ledger, locks *concurrency.LockManager) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{repo: repo, locks: locks}
}

// Credit adds amount to the member's balance and appends one credit transaction
func (s *service) Credit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	if err := validate(memberID, amount); err != nil {
		return nil, err
	}

	var tx *domain.Transaction
	err := s.locks.WithLock(memberID, func() error {
		var err error
		tx, err = s.repo.Credit(ctx, memberID, amount, reason)
		return err
	})
	if err != nil {
		metrics.WalletMutations.WithLabelValues(string(domain.TransactionCredit), metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("%s: %w", ErrContextCreditFailed, err)
	}

	metrics.WalletMutations.WithLabelValues(string(domain.TransactionCredit), metrics.ResultSucceeded).Inc()
	logger.FromContext(ctx).Debug(LogMsgWalletCredited,
		logger.AttrKeyMemberID, memberID, "amount", amount, "balance", tx.ResultingBalance, "reason", reason)
	return tx, nil
}

// Debit removes amount from the member's balance. It fails with
// domain.ErrInsufficientFunds and records nothing when the balance is too low.
func (s *service) Debit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	if err := validate(memberID, amount); err != nil {
		return nil, err
	}

	var tx *domain.Transaction
	err := s.locks.WithLock(memberID, func() error {
		balance, err := s.repo.GetBalance(ctx, memberID)
		if err != nil {
			return err
		}
		if balance < amount {
			return fmt.Errorf("%w: balance %d, requested %d", domain.ErrInsufficientFunds, balance, amount)
		}
		tx, err = s.repo.Debit(ctx, memberID, amount, reason)
		return err
	})
	if err != nil {
		metrics.WalletMutations.WithLabelValues(string(domain.TransactionDebit), metrics.ResultFailed).Inc()
		if errors.Is(err, domain.ErrInsufficientFunds) {
			logger.FromContext(ctx).Debug(LogMsgDebitRefused, logger.AttrKeyMemberID, memberID, "amount", amount)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextDebitFailed, err)
	}

	metrics.WalletMutations.WithLabelValues(string(domain.TransactionDebit), metrics.ResultSucceeded).Inc()
	logger.FromContext(ctx).Debug(LogMsgWalletDebited,
		logger.AttrKeyMemberID, memberID, "amount", amount, "balance", tx.ResultingBalance, "reason", reason)
	return tx, nil
}

// Balance returns the member's current ticket balance
func (s *service) Balance(ctx context.Context, memberID string) (int64, error) {
	if memberID == "" {
		return 0, fmt.Errorf("%w: member id is required", domain.ErrInvalidInput)
	}
	balance, err := s.repo.GetBalance(ctx, memberID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextBalanceFailed, err)
	}
	return balance, nil
}

// Transactions returns the member's most recent transactions, newest first
func (s *service) Transactions(ctx context.Context, memberID string, limit int) ([]domain.Transaction, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: member id is required", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	txs, err := s.repo.ListTransactions(ctx, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextHistoryFailed, err)
	}
	return txs, nil
}

func validate(memberID string, amount int64) error {
	if memberID == "" {
		return fmt.Errorf("%w: member id is required", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}
	return nil
}
