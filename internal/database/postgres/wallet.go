package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osse101/TriCard_Go/internal/domain"
)

// WalletRepository stores members, their ticket balances and the transaction history.
// Each mutation updates the balance and appends its transaction in one database transaction.
type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetMember loads a member by id
func (r *WalletRepository) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	var m domain.Member
	err := r.db.QueryRow(ctx, `
		SELECT member_id, username, ticket_balance, created_at
		FROM members WHERE member_id = $1
	`, id).Scan(&m.ID, &m.Username, &m.TicketBalance, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryMember, err)
	}
	return &m, nil
}

// CreateMember inserts a member. A positive opening balance is recorded as a credit.
func (r *WalletRepository) CreateMember(ctx context.Context, member *domain.Member) error {
	if member.TicketBalance < 0 {
		return fmt.Errorf("%w: negative opening balance", domain.ErrInvalidAmount)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	err = tx.QueryRow(ctx, `
		INSERT INTO members (member_id, username, ticket_balance, created_at)
		VALUES ($1, $2, 0, NOW())
		RETURNING created_at
	`, member.ID, member.Username).Scan(&member.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertMember, err)
	}

	if member.TicketBalance > 0 {
		if _, err := applyMutation(ctx, tx, member.ID, domain.TransactionCredit, member.TicketBalance, OpeningBalanceReason); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Credit adds amount to the balance
func (r *WalletRepository) Credit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	return r.mutate(ctx, memberID, domain.TransactionCredit, amount, reason)
}

// Debit subtracts amount from the balance. The update is conditional on the
// balance covering amount, so concurrent debits can never overdraw.
func (r *WalletRepository) Debit(ctx context.Context, memberID string, amount int64, reason string) (*domain.Transaction, error) {
	return r.mutate(ctx, memberID, domain.TransactionDebit, amount, reason)
}

func (r *WalletRepository) mutate(ctx context.Context, memberID string, kind domain.TransactionType, amount int64, reason string) (*domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	record, err := applyMutation(ctx, tx, memberID, kind, amount, reason)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return record, nil
}

func applyMutation(ctx context.Context, tx pgx.Tx, memberID string, kind domain.TransactionType, amount int64, reason string) (*domain.Transaction, error) {
	query := `UPDATE members SET ticket_balance = ticket_balance + $2 WHERE member_id = $1 RETURNING ticket_balance`
	if kind == domain.TransactionDebit {
		query = `UPDATE members SET ticket_balance = ticket_balance - $2 WHERE member_id = $1 AND ticket_balance >= $2 RETURNING ticket_balance`
	}

	var balance int64
	err := tx.QueryRow(ctx, query, memberID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		var current int64
		lookup := tx.QueryRow(ctx, `SELECT ticket_balance FROM members WHERE member_id = $1`, memberID).Scan(&current)
		if errors.Is(lookup, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, memberID)
		}
		if lookup != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryMember, lookup)
		}
		return nil, fmt.Errorf("%w: balance %d, requested %d", domain.ErrInsufficientFunds, current, amount)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}

	record := &domain.Transaction{
		ID:               uuid.NewString(),
		MemberID:         memberID,
		Type:             kind,
		Amount:           amount,
		ResultingBalance: balance,
		Reason:           reason,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO wallet_transactions (transaction_id, member_id, type, amount, resulting_balance, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, record.ID, memberID, string(kind), amount, balance, reason).Scan(&record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}
	return record, nil
}

// GetBalance returns the member's ticket balance
func (r *WalletRepository) GetBalance(ctx context.Context, memberID string) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT ticket_balance FROM members WHERE member_id = $1`, memberID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, memberID)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryMember, err)
	}
	return balance, nil
}

// ListTransactions returns up to limit transactions, newest first
func (r *WalletRepository) ListTransactions(ctx context.Context, memberID string, limit int) ([]domain.Transaction, error) {
	if _, err := r.GetBalance(ctx, memberID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT transaction_id::text, member_id, type, amount, resulting_balance, reason, created_at
		FROM wallet_transactions
		WHERE member_id = $1
		ORDER BY seq DESC
		LIMIT $2
	`, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTransactions, err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var (
			t    domain.Transaction
			kind string
		)
		if err := rows.Scan(&t.ID, &t.MemberID, &kind, &t.Amount, &t.ResultingBalance, &t.Reason, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTransactions, err)
		}
		t.Type = domain.TransactionType(kind)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTransactions, err)
	}
	return txs, nil
}
