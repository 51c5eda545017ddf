package round

import (
	"context"
	"fmt"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/wallet"
)

// walletHold is a wallet mutation made on behalf of a room write that has not been
// persisted yet. Once the write settles it is either committed or reversed.
type walletHold struct {
	wallet    wallet.Service
	memberID  string
	roomCode  string
	direction domain.TransactionType
	amount    int64
	tx        *domain.Transaction
	settled   bool
}

// holdWallet applies net to the member's wallet. A positive net is debited,
// a negative net is credited, and zero leaves the wallet untouched.
func holdWallet(ctx context.Context, svc wallet.Service, memberID, roomCode string, net int64) (*walletHold, error) {
	h := &walletHold{wallet: svc, memberID: memberID, roomCode: roomCode}

	var err error
	switch {
	case net > 0:
		h.direction, h.amount = domain.TransactionDebit, net
		h.tx, err = svc.Debit(ctx, memberID, net, fmt.Sprintf(domain.ReasonWagersPlacedFormat, roomCode))
	case net < 0:
		h.direction, h.amount = domain.TransactionCredit, -net
		h.tx, err = svc.Credit(ctx, memberID, -net, fmt.Sprintf(domain.ReasonWagersRemovedFormat, roomCode))
	default:
		h.settled = true
		return h, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextWalletMutation, err)
	}
	return h, nil
}

// mutated reports whether the hold changed the wallet
func (h *walletHold) mutated() bool {
	return h.tx != nil
}

// balance returns the balance after the hold, if the hold recorded one
func (h *walletHold) balance() (int64, bool) {
	if h.tx == nil {
		return 0, false
	}
	return h.tx.ResultingBalance, true
}

// commit keeps the mutation
func (h *walletHold) commit() {
	h.settled = true
}

// reverse applies the exact opposite mutation. It is a no-op for an empty or settled hold.
func (h *walletHold) reverse(ctx context.Context) (*domain.Transaction, error) {
	if h.settled || !h.mutated() {
		return nil, nil
	}
	h.settled = true

	if h.direction == domain.TransactionDebit {
		return h.wallet.Credit(ctx, h.memberID, h.amount, fmt.Sprintf(domain.ReasonRefundFormat, h.roomCode))
	}
	return h.wallet.Debit(ctx, h.memberID, h.amount, fmt.Sprintf(domain.ReasonReversalFormat, h.roomCode))
}
