package round

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/event"
	"github.com/osse101/TriCard_Go/internal/logger"
)

// batchPlan is a wager batch after clamping. applied and spots are parallel.
type batchPlan struct {
	applied []domain.WagerDelta
	spots   []domain.Spot
	debit   int64
	refund  int64
}

func (p *batchPlan) net() int64 {
	return p.debit - p.refund
}

// planBatch clamps every removal to what the member holds on that spot at that point
// of the batch. Removals from empty spots and zero deltas are dropped. Additions above
// domain.MaxWagerAmount, or that would lift a spot past it, reject the whole batch.
func planBatch(room *domain.Room, memberID string, deltas []domain.WagerDelta) (*batchPlan, error) {
	plan := &batchPlan{}
	held := make(map[string]int64)

	for _, d := range deltas {
		if d.SpotID == "" {
			return nil, fmt.Errorf("%w: spot id is required", domain.ErrInvalidWager)
		}
		if d.Amount == 0 {
			continue
		}
		current, seen := held[d.SpotID]
		if !seen {
			current = room.WagerAmount(memberID, d.SpotID)
		}

		amount := d.Amount
		var err error
		if amount < 0 {
			if current == 0 {
				continue
			}
			if amount < -current {
				amount = -current
			}
			plan.refund, err = addAmount(plan.refund, -amount)
		} else {
			if amount > domain.MaxWagerAmount || amount > domain.MaxWagerAmount-current {
				return nil, fmt.Errorf("%w: %s would exceed %d", domain.ErrInvalidWager, d.SpotID, domain.MaxWagerAmount)
			}
			plan.debit, err = addAmount(plan.debit, amount)
		}
		if err != nil {
			return nil, err
		}

		held[d.SpotID] = current + amount
		plan.applied = append(plan.applied, domain.WagerDelta{SpotID: d.SpotID, Amount: amount})
		plan.spots = append(plan.spots, domain.ParseSpot(d.SpotID))
	}
	return plan, nil
}

// addAmount adds a non-negative amount to a running total without wrapping
func addAmount(total, amount int64) (int64, error) {
	if total > math.MaxInt64-amount {
		return 0, fmt.Errorf("%w: batch total overflows", domain.ErrInvalidWager)
	}
	return total + amount, nil
}

// ApplyWagerBatch reconciles a batch of wager deltas for one member as a single room task
func (s *service) ApplyWagerBatch(ctx context.Context, roomID, memberID string, deltas []domain.WagerDelta) (*domain.BatchResult, error) {
	var result *domain.BatchResult
	err := s.queue.Do(ctx, roomID, func(ctx context.Context) error {
		var err error
		result, err = s.applyWagerBatch(ctx, roomID, memberID, deltas)
		return err
	})
	if err != nil {
		s.recordRejection(ctx, roomID, memberID, err)
		return nil, err
	}
	return result, nil
}

// RemoveWager is the single-delta form of ApplyWagerBatch
func (s *service) RemoveWager(ctx context.Context, roomID, memberID, spotID string, amount int64) (*domain.BatchResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}
	return s.ApplyWagerBatch(ctx, roomID, memberID, []domain.WagerDelta{{SpotID: spotID, Amount: -amount}})
}

func (s *service) applyWagerBatch(ctx context.Context, roomID, memberID string, deltas []domain.WagerDelta) (*domain.BatchResult, error) {
	log := logger.FromContext(ctx).With(logger.AttrKeyRoomID, roomID, logger.AttrKeyMemberID, memberID)

	room, err := s.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.Status.AcceptsWagers() {
		return nil, fmt.Errorf("%w: room is %s", domain.ErrBettingClosed, room.Status)
	}
	if err := s.members.exists(ctx, memberID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLookupMember, err)
	}
	if !room.HasMember(memberID) {
		return nil, domain.ErrNotRoomMember
	}

	plan, err := planBatch(room, memberID, deltas)
	if err != nil {
		return nil, err
	}

	hold, err := holdWallet(ctx, s.wallet, memberID, room.Code, plan.net())
	if err != nil {
		return nil, err
	}

	if len(plan.applied) > 0 {
		for i, d := range plan.applied {
			room.AdjustWager(memberID, plan.spots[i], d.Amount)
		}
		if err := s.saveRoom(ctx, room); err != nil {
			log.Error(LogMsgRoomSaveFailed, "net", plan.net(), "error", err)
			s.compensate(ctx, room, memberID, hold)
			return nil, err
		}
	}
	hold.commit()

	balance, ok := hold.balance()
	if !ok {
		if balance, err = s.wallet.Balance(ctx, memberID); err != nil {
			log.Warn(LogMsgBalanceReadFailed, "error", err)
		}
	}

	result := &domain.BatchResult{
		MemberID:  memberID,
		Deltas:    plan.applied,
		NetChange: plan.net(),
		Balance:   balance,
	}
	if result.Deltas == nil {
		result.Deltas = []domain.WagerDelta{}
	}

	s.broadcast(roomID, domain.MessageWagerBatchConfirmed, domain.WagerBatchConfirmedPayload{
		MemberID: memberID,
		Deltas:   result.Deltas,
	})
	s.broadcast(roomID, domain.MessageBalanceChanged, domain.BalanceChangedPayload{
		MemberID: memberID,
		Balance:  balance,
	})
	s.publish(ctx, event.NewWagerBatchAppliedEvent(roomID, memberID, plan.debit, plan.refund, len(plan.applied)))

	log.Info(LogMsgWagerBatchApplied, "debit", plan.debit, "refund", plan.refund, "balance", balance)
	return result, nil
}

// compensate reverses the batch's wallet mutation after the room write failed
func (s *service) compensate(ctx context.Context, room *domain.Room, memberID string, hold *walletHold) {
	if !hold.mutated() {
		return
	}
	log := logger.FromContext(ctx).With(logger.AttrKeyRoomID, room.ID, logger.AttrKeyMemberID, memberID)

	tx, err := hold.reverse(ctx)
	succeeded := err == nil
	if succeeded {
		log.Warn(LogMsgCompensationApplied, "direction", hold.direction, "amount", hold.amount, "balance", tx.ResultingBalance)
	} else {
		log.Error(LogMsgCompensationFailed, "direction", hold.direction, "amount", hold.amount, "error", err)
	}
	s.publish(ctx, event.NewWalletCompensatedEvent(room.ID, memberID, hold.direction, hold.amount, succeeded))
}

// recordRejection logs and counts a refused batch. Persistence failures are
// already logged by the task and are not rejections.
func (s *service) recordRejection(ctx context.Context, roomID, memberID string, err error) {
	if errors.Is(err, domain.ErrRoomSaveFailed) {
		return
	}
	reason := rejectReason(err)
	logger.FromContext(ctx).Debug(LogMsgWagerBatchRejected,
		logger.AttrKeyRoomID, roomID, logger.AttrKeyMemberID, memberID, "reason", reason, "error", err)
	s.publish(ctx, event.NewWagerRejectedEvent(roomID, memberID, reason))
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return RejectReasonRoomNotFound
	case errors.Is(err, domain.ErrRoomClosed):
		return RejectReasonRoomClosed
	case errors.Is(err, domain.ErrBettingClosed):
		return RejectReasonBettingClosed
	case errors.Is(err, domain.ErrMemberNotFound):
		return RejectReasonMemberNotFound
	case errors.Is(err, domain.ErrNotRoomMember):
		return RejectReasonNotRoomMember
	case errors.Is(err, domain.ErrInsufficientFunds):
		return RejectReasonInsufficientFunds
	case errors.Is(err, domain.ErrInvalidWager), errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidInput):
		return RejectReasonInvalidWager
	}
	return RejectReasonOther
}
