package round

import (
	"context"
	"fmt"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/logger"
	"github.com/osse101/TriCard_Go/internal/payout"
)

// settle evaluates every wager against units and credits winnings. A member that
// cannot be looked up is shown with a placeholder name and is not credited; the
// rest of the room is still settled. The final balance of every credited member is
// returned in first-credit order.
func (s *service) settle(ctx context.Context, room *domain.Room, units [domain.SlotCount]domain.Unit) (*domain.RoundSummary, []domain.BalanceChangedPayload) {
	log := logger.FromContext(ctx).With(logger.AttrKeyRoomID, room.ID)
	reason := fmt.Sprintf(domain.ReasonPayoutFormat, room.Code)

	summary := &domain.RoundSummary{
		RoomID:    room.ID,
		Round:     room.Round,
		Units:     units[:],
		Results:   make([]domain.PayoutResult, 0, len(room.Wagers)),
		LongShots: []domain.LongShotEvent{},
	}
	if score, ok := payout.HandScore(units); ok {
		summary.HandScore = &score
	}

	balances := make(map[string]int64)
	var credited []string

	for _, line := range s.engine.EvaluateAll(units, room.Wagers) {
		w, out := line.Wager, line.Outcome

		name, err := s.members.name(ctx, w.MemberID)
		known := err == nil
		if !known {
			log.Warn(LogMsgMemberLookupFailed, logger.AttrKeyMemberID, w.MemberID, "error", err)
			name = domain.PlaceholderMemberName
		}

		result := domain.PayoutResult{
			MemberID:            w.MemberID,
			MemberName:          name,
			Slot:                w.Spot.Slot,
			SpotID:              w.Spot.ID,
			CategoryDescription: s.engine.Describe(w.Spot),
			Wagered:             w.Amount,
			Payout:              out.Gross,
			Net:                 out.Net,
		}

		if known && out.Gross > 0 {
			tx, err := s.wallet.Credit(ctx, w.MemberID, out.Gross, reason)
			if err != nil {
				log.Error(LogMsgPayoutCreditFailed, logger.AttrKeyMemberID, w.MemberID, "amount", out.Gross, "error", err)
			} else {
				result.Credited = true
				if _, seen := balances[w.MemberID]; !seen {
					credited = append(credited, w.MemberID)
				}
				balances[w.MemberID] = tx.ResultingBalance
			}
		}

		if out.LongShot != "" && out.Gross > 0 {
			summary.LongShots = append(summary.LongShots, domain.LongShotEvent{
				Type:       out.LongShot,
				WinnerID:   w.MemberID,
				WinnerName: name,
				Slot:       w.Spot.Slot,
				Wagered:    w.Amount,
				Multiplier: out.Multiplier,
				Payout:     out.Gross,
			})
		}
		summary.Results = append(summary.Results, result)
	}

	changes := make([]domain.BalanceChangedPayload, 0, len(credited))
	for _, memberID := range credited {
		changes = append(changes, domain.BalanceChangedPayload{MemberID: memberID, Balance: balances[memberID]})
	}
	return summary, changes
}
