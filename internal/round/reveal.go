package round

import (
	"context"
	"fmt"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/event"
	"github.com/osse101/TriCard_Go/internal/logger"
)

// Reveal draws three units for the room and settles every wager
func (s *service) Reveal(ctx context.Context, roomID, requesterID string) (*domain.RoundSummary, error) {
	var summary *domain.RoundSummary
	err := s.queue.Do(ctx, roomID, func(ctx context.Context) error {
		var err error
		summary, err = s.reveal(ctx, roomID, requesterID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *service) reveal(ctx context.Context, roomID, requesterID string) (*domain.RoundSummary, error) {
	log := logger.FromContext(ctx).With(logger.AttrKeyRoomID, roomID)

	room, err := s.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.DealerID != requesterID {
		return nil, domain.ErrNotDealer
	}
	if room.Status != domain.RoomStatusBetting {
		return nil, fmt.Errorf("%w: room is %s", domain.ErrAlreadyRevealed, room.Status)
	}

	units, err := s.drawer.DrawThree()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextDrawUnits, err)
	}
	room.RevealedUnits = units[:]
	if err := transition(room, domain.RoomStatusResultsPending); err != nil {
		return nil, err
	}
	if err := s.saveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.broadcast(roomID, domain.MessageUnitsRevealed, domain.UnitsRevealedPayload{
		Unit1: units[0],
		Unit2: units[1],
		Unit3: units[2],
	})

	summary, balances := s.settle(ctx, room, units)

	if len(summary.LongShots) > 0 {
		s.broadcast(roomID, domain.MessageLongShotEvents, domain.LongShotEventsPayload{Events: summary.LongShots})
	}
	s.broadcast(roomID, domain.MessageRoundResults, domain.RoundResultsPayload{
		Results:   summary.Results,
		HandScore: summary.HandScore,
	})
	for _, b := range balances {
		s.broadcast(roomID, domain.MessageBalanceChanged, b)
	}

	if err := transition(room, domain.RoomStatusResults); err != nil {
		return nil, err
	}
	if err := s.saveRoom(ctx, room); err != nil {
		log.Error(LogMsgSettlementSaveFailed, "round", room.Round, "error", err)
		return summary, fmt.Errorf("%s: %w", ErrContextSettlementSaved, err)
	}

	s.broadcast(roomID, domain.MessageRoomState, s.buildState(ctx, room))

	var wagered, paid int64
	for _, r := range summary.Results {
		wagered += r.Wagered
		if r.Credited {
			paid += r.Payout
		}
	}
	longShots := make([]string, 0, len(summary.LongShots))
	for _, ls := range summary.LongShots {
		longShots = append(longShots, ls.Type)
	}
	s.publish(ctx, event.NewRoundRevealedEvent(roomID, room.Round, len(summary.Results), wagered, paid, longShots))

	log.Info(LogMsgRoundRevealed, "round", room.Round, "units", room.RevealedUnits, "wagers", len(summary.Results), "paid", paid)
	return summary, nil
}

// Reset clears the revealed units and wagers and reopens betting
func (s *service) Reset(ctx context.Context, roomID, requesterID string) (*domain.Room, error) {
	var room *domain.Room
	err := s.queue.Do(ctx, roomID, func(ctx context.Context) error {
		var err error
		room, err = s.reset(ctx, roomID, requesterID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) reset(ctx context.Context, roomID, requesterID string) (*domain.Room, error) {
	room, err := s.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.DealerID != requesterID {
		return nil, domain.ErrNotDealer
	}
	if room.Status == domain.RoomStatusBetting {
		return nil, domain.ErrResetDuringBetting
	}
	if err := transition(room, domain.RoomStatusBetting); err != nil {
		return nil, err
	}
	room.ClearRound()
	room.Round++
	if err := s.saveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.broadcast(roomID, domain.MessageRoundReset, domain.RoundResetPayload{Round: room.Round})
	s.publish(ctx, event.NewRoundResetEvent(roomID, room.Round))
	logger.FromContext(ctx).Info(LogMsgRoundReset, logger.AttrKeyRoomID, roomID, "round", room.Round)
	return room, nil
}
