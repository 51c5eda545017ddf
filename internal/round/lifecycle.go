package round

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/logger"
)

// CreateRoom opens a betting room with a fresh code. The dealer is registered as a
// member if needed and seated in the room.
func (s *service) CreateRoom(ctx context.Context, dealerID, dealerName string) (*domain.Room, error) {
	if _, err := s.members.ensure(ctx, dealerID, dealerName, s.opening); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	for attempt := 0; attempt < RoomCodeAttempts; attempt++ {
		n, err := s.codeSource(domain.RoomCodeMin, domain.RoomCodeMax)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextGenerateCode, err)
		}

		room := &domain.Room{
			ID:        uuid.NewString(),
			Code:      strconv.Itoa(n),
			DealerID:  dealerID,
			MemberIDs: []string{dealerID},
			Status:    domain.RoomStatusBetting,
			Round:     1,
		}
		err = s.rooms.CreateRoom(ctx, room)
		if errors.Is(err, domain.ErrRoomCodeTaken) {
			log.Debug(LogMsgRoomCodeCollision, "code", room.Code, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextCreateRoom, err)
		}

		log.Info(LogMsgRoomCreated, logger.AttrKeyRoomID, room.ID, "code", room.Code, "dealer", dealerID)
		return room, nil
	}
	return nil, domain.ErrRoomCodesExhausted
}

// JoinRoom seats a member in the open room with the given code
func (s *service) JoinRoom(ctx context.Context, code, memberID, username string) (*domain.Room, error) {
	found, err := s.rooms.GetOpenRoomByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadRoom, err)
	}
	member, err := s.members.ensure(ctx, memberID, username, s.opening)
	if err != nil {
		return nil, err
	}

	var room *domain.Room
	err = s.queue.Do(ctx, found.ID, func(ctx context.Context) error {
		r, err := s.loadRoom(ctx, found.ID)
		if err != nil {
			return err
		}
		if r.AddMember(memberID) {
			if err := s.saveRoom(ctx, r); err != nil {
				return err
			}
			s.broadcast(r.ID, domain.MessageMemberJoined, domain.MemberJoinedPayload{
				MemberID: member.ID,
				Username: member.Username,
			})
			logger.FromContext(ctx).Info(LogMsgMemberJoined, logger.AttrKeyRoomID, r.ID, logger.AttrKeyMemberID, memberID)
		}
		room = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// TakeOverDealer moves the dealer seat to a member of the room
func (s *service) TakeOverDealer(ctx context.Context, roomID, memberID string) (*domain.Room, error) {
	var room *domain.Room
	err := s.queue.Do(ctx, roomID, func(ctx context.Context) error {
		r, err := s.loadRoom(ctx, roomID)
		if err != nil {
			return err
		}
		if !r.HasMember(memberID) {
			return domain.ErrNotRoomMember
		}
		if r.DealerID != memberID {
			previous := r.DealerID
			r.DealerID = memberID
			if err := s.saveRoom(ctx, r); err != nil {
				return err
			}
			logger.FromContext(ctx).Info(LogMsgDealerChanged, logger.AttrKeyRoomID, roomID, "from", previous, "to", memberID)
			s.broadcast(roomID, domain.MessageRoomState, s.buildState(ctx, r))
		}
		room = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// ListOpenRooms returns every room that has not been closed
func (s *service) ListOpenRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.ListOpenRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListRooms, err)
	}
	return rooms, nil
}

// RoomState returns a snapshot of the room with member names and balances
func (s *service) RoomState(ctx context.Context, roomID string) (*domain.RoomState, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadRoom, err)
	}
	return s.buildState(ctx, room), nil
}

func (s *service) buildState(ctx context.Context, room *domain.Room) *domain.RoomState {
	state := &domain.RoomState{
		RoomID:        room.ID,
		Code:          room.Code,
		Status:        room.Status,
		Round:         room.Round,
		DealerID:      room.DealerID,
		RevealedUnits: append([]domain.Unit{}, room.RevealedUnits...),
		Wagers:        append([]domain.WagerEntry{}, room.Wagers...),
		Members:       make([]domain.RoomMember, 0, len(room.MemberIDs)),
	}

	for _, id := range room.MemberIDs {
		name, err := s.members.name(ctx, id)
		if err != nil {
			name = domain.PlaceholderMemberName
		}
		balance, err := s.wallet.Balance(ctx, id)
		if err != nil {
			balance = 0
		}
		state.Members = append(state.Members, domain.RoomMember{
			ID:       id,
			Username: name,
			Balance:  balance,
			IsDealer: id == room.DealerID,
		})
	}
	return state
}

// CloseRoom ends the room. Wagers still open in betting are refunded after the
// closed room is persisted, so they can never be refunded twice.
func (s *service) CloseRoom(ctx context.Context, roomID, requesterID string) error {
	return s.queue.Do(ctx, roomID, func(ctx context.Context) error {
		room, err := s.loadRoom(ctx, roomID)
		if err != nil {
			return err
		}
		if room.DealerID != requesterID {
			return domain.ErrNotDealer
		}

		var refunds []domain.WagerEntry
		if room.Status == domain.RoomStatusBetting {
			refunds = room.Wagers
		}
		if err := transition(room, domain.RoomStatusClosed); err != nil {
			return err
		}
		room.Wagers = nil
		if err := s.saveRoom(ctx, room); err != nil {
			return err
		}

		log := logger.FromContext(ctx).With(logger.AttrKeyRoomID, roomID)
		reason := fmt.Sprintf(domain.ReasonRoomClosedFormat, room.Code)
		for _, w := range refunds {
			tx, err := s.wallet.Credit(ctx, w.MemberID, w.Amount, reason)
			if err != nil {
				log.Error(LogMsgCloseRefundFailed, logger.AttrKeyMemberID, w.MemberID, "amount", w.Amount, "error", err)
				continue
			}
			s.broadcast(roomID, domain.MessageBalanceChanged, domain.BalanceChangedPayload{
				MemberID: w.MemberID,
				Balance:  tx.ResultingBalance,
			})
		}

		s.broadcast(roomID, domain.MessageRoomClosed, domain.RoomClosedPayload{RoomID: room.ID, Code: room.Code})
		log.Info(LogMsgRoomClosed, "code", room.Code, "refunds", len(refunds))
		return nil
	})
}
