package round

import (
	"errors"

	"github.com/osse101/TriCard_Go/internal/domain"
)

// RejectionMessage returns the text shown to a requester whose operation was refused.
// It returns false for failures the requester is not told about: a batch whose room
// write failed was compensated, and the missing confirmation is the only signal.
func RejectionMessage(err error) (string, bool) {
	switch {
	case err == nil:
		return "", false
	case errors.Is(err, domain.ErrRoomSaveFailed):
		return "", false
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Not enough tickets for this wager.", true
	case errors.Is(err, domain.ErrBettingClosed):
		return "Betting is closed for this round.", true
	case errors.Is(err, domain.ErrRoomNotFound):
		return "That room does not exist.", true
	case errors.Is(err, domain.ErrRoomClosed):
		return "That room has been closed.", true
	case errors.Is(err, domain.ErrMemberNotFound):
		return "Unknown member.", true
	case errors.Is(err, domain.ErrNotRoomMember):
		return "Join the room before wagering.", true
	case errors.Is(err, domain.ErrNotDealer):
		return "Only the dealer can do that.", true
	case errors.Is(err, domain.ErrAlreadyRevealed):
		return "The cards have already been revealed.", true
	case errors.Is(err, domain.ErrResetDuringBetting):
		return "The round is still open for betting.", true
	case errors.Is(err, domain.ErrInvalidWager), errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidInput):
		return "That wager is not valid.", true
	}
	return "Request could not be processed.", true
}
