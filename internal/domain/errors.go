package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Room errors
	ErrMsgRoomNotFound        = "room not found"
	ErrMsgRoomClosed          = "room is closed"
	ErrMsgRoomCodeTaken       = "room code already in use"
	ErrMsgRoomCodesExhausted  = "no room codes available"
	ErrMsgRoomVersionConflict = "room was modified concurrently"
	ErrMsgNotRoomMember       = "member has not joined this room"

	// Member errors
	ErrMsgMemberNotFound = "member not found"

	// Round errors
	ErrMsgBettingClosed      = "betting is closed for this round"
	ErrMsgNotDealer          = "only the dealer can perform this action"
	ErrMsgAlreadyRevealed    = "units have already been revealed for this round"
	ErrMsgResetDuringBetting = "cannot reset a round during betting"
	ErrMsgInvalidWager       = "invalid wager"
	ErrMsgInvalidTransition  = "invalid round transition"

	// Wallet errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "amount must be positive"

	// Persistence
	ErrMsgRoomSaveFailed = "room could not be saved"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrRoomNotFound        = errors.New(ErrMsgRoomNotFound)
	ErrRoomClosed          = errors.New(ErrMsgRoomClosed)
	ErrRoomCodeTaken       = errors.New(ErrMsgRoomCodeTaken)
	ErrRoomCodesExhausted  = errors.New(ErrMsgRoomCodesExhausted)
	ErrRoomVersionConflict = errors.New(ErrMsgRoomVersionConflict)
	ErrNotRoomMember       = errors.New(ErrMsgNotRoomMember)

	ErrMemberNotFound = errors.New(ErrMsgMemberNotFound)

	ErrBettingClosed      = errors.New(ErrMsgBettingClosed)
	ErrNotDealer          = errors.New(ErrMsgNotDealer)
	ErrAlreadyRevealed    = errors.New(ErrMsgAlreadyRevealed)
	ErrResetDuringBetting = errors.New(ErrMsgResetDuringBetting)
	ErrInvalidWager       = errors.New(ErrMsgInvalidWager)
	ErrInvalidTransition  = errors.New(ErrMsgInvalidTransition)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	ErrRoomSaveFailed = errors.New(ErrMsgRoomSaveFailed)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
