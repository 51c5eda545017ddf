package round

import "time"

// Error context strings
const (
	ErrContextLoadRoom        = "failed to load room"
	ErrContextSaveRoom        = "failed to save room"
	ErrContextCreateRoom      = "failed to create room"
	ErrContextListRooms       = "failed to list rooms"
	ErrContextEnsureMember    = "failed to register member"
	ErrContextWalletMutation  = "failed to apply wallet change"
	ErrContextDrawUnits       = "failed to draw units"
	ErrContextGenerateCode    = "failed to generate room code"
	ErrContextLookupMember    = "failed to look up member"
	ErrContextSettlementSaved = "settled round could not be saved"
)

// Log messages
const (
	LogMsgRoomCreated          = "Room created"
	LogMsgMemberJoined         = "Member joined room"
	LogMsgDealerChanged        = "Dealer seat taken over"
	LogMsgRoomClosed           = "Room closed"
	LogMsgWagerBatchApplied    = "Wager batch applied"
	LogMsgWagerBatchRejected   = "Wager batch rejected"
	LogMsgRoomSaveFailed       = "Room save failed after wallet mutation"
	LogMsgCompensationApplied  = "Wallet mutation reversed"
	LogMsgCompensationFailed   = "Wallet reversal failed, balance needs manual repair"
	LogMsgRoundRevealed        = "Round revealed"
	LogMsgRoundReset           = "Round reset"
	LogMsgMemberLookupFailed   = "Member lookup failed during settlement"
	LogMsgPayoutCreditFailed   = "Payout credit failed"
	LogMsgCloseRefundFailed    = "Refund for closed room failed"
	LogMsgEventPublishFailed   = "Failed to publish event"
	LogMsgSettlementSaveFailed = "Settled room could not be persisted, reset to recover"
	LogMsgRoomCodeCollision    = "Room code collision, retrying"
	LogMsgBalanceReadFailed    = "Balance read failed after wager batch"
)

// Rejection reason labels. These feed the wager rejection metric and must stay bounded.
const (
	RejectReasonRoomNotFound      = "room_not_found"
	RejectReasonRoomClosed        = "room_closed"
	RejectReasonBettingClosed     = "betting_closed"
	RejectReasonMemberNotFound    = "member_not_found"
	RejectReasonNotRoomMember     = "not_room_member"
	RejectReasonInsufficientFunds = "insufficient_funds"
	RejectReasonInvalidWager      = "invalid_wager"
	RejectReasonOther             = "other"
)

// Defaults
const (
	RoomCodeAttempts       = 25
	DefaultStartingTickets = 1000
	DefaultMemberCacheSize = 1024
	DefaultMemberCacheTTL  = 10 * time.Minute
)
