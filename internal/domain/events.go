package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "round.revealed")
const (
	// EventTypeWagerBatchApplied is published after a wager batch is persisted
	EventTypeWagerBatchApplied = "wager.batch_applied"

	// EventTypeWagerRejected is published when a batch is refused before any mutation
	EventTypeWagerRejected = "wager.rejected"

	// EventTypeWalletCompensated is published when a wallet mutation is reversed after a failed room save
	EventTypeWalletCompensated = "wallet.compensated"

	// EventTypeRoundRevealed is published once payouts for a reveal are settled
	EventTypeRoundRevealed = "round.revealed"

	// EventTypeRoundReset is published when the dealer starts a new betting round
	EventTypeRoundReset = "round.reset"
)

// Outbound realtime message types delivered to room members
const (
	MessageConnected           = "connected"
	MessageMemberJoined        = "memberJoined"
	MessageWagerBatchConfirmed = "wagerBatchConfirmed"
	MessageWagerRejected       = "wagerRejected"
	MessageBalanceChanged      = "balanceChanged"
	MessageUnitsRevealed       = "unitsRevealed"
	MessageLongShotEvents      = "longShotEvents"
	MessageRoundResults        = "roundResults"
	MessageRoundReset          = "roundReset"
	MessageRoomState           = "roomState"
	MessageRoomClosed          = "roomClosed"
	MessageError               = "error"
)

// Inbound realtime message types sent by clients
const (
	InboundJoinRoom         = "joinRoom"
	InboundRequestRoomState = "requestRoomState"
	InboundSubmitWagerBatch = "submitWagerBatch"
	InboundRevealCards      = "revealCards"
	InboundResetRound       = "resetRound"
	InboundRemoveWager      = "removeWager"
)

// WagerBatchConfirmedPayload is broadcast after a batch is persisted
type WagerBatchConfirmedPayload struct {
	MemberID string       `json:"member_id"`
	Deltas   []WagerDelta `json:"deltas"`
}

// WagerRejectedPayload is sent only to the requester
type WagerRejectedPayload struct {
	Message string `json:"message"`
}

// BalanceChangedPayload carries a member's post-mutation balance
type BalanceChangedPayload struct {
	MemberID string `json:"member_id"`
	Balance  int64  `json:"balance"`
}

// UnitsRevealedPayload carries the three drawn units
type UnitsRevealedPayload struct {
	Unit1 Unit `json:"unit1"`
	Unit2 Unit `json:"unit2"`
	Unit3 Unit `json:"unit3"`
}

// LongShotEventsPayload is broadcast before round results
type LongShotEventsPayload struct {
	Events []LongShotEvent `json:"events"`
}

// RoundResultsPayload carries every settled wager
type RoundResultsPayload struct {
	Results   []PayoutResult `json:"results"`
	HandScore *int           `json:"hand_score,omitempty"`
}

// RoundResetPayload is broadcast when a new betting round opens
type RoundResetPayload struct {
	Round int `json:"round"`
}

// RoomMember is a member entry of a room snapshot
type RoomMember struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
	IsDealer bool   `json:"is_dealer"`
}

// RoomState is the full snapshot sent in response to requestRoomState
type RoomState struct {
	RoomID        string       `json:"room_id"`
	Code          string       `json:"code"`
	Status        RoomStatus   `json:"status"`
	Round         int          `json:"round"`
	DealerID      string       `json:"dealer_id"`
	RevealedUnits []Unit       `json:"revealed_units"`
	Wagers        []WagerEntry `json:"wagers"`
	Members       []RoomMember `json:"members"`
}

// MemberJoinedPayload announces a new member
type MemberJoinedPayload struct {
	MemberID string `json:"member_id"`
	Username string `json:"username"`
}

// RoomClosedPayload announces that a room accepts no further operations
type RoomClosedPayload struct {
	RoomID string `json:"room_id"`
	Code   string `json:"code"`
}
