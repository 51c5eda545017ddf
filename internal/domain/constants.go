package domain

// Room codes are three digit numbers unique among open rooms
const (
	RoomCodeMin = 100
	RoomCodeMax = 999
)

// Wallet transaction reason formats, each takes the room code
const (
	ReasonWagersPlacedFormat  = "Wagers placed (Batch) - Room #%s"
	ReasonWagersRemovedFormat = "Wagers removed (Batch) - Room #%s"
	ReasonRefundFormat        = "Refund - Room #%s Save Failed"
	ReasonReversalFormat      = "Reversal - Room #%s Save Failed"
	ReasonPayoutFormat        = "Round payout - Room #%s"
	ReasonRoomClosedFormat    = "Refund - Room #%s Closed"
)

// MaxWagerAmount bounds a single added delta and the total one member may hold on one spot
const MaxWagerAmount int64 = 1_000_000
