package domain

// Long shot types
const (
	LongShotAce  = "ace"
	LongShotWild = "wild"
)

// PlaceholderMemberName is shown when a member cannot be looked up during settlement
const PlaceholderMemberName = "UnknownUser"

// PayoutResult is the settled outcome of one wager
type PayoutResult struct {
	MemberID            string `json:"member_id"`
	MemberName          string `json:"member_name"`
	Slot                int    `json:"slot"`
	SpotID              string `json:"spot_id"`
	CategoryDescription string `json:"category_description"`
	Wagered             int64  `json:"wagered"`
	Payout              int64  `json:"payout"`
	Net                 int64  `json:"net"`
	Credited            bool   `json:"credited"`
}

// LongShotEvent is emitted for exact-ace and wild-unit wins
type LongShotEvent struct {
	Type       string `json:"type"`
	WinnerID   string `json:"winner_id"`
	WinnerName string `json:"winner_name"`
	Slot       int    `json:"slot"`
	Wagered    int64  `json:"wagered"`
	Multiplier int64  `json:"multiplier"`
	Payout     int64  `json:"payout"`
}

// RoundSummary is everything a reveal produced
type RoundSummary struct {
	RoomID    string          `json:"room_id"`
	Round     int             `json:"round"`
	Units     []Unit          `json:"units"`
	HandScore *int            `json:"hand_score,omitempty"`
	Results   []PayoutResult  `json:"results"`
	LongShots []LongShotEvent `json:"long_shots"`
}
