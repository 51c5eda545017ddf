package payout

// Gross payout multipliers per category. A push returns the stake (x1).
const (
	MultiplierSuit     int64 = 4
	MultiplierDualSuit int64 = 2
	MultiplierOddEven  int64 = 2
	MultiplierAce      int64 = 13
	MultiplierWild     int64 = 26
	MultiplierPosition int64 = 3
	MultiplierPush     int64 = 1
	MultiplierLoss     int64 = 0
)

// Descriptions used for categories that have no natural title-cased token
const (
	DescriptionWild    = "Joker"
	DescriptionUnknown = "Unknown"
	DualSuitJoiner     = " or "
)
