package payout

import "github.com/osse101/TriCard_Go/internal/domain"

// Standing is where one revealed unit ranks against the other two
type Standing int

const (
	StandingVoid Standing = iota // a wild unit was revealed
	StandingAllEqual
	StandingLowest
	StandingMiddle
	StandingHighest
	StandingTiedLowest
	StandingTiedHighest
)

func (s Standing) String() string {
	switch s {
	case StandingAllEqual:
		return "all_equal"
	case StandingLowest:
		return "lowest"
	case StandingMiddle:
		return "middle"
	case StandingHighest:
		return "highest"
	case StandingTiedLowest:
		return "tied_lowest"
	case StandingTiedHighest:
		return "tied_highest"
	default:
		return "void"
	}
}

// StandingOf ranks the unit at slot (1-based) against the other two using comparison
// values (ace high). Any wild unit in the hand voids every standing.
func StandingOf(units [domain.SlotCount]domain.Unit, slot int) Standing {
	var values [domain.SlotCount]int
	for i, u := range units {
		if u.IsWild {
			return StandingVoid
		}
		v, ok := u.Rank.ComparisonValue()
		if !ok {
			return StandingVoid
		}
		values[i] = v
	}
	if slot < 1 || slot > domain.SlotCount {
		return StandingVoid
	}

	self := values[slot-1]
	var lower, higher, equal int
	for i, v := range values {
		if i == slot-1 {
			continue
		}
		switch {
		case v < self:
			lower++
		case v > self:
			higher++
		default:
			equal++
		}
	}

	switch {
	case equal == 2:
		return StandingAllEqual
	case lower == 2:
		return StandingHighest
	case higher == 2:
		return StandingLowest
	case lower == 1 && higher == 1:
		return StandingMiddle
	case equal == 1 && lower == 1:
		return StandingTiedHighest
	default:
		return StandingTiedLowest
	}
}

// positionMultiplier maps a standing and a position category to a gross multiplier
func positionMultiplier(standing Standing, category domain.Category) int64 {
	switch standing {
	case StandingAllEqual:
		return MultiplierPush
	case StandingLowest:
		if category == domain.CategoryLowest {
			return MultiplierPosition
		}
	case StandingMiddle:
		if category == domain.CategoryMiddle {
			return MultiplierPosition
		}
	case StandingHighest:
		if category == domain.CategoryHighest {
			return MultiplierPosition
		}
	case StandingTiedLowest:
		if category == domain.CategoryLowest {
			return MultiplierPush
		}
	case StandingTiedHighest:
		if category == domain.CategoryHighest {
			return MultiplierPush
		}
	}
	return MultiplierLoss
}
