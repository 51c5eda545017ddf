package payout

import (
	"testing"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func u(rank domain.Rank, suit domain.Suit) domain.Unit {
	return domain.NewUnit(rank, suit)
}

func hand(a, b, c domain.Unit) [domain.SlotCount]domain.Unit {
	return [domain.SlotCount]domain.Unit{a, b, c}
}

var joker = domain.NewWildUnit(1)

func TestEvaluate_PayoutTable(t *testing.T) {
	e := NewEngine()
	units := hand(u("7", domain.SuitDiamonds), u(domain.RankAce, domain.SuitSpades), joker)

	tests := []struct {
		name     string
		spot     string
		gross    int64
		longShot string
	}{
		{"suit match", "slot1-suit-♦", 40, ""},
		{"suit miss", "slot1-suit-♣", 0, ""},
		{"suit on wild", "slot3-suit-♦", 0, ""},
		{"dual suit first", "slot1-suits-♦♥", 20, ""},
		{"dual suit second", "slot1-suits-♣♦", 20, ""},
		{"dual suit miss", "slot1-suits-♣♥", 0, ""},
		{"dual suit on wild", "slot3-suits-♣♥", 0, ""},
		{"odd seven", "slot1-odd", 20, ""},
		{"even seven", "slot1-even", 0, ""},
		{"odd ace counts as one", "slot2-odd", 20, ""},
		{"even ace", "slot2-even", 0, ""},
		{"odd on wild", "slot3-odd", 0, ""},
		{"even on wild", "slot3-even", 0, ""},
		{"ace hit", "slot2-ace", 130, domain.LongShotAce},
		{"ace miss", "slot1-ace", 0, ""},
		{"wild hit", "slot3-joker", 260, domain.LongShotWild},
		{"wild miss", "slot1-joker", 0, ""},
		{"position lost to wild", "slot2-high", 0, ""},
		{"unknown category", "slot1-banana", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Evaluate(units, domain.ParseSpot(tt.spot), 10)
			assert.Equal(t, tt.gross, out.Gross)
			assert.Equal(t, tt.gross-10, out.Net)
			assert.Equal(t, tt.longShot, out.LongShot)
		})
	}
}

func TestEvaluate_SingleSuitExample(t *testing.T) {
	e := NewEngine()
	units := hand(u("7", domain.SuitDiamonds), u("2", domain.SuitClubs), u("9", domain.SuitHearts))

	out := e.Evaluate(units, domain.ParseSpot("slot1-suit-♦"), 5)
	assert.Equal(t, int64(20), out.Gross)
	assert.Equal(t, int64(15), out.Net)
}

func TestEvaluate_LargestWagerOnLargestMultiplier(t *testing.T) {
	e := NewEngine()
	units := hand(u("7", domain.SuitDiamonds), u(domain.RankAce, domain.SuitSpades), joker)

	out := e.Evaluate(units, domain.ParseSpot("slot3-joker"), domain.MaxWagerAmount)
	assert.Equal(t, domain.MaxWagerAmount*MultiplierWild, out.Gross)
	assert.Equal(t, domain.MaxWagerAmount*(MultiplierWild-1), out.Net)

	lines := e.EvaluateAll(units, []domain.WagerEntry{
		{MemberID: "m1", Spot: domain.ParseSpot("slot3-joker"), Amount: domain.MaxWagerAmount},
		{MemberID: "m1", Spot: domain.ParseSpot("slot2-ace"), Amount: domain.MaxWagerAmount},
	})
	var total int64
	for _, l := range lines {
		assert.Positive(t, l.Outcome.Gross)
		total += l.Outcome.Gross
	}
	assert.Equal(t, domain.MaxWagerAmount*(MultiplierWild+MultiplierAce), total)
}

func TestEvaluate_Position(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name  string
		units [domain.SlotCount]domain.Unit
		spot  string
		gross int64
	}{
		{"highest wins", hand(u("2", domain.SuitClubs), u("5", domain.SuitHearts), u("K", domain.SuitSpades)), "slot3-high", 30},
		{"highest loses on mid", hand(u("2", domain.SuitClubs), u("5", domain.SuitHearts), u("K", domain.SuitSpades)), "slot3-mid", 0},
		{"lowest wins", hand(u("2", domain.SuitClubs), u("5", domain.SuitHearts), u("K", domain.SuitSpades)), "slot1-low", 30},
		{"middle wins", hand(u("2", domain.SuitClubs), u("5", domain.SuitHearts), u("K", domain.SuitSpades)), "slot2-mid", 30},
		{"ace ranks high", hand(u(domain.RankAce, domain.SuitClubs), u("K", domain.SuitHearts), u("Q", domain.SuitSpades)), "slot1-high", 30},
		{"ace is not low", hand(u(domain.RankAce, domain.SuitClubs), u("K", domain.SuitHearts), u("Q", domain.SuitSpades)), "slot1-low", 0},
		{"tied highest pushes highest", hand(u("9", domain.SuitClubs), u("9", domain.SuitHearts), u("3", domain.SuitSpades)), "slot1-high", 10},
		{"tied highest loses middle", hand(u("9", domain.SuitClubs), u("9", domain.SuitHearts), u("3", domain.SuitSpades)), "slot2-mid", 0},
		{"tied highest loses lowest", hand(u("9", domain.SuitClubs), u("9", domain.SuitHearts), u("3", domain.SuitSpades)), "slot1-low", 0},
		{"odd one out below a pair is lowest", hand(u("9", domain.SuitClubs), u("9", domain.SuitHearts), u("3", domain.SuitSpades)), "slot3-low", 30},
		{"tied lowest pushes lowest", hand(u("4", domain.SuitClubs), u("J", domain.SuitHearts), u("4", domain.SuitSpades)), "slot3-low", 10},
		{"tied lowest loses highest", hand(u("4", domain.SuitClubs), u("J", domain.SuitHearts), u("4", domain.SuitSpades)), "slot1-high", 0},
		{"odd one out above a pair is highest", hand(u("4", domain.SuitClubs), u("J", domain.SuitHearts), u("4", domain.SuitSpades)), "slot2-high", 30},
		{"wild voids highest", hand(u("2", domain.SuitClubs), joker, u("K", domain.SuitSpades)), "slot3-high", 0},
		{"wild voids its own slot", hand(u("2", domain.SuitClubs), joker, u("K", domain.SuitSpades)), "slot2-mid", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Evaluate(tt.units, domain.ParseSpot(tt.spot), 10)
			assert.Equal(t, tt.gross, out.Gross)
			assert.Empty(t, out.LongShot)
		})
	}
}

func TestEvaluate_AllEqualPushesEveryPosition(t *testing.T) {
	e := NewEngine()
	units := hand(u("8", domain.SuitClubs), u("8", domain.SuitHearts), u("8", domain.SuitSpades))

	for slot := 1; slot <= domain.SlotCount; slot++ {
		for _, c := range []domain.Category{domain.CategoryLowest, domain.CategoryMiddle, domain.CategoryHighest} {
			out := e.Evaluate(units, domain.ParseSpot(domain.SpotID(slot, c)), 25)
			assert.Equal(t, int64(25), out.Gross, "slot %d %s", slot, c)
			assert.Equal(t, int64(0), out.Net)
		}
	}
}

func TestEvaluate_AnyWildLosesEveryPositionAndOddEvenOnWildSlot(t *testing.T) {
	e := NewEngine()
	units := hand(u("8", domain.SuitClubs), u("3", domain.SuitHearts), joker)

	for slot := 1; slot <= domain.SlotCount; slot++ {
		for _, c := range []domain.Category{domain.CategoryLowest, domain.CategoryMiddle, domain.CategoryHighest} {
			out := e.Evaluate(units, domain.ParseSpot(domain.SpotID(slot, c)), 10)
			assert.Equal(t, int64(-10), out.Net)
		}
	}
	assert.Equal(t, int64(-10), e.Evaluate(units, domain.ParseSpot("slot3-odd"), 10).Net)
	assert.Equal(t, int64(-10), e.Evaluate(units, domain.ParseSpot("slot3-even"), 10).Net)
}

func TestEvaluateAll_PreservesOrder(t *testing.T) {
	e := NewEngine()
	units := hand(u("7", domain.SuitDiamonds), u("2", domain.SuitClubs), joker)
	wagers := []domain.WagerEntry{
		{MemberID: "a", Spot: domain.ParseSpot("slot3-joker"), Amount: 10},
		{MemberID: "b", Spot: domain.ParseSpot("slot1-even"), Amount: 4},
	}

	lines := e.EvaluateAll(units, wagers)
	assert.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Wager.MemberID)
	assert.Equal(t, int64(260), lines[0].Outcome.Gross)
	assert.Equal(t, int64(26), lines[0].Outcome.Multiplier)
	assert.Equal(t, int64(-4), lines[1].Outcome.Net)
}

func TestDescribe(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, "Diamonds", e.Describe(domain.ParseSpot("slot1-suit-♦")))
	assert.Equal(t, "Diamonds or Hearts", e.Describe(domain.ParseSpot("slot1-suits-♦♥")))
	assert.Equal(t, "Odd", e.Describe(domain.ParseSpot("slot1-odd")))
	assert.Equal(t, "Even", e.Describe(domain.ParseSpot("slot2-even")))
	assert.Equal(t, "Ace", e.Describe(domain.ParseSpot("slot3-ace")))
	assert.Equal(t, "Joker", e.Describe(domain.ParseSpot("slot3-joker")))
	assert.Equal(t, "Lowest", e.Describe(domain.ParseSpot("slot1-low")))
	assert.Equal(t, "Middle", e.Describe(domain.ParseSpot("slot1-mid")))
	assert.Equal(t, "Highest", e.Describe(domain.ParseSpot("slot1-high")))
	assert.Equal(t, "Unknown", e.Describe(domain.ParseSpot("nonsense")))
}

func TestStandingOf(t *testing.T) {
	units := hand(u("9", domain.SuitClubs), u("9", domain.SuitHearts), u("3", domain.SuitSpades))
	assert.Equal(t, StandingTiedHighest, StandingOf(units, 1))
	assert.Equal(t, StandingTiedHighest, StandingOf(units, 2))
	assert.Equal(t, StandingLowest, StandingOf(units, 3))
	assert.Equal(t, StandingVoid, StandingOf(units, 4))
	assert.Equal(t, "tied_highest", StandingOf(units, 1).String())
}

func TestHandScore(t *testing.T) {
	trips := hand(u("8", domain.SuitClubs), u("8", domain.SuitHearts), u("8", domain.SuitSpades))
	high := hand(u("2", domain.SuitClubs), u("7", domain.SuitHearts), u("9", domain.SuitSpades))

	tripsScore, ok := HandScore(trips)
	assert.True(t, ok)
	highScore, ok := HandScore(high)
	assert.True(t, ok)
	assert.NotEqual(t, tripsScore, highScore)

	_, ok = HandScore(hand(u("8", domain.SuitClubs), joker, u("8", domain.SuitSpades)))
	assert.False(t, ok)
}
