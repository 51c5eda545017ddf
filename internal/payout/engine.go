// Package payout evaluates wagers against the three revealed units.
// It is pure: it never touches wallets or storage.
package payout

import (
	"strings"

	"github.com/osse101/TriCard_Go/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Outcome is the evaluation of a single wager
type Outcome struct {
	Gross      int64
	Net        int64
	Multiplier int64
	LongShot   string // domain.LongShotAce, domain.LongShotWild or empty
}

// Line pairs a wager with its outcome
type Line struct {
	Wager   domain.WagerEntry
	Outcome Outcome
}

// Engine applies the payout table
type Engine struct {
	title cases.Caser
}

// NewEngine creates a new payout Engine
func NewEngine() *Engine {
	return &Engine{title: cases.Title(language.English)}
}

// Evaluate computes the gross and net result of amount wagered on spot
func (e *Engine) Evaluate(units [domain.SlotCount]domain.Unit, spot domain.Spot, amount int64) Outcome {
	multiplier, longShot := e.multiplier(units, spot)
	gross := amount * multiplier
	return Outcome{
		Gross:      gross,
		Net:        gross - amount,
		Multiplier: multiplier,
		LongShot:   longShot,
	}
}

// EvaluateAll evaluates every wager in recorded order
func (e *Engine) EvaluateAll(units [domain.SlotCount]domain.Unit, wagers []domain.WagerEntry) []Line {
	lines := make([]Line, 0, len(wagers))
	for _, w := range wagers {
		lines = append(lines, Line{Wager: w, Outcome: e.Evaluate(units, w.Spot, w.Amount)})
	}
	return lines
}

func (e *Engine) multiplier(units [domain.SlotCount]domain.Unit, spot domain.Spot) (int64, string) {
	if spot.Slot < 1 || spot.Slot > domain.SlotCount {
		return MultiplierLoss, ""
	}
	unit := units[spot.Slot-1]

	switch spot.Category {
	case domain.CategorySuit:
		if !unit.IsWild && len(spot.Suits) == 1 && unit.Suit == spot.Suits[0] {
			return MultiplierSuit, ""
		}
	case domain.CategoryDualSuit:
		if !unit.IsWild && len(spot.Suits) == 2 && (unit.Suit == spot.Suits[0] || unit.Suit == spot.Suits[1]) {
			return MultiplierDualSuit, ""
		}
	case domain.CategoryOdd, domain.CategoryEven:
		if unit.IsWild {
			return MultiplierLoss, ""
		}
		v, ok := unit.Rank.FaceValue()
		if !ok {
			return MultiplierLoss, ""
		}
		if (v%2 == 1) == (spot.Category == domain.CategoryOdd) {
			return MultiplierOddEven, ""
		}
	case domain.CategoryAce:
		if !unit.IsWild && unit.Rank == domain.RankAce {
			return MultiplierAce, domain.LongShotAce
		}
	case domain.CategoryWild:
		if unit.IsWild {
			return MultiplierWild, domain.LongShotWild
		}
	case domain.CategoryLowest, domain.CategoryMiddle, domain.CategoryHighest:
		return positionMultiplier(StandingOf(units, spot.Slot), spot.Category), ""
	}
	return MultiplierLoss, ""
}

// Describe renders a spot's category for people ("Diamonds or Hearts", "Lowest")
func (e *Engine) Describe(spot domain.Spot) string {
	switch spot.Category {
	case domain.CategorySuit:
		if len(spot.Suits) == 1 {
			return spot.Suits[0].Name()
		}
	case domain.CategoryDualSuit:
		names := make([]string, 0, len(spot.Suits))
		for _, s := range spot.Suits {
			names = append(names, s.Name())
		}
		return strings.Join(names, DualSuitJoiner)
	case domain.CategoryWild:
		return DescriptionWild
	case domain.CategoryOdd, domain.CategoryEven, domain.CategoryAce,
		domain.CategoryLowest, domain.CategoryMiddle, domain.CategoryHighest:
		return e.title.String(string(spot.Category))
	}
	return DescriptionUnknown
}
