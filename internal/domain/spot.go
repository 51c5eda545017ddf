package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the wager category of a spot
type Category string

const (
	CategorySuit     Category = "suit"
	CategoryDualSuit Category = "dual_suit"
	CategoryOdd      Category = "odd"
	CategoryEven     Category = "even"
	CategoryAce      Category = "ace"
	CategoryWild     Category = "wild"
	CategoryLowest   Category = "lowest"
	CategoryMiddle   Category = "middle"
	CategoryHighest  Category = "highest"
	CategoryUnknown  Category = "unknown"
)

// SlotCount is the number of revealed units per round
const SlotCount = 3

// Spot identifier tokens. Identifiers look like "slot1-suit-♦", "slot2-suits-♦♥" or "slot3-high".
// The "card" prefix is accepted as an alias of "slot".
const (
	spotPrefixSlot = "slot"
	spotPrefixCard = "card"
	spotTokenSuit  = "suit"
	spotTokenSuits = "suits"
	spotTokenOdd   = "odd"
	spotTokenEven  = "even"
	spotTokenAce   = "ace"
	spotTokenWild  = "joker"
	spotTokenWild2 = "wild"
	spotTokenLow   = "low"
	spotTokenMid   = "mid"
	spotTokenHigh  = "high"
)

// Spot is a parsed (slot, category) pair. It is built once when a wager is recorded
// so payout evaluation never re-parses identifiers.
type Spot struct {
	ID       string   `json:"id"`
	Slot     int      `json:"slot"`
	Category Category `json:"category"`
	Suits    []Suit   `json:"suits,omitempty"`
}

// ParseSpot decodes a spot identifier. Identifiers that do not match a known shape
// yield CategoryUnknown rather than an error; such spots can hold wagers but never pay.
func ParseSpot(id string) Spot {
	spot := Spot{ID: id, Category: CategoryUnknown}

	parts := strings.SplitN(id, "-", 3)
	head := parts[0]
	var slotText string
	switch {
	case strings.HasPrefix(head, spotPrefixSlot):
		slotText = strings.TrimPrefix(head, spotPrefixSlot)
	case strings.HasPrefix(head, spotPrefixCard):
		slotText = strings.TrimPrefix(head, spotPrefixCard)
	default:
		return spot
	}
	slot, err := strconv.Atoi(slotText)
	if err != nil || slot < 1 || slot > SlotCount || len(parts) < 2 {
		return spot
	}
	spot.Slot = slot

	switch parts[1] {
	case spotTokenSuit:
		if len(parts) == 3 {
			if s, ok := ParseSuit(parts[2]); ok {
				spot.Category = CategorySuit
				spot.Suits = []Suit{s}
			}
		}
	case spotTokenSuits:
		if len(parts) == 3 {
			if suits, ok := parseSuitPair(parts[2]); ok {
				spot.Category = CategoryDualSuit
				spot.Suits = suits
			}
		}
	case spotTokenOdd:
		spot.Category = CategoryOdd
	case spotTokenEven:
		spot.Category = CategoryEven
	case spotTokenAce:
		spot.Category = CategoryAce
	case spotTokenWild, spotTokenWild2:
		spot.Category = CategoryWild
	case spotTokenLow:
		spot.Category = CategoryLowest
	case spotTokenMid:
		spot.Category = CategoryMiddle
	case spotTokenHigh:
		spot.Category = CategoryHighest
	}
	return spot
}

// parseSuitPair reads two distinct suits written back to back ("♦♥" or "dh")
func parseSuitPair(raw string) ([]Suit, bool) {
	runes := []rune(raw)
	if len(runes) != 2 {
		return nil, false
	}
	a, okA := ParseSuit(string(runes[0]))
	b, okB := ParseSuit(string(runes[1]))
	if !okA || !okB || a == b {
		return nil, false
	}
	return []Suit{a, b}, true
}

// IsPosition reports whether the spot is one of the three position categories
func (s Spot) IsPosition() bool {
	switch s.Category {
	case CategoryLowest, CategoryMiddle, CategoryHighest:
		return true
	}
	return false
}

// IsLongShot reports whether a win on this spot is a long shot
func (s Spot) IsLongShot() bool {
	return s.Category == CategoryAce || s.Category == CategoryWild
}

// SpotID builds the canonical identifier for a slot and category
func SpotID(slot int, category Category, suits ...Suit) string {
	prefix := fmt.Sprintf("%s%d-", spotPrefixSlot, slot)
	switch category {
	case CategorySuit:
		if len(suits) > 0 {
			return prefix + spotTokenSuit + "-" + string(suits[0])
		}
	case CategoryDualSuit:
		if len(suits) > 1 {
			return prefix + spotTokenSuits + "-" + string(suits[0]) + string(suits[1])
		}
	case CategoryOdd:
		return prefix + spotTokenOdd
	case CategoryEven:
		return prefix + spotTokenEven
	case CategoryAce:
		return prefix + spotTokenAce
	case CategoryWild:
		return prefix + spotTokenWild
	case CategoryLowest:
		return prefix + spotTokenLow
	case CategoryMiddle:
		return prefix + spotTokenMid
	case CategoryHighest:
		return prefix + spotTokenHigh
	}
	return prefix + string(CategoryUnknown)
}
