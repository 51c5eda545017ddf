package domain

import (
	"fmt"
	"strconv"
)

// Suit is one of the four suit symbols. Wild units carry SuitNone.
type Suit string

const (
	SuitNone     Suit = ""
	SuitClubs    Suit = "♣"
	SuitDiamonds Suit = "♦"
	SuitHearts   Suit = "♥"
	SuitSpades   Suit = "♠"
)

// Suits lists the four real suits in deck order
var Suits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

// Name returns the plural display name of the suit ("Diamonds")
func (s Suit) Name() string {
	switch s {
	case SuitClubs:
		return "Clubs"
	case SuitDiamonds:
		return "Diamonds"
	case SuitHearts:
		return "Hearts"
	case SuitSpades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the four real suits
func (s Suit) Valid() bool {
	switch s {
	case SuitClubs, SuitDiamonds, SuitHearts, SuitSpades:
		return true
	}
	return false
}

// ParseSuit accepts a suit symbol, its letter (c, d, h, s) or its name
func ParseSuit(raw string) (Suit, bool) {
	switch raw {
	case "♣", "c", "C", "clubs", "Clubs":
		return SuitClubs, true
	case "♦", "d", "D", "diamonds", "Diamonds":
		return SuitDiamonds, true
	case "♥", "h", "H", "hearts", "Hearts":
		return SuitHearts, true
	case "♠", "s", "S", "spades", "Spades":
		return SuitSpades, true
	}
	return SuitNone, false
}

// Rank is a card rank. RankWild is the sentinel carried by wild units.
type Rank string

const (
	RankAce   Rank = "A"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankWild  Rank = "Joker"
)

// Ranks lists the 13 ranks in ascending face order, ace low
var Ranks = []Rank{RankAce, "2", "3", "4", "5", "6", "7", "8", "9", "10", RankJack, RankQueen, RankKing}

// FaceValue maps ace to 1 and face cards to 11-13. Wild and unknown ranks have no value.
func (r Rank) FaceValue() (int, bool) {
	switch r {
	case RankAce:
		return 1, true
	case RankJack:
		return 11, true
	case RankQueen:
		return 12, true
	case RankKing:
		return 13, true
	case RankWild:
		return 0, false
	}
	n, err := strconv.Atoi(string(r))
	if err != nil || n < 2 || n > 10 {
		return 0, false
	}
	return n, true
}

// ComparisonValue is the face value with ace promoted to 14, used only for position wagers
func (r Rank) ComparisonValue() (int, bool) {
	if r == RankAce {
		return 14, true
	}
	return r.FaceValue()
}

// Unit is one drawn element of the 54-unit set
type Unit struct {
	Rank    Rank   `json:"rank"`
	Suit    Suit   `json:"suit"`
	IsWild  bool   `json:"is_wild"`
	Display string `json:"display"`
}

// NewUnit builds a ranked unit
func NewUnit(rank Rank, suit Suit) Unit {
	return Unit{
		Rank:    rank,
		Suit:    suit,
		Display: string(rank) + string(suit),
	}
}

// NewWildUnit builds the n-th wild unit (1-based)
func NewWildUnit(n int) Unit {
	return Unit{
		Rank:    RankWild,
		Suit:    SuitNone,
		IsWild:  true,
		Display: fmt.Sprintf("Joker %d", n),
	}
}

func (u Unit) String() string {
	return u.Display
}
