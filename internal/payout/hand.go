package payout

import (
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/paulhankin/poker"
)

// HandScore scores the three revealed units as a three-card poker hand. Higher scores
// are stronger hands. It is informational only and never affects payouts. Hands
// containing a wild unit have no score.
func HandScore(units [domain.SlotCount]domain.Unit) (int, bool) {
	var cards [3]poker.Card
	for i, u := range units {
		c, ok := toPokerCard(u)
		if !ok {
			return 0, false
		}
		cards[i] = c
	}
	return int(poker.Eval3(&cards)), true
}

func toPokerCard(u domain.Unit) (poker.Card, bool) {
	var none poker.Card
	if u.IsWild {
		return none, false
	}
	var s poker.Suit
	switch u.Suit {
	case domain.SuitClubs:
		s = poker.Club
	case domain.SuitDiamonds:
		s = poker.Diamond
	case domain.SuitHearts:
		s = poker.Heart
	case domain.SuitSpades:
		s = poker.Spade
	default:
		return none, false
	}
	v, ok := u.Rank.FaceValue()
	if !ok {
		return none, false
	}
	c, err := poker.MakeCard(s, poker.Rank(v))
	if err != nil {
		return none, false
	}
	return c, true
}
