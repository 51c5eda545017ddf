package payout

import (
	"testing"

	"github.com/osse101/TriCard_Go/internal/deck"
	"github.com/osse101/TriCard_Go/internal/domain"
)

// boardWagers places one wager on every spot a three-slot board offers
func boardWagers() []domain.WagerEntry {
	var wagers []domain.WagerEntry
	for slot := 1; slot <= domain.SlotCount; slot++ {
		for _, s := range domain.Suits {
			wagers = append(wagers, domain.WagerEntry{MemberID: "m", Spot: domain.ParseSpot(domain.SpotID(slot, domain.CategorySuit, s)), Amount: 5})
		}
		for _, c := range []domain.Category{
			domain.CategoryOdd, domain.CategoryEven, domain.CategoryAce, domain.CategoryWild,
			domain.CategoryLowest, domain.CategoryMiddle, domain.CategoryHighest,
		} {
			wagers = append(wagers, domain.WagerEntry{MemberID: "m", Spot: domain.ParseSpot(domain.SpotID(slot, c)), Amount: 5})
		}
	}
	return wagers
}

func BenchmarkEvaluateAll_FullBoard(b *testing.B) {
	engine := NewEngine()
	wagers := boardWagers()
	units := [domain.SlotCount]domain.Unit{
		domain.NewUnit("7", domain.SuitHearts),
		domain.NewUnit(domain.RankAce, domain.SuitSpades),
		domain.NewUnit("7", domain.SuitClubs),
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.EvaluateAll(units, wagers)
	}
}

func BenchmarkHandScore(b *testing.B) {
	gen := deck.NewGenerator()
	units, err := gen.DrawThree()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = HandScore(units)
	}
}
