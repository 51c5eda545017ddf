// Package deck builds and shuffles the 54-unit set drawn from each round.
package deck

import (
	"fmt"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/utils"
)

// Set composition
const (
	WildUnitCount = 2
	SetSize       = 13*4 + WildUnitCount
)

// IntSource returns a uniform integer in [min, max]
type IntSource func(min, max int) (int, error)

// Generator draws units from a freshly built full set on every call.
// It keeps no state between draws.
type Generator struct {
	randInt IntSource
}

// NewGenerator returns a Generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{randInt: utils.SecureRandomInt}
}

// NewGeneratorWithSource returns a Generator using src for every swap index
func NewGeneratorWithSource(src IntSource) *Generator {
	return &Generator{randInt: src}
}

// FullSet returns the 52 ranked units in suit order followed by the wild units
func FullSet() []domain.Unit {
	units := make([]domain.Unit, 0, SetSize)
	for _, suit := range domain.Suits {
		for _, rank := range domain.Ranks {
			units = append(units, domain.NewUnit(rank, suit))
		}
	}
	for i := 1; i <= WildUnitCount; i++ {
		units = append(units, domain.NewWildUnit(i))
	}
	return units
}

// Shuffle permutes units in place with Fisher-Yates
func (g *Generator) Shuffle(units []domain.Unit) error {
	for i := len(units) - 1; i > 0; i-- {
		j, err := g.randInt(0, i)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextShuffle, err)
		}
		if j < 0 || j > i {
			return fmt.Errorf("%s: index %d outside [0, %d]", ErrContextShuffle, j, i)
		}
		units[i], units[j] = units[j], units[i]
	}
	return nil
}

// DrawThree shuffles a fresh full set and returns its first three units
func (g *Generator) DrawThree() ([domain.SlotCount]domain.Unit, error) {
	var hand [domain.SlotCount]domain.Unit
	units := FullSet()
	if err := g.Shuffle(units); err != nil {
		return hand, err
	}
	copy(hand[:], units[:domain.SlotCount])
	return hand, nil
}
