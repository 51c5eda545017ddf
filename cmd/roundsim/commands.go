package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/payout"
	"github.com/osse101/TriCard_Go/internal/utils"
	"github.com/pterm/pterm"
)

const defaultRounds = 10

// SimulateCommand deals N rounds against a wager script
type SimulateCommand struct{}

func (c *SimulateCommand) Name() string {
	return "simulate"
}

func (c *SimulateCommand) Description() string {
	return "Deal rounds against a wager script and print the results"
}

func (c *SimulateCommand) Run(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	rounds := fs.Int("rounds", defaultRounds, "Number of rounds to deal")
	scriptPath := fs.String("wagers", "", "Path to a JSON wager script (built-in script when empty)")
	seed := fs.Uint64("seed", 0, "Replay seed; 0 draws from crypto/rand")
	out := fs.String("out", "", "Write the full report as JSON to this path")
	quiet := fs.Bool("quiet", false, "Only print the totals")
	if err := fs.Parse(args); err != nil {
		return err
	}

	script, err := loadScript(*scriptPath)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(fmt.Sprintf("Dealing %d rounds...", *rounds))
	report, err := simulate(newGenerator(*seed), payout.NewEngine(), script, *rounds)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return err
	}
	report.Seed = *seed

	if !*quiet {
		for _, rr := range report.Rounds {
			renderRound(rr)
		}
	}
	renderTotals(report.Totals)

	if *out != "" {
		path := filepath.Clean(*out)
		if err := utils.SaveJSON(path, report); err != nil {
			return err
		}
		pterm.Success.Printfln("Report written to %s", path)
	}
	return nil
}

// PayoutTableCommand prints the multiplier for every category
type PayoutTableCommand struct{}

func (c *PayoutTableCommand) Name() string {
	return "payouts"
}

func (c *PayoutTableCommand) Description() string {
	return "Print the payout multiplier of every spot category"
}

func (c *PayoutTableCommand) Run(args []string) error {
	renderPayoutTable(payout.NewEngine())
	return nil
}

// DrawCommand deals a single round and explains every spot on it
type DrawCommand struct{}

func (c *DrawCommand) Name() string {
	return "draw"
}

func (c *DrawCommand) Description() string {
	return "Deal one round and show which spots would win"
}

func (c *DrawCommand) Run(args []string) error {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	seed := fs.Uint64("seed", 0, "Replay seed; 0 draws from crypto/rand")
	if err := fs.Parse(args); err != nil {
		return err
	}

	units, err := newGenerator(*seed).DrawThree()
	if err != nil {
		return err
	}
	renderDraw(payout.NewEngine(), units, boardSpots())
	return nil
}

// boardSpots lists every spot a live board offers
func boardSpots() []domain.Spot {
	var spots []domain.Spot
	for slot := 1; slot <= domain.SlotCount; slot++ {
		for _, s := range domain.Suits {
			spots = append(spots, domain.ParseSpot(domain.SpotID(slot, domain.CategorySuit, s)))
		}
		for i, a := range domain.Suits {
			for _, b := range domain.Suits[i+1:] {
				spots = append(spots, domain.ParseSpot(domain.SpotID(slot, domain.CategoryDualSuit, a, b)))
			}
		}
		for _, cat := range []domain.Category{
			domain.CategoryOdd, domain.CategoryEven, domain.CategoryAce, domain.CategoryWild,
			domain.CategoryLowest, domain.CategoryMiddle, domain.CategoryHighest,
		} {
			spots = append(spots, domain.ParseSpot(domain.SpotID(slot, cat)))
		}
	}
	return spots
}
