package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/TriCard_Go/internal/deck"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/payout"
	"github.com/osse101/TriCard_Go/internal/utils"
)

// ScriptedWager is one entry of a wager script. The same script is placed every round.
type ScriptedWager struct {
	MemberID string `json:"member_id"`
	SpotID   string `json:"spot_id"`
	Amount   int64  `json:"amount"`
}

// LineReport is the outcome of one scripted wager in one round
type LineReport struct {
	MemberID    string `json:"member_id"`
	SpotID      string `json:"spot_id"`
	Description string `json:"description"`
	Wagered     int64  `json:"wagered"`
	Payout      int64  `json:"payout"`
	Net         int64  `json:"net"`
	LongShot    string `json:"long_shot,omitempty"`
}

// RoundReport is one dealt round
type RoundReport struct {
	Round     int          `json:"round"`
	Units     []string     `json:"units"`
	HandScore *int         `json:"hand_score,omitempty"`
	Lines     []LineReport `json:"lines"`
}

// MemberTotals accumulates a member's results across every round
type MemberTotals struct {
	MemberID  string `json:"member_id"`
	Wagered   int64  `json:"wagered"`
	Returned  int64  `json:"returned"`
	Net       int64  `json:"net"`
	Wins      int    `json:"wins"`
	LongShots int    `json:"long_shots"`
}

// Report is the full simulation result
type Report struct {
	Seed   uint64         `json:"seed,omitempty"`
	Rounds []RoundReport  `json:"rounds"`
	Totals []MemberTotals `json:"totals"`
}

var (
	errNoRounds    = errors.New("rounds must be positive")
	errEmptyScript = errors.New("wager script is empty")
)

// defaultScript spreads one member's wagers across every category on slot 1
// and a second member's across the position spots.
func defaultScript() []ScriptedWager {
	return []ScriptedWager{
		{MemberID: "alice", SpotID: domain.SpotID(1, domain.CategorySuit, domain.SuitHearts), Amount: 10},
		{MemberID: "alice", SpotID: domain.SpotID(1, domain.CategoryDualSuit, domain.SuitClubs, domain.SuitSpades), Amount: 10},
		{MemberID: "alice", SpotID: domain.SpotID(1, domain.CategoryOdd), Amount: 10},
		{MemberID: "alice", SpotID: domain.SpotID(1, domain.CategoryAce), Amount: 5},
		{MemberID: "alice", SpotID: domain.SpotID(1, domain.CategoryWild), Amount: 5},
		{MemberID: "bob", SpotID: domain.SpotID(1, domain.CategoryLowest), Amount: 10},
		{MemberID: "bob", SpotID: domain.SpotID(2, domain.CategoryMiddle), Amount: 10},
		{MemberID: "bob", SpotID: domain.SpotID(3, domain.CategoryHighest), Amount: 10},
	}
}

// loadScript reads a wager script from path, or returns the built-in script when path is empty
func loadScript(path string) ([]ScriptedWager, error) {
	if path == "" {
		return defaultScript(), nil
	}
	var script []ScriptedWager
	if err := utils.LoadJSON(path, &script); err != nil {
		return nil, err
	}
	return script, nil
}

// validateScript rejects entries a live room would reject
func validateScript(script []ScriptedWager) error {
	if len(script) == 0 {
		return errEmptyScript
	}
	var problems []string
	for i, w := range script {
		switch {
		case strings.TrimSpace(w.MemberID) == "":
			problems = append(problems, fmt.Sprintf("entry %d: member_id is required", i))
		case w.Amount <= 0:
			problems = append(problems, fmt.Sprintf("entry %d: amount must be positive", i))
		case w.Amount > domain.MaxWagerAmount:
			problems = append(problems, fmt.Sprintf("entry %d: amount exceeds %d", i, domain.MaxWagerAmount))
		case domain.ParseSpot(w.SpotID).Category == domain.CategoryUnknown:
			problems = append(problems, fmt.Sprintf("entry %d: unknown spot %q", i, w.SpotID))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid wager script: %s", strings.Join(problems, "; "))
	}
	return nil
}

// simulate deals rounds with gen and evaluates script against every draw
func simulate(gen *deck.Generator, engine *payout.Engine, script []ScriptedWager, rounds int) (Report, error) {
	var report Report
	if rounds <= 0 {
		return report, errNoRounds
	}
	if err := validateScript(script); err != nil {
		return report, err
	}

	wagers := make([]domain.WagerEntry, 0, len(script))
	for _, w := range script {
		wagers = append(wagers, domain.WagerEntry{MemberID: w.MemberID, Spot: domain.ParseSpot(w.SpotID), Amount: w.Amount})
	}

	totals := make(map[string]*MemberTotals)
	for n := 1; n <= rounds; n++ {
		units, err := gen.DrawThree()
		if err != nil {
			return report, fmt.Errorf("round %d: %w", n, err)
		}

		rr := RoundReport{Round: n, Units: make([]string, 0, domain.SlotCount)}
		for _, u := range units {
			rr.Units = append(rr.Units, u.String())
		}
		if score, ok := payout.HandScore(units); ok {
			rr.HandScore = &score
		}

		for _, line := range engine.EvaluateAll(units, wagers) {
			rr.Lines = append(rr.Lines, LineReport{
				MemberID:    line.Wager.MemberID,
				SpotID:      line.Wager.Spot.ID,
				Description: engine.Describe(line.Wager.Spot),
				Wagered:     line.Wager.Amount,
				Payout:      line.Outcome.Gross,
				Net:         line.Outcome.Net,
				LongShot:    line.Outcome.LongShot,
			})

			t, ok := totals[line.Wager.MemberID]
			if !ok {
				t = &MemberTotals{MemberID: line.Wager.MemberID}
				totals[line.Wager.MemberID] = t
			}
			t.Wagered += line.Wager.Amount
			t.Returned += line.Outcome.Gross
			t.Net += line.Outcome.Net
			if line.Outcome.Net > 0 {
				t.Wins++
			}
			if line.Outcome.LongShot != "" {
				t.LongShots++
			}
		}
		report.Rounds = append(report.Rounds, rr)
	}

	for _, t := range totals {
		report.Totals = append(report.Totals, *t)
	}
	sort.Slice(report.Totals, func(i, j int) bool {
		return report.Totals[i].MemberID < report.Totals[j].MemberID
	})
	return report, nil
}

// newGenerator returns a crypto-backed generator, or a reproducible one when seed is non-zero
func newGenerator(seed uint64) *deck.Generator {
	if seed == 0 {
		return deck.NewGenerator()
	}
	return deck.NewGeneratorWithSource(utils.SeededRandomInt(seed))
}
