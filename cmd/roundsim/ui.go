package main

import (
	"fmt"
	"strings"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/payout"
	"github.com/pterm/pterm"
)

// renderRound prints the dealt units and every wager line of one round
func renderRound(rr RoundReport) {
	score := "n/a"
	if rr.HandScore != nil {
		score = fmt.Sprintf("%d", *rr.HandScore)
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTitle(pterm.LightYellow(fmt.Sprintf("|ROUND %d|", rr.Round))).WithTitleTopCenter()
	pbox.Println(pterm.BgGreen.Sprintf(" %s ", strings.Join(rr.Units, " - ")) + "\nHand score: " + score)

	data := pterm.TableData{{"Member", "Spot", "Category", "Wagered", "Payout", "Net"}}
	for _, l := range rr.Lines {
		data = append(data, []string{l.MemberID, l.SpotID, describeLine(l), fmt.Sprintf("%d", l.Wagered), fmt.Sprintf("%d", l.Payout), colorNet(l.Net)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// renderTotals prints each member's aggregate result
func renderTotals(totals []MemberTotals) {
	pterm.DefaultSection.Println("Totals")
	data := pterm.TableData{{"Member", "Wagered", "Returned", "Net", "Wins", "Long shots", "Return"}}
	for _, t := range totals {
		ret := "0.0%"
		if t.Wagered > 0 {
			ret = fmt.Sprintf("%.1f%%", float64(t.Returned)*100/float64(t.Wagered))
		}
		data = append(data, []string{
			pterm.LightCyan(t.MemberID),
			fmt.Sprintf("%d", t.Wagered),
			fmt.Sprintf("%d", t.Returned),
			colorNet(t.Net),
			fmt.Sprintf("%d", t.Wins),
			fmt.Sprintf("%d", t.LongShots),
			ret,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

// renderPayoutTable prints the gross multiplier per category
func renderPayoutTable(engine *payout.Engine) {
	pterm.DefaultSection.Println("Payouts (gross, stake included)")
	rows := []struct {
		spot domain.Spot
		mult int64
	}{
		{domain.ParseSpot(domain.SpotID(1, domain.CategorySuit, domain.SuitHearts)), payout.MultiplierSuit},
		{domain.ParseSpot(domain.SpotID(1, domain.CategoryDualSuit, domain.SuitDiamonds, domain.SuitHearts)), payout.MultiplierDualSuit},
		{domain.ParseSpot(domain.SpotID(1, domain.CategoryOdd)), payout.MultiplierOddEven},
		{domain.ParseSpot(domain.SpotID(1, domain.CategoryEven)), payout.MultiplierOddEven},
		{domain.ParseSpot(domain.SpotID(1, domain.CategoryAce)), payout.MultiplierAce},
		{domain.ParseSpot(domain.SpotID(1, domain.CategoryWild)), payout.MultiplierWild},
		{domain.ParseSpot(domain.SpotID(1, domain.CategoryLowest)), payout.MultiplierPosition},
	}
	data := pterm.TableData{{"Example spot", "Category", "Multiplier"}}
	for _, r := range rows {
		data = append(data, []string{r.spot.ID, engine.Describe(r.spot), fmt.Sprintf("x%d", r.mult)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Printfln("Position spots push (x%d) on ties", payout.MultiplierPush)
}

// renderDraw prints one draw and the spots that would pay on it
func renderDraw(engine *payout.Engine, units [domain.SlotCount]domain.Unit, spots []domain.Spot) {
	labels := make([]string, 0, len(units))
	for i, u := range units {
		labels = append(labels, fmt.Sprintf("%d: %s (%s)", i+1, u, payout.StandingOf(units, i+1)))
	}
	pterm.DefaultBox.WithTitle(pterm.LightGreen("|DRAW|")).WithTitleTopCenter().Println(strings.Join(labels, "\n"))

	data := pterm.TableData{{"Spot", "Category", "Multiplier"}}
	for _, s := range spots {
		o := engine.Evaluate(units, s, 1)
		if o.Multiplier == payout.MultiplierLoss {
			continue
		}
		data = append(data, []string{s.ID, engine.Describe(s), fmt.Sprintf("x%d", o.Multiplier)})
	}
	if len(data) == 1 {
		pterm.Warning.Println("No spot pays on this draw")
		return
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func describeLine(l LineReport) string {
	if l.LongShot != "" {
		return l.Description + " " + pterm.LightMagenta("★")
	}
	return l.Description
}

func colorNet(net int64) string {
	switch {
	case net > 0:
		return pterm.LightGreen(fmt.Sprintf("+%d", net))
	case net < 0:
		return pterm.LightRed(fmt.Sprintf("%d", net))
	}
	return fmt.Sprintf("%d", net)
}
