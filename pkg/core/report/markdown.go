// Package report renders a calculation for people: a Markdown/HTML page,
// a round-by-round chart and a CSV export of the projection.
package report

import (
	"fmt"
	"strings"

	"stock_potential/pkg/core/display"
	"stock_potential/pkg/core/equity"
)

const intro = `One of the most common questions for employees who get a job offer is how to
estimate the value of the stock options they were offered, and how that value may grow
over time. This calculator shows what return you could assume on average.

Note that the calculator ignores the strike price of options. Deduct the cost of acquiring
the stock first; the actual value of your stock is:

**Stock Value = Options x (Stock Price - Strike Price)**

## How to Use

First fill in the company details. Then enter your stock offer, either as a value or as a
percentage, and the calculator estimates what your stock will be worth once the company
reaches the expected valuation.
`

// Input is the state, outputs and optional projection behind one report.
type Input struct {
	State    equity.State
	Outputs  equity.Outputs
	Schedule *equity.Schedule
}

// NewInput computes outputs and, when defined, the projection for s.
func NewInput(s equity.State, maxRounds int) Input {
	in := Input{State: s, Outputs: equity.Compute(s)}
	if sched, err := equity.Project(s, maxRounds); err == nil {
		in.Schedule = &sched
	}
	return in
}

// Markdown builds the report page.
func Markdown(in Input) string {
	var b strings.Builder
	b.WriteString("# Stock Potential Calculator\n\n")
	b.WriteString(intro)

	b.WriteString("\n## Company Details\n\n")
	b.WriteString("| Input | Value |\n|---|---:|\n")
	for _, f := range equity.Fields {
		if f == equity.StockValue {
			b.WriteString("\n## Stock Offer\n\n")
			b.WriteString("| Input | Value |\n|---|---:|\n")
		}
		v, _ := in.State.Get(f)
		fmt.Fprintf(&b, "| %s | %s |\n", f.Label(), display.Number(v))
	}

	d := display.Render(in.Outputs)
	b.WriteString("\n## Results\n\n")
	b.WriteString("| Result | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Number of raises needed | %s |\n", d.NumberOfRaises)
	fmt.Fprintf(&b, "| Dilution ratio for all rounds | %s |\n", d.Dilution)
	fmt.Fprintf(&b, "| Potential stock value | **%s** |\n", d.PotentialStockValue)

	b.WriteString("\n## Rounds\n\n")
	if in.Schedule == nil {
		b.WriteString("No round projection: the number of raises is not a finite, non-negative number.\n")
		return b.String()
	}
	b.WriteString("| Round | Valuation | Equity % | Stake value |\n|---:|---:|---:|---:|\n")
	for _, r := range in.Schedule.Rounds {
		round := fmt.Sprintf("%d", int(r.Round))
		if r.Target {
			round = display.Ratio(r.Round) + " (target)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			round, display.Currency(r.Valuation), formatPercent(r.EquityPercentage), display.Currency(r.StakeValue))
	}
	if in.Schedule.Truncated {
		fmt.Fprintf(&b, "\nShowing the first %d rounds only.\n", len(in.Schedule.Rounds))
	}
	return b.String()
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.4f%%", p)
}
