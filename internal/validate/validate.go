// Package validate runs the tie-out and sanity checks over a completed
// aggregation. Every check runs regardless of earlier failures; results
// are accumulated so a reviewer sees all discrepancies at once.
package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/aggregate"
	"github.com/ledgerline-dev/ledgerline/internal/template"
)

// Check identifiers.
const (
	CheckCompleteness      = "completeness"
	CheckBalanceTieOut     = "balance_tie_out"
	CheckFlowIdentity      = "flow_identity"
	CheckNoOffset          = "no_offset"
	CheckEquityRollForward = "equity_roll_forward"
)

// CheckResult is one check's outcome. Rows localizes violations to the
// offending account codes or line ids.
type CheckResult struct {
	ID       string
	Passed   bool
	Advisory bool
	Skipped  bool
	Delta    decimal.Decimal
	Rows     []string
	Detail   string
}

// Input carries the run data the checks need beyond the line values.
type Input struct {
	Unmapped []string
	// Opening retained earnings, resolved from the opening balances of the
	// accounts feeding the retained-earnings line. Feeds the advisory
	// equity roll-forward only.
	OpeningRetained    decimal.Decimal
	HasOpeningRetained bool
}

// Run executes every check and returns their results in a fixed order.
func Run(tpl *template.Template, res *aggregate.Result, input Input) []CheckResult {
	return []CheckResult{
		completeness(input.Unmapped),
		balanceTieOut(tpl, res),
		flowIdentity(tpl, res),
		noOffset(tpl, res),
		equityRollForward(tpl, res, input),
	}
}

// Failed reports whether any non-advisory check failed.
func Failed(results []CheckResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Advisory {
			return true
		}
	}
	return false
}

func completeness(unmapped []string) CheckResult {
	r := CheckResult{ID: CheckCompleteness, Passed: len(unmapped) == 0, Rows: unmapped}
	if !r.Passed {
		r.Detail = fmt.Sprintf("%d leaf accounts match no mapping rule", len(unmapped))
	}
	return r
}

func balanceTieOut(tpl *template.Template, res *aggregate.Result) CheckResult {
	checks := tpl.Checks()
	r := CheckResult{ID: CheckBalanceTieOut}
	if checks.TotalAssets == "" || checks.TotalLiabilities == "" || checks.TotalEquity == "" {
		r.Passed = true
		r.Skipped = true
		r.Detail = "total lines not declared in template checks"
		return r
	}

	assets := res.Amount(checks.TotalAssets)
	liabilities := res.Amount(checks.TotalLiabilities)
	equity := res.Amount(checks.TotalEquity)
	r.Delta = assets.Sub(liabilities.Add(equity))
	r.Passed = r.Delta.Abs().LessThanOrEqual(checks.Tolerance)
	if !r.Passed {
		r.Rows = []string{checks.TotalAssets, checks.TotalLiabilities, checks.TotalEquity}
		r.Detail = fmt.Sprintf("%s - (%s + %s) = %s", assets, liabilities, equity, r.Delta)
	}
	return r
}

// flowIdentity re-derives every formula line from its operands and
// compares against the stored value. A cross-check on the evaluation
// order, not a second source of truth.
func flowIdentity(tpl *template.Template, res *aggregate.Result) CheckResult {
	r := CheckResult{ID: CheckFlowIdentity, Passed: true}
	lookup := res.Lookup()

	var details []string
	for _, ln := range tpl.Lines() {
		expr, ok := tpl.Formula(ln.ID)
		if !ok {
			continue
		}
		derived, err := expr.Eval(lookup)
		if err != nil {
			r.Passed = false
			r.Rows = append(r.Rows, ln.ID)
			details = append(details, fmt.Sprintf("%s: %v", ln.ID, err))
			continue
		}
		stored := res.Amount(ln.ID)
		if !derived.Equal(stored) {
			r.Passed = false
			r.Rows = append(r.Rows, ln.ID)
			details = append(details, fmt.Sprintf("%s: stored %s, derived %s", ln.ID, stored, derived))
		}
	}
	r.Detail = strings.Join(details, "; ")
	return r
}

// noOffset verifies each declared contra line still holds a value of the
// opposite sign to its paired principal line, proving it was never netted
// away during aggregation. Zero on either side is acceptable.
func noOffset(tpl *template.Template, res *aggregate.Result) CheckResult {
	contra := tpl.Contra()
	r := CheckResult{ID: CheckNoOffset, Passed: true}
	if len(contra) == 0 {
		r.Skipped = true
		r.Detail = "no contra lines declared"
		return r
	}

	var details []string
	for _, cd := range contra {
		contraVal := res.Amount(cd.Line)
		pairedVal := res.Amount(cd.PairsWith)
		if contraVal.IsZero() || pairedVal.IsZero() {
			continue
		}
		if contraVal.Sign() == pairedVal.Sign() {
			r.Passed = false
			r.Rows = append(r.Rows, cd.Line)
			details = append(details, fmt.Sprintf("%s (%s) has the same sign as %s (%s)", cd.Line, contraVal, cd.PairsWith, pairedVal))
		}
	}
	r.Detail = strings.Join(details, "; ")
	return r
}

// equityRollForward is diagnostic only: opening retained earnings plus net
// income should approximate closing retained earnings. Distributions and
// other equity movements outside the core make this advisory.
func equityRollForward(tpl *template.Template, res *aggregate.Result, input Input) CheckResult {
	checks := tpl.Checks()
	r := CheckResult{ID: CheckEquityRollForward, Advisory: true}
	if checks.RetainedEarnings == "" || checks.NetIncome == "" || !input.HasOpeningRetained {
		r.Passed = true
		r.Skipped = true
		r.Detail = "retained-earnings or net-income line not declared"
		return r
	}

	closing := res.Amount(checks.RetainedEarnings)
	netIncome := res.Amount(checks.NetIncome)
	r.Delta = input.OpeningRetained.Add(netIncome).Sub(closing)
	r.Passed = r.Delta.Abs().LessThanOrEqual(checks.Tolerance)
	if !r.Passed {
		r.Rows = []string{checks.RetainedEarnings, checks.NetIncome}
		r.Detail = fmt.Sprintf("opening %s + net income %s - closing %s = %s", input.OpeningRetained, netIncome, closing, r.Delta)
	}
	return r
}
