// Package pipeline runs one period's trial balance end-to-end: duplicate
// screening, leaf inference, two-basis resolution, aggregation, and
// validation. Configuration and data-integrity problems abort before any
// line values exist; tie-out violations never do.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/aggregate"
	"github.com/ledgerline-dev/ledgerline/internal/hierarchy"
	"github.com/ledgerline-dev/ledgerline/internal/mapping"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/template"
	"github.com/ledgerline-dev/ledgerline/internal/validate"
)

// DuplicateCodeError reports an account code appearing twice in one
// period's trial balance.
type DuplicateCodeError struct {
	Code string
}

func (e DuplicateCodeError) Error() string {
	return fmt.Sprintf("duplicate account code %s in trial balance", e.Code)
}

// UnmappedAccountsError aborts a strict-mode run when leaf accounts match
// no mapping rule.
type UnmappedAccountsError struct {
	Codes []string
}

func (e UnmappedAccountsError) Error() string {
	return fmt.Sprintf("unmapped accounts: %s", strings.Join(e.Codes, ", "))
}

// Options selects run behavior that is external configuration, not a core
// default.
type Options struct {
	// Strict aborts the run on unmapped accounts instead of carrying them
	// into the validation report.
	Strict bool
}

// Result is one period's full output.
type Result struct {
	Accounts int
	Leaves   []string
	Position []model.Contribution
	Flow     []model.Contribution
	Unmapped []string
	Lines    *aggregate.Result
	Checks   []validate.CheckResult
}

// Run processes one trial balance against an immutable registry and
// template.
func Run(reg *mapping.Registry, tpl *template.Template, opts Options, accounts []model.Account) (*Result, error) {
	codes := make([]string, 0, len(accounts))
	seen := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		if a.Code == "" {
			return nil, fmt.Errorf("trial balance row %d: empty account code", i+1)
		}
		if seen[a.Code] {
			return nil, DuplicateCodeError{Code: a.Code}
		}
		seen[a.Code] = true
		codes = append(codes, a.Code)
	}

	res := &Result{Accounts: len(accounts), Leaves: hierarchy.LeafCodes(codes)}
	isLeaf := make(map[string]bool, len(res.Leaves))
	for _, code := range res.Leaves {
		isLeaf[code] = true
	}

	for _, a := range accounts {
		if !isLeaf[a.Code] {
			continue
		}

		posC, posMapped, err := resolveBasis(reg, tpl, a, model.BasisPosition, model.StatementBalanceSheet)
		if err != nil {
			return nil, err
		}
		flowC, flowMapped, err := resolveBasis(reg, tpl, a, model.BasisFlow, model.StatementIncomeStatement)
		if err != nil {
			return nil, err
		}

		// A basis carrying a nonzero balance must resolve to a rule or be
		// reported unmapped; a one-sided registry gap never drops a balance.
		posDropped := !posMapped && !a.Residual(model.BasisPosition).IsZero()
		flowDropped := !flowMapped && !a.Residual(model.BasisFlow).IsZero()
		if (!posMapped && !flowMapped) || posDropped || flowDropped {
			res.Unmapped = append(res.Unmapped, a.Code)
			continue
		}
		if posC != nil {
			res.Position = append(res.Position, *posC)
		}
		if flowC != nil {
			res.Flow = append(res.Flow, *flowC)
		}
	}

	if opts.Strict && len(res.Unmapped) > 0 {
		return nil, UnmappedAccountsError{Codes: res.Unmapped}
	}

	lines, err := aggregate.Compute(tpl, res.Position, res.Flow)
	if err != nil {
		return nil, err
	}
	res.Lines = lines

	input := validate.Input{Unmapped: res.Unmapped}
	if reLine := tpl.Checks().RetainedEarnings; reLine != "" {
		input.OpeningRetained = openingBalance(reg, accounts, isLeaf, reLine)
		input.HasOpeningRetained = true
	}
	res.Checks = validate.Run(tpl, lines, input)

	return res, nil
}

// resolveBasis resolves one account on one basis and keeps the
// contribution only when the resolved line sits on the statement that
// basis feeds. Unmapped is a per-basis outcome; ambiguous rules are fatal.
func resolveBasis(reg *mapping.Registry, tpl *template.Template, a model.Account, basis model.Basis, stmt model.Statement) (*model.Contribution, bool, error) {
	debit, credit := a.Balance(basis)
	resolution, err := reg.Resolve(a.Code, debit, credit)
	if err != nil {
		var unmapped mapping.UnmappedError
		if errors.As(err, &unmapped) {
			return nil, false, nil
		}
		return nil, false, err
	}

	ln, ok := tpl.Line(resolution.Rule.Line)
	if !ok {
		return nil, false, fmt.Errorf("rule for prefix %q routes account %s to undeclared line %s", resolution.Rule.Prefix, a.Code, resolution.Rule.Line)
	}
	if ln.Statement != stmt {
		return nil, true, nil
	}
	return &model.Contribution{AccountCode: a.Code, Line: resolution.Rule.Line, Amount: resolution.Amount}, true, nil
}

// openingBalance sums the opening-basis contributions of the leaf accounts
// that route to the given line. Diagnostic input only; resolution problems
// here are skipped rather than raised.
func openingBalance(reg *mapping.Registry, accounts []model.Account, isLeaf map[string]bool, line string) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range accounts {
		if !isLeaf[a.Code] {
			continue
		}
		debit, credit := a.Balance(model.BasisOpening)
		resolution, err := reg.Resolve(a.Code, debit, credit)
		if err != nil || resolution.Rule.Line != line {
			continue
		}
		sum = sum.Add(resolution.Amount)
	}
	return sum
}
