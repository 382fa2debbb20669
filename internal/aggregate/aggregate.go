// Package aggregate rolls resolved leaf contributions up through the
// statement template: leaf lines accumulate account contributions,
// aggregate lines sum their children bottom-up, formula lines evaluate in
// dependency order. Every leaf amount flows through exactly one
// root-to-leaf path, so nothing is counted twice.
package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/template"
)

// Result holds one computed value per template line for a run.
type Result struct {
	values map[string]model.LineValue
	order  []string
}

// Compute produces every line's value from the position-basis and
// flow-basis contribution sets. Position contributions land on
// balance-sheet leaf lines, flow contributions on income-statement leaf
// lines; a contribution aimed anywhere else is an error.
func Compute(tpl *template.Template, position, flow []model.Contribution) (*Result, error) {
	type bucket struct {
		sum          decimal.Decimal
		contributors []string
	}
	buckets := make(map[string]*bucket)

	accumulate := func(contribs []model.Contribution, stmt model.Statement) error {
		for _, c := range contribs {
			ln, ok := tpl.Line(c.Line)
			if !ok {
				return fmt.Errorf("contribution from account %s targets unknown line %s", c.AccountCode, c.Line)
			}
			if ln.Kind != model.LineLeaf {
				return fmt.Errorf("contribution from account %s targets %s line %s", c.AccountCode, ln.Kind, c.Line)
			}
			if ln.Statement != stmt {
				return fmt.Errorf("contribution from account %s targets %s line %s on the wrong basis", c.AccountCode, ln.Statement, c.Line)
			}
			b := buckets[c.Line]
			if b == nil {
				b = &bucket{sum: decimal.Zero}
				buckets[c.Line] = b
			}
			b.sum = b.sum.Add(c.Amount)
			b.contributors = append(b.contributors, c.AccountCode)
		}
		return nil
	}

	if err := accumulate(position, model.StatementBalanceSheet); err != nil {
		return nil, err
	}
	if err := accumulate(flow, model.StatementIncomeStatement); err != nil {
		return nil, err
	}

	values := make(map[string]model.LineValue, len(tpl.EvalOrder()))
	lookup := func(id string) (decimal.Decimal, bool) {
		lv, ok := values[id]
		return lv.Value, ok
	}

	for _, id := range tpl.EvalOrder() {
		ln, _ := tpl.Line(id)
		var lv model.LineValue
		switch ln.Kind {
		case model.LineLeaf:
			lv = model.LineValue{LineID: id, Value: decimal.Zero}
			if b := buckets[id]; b != nil {
				lv.Value = b.sum
				lv.Contributors = b.contributors
			}

		case model.LineAggregate:
			sum := decimal.Zero
			var contributors []string
			for _, child := range tpl.Children(id) {
				cv := values[child]
				sum = sum.Add(cv.Value)
				contributors = appendUnique(contributors, cv.Contributors)
			}
			lv = model.LineValue{LineID: id, Value: sum, Contributors: contributors}

		case model.LineFormula:
			expr, _ := tpl.Formula(id)
			v, err := expr.Eval(lookup)
			if err != nil {
				return nil, fmt.Errorf("evaluating line %s: %w", id, err)
			}
			var contributors []string
			for _, ref := range template.Refs(expr) {
				contributors = appendUnique(contributors, values[ref].Contributors)
			}
			lv = model.LineValue{LineID: id, Value: v, Contributors: contributors}
		}
		values[id] = lv
	}

	order := make([]string, 0, len(values))
	for _, ln := range tpl.Lines() {
		order = append(order, ln.ID)
	}
	return &Result{values: values, order: order}, nil
}

func appendUnique(dst []string, src []string) []string {
	for _, s := range src {
		found := false
		for _, have := range dst {
			if have == s {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}

// Value returns one line's computed value.
func (r *Result) Value(id string) (model.LineValue, bool) {
	lv, ok := r.values[id]
	return lv, ok
}

// Amount returns one line's numeric value, zero when absent.
func (r *Result) Amount(id string) decimal.Decimal {
	return r.values[id].Value
}

// Values returns every line value in template declaration order.
func (r *Result) Values() []model.LineValue {
	out := make([]model.LineValue, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.values[id])
	}
	return out
}

// Lookup adapts the result for formula re-evaluation.
func (r *Result) Lookup() template.Lookup {
	return func(id string) (decimal.Decimal, bool) {
		lv, ok := r.values[id]
		return lv.Value, ok
	}
}
