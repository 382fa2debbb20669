// Package template holds the fixed financial-statement template: the line
// set, the parent/child roll-up tree, and the formula graph. Read-only
// configuration for the duration of a run, validated entirely at load.
package template

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// CycleError reports a dependency cycle between lines, through parent
// links or formula references.
type CycleError struct {
	Line string
}

func (e CycleError) Error() string {
	return fmt.Sprintf("line %s participates in a dependency cycle", e.Line)
}

// Checks names the template lines the validation engine ties out against,
// plus the arithmetic tolerance. Any of the line ids may be empty, which
// skips the checks needing them.
type Checks struct {
	Tolerance        decimal.Decimal
	TotalAssets      string
	TotalLiabilities string
	TotalEquity      string
	RetainedEarnings string
	NetIncome        string
}

// Template is the validated, immutable statement template for a run.
type Template struct {
	lines     map[string]model.Line
	order     []string
	children  map[string][]string
	formulas  map[string]Expr
	evalOrder []string
	contra    []model.ContraDecl
	checks    Checks
}

// New validates a line set and builds the roll-up tree and formula graph.
// Unknown parents, parents that are not aggregates, undeclared formula
// references, and dependency cycles are all configuration errors.
func New(lines []model.Line, contra []model.ContraDecl, checks Checks) (*Template, error) {
	byID := make(map[string]model.Line, len(lines))
	order := make([]string, 0, len(lines))
	for _, ln := range lines {
		if ln.ID == "" {
			return nil, fmt.Errorf("template line with empty id")
		}
		if _, dup := byID[ln.ID]; dup {
			return nil, fmt.Errorf("duplicate template line %s", ln.ID)
		}
		if !ln.Kind.Valid() {
			return nil, fmt.Errorf("line %s: unknown kind %q", ln.ID, ln.Kind)
		}
		if !ln.Statement.Valid() {
			return nil, fmt.Errorf("line %s: unknown statement %q", ln.ID, ln.Statement)
		}
		if ln.Kind == model.LineFormula && ln.Formula == "" {
			return nil, fmt.Errorf("line %s: formula kind without a formula", ln.ID)
		}
		if ln.Kind != model.LineFormula && ln.Formula != "" {
			return nil, fmt.Errorf("line %s: formula on a %s line", ln.ID, ln.Kind)
		}
		byID[ln.ID] = ln
		order = append(order, ln.ID)
	}

	children := make(map[string][]string)
	for _, id := range order {
		ln := byID[id]
		if ln.ParentID == "" {
			continue
		}
		parent, ok := byID[ln.ParentID]
		if !ok {
			return nil, fmt.Errorf("line %s: unknown parent %s", ln.ID, ln.ParentID)
		}
		if parent.Kind != model.LineAggregate {
			return nil, fmt.Errorf("line %s: parent %s is not an aggregate", ln.ID, ln.ParentID)
		}
		children[ln.ParentID] = append(children[ln.ParentID], ln.ID)
	}

	formulas := make(map[string]Expr)
	for _, id := range order {
		ln := byID[id]
		if ln.Kind != model.LineFormula {
			continue
		}
		expr, err := ParseFormula(ln.Formula)
		if err != nil {
			return nil, fmt.Errorf("line %s: parsing formula: %w", ln.ID, err)
		}
		for _, ref := range Refs(expr) {
			if _, ok := byID[ref]; !ok {
				return nil, fmt.Errorf("line %s: formula references undeclared line %s", ln.ID, ref)
			}
		}
		formulas[id] = expr
	}

	for _, cd := range contra {
		if _, ok := byID[cd.Line]; !ok {
			return nil, fmt.Errorf("contra declaration: unknown line %s", cd.Line)
		}
		if _, ok := byID[cd.PairsWith]; !ok {
			return nil, fmt.Errorf("contra line %s: unknown paired line %s", cd.Line, cd.PairsWith)
		}
	}

	for _, id := range []string{checks.TotalAssets, checks.TotalLiabilities, checks.TotalEquity, checks.RetainedEarnings, checks.NetIncome} {
		if id == "" {
			continue
		}
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("checks reference unknown line %s", id)
		}
	}

	t := &Template{
		lines:    byID,
		order:    order,
		children: children,
		formulas: formulas,
		contra:   contra,
		checks:   checks,
	}
	evalOrder, err := t.sortDependencies()
	if err != nil {
		return nil, err
	}
	t.evalOrder = evalOrder
	return t, nil
}

// sortDependencies orders every line after its dependencies: an aggregate
// after its children, a formula after the lines it references. Depth-first
// in declaration order, so the result is deterministic.
func (t *Template) sortDependencies() ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(t.order))
	ordered := make([]string, 0, len(t.order))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			return CycleError{Line: id}
		}
		state[id] = visiting
		for _, dep := range t.dependencies(id) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[id] = done
		ordered = append(ordered, id)
		return nil
	}

	for _, id := range t.order {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

func (t *Template) dependencies(id string) []string {
	ln := t.lines[id]
	switch ln.Kind {
	case model.LineAggregate:
		return t.children[id]
	case model.LineFormula:
		return Refs(t.formulas[id])
	default:
		return nil
	}
}

// Line returns a template line by id.
func (t *Template) Line(id string) (model.Line, bool) {
	ln, ok := t.lines[id]
	return ln, ok
}

// Lines returns all lines in declaration order.
func (t *Template) Lines() []model.Line {
	lines := make([]model.Line, len(t.order))
	for i, id := range t.order {
		lines[i] = t.lines[id]
	}
	return lines
}

// Children returns the declared children of an aggregate line.
func (t *Template) Children(id string) []string {
	return t.children[id]
}

// Formula returns the parsed expression of a formula line.
func (t *Template) Formula(id string) (Expr, bool) {
	expr, ok := t.formulas[id]
	return expr, ok
}

// EvalOrder returns every line id, dependencies before dependents.
func (t *Template) EvalOrder() []string {
	return t.evalOrder
}

// Contra returns the declared contra pairs.
func (t *Template) Contra() []model.ContraDecl {
	return t.contra
}

// Checks returns the tie-out configuration.
func (t *Template) Checks() Checks {
	return t.checks
}
