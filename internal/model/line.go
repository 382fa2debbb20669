package model

// LineKind classifies how a financial-statement line gets its value.
type LineKind string

const (
	// LineLeaf accepts directly mapped account contributions.
	LineLeaf LineKind = "leaf"
	// LineAggregate sums the values of its declared children.
	LineAggregate LineKind = "aggregate"
	// LineFormula evaluates an arithmetic expression over other lines.
	LineFormula LineKind = "formula"
)

// Valid reports whether k is a known line kind.
func (k LineKind) Valid() bool {
	switch k {
	case LineLeaf, LineAggregate, LineFormula:
		return true
	}
	return false
}

// Statement identifies which financial statement a line belongs to.
type Statement string

const (
	StatementBalanceSheet    Statement = "balance_sheet"
	StatementIncomeStatement Statement = "income_statement"
)

// Valid reports whether s is a known statement.
func (s Statement) Valid() bool {
	switch s {
	case StatementBalanceSheet, StatementIncomeStatement:
		return true
	}
	return false
}

// Line is one row of the fixed financial-statement template. ParentID is
// empty for statement roots. Formula is set only when Kind == LineFormula.
type Line struct {
	ID        string
	Code      string // presentation code on the printed statement, e.g. "270"
	Label     string
	ParentID  string
	Kind      LineKind
	Formula   string
	Statement Statement
}

// ContraDecl marks a line as a contra to a paired principal line. Contra
// lines hold a value of the opposite sign and are displayed separately,
// never netted into the principal during aggregation.
type ContraDecl struct {
	Line      string
	PairsWith string
}
