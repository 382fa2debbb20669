package model

import (
	"github.com/shopspring/decimal"
)

// Contribution is one resolved leaf account's signed amount on a line.
// Ephemeral: produced by the resolver, consumed by aggregation.
type Contribution struct {
	AccountCode string
	Line        string
	Amount      decimal.Decimal
}

// LineValue is one line's computed value for a run, with the account codes
// that fed it retained for audit traceability.
type LineValue struct {
	LineID       string
	Value        decimal.Decimal
	Contributors []string
}
