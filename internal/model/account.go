package model

import (
	"github.com/shopspring/decimal"
)

// Basis selects which debit/credit pair of a trial-balance row feeds a
// computation.
type Basis string

const (
	// BasisOpening uses the opening balances (start of period).
	BasisOpening Basis = "opening"
	// BasisFlow uses the period movement, for income-statement lines.
	BasisFlow Basis = "flow"
	// BasisPosition uses the closing balances, for balance-sheet lines.
	BasisPosition Basis = "position"
)

// Account represents one row of a code-addressed trial balance. Amounts are
// non-negative magnitudes; the debit/credit orientation carries the sign
// information. The core never mutates these fields.
type Account struct {
	Code          string
	Name          string
	OpeningDebit  decimal.Decimal
	OpeningCredit decimal.Decimal
	PeriodDebit   decimal.Decimal
	PeriodCredit  decimal.Decimal
	ClosingDebit  decimal.Decimal
	ClosingCredit decimal.Decimal
}

// Balance returns the debit and credit magnitudes for the given basis.
func (a Account) Balance(b Basis) (debit, credit decimal.Decimal) {
	switch b {
	case BasisOpening:
		return a.OpeningDebit, a.OpeningCredit
	case BasisFlow:
		return a.PeriodDebit, a.PeriodCredit
	default:
		return a.ClosingDebit, a.ClosingCredit
	}
}

// Residual returns debit - credit for the given basis. Its sign tells which
// side actually carries the balance.
func (a Account) Residual(b Basis) decimal.Decimal {
	debit, credit := a.Balance(b)
	return debit.Sub(credit)
}
