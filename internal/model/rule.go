package model

import (
	"github.com/shopspring/decimal"
)

// Side governs which balance orientation an account must carry to route
// under a rule. Bidirectional accounts get two rules for the same prefix,
// one per side.
type Side string

const (
	SideDebitOnly  Side = "debit_only"
	SideCreditOnly Side = "credit_only"
	SideEither     Side = "either"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	switch s {
	case SideDebitOnly, SideCreditOnly, SideEither:
		return true
	}
	return false
}

// Nature determines the sign convention when a debit/credit pair is
// collapsed into one signed amount.
type Nature string

const (
	NatureAsset     Nature = "asset_like"
	NatureLiability Nature = "liability_like"
	NatureIncome    Nature = "income_like"
	NatureExpense   Nature = "expense_like"
)

// Valid reports whether n is a known nature.
func (n Nature) Valid() bool {
	switch n {
	case NatureAsset, NatureLiability, NatureIncome, NatureExpense:
		return true
	}
	return false
}

// Signed collapses a debit/credit pair into a single signed amount under
// this nature's convention: asset-like and expense-like balances are
// positive on the debit side, liability-like and income-like on the credit
// side. Contra balances (e.g. accumulated depreciation, a credit balance
// under an asset-like rule) come out negative.
func (n Nature) Signed(debit, credit decimal.Decimal) decimal.Decimal {
	switch n {
	case NatureLiability, NatureIncome:
		return credit.Sub(debit)
	default:
		return debit.Sub(credit)
	}
}

// MappingRule routes accounts whose code starts with Prefix onto the
// financial-statement line Line. The (Prefix, Side) pair is unique within
// a registry; prefixes may overlap and are resolved longest-match.
type MappingRule struct {
	Prefix string
	Line   string
	Side   Side
	Nature Nature
}
