// Package trialbalance reads and writes the flat CSV trial balance the
// pipeline consumes.
package trialbalance

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Header is the CSV header for a trial-balance file.
const Header = "code,name,opening_debit,opening_credit,period_debit,period_credit,closing_debit,closing_credit"

const (
	numFields        = 8
	colCode          = 0
	colName          = 1
	colOpeningDebit  = 2
	colOpeningCredit = 3
	colPeriodDebit   = 4
	colPeriodCredit  = 5
	colClosingDebit  = 6
	colClosingCredit = 7
)

// ReadAccounts reads all trial-balance rows.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trial balance CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		a, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// WriteAccounts writes trial-balance rows with a header.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"code", "name", "opening_debit", "opening_credit", "period_debit", "period_credit", "closing_debit", "closing_credit"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range accounts {
		if err := cw.Write(MarshalAccount(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// UnmarshalAccount converts a CSV row to an Account. Empty amount fields
// read as zero; negative or non-numeric amounts are data errors.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colCode] == "" {
		return model.Account{}, fmt.Errorf("empty account code")
	}

	a := model.Account{
		Code: record[colCode],
		Name: record[colName],
	}

	amounts := []struct {
		col  int
		name string
		dst  *decimal.Decimal
	}{
		{colOpeningDebit, "opening_debit", &a.OpeningDebit},
		{colOpeningCredit, "opening_credit", &a.OpeningCredit},
		{colPeriodDebit, "period_debit", &a.PeriodDebit},
		{colPeriodCredit, "period_credit", &a.PeriodCredit},
		{colClosingDebit, "closing_debit", &a.ClosingDebit},
		{colClosingCredit, "closing_credit", &a.ClosingCredit},
	}
	for _, f := range amounts {
		d, err := parseAmount(record[f.col])
		if err != nil {
			return model.Account{}, fmt.Errorf("account %s: %s: %w", a.Code, f.name, err)
		}
		*f.dst = d
	}
	return a, nil
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(a model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = a.Code
	row[colName] = a.Name
	row[colOpeningDebit] = a.OpeningDebit.String()
	row[colOpeningCredit] = a.OpeningCredit.String()
	row[colPeriodDebit] = a.PeriodDebit.String()
	row[colPeriodCredit] = a.PeriodCredit.String()
	row[colClosingDebit] = a.ClosingDebit.String()
	row[colClosingCredit] = a.ClosingCredit.String()
	return row
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative magnitude %q", s)
	}
	return d, nil
}
