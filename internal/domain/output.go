package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// DefaultOutputDir is where output tables go when no directory is given.
const DefaultOutputDir = "output"

// Output column names, in file order.
const (
	ColDate         = "date"
	ColPayee        = "payee"
	ColNotes        = "notes"
	ColDebitAmount  = "debit_amount"
	ColCreditAmount = "credit_amount"
)

// OutputColumns is the exact header of every output file.
var OutputColumns = []string{ColDate, ColPayee, ColNotes, ColDebitAmount, ColCreditAmount}

// OutputRow is a transaction in debit/credit form.
type OutputRow struct {
	Date         civil.Date // zero if the transaction had no timestamp
	HasDate      bool
	Payee        string
	Notes        string
	DebitAmount  decimal.Decimal // >= 0
	CreditAmount decimal.Decimal // >= 0
}

// DateString renders Date as YYYY-MM-DD, or "" when absent.
func (r OutputRow) DateString() string {
	if !r.HasDate {
		return ""
	}
	return r.Date.String()
}

// Record returns the row as strings in OutputColumns order.
func (r OutputRow) Record() []string {
	return []string{
		r.DateString(),
		r.Payee,
		r.Notes,
		FormatAmount(r.DebitAmount),
		FormatAmount(r.CreditAmount),
	}
}

// FormatAmount renders whole amounts with one decimal place ("100.0", "0.0")
// and everything else with its natural precision ("12.34").
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(1)
	}
	return d.String()
}

// OutputGroup is the mapped form of a Group.
type OutputGroup struct {
	Key  string
	Rows []OutputRow
}
