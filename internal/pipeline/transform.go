package pipeline

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/foldtx/internal/domain"
	"github.com/shopspring/decimal"
)

// DebitCreditMapper converts transactions into date/payee/notes rows with
// non-negative debit and credit columns.
type DebitCreditMapper struct{}

// NewDebitCreditMapper creates a DebitCreditMapper.
func NewDebitCreditMapper() *DebitCreditMapper {
	return &DebitCreditMapper{}
}

// Map implements the Mapper interface.
//
// A DEBIT or CREDIT type (any case) decides the column and the amount's sign
// is dropped. Any other type, including one padded with spaces, falls back to
// the sign: negative amounts are debits, the rest credits. A non-empty
// merchant, even blank, is the payee.
func (m *DebitCreditMapper) Map(txn *domain.Transaction) domain.OutputRow {
	row := domain.OutputRow{
		DebitAmount:  decimal.Zero,
		CreditAmount: decimal.Zero,
	}

	if txn.Timestamp.Valid {
		row.Date = civil.DateOf(txn.Timestamp.Time)
		row.HasDate = true
	}

	if txn.Merchant != "" {
		row.Payee = txn.Merchant
		row.Notes = txn.Narration
	} else {
		row.Payee = txn.Narration
		row.Notes = txn.Reference
	}

	amount := txn.Amount
	switch strings.ToUpper(txn.Type) {
	case TypeDebit:
		row.DebitAmount = amount.Abs()
	case TypeCredit:
		row.CreditAmount = amount.Abs()
	default:
		if amount.IsNegative() {
			row.DebitAmount = amount.Abs()
		} else {
			row.CreditAmount = amount
		}
	}
	return row
}

// MapGroups applies m to every transaction of every group, keeping order.
func MapGroups(m Mapper, groups []domain.Group) []domain.OutputGroup {
	out := make([]domain.OutputGroup, 0, len(groups))
	for _, g := range groups {
		rows := make([]domain.OutputRow, 0, len(g.Transactions))
		for _, txn := range g.Transactions {
			rows = append(rows, m.Map(txn))
		}
		out = append(out, domain.OutputGroup{Key: g.Key, Rows: rows})
	}
	return out
}
