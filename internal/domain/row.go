package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Input column names.
const (
	ColAccountNumber  = "account_number"
	ColCardNumber     = "card_number"
	ColCardName       = "card_name"
	ColBankName       = "bank_name"
	ColTxnTimestamp   = "txn_timestamp"
	ColAmount         = "amount"
	ColCurrentBalance = "current_balance"
	ColType           = "type"
	ColNarration      = "narration"
	ColReference      = "reference"
	ColMerchant       = "merchant"
	ColCategory       = "category"
	ColTrackingMethod = "tracking_method"
)

// InputColumns lists the columns FromRow understands, in file order.
var InputColumns = []string{
	ColAccountNumber,
	ColCardNumber,
	ColCardName,
	ColBankName,
	ColTxnTimestamp,
	ColAmount,
	ColCurrentBalance,
	ColType,
	ColNarration,
	ColReference,
	ColMerchant,
	ColCategory,
	ColTrackingMethod,
}

// FromRow builds a Transaction from one raw row keyed by column name.
//
// It never fails: missing columns become "", an unparseable amount becomes 0,
// an unparseable balance is absent and the timestamp goes through Normalize.
func FromRow(row map[string]string, loc *time.Location) *Transaction {
	return &Transaction{
		AccountNumber:  strings.TrimSpace(row[ColAccountNumber]),
		CardNumber:     strings.TrimSpace(row[ColCardNumber]),
		CardName:       strings.TrimSpace(row[ColCardName]),
		BankName:       strings.TrimSpace(row[ColBankName]),
		TrackingMethod: strings.TrimSpace(row[ColTrackingMethod]),
		Timestamp:      Normalize(row[ColTxnTimestamp], loc),
		Amount:         parseAmount(row[ColAmount]),
		CurrentBalance: parseBalance(row[ColCurrentBalance]),
		Type:           row[ColType],
		Narration:      row[ColNarration],
		Reference:      row[ColReference],
		Merchant:       row[ColMerchant],
		Category:       row[ColCategory],
	}
}

func parseAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseBalance(raw string) decimal.NullDecimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
