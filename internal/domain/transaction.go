package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// UnknownIdentifier names the institution in a fallback account key when
// neither a bank name nor a card name is known.
const UnknownIdentifier = "Unknown"

// Transaction represents one normalized row of the input table.
// Values are set once by FromRow and never mutated afterwards; filters,
// groupers and mappers share the same *Transaction.
type Transaction struct {
	AccountNumber  string // trimmed, "" if absent
	CardNumber     string // trimmed, "" if absent
	CardName       string // trimmed, "" if absent
	BankName       string // trimmed, "" if absent
	TrackingMethod string // trimmed, "" if absent (e.g. SMS, EMAIL)

	Timestamp      Timestamp           // already converted to the target zone
	Amount         decimal.Decimal     // sign depends on the source
	CurrentBalance decimal.NullDecimal // carried, never written

	Type      string // DEBIT / CREDIT hint, free text
	Narration string
	Reference string
	Merchant  string
	Category  string
}

// AccountKey returns the grouping key of the transaction.
//
// Priority:
//  1. bank name + account number
//  2. card name + card number
//  3. tracking method + (bank name or card name or "Unknown")
//
// A half-filled pair (e.g. a bank name without an account number) falls
// through to the next rule.
func (t *Transaction) AccountKey() string {
	bank := strings.TrimSpace(t.BankName)
	accountNumber := strings.TrimSpace(t.AccountNumber)
	cardName := strings.TrimSpace(t.CardName)
	cardNumber := strings.TrimSpace(t.CardNumber)

	if bank != "" && accountNumber != "" {
		return bank + "_" + accountNumber
	}
	if cardName != "" && cardNumber != "" {
		return cardName + "_" + cardNumber
	}

	identifier := bank
	if identifier == "" {
		identifier = cardName
	}
	if identifier == "" {
		identifier = UnknownIdentifier
	}
	return t.TrackingMethod + "_" + identifier
}

// IsFallbackKey reports whether AccountKey had to use the tracking method rule.
func (t *Transaction) IsFallbackKey() bool {
	hasAccount := strings.TrimSpace(t.BankName) != "" && strings.TrimSpace(t.AccountNumber) != ""
	hasCard := strings.TrimSpace(t.CardName) != "" && strings.TrimSpace(t.CardNumber) != ""
	return !hasAccount && !hasCard
}

// Group is an ordered list of transactions sharing one sanitized account key.
type Group struct {
	Key          string
	Transactions []*Transaction
}
