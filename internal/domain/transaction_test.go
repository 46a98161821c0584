package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransaction_AccountKey(t *testing.T) {
	tests := []struct {
		name string
		txn  Transaction
		want string
	}{
		{
			name: "bank and account number",
			txn:  Transaction{BankName: "BankA", AccountNumber: "1234", CardName: "MyCard", CardNumber: "9999"},
			want: "BankA_1234",
		},
		{
			name: "card name and card number",
			txn:  Transaction{AccountNumber: "5678", CardName: "MyCard", CardNumber: "9999"},
			want: "MyCard_9999",
		},
		{
			name: "bank name without account number falls back",
			txn:  Transaction{BankName: "BankA", TrackingMethod: "SMS"},
			want: "SMS_BankA",
		},
		{
			name: "card name without card number falls back",
			txn:  Transaction{CardName: "MyCard", TrackingMethod: "EMAIL"},
			want: "EMAIL_MyCard",
		},
		{
			name: "nothing known",
			txn:  Transaction{TrackingMethod: "SMS"},
			want: "SMS_Unknown",
		},
		{
			name: "empty tracking method",
			txn:  Transaction{},
			want: "_Unknown",
		},
		{
			name: "surrounding whitespace is ignored",
			txn:  Transaction{BankName: "  BankA ", AccountNumber: " 1234 "},
			want: "BankA_1234",
		},
		{
			name: "whitespace-only account number falls through to card",
			txn:  Transaction{BankName: "BankA", AccountNumber: "   ", CardName: "MyCard", CardNumber: "9999"},
			want: "MyCard_9999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.txn.AccountKey()
			if got != tt.want {
				t.Errorf("AccountKey() = %q, want %q", got, tt.want)
			}
			if again := tt.txn.AccountKey(); again != got {
				t.Errorf("AccountKey() not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestTransaction_AccountKey_IgnoresNonIdentityFields(t *testing.T) {
	a := Transaction{BankName: "BankA", AccountNumber: "1234", TrackingMethod: "SMS", Narration: "one", Amount: decimal.NewFromInt(5)}
	b := Transaction{BankName: "BankA", AccountNumber: "1234", TrackingMethod: "SMS", Narration: "two", Amount: decimal.NewFromInt(-7)}

	if a.AccountKey() != b.AccountKey() {
		t.Errorf("keys differ: %q vs %q", a.AccountKey(), b.AccountKey())
	}
}

func TestTransaction_IsFallbackKey(t *testing.T) {
	if (&Transaction{BankName: "BankA", AccountNumber: "1"}).IsFallbackKey() {
		t.Error("bank pair should not be a fallback key")
	}
	if (&Transaction{CardName: "C", CardNumber: "2"}).IsFallbackKey() {
		t.Error("card pair should not be a fallback key")
	}
	if !(&Transaction{BankName: "BankA"}).IsFallbackKey() {
		t.Error("half-filled bank pair should be a fallback key")
	}
}

func TestFromRow(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	row := map[string]string{
		ColAccountNumber:  " 1234 ",
		ColBankName:       "BankA ",
		ColTxnTimestamp:   "2023-10-26T10:00:00Z",
		ColAmount:         "-100.0",
		ColCurrentBalance: "2500.50",
		ColType:           "DEBIT",
		ColNarration:      "Expense 1",
		ColReference:      "Ref1",
		ColMerchant:       "MerchantA",
		ColCategory:       "Food",
		ColTrackingMethod: " SMS",
	}

	txn := FromRow(row, loc)

	if txn.AccountNumber != "1234" || txn.BankName != "BankA" || txn.TrackingMethod != "SMS" {
		t.Errorf("identity fields not trimmed: %+v", txn)
	}
	if txn.CardName != "" || txn.CardNumber != "" {
		t.Errorf("missing card columns should be empty, got %q/%q", txn.CardName, txn.CardNumber)
	}
	if !txn.Amount.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("Amount = %s, want -100", txn.Amount)
	}
	if !txn.CurrentBalance.Valid || !txn.CurrentBalance.Decimal.Equal(decimal.RequireFromString("2500.50")) {
		t.Errorf("CurrentBalance = %+v, want 2500.50", txn.CurrentBalance)
	}
	if !txn.Timestamp.Valid {
		t.Fatal("expected a timestamp")
	}
	if got := txn.Timestamp.Time.Format("2006-01-02 15:04:05"); got != "2023-10-26 15:30:00" {
		t.Errorf("Timestamp = %s, want 2023-10-26 15:30:00", got)
	}
	if txn.AccountKey() != "BankA_1234" {
		t.Errorf("AccountKey() = %q", txn.AccountKey())
	}
}

func TestFromRow_Defaults(t *testing.T) {
	txn := FromRow(map[string]string{
		ColAmount:         "not a number",
		ColCurrentBalance: "",
		ColTxnTimestamp:   "yesterday",
	}, time.UTC)

	if !txn.Amount.IsZero() {
		t.Errorf("Amount = %s, want 0", txn.Amount)
	}
	if txn.CurrentBalance.Valid {
		t.Errorf("CurrentBalance should be absent, got %s", txn.CurrentBalance.Decimal)
	}
	if txn.Timestamp.Valid {
		t.Errorf("Timestamp should be absent, got %s", txn.Timestamp.Time)
	}

	empty := FromRow(nil, nil)
	if empty.AccountKey() != "_Unknown" {
		t.Errorf("AccountKey() of empty row = %q, want _Unknown", empty.AccountKey())
	}
}
