package pipeline

import (
	"strings"
	"unicode"

	"github.com/dvloznov/foldtx/internal/domain"
)

// AccountGrouper groups transactions by their sanitized account key.
//
// Groups appear in first-seen order and keep input order internally. Two raw
// keys that sanitize to the same string end up in the same group.
type AccountGrouper struct{}

// NewAccountGrouper creates an AccountGrouper.
func NewAccountGrouper() *AccountGrouper {
	return &AccountGrouper{}
}

// Group implements the Grouper interface.
func (g *AccountGrouper) Group(txns []*domain.Transaction) []domain.Group {
	var groups []domain.Group
	index := make(map[string]int)

	for _, txn := range txns {
		key := SanitizeKey(txn.AccountKey())
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.Group{Key: key})
		}
		groups[i].Transactions = append(groups[i].Transactions, txn)
	}
	return groups
}

// SanitizeKey makes an account key safe to use as a file name: it trims the
// key and keeps only letters, digits, spaces, '_' and '-'.
func SanitizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range strings.TrimSpace(key) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
