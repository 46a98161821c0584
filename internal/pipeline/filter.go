package pipeline

import (
	"strings"
	"time"

	"github.com/dvloznov/foldtx/internal/domain"
)

// DateFilter keeps transactions at or after Since.
//
// Transactions without a timestamp are always kept. An absent Since keeps
// everything.
type DateFilter struct {
	Since domain.Timestamp
}

// NewDateFilter creates a filter with the given cutoff.
func NewDateFilter(since domain.Timestamp) *DateFilter {
	return &DateFilter{Since: since}
}

// Filter implements the Filter interface.
func (f *DateFilter) Filter(txns []*domain.Transaction) []*domain.Transaction {
	if !f.Since.Valid {
		return txns
	}

	kept := make([]*domain.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Timestamp.Before(f.Since.Time) {
			continue
		}
		kept = append(kept, txn)
	}
	return kept
}

// ParseSince converts a YYYY-MM-DD date into midnight of that day in loc.
// An empty date yields an absent cutoff; a malformed one a
// *domain.FilterConfigError.
func ParseSince(date string, loc *time.Location) (domain.Timestamp, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return domain.Timestamp{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	t, err := time.ParseInLocation(SinceLayout, date, loc)
	if err != nil {
		return domain.Timestamp{}, &domain.FilterConfigError{Option: "since date", Value: date, Err: err}
	}
	return domain.At(t), nil
}
