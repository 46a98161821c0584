package pipeline

import (
	"context"

	"github.com/dvloznov/foldtx/internal/domain"
)

// Reader loads every transaction of one source table.
type Reader interface {
	Read(ctx context.Context, source string) ([]*domain.Transaction, error)
}

// Filter returns the subset of transactions to keep, preserving order.
type Filter interface {
	Filter(txns []*domain.Transaction) []*domain.Transaction
}

// Grouper partitions transactions into ordered groups.
type Grouper interface {
	Group(txns []*domain.Transaction) []domain.Group
}

// Mapper converts one transaction into an output row.
type Mapper interface {
	Map(txn *domain.Transaction) domain.OutputRow
}

// Writer persists the mapped groups under dest.
type Writer interface {
	Write(ctx context.Context, groups []domain.OutputGroup, dest string) error
}
