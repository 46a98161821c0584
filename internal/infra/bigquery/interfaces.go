package bigquery

import (
	"context"
)

// RowIterator yields query result rows. *bigquery.RowIterator satisfies it.
type RowIterator interface {
	Next(dst interface{}) error
}

// Querier runs a SQL query and returns its rows.
type Querier interface {
	Query(ctx context.Context, sql string) (RowIterator, error)
}
