package bigquery

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/dvloznov/foldtx/internal/domain"
	"github.com/dvloznov/foldtx/internal/logger"
	"google.golang.org/api/iterator"
)

// ratScale is the number of fractional digits kept for NUMERIC values.
const ratScale = 9

// TableReader reads a transactions table from BigQuery.
// Columns are matched by name like the CSV header; missing ones are empty.
type TableReader struct {
	querier  Querier
	location *time.Location
}

// NewTableReader creates a reader that runs its queries through querier and
// renders timestamps in loc.
func NewTableReader(querier Querier, loc *time.Location) *TableReader {
	return &TableReader{querier: querier, location: loc}
}

// Read loads every row of the table named by source ("bq://project.dataset.table").
// Failures are returned as a *domain.SourceReadError.
func (r *TableReader) Read(ctx context.Context, source string) ([]*domain.Transaction, error) {
	log := logger.FromContext(ctx)

	ref, err := ParseTableURI(source)
	if err != nil {
		return nil, &domain.SourceReadError{Source: source, Err: err}
	}
	log.Info().Str("table", ref.String()).Msg("Reading transactions from BigQuery")

	it, err := r.querier.Query(ctx, SelectTransactionsSQL(ref))
	if err != nil {
		return nil, &domain.SourceReadError{Source: source, Err: err}
	}

	var txns []*domain.Transaction
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &domain.SourceReadError{Source: source, Err: fmt.Errorf("iterating: %w", err)}
		}
		txns = append(txns, domain.FromRow(RowStrings(values), r.location))
	}

	log.Info().Int("rows", len(txns)).Msg("Read transactions")
	return txns, nil
}

// SelectTransactionsSQL returns the query reading the whole table.
func SelectTransactionsSQL(ref TableRef) string {
	return fmt.Sprintf("SELECT * FROM `%s`", ref.String())
}

// RowStrings renders a result row the way the same values would appear in a
// CSV export. NULL becomes "".
func RowStrings(values map[string]bigquery.Value) map[string]string {
	row := make(map[string]string, len(values))
	for name, v := range values {
		row[strings.ToLower(strings.TrimSpace(name))] = formatValue(v)
	}
	return row
}

func formatValue(v bigquery.Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case *big.Rat:
		if x == nil {
			return ""
		}
		return strings.TrimRight(strings.TrimRight(x.FloatString(ratScale), "0"), ".")
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case civil.DateTime:
		return x.String()
	case civil.Date:
		return x.String()
	case civil.Time:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
