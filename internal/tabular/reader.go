package tabular

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dvloznov/foldtx/internal/domain"
	"github.com/dvloznov/foldtx/internal/gcs"
	"github.com/dvloznov/foldtx/internal/logger"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReader reads a header-led CSV table into transactions.
type CSVReader struct {
	opener   gcs.Opener
	location *time.Location
}

// NewCSVReader creates a reader that opens sources through opener and
// renders timestamps in loc.
func NewCSVReader(opener gcs.Opener, loc *time.Location) *CSVReader {
	return &CSVReader{opener: opener, location: loc}
}

// Read loads every row of source. Any open or parse failure is returned as a
// *domain.SourceReadError and no transactions are returned.
func (r *CSVReader) Read(ctx context.Context, source string) ([]*domain.Transaction, error) {
	log := logger.FromContext(ctx)
	log.Info().Str("file", gcs.BaseName(source)).Msg("Reading transactions")

	rc, err := r.opener.Open(ctx, source)
	if err != nil {
		return nil, &domain.SourceReadError{Source: source, Err: err}
	}
	defer rc.Close()

	txns, err := r.decode(ctx, rc)
	if err != nil {
		return nil, &domain.SourceReadError{Source: source, Err: err}
	}

	log.Info().Int("rows", len(txns)).Msg("Read transactions")
	return txns, nil
}

func (r *CSVReader) decode(ctx context.Context, src io.Reader) ([]*domain.Transaction, error) {
	cr := csv.NewReader(skipBOM(src))
	cr.FieldsPerRecord = -1 // short and long rows are tolerated

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	columns := normalizeHeader(header)
	if missing := missingColumns(columns); len(missing) > 0 {
		log := logger.FromContext(ctx)
		log.Debug().Strs("columns", missing).Msg("Input lacks columns, using empty values")
	}

	var txns []*domain.Transaction
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}

		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = record[i]
		}
		txns = append(txns, domain.FromRow(row, r.location))
	}
	return txns, nil
}

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet exports.
func skipBOM(src io.Reader) io.Reader {
	br := bufio.NewReader(src)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}
	return columns
}

// missingColumns lists the known input columns absent from the header.
func missingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, name := range columns {
		present[name] = true
	}
	var missing []string
	for _, name := range domain.InputColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
