package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dvloznov/foldtx/internal/domain"
	"github.com/dvloznov/foldtx/internal/gcs"
	"github.com/dvloznov/foldtx/internal/logger"
	"github.com/shopspring/decimal"
)

// Extension is the file extension of every output table.
const Extension = ".csv"

// CSVWriter writes one CSV file per group into a destination directory
// (local or gs://bucket/prefix).
type CSVWriter struct {
	sinks gcs.SinkFactory
}

// NewCSVWriter creates a writer that resolves destinations through sinks.
func NewCSVWriter(sinks gcs.SinkFactory) *CSVWriter {
	return &CSVWriter{sinks: sinks}
}

type encodedGroup struct {
	key  string
	name string
	rows int
	data []byte
}

// Write encodes every group first and only then creates the destination and
// its files. Groups without rows are skipped.
func (w *CSVWriter) Write(ctx context.Context, groups []domain.OutputGroup, dest string) error {
	log := logger.FromContext(ctx)
	log.Info().Int("accounts", len(groups)).Str("dest", dest).Msg("Found unique accounts")

	encoded := make([]encodedGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Rows) == 0 {
			continue
		}
		data, err := EncodeRows(g.Rows)
		if err != nil {
			return &domain.WriteError{Key: g.Key, Err: err}
		}
		encoded = append(encoded, encodedGroup{key: g.Key, name: g.Key + Extension, rows: len(g.Rows), data: data})
	}

	sink, err := w.sinks.Sink(ctx, dest)
	if err != nil {
		return fmt.Errorf("CSVWriter.Write: %w", err)
	}
	defer sink.Close()

	for _, e := range encoded {
		log.Info().Int("rows", e.rows).Str("file", e.name).Msg("Writing transactions")
		if err := writeFile(ctx, sink, e); err != nil {
			return &domain.WriteError{Key: e.key, Err: err}
		}
	}
	return nil
}

func writeFile(ctx context.Context, sink gcs.Sink, e encodedGroup) error {
	f, err := sink.Create(ctx, e.name)
	if err != nil {
		return err
	}
	if _, err := f.Write(e.data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// EncodeRows renders rows as CSV with the output header.
func EncodeRows(rows []domain.OutputRow) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(domain.OutputColumns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SummaryWriter prints one line per group with its row count and totals
// instead of writing files.
type SummaryWriter struct {
	out io.Writer
}

// NewSummaryWriter creates a SummaryWriter printing to out.
func NewSummaryWriter(out io.Writer) *SummaryWriter {
	return &SummaryWriter{out: out}
}

// Write implements the pipeline writer role. dest is only echoed.
func (w *SummaryWriter) Write(_ context.Context, groups []domain.OutputGroup, dest string) error {
	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "FILE\tROWS\tDEBIT\tCREDIT\n")

	var rows int
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, g := range groups {
		debit, credit := decimal.Zero, decimal.Zero
		for _, r := range g.Rows {
			debit = debit.Add(r.DebitAmount)
			credit = credit.Add(r.CreditAmount)
		}
		rows += len(g.Rows)
		totalDebit = totalDebit.Add(debit)
		totalCredit = totalCredit.Add(credit)
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", g.Key+Extension, len(g.Rows), debit.StringFixed(2), credit.StringFixed(2))
	}
	fmt.Fprintf(tw, "TOTAL (%s)\t%d\t%s\t%s\n", dest, rows, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	return tw.Flush()
}
