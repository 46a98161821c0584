package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dvloznov/foldtx/internal/domain"
	"github.com/dvloznov/foldtx/internal/gcs"
	infra "github.com/dvloznov/foldtx/internal/infra/bigquery"
	"github.com/dvloznov/foldtx/internal/logger"
	"github.com/dvloznov/foldtx/internal/tabular"
	"google.golang.org/api/option"
)

// Options configures ProcessFile.
type Options struct {
	// Input is a local CSV path, gs://bucket/object.csv or
	// bq://project.dataset.table.
	Input     string
	OutputDir string // defaults to domain.DefaultOutputDir
	Timezone  string // defaults to domain.DefaultTimezone
	Since     string // optional YYYY-MM-DD

	// BigQueryProject is billed for table reads. Defaults to the table's project.
	BigQueryProject string

	// Summary, when set, replaces file output by a per-account summary.
	Summary io.Writer

	ClientOptions []option.ClientOption
}

// ProcessFile builds the standard pipeline for opts and runs it once.
//
// Configuration problems (unknown timezone, malformed since date, bad
// table name) are reported before the input is read.
func ProcessFile(ctx context.Context, opts Options) (*Report, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = domain.DefaultOutputDir
	}
	if opts.Timezone == "" {
		opts.Timezone = domain.DefaultTimezone
	}

	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("ProcessFile: unknown timezone %q: %w", opts.Timezone, err)
	}

	var filters []Filter
	since, err := ParseSince(opts.Since, loc)
	if err != nil {
		return nil, err
	}
	if since.Valid {
		log := logger.FromContext(ctx)
		log.Info().Time("since", since.Time).Msg("Filtering transactions since cutoff")
		filters = append(filters, NewDateFilter(since))
	}

	store := gcs.NewStore(opts.ClientOptions...)

	var reader Reader = tabular.NewCSVReader(store, loc)
	if infra.IsTableURI(opts.Input) {
		client, err := newTableClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		defer client.Close()
		reader = infra.NewTableReader(client, loc)
	}

	var writer Writer = tabular.NewCSVWriter(store)
	if opts.Summary != nil {
		writer = tabular.NewSummaryWriter(opts.Summary)
	}

	p := New(reader, filters, NewAccountGrouper(), NewDebitCreditMapper(), writer)
	return p.Run(ctx, opts.Input, opts.OutputDir)
}

// openBigQuery creates the client behind bq:// sources.
var openBigQuery = infra.NewClient

func newTableClient(ctx context.Context, opts Options) (*infra.Client, error) {
	ref, err := infra.ParseTableURI(opts.Input)
	if err != nil {
		return nil, &domain.SourceReadError{Source: opts.Input, Err: err}
	}
	project := opts.BigQueryProject
	if project == "" {
		project = ref.Project
	}
	client, err := openBigQuery(ctx, project, opts.ClientOptions...)
	if err != nil {
		return nil, &domain.SourceReadError{Source: opts.Input, Err: err}
	}
	return client, nil
}
