package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dvloznov/foldtx/internal/config"
	"github.com/dvloznov/foldtx/internal/domain"
	"github.com/dvloznov/foldtx/internal/gcs"
	"github.com/dvloznov/foldtx/internal/infra/bigquery"
	"github.com/dvloznov/foldtx/internal/logger"
	"github.com/dvloznov/foldtx/internal/pipeline"
	"github.com/dvloznov/foldtx/internal/tabular"
	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "transform":
		os.Exit(runTransform(os.Args[2:], false))
	case "accounts":
		os.Exit(runTransform(os.Args[2:], true))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("foldtx - split a transactions table into per-account debit/credit files")
	fmt.Println("\nUsage:")
	fmt.Println("  foldtx <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  transform  Write one CSV per account into the output directory")
	fmt.Println("  accounts   Show the accounts and totals a transform would write")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nEvery option can also be set through FOLDTX_* environment variables.")
	fmt.Println("Run 'foldtx <command> -h' for more information on a command.")
}

// runTransform parses flags for transform or accounts and returns the exit code.
func runTransform(args []string, summary bool) int {
	cfg := config.Load()

	name := "transform"
	if summary {
		name = "accounts"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&cfg.Input, "input", cfg.Input, "Input table (local CSV path, gs://bucket/object.csv or bq://project.dataset.table)")
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory (local path or gs://bucket/prefix)")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA timezone for output dates")
	fs.StringVar(&cfg.Since, "since", cfg.Since, "Only keep transactions on or after this date (YYYY-MM-DD)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.BigQuery.Project, "bq-project", cfg.BigQuery.Project, "Project billed for bq:// reads (defaults to the table's project)")
	fs.StringVar(&cfg.GCP.CredentialsFile, "credentials-file", cfg.GCP.CredentialsFile, "Service account JSON for GCS and BigQuery")
	fs.Parse(args)

	log := logger.New(cfg.LogLevel)

	if err := validateInput(cfg.Input); err != nil {
		log.Error().Err(err).Msg("Invalid input")
		return 1
	}
	if _, err := cfg.Location(); err != nil {
		log.Error().Err(err).Msg("Invalid timezone")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	opts := pipeline.Options{
		Input:           cfg.Input,
		OutputDir:       cfg.OutputDir,
		Timezone:        cfg.Timezone,
		Since:           cfg.Since,
		BigQueryProject: cfg.BigQuery.Project,
		ClientOptions:   cfg.ClientOptions(),
	}
	if summary {
		opts.Summary = os.Stdout
	}

	log.Info().Str("input", cfg.Input).Str("output", cfg.OutputDir).Str("timezone", cfg.Timezone).Msg("Starting transform")

	report, err := pipeline.ProcessFile(ctx, opts)
	if err != nil {
		logFailure(log, err)
		return 1
	}

	if !summary {
		printReport(os.Stdout, report)
	}
	return 0
}

// validateInput rejects a missing path, a directory, a non-CSV file or a
// malformed table name before anything is read.
func validateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("--input is required")
	}
	if bigquery.IsTableURI(input) {
		_, err := bigquery.ParseTableURI(input)
		return err
	}
	if !strings.EqualFold(filepath.Ext(input), ".csv") {
		return fmt.Errorf("input %s is not a .csv file", input)
	}
	if gcs.IsURI(input) {
		_, _, err := gcs.ParseURI(input, false)
		return err
	}

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input %s: %w", input, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %s is a directory", input)
	}
	return nil
}

func logFailure(log zerolog.Logger, err error) {
	var filterErr *domain.FilterConfigError
	var readErr *domain.SourceReadError
	var writeErr *domain.WriteError
	switch {
	case errors.As(err, &filterErr):
		log.Error().Err(err).Str("option", filterErr.Option).Msg("Invalid filter configuration")
	case errors.As(err, &readErr):
		log.Error().Err(err).Str("source", readErr.Source).Msg("Failed to read transactions")
	case errors.As(err, &writeErr):
		log.Error().Err(err).Str("key", writeErr.Key).Msg("Failed to write output")
	default:
		log.Error().Err(err).Msg("Transform failed")
	}
}

func printReport(w io.Writer, r *pipeline.Report) {
	fmt.Fprintf(w, "\n=== Transform Report ===\n")
	fmt.Fprintf(w, "Run ID:   %s\n", r.RunID)
	fmt.Fprintf(w, "Source:   %s\n", r.Source)
	fmt.Fprintf(w, "Output:   %s\n", r.Dest)
	fmt.Fprintf(w, "Read:     %d\n", r.Read)
	fmt.Fprintf(w, "Kept:     %d\n", r.Kept)
	fmt.Fprintf(w, "Accounts: %d\n", r.Groups)
	for _, f := range r.Files {
		fmt.Fprintf(w, "  %s%s (%d rows)\n", f.Key, tabular.Extension, f.Rows)
	}
	fmt.Fprintln(w)
}
