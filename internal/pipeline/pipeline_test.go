package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dvloznov/foldtx/internal/domain"
	infra "github.com/dvloznov/foldtx/internal/infra/bigquery"
	"github.com/dvloznov/foldtx/internal/logger"
	"google.golang.org/api/option"
)

func TestProcessFile_BigQueryClientError(t *testing.T) {
	tests := []struct {
		name        string
		project     string
		wantProject string
	}{
		{"table project", "", "proj"},
		{"billing project", "billing", "billing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotProject string
			orig := openBigQuery
			openBigQuery = func(ctx context.Context, project string, opts ...option.ClientOption) (*infra.Client, error) {
				gotProject = project
				return nil, errors.New("no credentials")
			}
			defer func() { openBigQuery = orig }()

			outDir := filepath.Join(t.TempDir(), "out")
			_, err := ProcessFile(context.Background(), Options{
				Input:           "bq://proj.finance.transactions",
				OutputDir:       outDir,
				BigQueryProject: tt.project,
			})

			var srcErr *domain.SourceReadError
			if !errors.As(err, &srcErr) {
				t.Fatalf("expected *domain.SourceReadError, got %T: %v", err, err)
			}
			if srcErr.Source != "bq://proj.finance.transactions" {
				t.Errorf("Source = %q", srcErr.Source)
			}
			if gotProject != tt.wantProject {
				t.Errorf("client project = %q, want %q", gotProject, tt.wantProject)
			}
			if _, err := os.Stat(outDir); !os.IsNotExist(err) {
				t.Errorf("output directory should not exist, stat err = %v", err)
			}
		})
	}
}

func TestProcessFile_LogsCutoff(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(input, []byte("bank_name,account_number,txn_timestamp,amount\nBankA,1,2023-10-28T10:00:00Z,-5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(buf, "info"))

	if _, err := ProcessFile(ctx, Options{Input: input, OutputDir: t.TempDir(), Since: "2023-10-27"}); err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if !strings.Contains(buf.String(), "Filtering transactions since cutoff") {
		t.Errorf("expected cutoff entry, got: %s", buf.String())
	}
}
