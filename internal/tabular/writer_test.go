package tabular

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/foldtx/internal/domain"
	"github.com/dvloznov/foldtx/internal/gcs"
	"github.com/shopspring/decimal"
)

// MockSinkFactory records created files in memory.
type MockSinkFactory struct {
	SinkErr   error
	CreateErr error
	Files     map[string]*bytes.Buffer
	Dests     []string
}

func (m *MockSinkFactory) Sink(ctx context.Context, dest string) (gcs.Sink, error) {
	m.Dests = append(m.Dests, dest)
	if m.SinkErr != nil {
		return nil, m.SinkErr
	}
	if m.Files == nil {
		m.Files = make(map[string]*bytes.Buffer)
	}
	return &mockSink{factory: m}, nil
}

type mockSink struct {
	factory *MockSinkFactory
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (s *mockSink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if s.factory.CreateErr != nil {
		return nil, s.factory.CreateErr
	}
	buf := &bytes.Buffer{}
	s.factory.Files[name] = buf
	return nopWriteCloser{buf}, nil
}

func (s *mockSink) Close() error { return nil }

func sampleGroups() []domain.OutputGroup {
	return []domain.OutputGroup{
		{
			Key: "BankA_1234",
			Rows: []domain.OutputRow{
				{Date: civil.Date{Year: 2023, Month: 10, Day: 26}, HasDate: true, Payee: "MerchantA", Notes: "Expense 1", DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
				{Date: civil.Date{Year: 2023, Month: 10, Day: 27}, HasDate: true, Payee: "Refund", Notes: "Ref2", DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(50)},
			},
		},
		{Key: "Empty", Rows: nil},
		{
			Key: "MyCard_9999",
			Rows: []domain.OutputRow{
				{Payee: "Payee, with comma", Notes: "", DebitAmount: decimal.RequireFromString("20.25"), CreditAmount: decimal.Zero},
			},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	sinks := &MockSinkFactory{}
	err := NewCSVWriter(sinks).Write(context.Background(), sampleGroups(), "output")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if len(sinks.Files) != 2 {
		t.Fatalf("got %d files, want 2 (empty group skipped)", len(sinks.Files))
	}
	if _, ok := sinks.Files["Empty.csv"]; ok {
		t.Error("empty group should not be written")
	}

	wantBank := "date,payee,notes,debit_amount,credit_amount\n" +
		"2023-10-26,MerchantA,Expense 1,100.0,0.0\n" +
		"2023-10-27,Refund,Ref2,0.0,50.0\n"
	if got := sinks.Files["BankA_1234.csv"].String(); got != wantBank {
		t.Errorf("BankA_1234.csv =\n%s\nwant\n%s", got, wantBank)
	}

	wantCard := "date,payee,notes,debit_amount,credit_amount\n" +
		",\"Payee, with comma\",,20.25,0.0\n"
	if got := sinks.Files["MyCard_9999.csv"].String(); got != wantCard {
		t.Errorf("MyCard_9999.csv =\n%s\nwant\n%s", got, wantCard)
	}
}

func TestCSVWriter_Errors(t *testing.T) {
	t.Run("sink failure", func(t *testing.T) {
		sinks := &MockSinkFactory{SinkErr: errors.New("no space")}
		err := NewCSVWriter(sinks).Write(context.Background(), sampleGroups(), "output")
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("create failure names the group", func(t *testing.T) {
		sinks := &MockSinkFactory{CreateErr: errors.New("read-only")}
		err := NewCSVWriter(sinks).Write(context.Background(), sampleGroups(), "output")
		var writeErr *domain.WriteError
		if !errors.As(err, &writeErr) {
			t.Fatalf("expected *domain.WriteError, got %T: %v", err, err)
		}
		if writeErr.Key != "BankA_1234" {
			t.Errorf("Key = %q", writeErr.Key)
		}
	})
}

func TestCSVWriter_LocalDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	if err := NewCSVWriter(gcs.NewStore()).Write(context.Background(), sampleGroups(), dest); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if strings.Join(names, ",") != "BankA_1234.csv,MyCard_9999.csv" {
		t.Errorf("files = %v", names)
	}
}

func TestSummaryWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := NewSummaryWriter(&buf).Write(context.Background(), sampleGroups(), "output"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"BankA_1234.csv", "100.00", "50.00", "MyCard_9999.csv", "20.25", "TOTAL (output)", "120.25"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
