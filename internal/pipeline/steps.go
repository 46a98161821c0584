package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/foldtx/internal/logger"
	"github.com/google/uuid"
)

// Pipeline runs reader → filters → grouper → mapper → writer, in that order.
// It keeps no state between runs.
type Pipeline struct {
	reader  Reader
	filters []Filter
	grouper Grouper
	mapper  Mapper
	writer  Writer
}

// New creates a pipeline from its roles. filters may be empty.
func New(reader Reader, filters []Filter, grouper Grouper, mapper Mapper, writer Writer) *Pipeline {
	return &Pipeline{
		reader:  reader,
		filters: filters,
		grouper: grouper,
		mapper:  mapper,
		writer:  writer,
	}
}

// Run processes source and writes the groups under dest.
//
// Everything up to and including mapping happens before the writer is
// called, so a read failure leaves dest untouched.
func (p *Pipeline) Run(ctx context.Context, source, dest string) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Source: source, Dest: dest}
	log := logger.WithRun(logger.FromContext(ctx), report.RunID, source)
	ctx = logger.WithContext(ctx, log)

	// 1. Read.
	txns, err := p.reader.Read(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("pipeline read: %w", err)
	}
	report.Read = len(txns)

	// 2. Filter, each filter feeding the next.
	for _, f := range p.filters {
		txns = f.Filter(txns)
	}
	report.Kept = len(txns)
	log.Info().Int("read", report.Read).Int("kept", report.Kept).Msg("Filtered transactions")

	for _, txn := range txns {
		if txn.IsFallbackKey() {
			log.Debug().Str("account_key", txn.AccountKey()).Msg("Incomplete account identity, using tracking method key")
		}
	}

	// 3. Group.
	groups := p.grouper.Group(txns)
	report.Groups = len(groups)

	// 4. Map.
	mapped := MapGroups(p.mapper, groups)
	for _, g := range mapped {
		report.Written += len(g.Rows)
		report.Files = append(report.Files, GroupReport{Key: g.Key, Rows: len(g.Rows)})
	}

	// 5. Write.
	if err := p.writer.Write(ctx, mapped, dest); err != nil {
		return nil, fmt.Errorf("pipeline write: %w", err)
	}

	log.Info().Int("groups", report.Groups).Int("rows", report.Written).Str("dest", dest).Msg("Pipeline run completed")
	return report, nil
}
