package gcs

import (
	"context"
	"io"
)

// Opener opens a source table for reading.
type Opener interface {
	// Open returns a reader for a local path or a gs://bucket/object URI.
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Sink receives output files under one destination.
type Sink interface {
	// Create returns a writer for the named file inside the destination.
	// The file is finalized when the writer is closed.
	Create(ctx context.Context, name string) (io.WriteCloser, error)

	// Close releases resources held by the sink.
	Close() error
}

// SinkFactory resolves an output destination into a Sink.
type SinkFactory interface {
	Sink(ctx context.Context, dest string) (Sink, error)
}
