package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Scheme is the URI prefix of Google Cloud Storage locations.
const Scheme = "gs://"

// IsURI reports whether location names a GCS object or prefix.
func IsURI(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// ParseURI splits "gs://bucket/path/to/object" into bucket and object path.
// The object path may be empty when allowEmptyObject is set (a bucket root).
func ParseURI(uri string, allowEmptyObject bool) (bucket, object string, err error) {
	if !IsURI(uri) {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}

	trimmed := strings.TrimPrefix(uri, Scheme)
	parts := strings.SplitN(trimmed, "/", 2)
	bucket = parts[0]
	if bucket == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no bucket): %s", uri)
	}
	if len(parts) == 2 {
		object = strings.Trim(parts[1], "/")
	}
	if object == "" && !allowEmptyObject {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", uri)
	}
	return bucket, object, nil
}

// BaseName extracts the file name from a local path or GCS URI.
// e.g., "gs://bucket/folder/file.csv" → "file.csv"
func BaseName(location string) string {
	if IsURI(location) {
		return path.Base(strings.TrimPrefix(location, Scheme))
	}
	return filepath.Base(location)
}

// Store reads sources and writes outputs on the local filesystem or in GCS.
// It assumes Application Default Credentials unless ClientOptions say otherwise.
type Store struct {
	ClientOptions []option.ClientOption
}

// NewStore creates a Store whose GCS clients are built with opts.
func NewStore(opts ...option.ClientOption) *Store {
	return &Store{ClientOptions: opts}
}

// Open implements Opener.
func (s *Store) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if !IsURI(uri) {
		f, err := os.Open(uri)
		if err != nil {
			return nil, fmt.Errorf("open file %q: %w", uri, err)
		}
		return f, nil
	}

	bucket, object, err := ParseURI(uri, false)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, s.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("Open: creating storage client: %w", err)
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("Open: reading object %s/%s: %w", bucket, object, err)
	}
	return &objectReader{Reader: r, client: client}, nil
}

// Sink implements SinkFactory. Local directories are created if absent.
func (s *Store) Sink(ctx context.Context, dest string) (Sink, error) {
	if !IsURI(dest) {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory %q: %w", dest, err)
		}
		return &LocalDir{Dir: dest}, nil
	}

	bucket, prefix, err := ParseURI(dest, true)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, s.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("Sink: creating storage client: %w", err)
	}
	return &BucketPrefix{bucket: client.Bucket(bucket), prefix: prefix, client: client}, nil
}

// objectReader closes the storage client together with the object reader.
type objectReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *objectReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// LocalDir is a Sink writing files into a directory.
type LocalDir struct {
	Dir string
}

// Create implements Sink.
func (d *LocalDir) Create(_ context.Context, name string) (io.WriteCloser, error) {
	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("create file %q: %w", name, err)
	}
	return f, nil
}

// Close implements Sink.
func (d *LocalDir) Close() error { return nil }

// BucketPrefix is a Sink writing objects under a prefix of a GCS bucket.
type BucketPrefix struct {
	bucket *storage.BucketHandle
	prefix string
	client *storage.Client
}

// Create implements Sink. The upload is finalized by closing the writer.
func (b *BucketPrefix) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	object := name
	if b.prefix != "" {
		object = b.prefix + "/" + name
	}
	w := b.bucket.Object(object).NewWriter(ctx)
	w.ContentType = "text/csv"
	return w, nil
}

// Close implements Sink.
func (b *BucketPrefix) Close() error {
	return b.client.Close()
}
