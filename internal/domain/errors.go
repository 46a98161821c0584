package domain

import "fmt"

// SourceReadError reports an input table that could not be opened or parsed.
// The run aborts without writing anything.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read source %q: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// FilterConfigError reports an unusable filter setting, such as a since date
// that is not YYYY-MM-DD. It is raised before the pipeline runs.
type FilterConfigError struct {
	Option string
	Value  string
	Err    error
}

func (e *FilterConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Option, e.Value, e.Err)
}

func (e *FilterConfigError) Unwrap() error { return e.Err }

// WriteError reports a failure while writing one output group.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write group %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
