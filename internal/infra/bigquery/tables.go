package bigquery

import (
	"fmt"
	"strings"
)

// Scheme is the URI prefix that selects a BigQuery table as the source.
const Scheme = "bq://"

// TableRef identifies a BigQuery table.
type TableRef struct {
	Project string
	Dataset string
	Table   string
}

func (r TableRef) String() string {
	return r.Project + "." + r.Dataset + "." + r.Table
}

// IsTableURI reports whether source names a BigQuery table.
func IsTableURI(source string) bool {
	return strings.HasPrefix(source, Scheme)
}

// ParseTableURI parses "bq://project.dataset.table".
func ParseTableURI(uri string) (TableRef, error) {
	if !IsTableURI(uri) {
		return TableRef{}, fmt.Errorf("ParseTableURI: %q does not start with %s", uri, Scheme)
	}
	return ParseTableRef(strings.TrimPrefix(uri, Scheme))
}

// ParseTableRef parses "project.dataset.table" (or the legacy
// "project:dataset.table").
func ParseTableRef(s string) (TableRef, error) {
	parts := strings.Split(strings.Replace(strings.TrimSpace(s), ":", ".", 1), ".")
	if len(parts) != 3 {
		return TableRef{}, fmt.Errorf("ParseTableRef: %q is not project.dataset.table", s)
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, "`") {
			return TableRef{}, fmt.Errorf("ParseTableRef: %q has an invalid component", s)
		}
	}
	return TableRef{Project: parts[0], Dataset: parts[1], Table: parts[2]}, nil
}
