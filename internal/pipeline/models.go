package pipeline

// Report summarizes one pipeline run.
type Report struct {
	RunID  string
	Source string
	Dest   string

	Read    int // transactions read from the source
	Kept    int // transactions left after all filters
	Groups  int // distinct sanitized account keys
	Written int // output rows handed to the writer

	Files []GroupReport
}

// GroupReport is the row count of one output group.
type GroupReport struct {
	Key  string
	Rows int
}
