package pipeline

// Values recognized by the pipeline steps.
const (
	// SinceLayout is the accepted format of the since date.
	SinceLayout = "2006-01-02"

	// TypeDebit and TypeCredit are the recognized transaction type hints.
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)
