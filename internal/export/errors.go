package export

import "fmt"

// ParseError reports a malformed field in a downloaded export.
type ParseError struct {
	Field string // which field failed: "header", "line", "date", "description", "amount"
	Line  string // the original input line
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s in %q: %v", e.Field, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
