package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	numStatementFields = 3
	colDate            = 0
	colDescription     = 1
	colAmount          = 2
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Statement is one line of account activity from a downloaded export.
// It is a value object: built once by ParseStatement, never mutated.
type Statement struct {
	date        string
	description string
	amount      decimal.Decimal
}

// ParseStatement parses one tab-delimited export line into a Statement.
// The line carries date, description and amount; any fields past the third
// are ignored. Date and amount are normalized (ISO date, dot decimal) and
// description whitespace runs collapse to single spaces.
func ParseStatement(line string) (Statement, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numStatementFields {
		return Statement{}, &ParseError{
			Field: "line",
			Line:  line,
			Err:   fmt.Errorf("expected at least %d tab-separated fields, got %d", numStatementFields, len(fields)),
		}
	}

	date, err := NormalizeDate(fields[colDate])
	if err != nil {
		return Statement{}, &ParseError{Field: "date", Line: line, Err: err}
	}

	amount, err := NormalizeAmount(fields[colAmount])
	if err != nil {
		return Statement{}, &ParseError{Field: "amount", Line: line, Err: err}
	}

	return Statement{
		date:        date,
		description: whitespaceRun.ReplaceAllString(fields[colDescription], " "),
		amount:      amount,
	}, nil
}

// Date returns the statement date in YYYY-MM-DD form.
func (s Statement) Date() string { return s.date }

// Description returns the statement label with whitespace runs collapsed.
func (s Statement) Description() string { return s.description }

// Amount returns the signed amount. The sign convention is the export's
// own; no debit/credit reconciliation is applied.
func (s Statement) Amount() decimal.Decimal { return s.amount }

// Line joins the normalized date, description and amount with sep. The
// amount renders with two decimal places, matching the bank's own
// precision.
func (s Statement) Line(sep string) string {
	return strings.Join([]string{s.date, s.description, s.amount.StringFixed(2)}, sep)
}

// String renders the statement as a normalized tab-delimited line.
func (s Statement) String() string { return s.Line("\t") }
