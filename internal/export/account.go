package export

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// headerPattern matches the export header line: a free-text account name,
// the account number (digit groups of 5, 9 and 2), then the as-of date and
// balance, tab-separated.
var headerPattern = regexp.MustCompile(`^(.+?)\s+(\d{5}\s+\d{9}\s+\d{2})\t+(\d{2}/\d{2}/\d{2})\t+(\d+,\d+)`)

// Account is one account's worth of downloaded export data: identity,
// as-of balance and the account activity for the period. Like Statement
// it is an immutable value object.
type Account struct {
	name          string
	accountNumber string
	statementDate string
	balance       decimal.Decimal
	statements    []Statement
}

// ParseAccount parses a downloaded export body for a single account.
// The first line is the header; every following line is a statement,
// kept in export order. Any line that fails to parse aborts the whole
// account parse; no partial Account is ever returned.
func ParseAccount(body string) (Account, error) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return Account{}, &ParseError{Field: "header", Line: "", Err: errors.New("empty export body")}
	}

	m := headerPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return Account{}, &ParseError{Field: "header", Line: lines[0], Err: errors.New("malformed account header")}
	}

	date, err := NormalizeDate(m[3])
	if err != nil {
		return Account{}, &ParseError{Field: "header", Line: lines[0], Err: err}
	}
	balance, err := NormalizeAmount(m[4])
	if err != nil {
		return Account{}, &ParseError{Field: "header", Line: lines[0], Err: err}
	}

	var statements []Statement
	for _, line := range lines[1:] {
		st, err := ParseStatement(line)
		if err != nil {
			return Account{}, err
		}
		statements = append(statements, st)
	}

	return Account{
		name:          m[1],
		accountNumber: m[2],
		statementDate: date,
		balance:       balance,
		statements:    statements,
	}, nil
}

// Name returns the account holder label, verbatim from the header.
func (a Account) Name() string { return a.name }

// AccountNumber returns the account number as printed in the export.
// It is an opaque identifier; leading zeros are preserved.
func (a Account) AccountNumber() string { return a.accountNumber }

// SortCode always returns "". The portal's export format does not carry a
// sort code, and none is inferred.
func (a Account) SortCode() string { return "" }

// StatementDate returns the as-of date of the balance in YYYY-MM-DD form.
func (a Account) StatementDate() string { return a.statementDate }

// Balance returns the as-of balance.
func (a Account) Balance() decimal.Decimal { return a.balance }

// Statements returns the account activity in export order. An account with
// no activity returns an empty slice.
func (a Account) Statements() []Statement {
	return append([]Statement(nil), a.statements...)
}

// IsNoActivity reports whether a downloaded export body is the portal's
// HTML placeholder page, which it serves instead of tabular data when an
// account had no transactions for the period.
func IsNoActivity(body []byte) bool {
	return strings.Contains(strings.ToLower(string(body)), "<html")
}
