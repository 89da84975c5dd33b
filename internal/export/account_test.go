package export

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccount(t *testing.T) {
	body := "John Doe\t12345 123456789 01\t\t31/12/23\t\t1234,56\n" +
		"15/12/23\tCARTE  ACHAT   X\t-12,00\n"

	acct, err := ParseAccount(body)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", acct.Name())
	assert.Equal(t, "12345 123456789 01", acct.AccountNumber())
	assert.Equal(t, "2023-12-31", acct.StatementDate())
	assert.Equal(t, "1234.56", acct.Balance().StringFixed(2))
	assert.Equal(t, "", acct.SortCode())

	stmts := acct.Statements()
	require.Len(t, stmts, 1)
	assert.Equal(t, "2023-12-15", stmts[0].Date())
	assert.Equal(t, "CARTE ACHAT X", stmts[0].Description())
	assert.Equal(t, "-12.00", stmts[0].Amount().StringFixed(2))
}

func TestParseAccount_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/releve.exl")
	require.NoError(t, err)

	acct, err := ParseAccount(string(data))
	require.NoError(t, err)

	assert.Equal(t, "Compte de cheques M JOHN DOE", acct.Name())
	assert.Equal(t, "00123 000456789 08", acct.AccountNumber())
	assert.Equal(t, "2024-01-31", acct.StatementDate())
	assert.Equal(t, "2450.75", acct.Balance().StringFixed(2))
	assert.Len(t, acct.Statements(), 3)
	assert.Equal(t, "VIREMENT RECU EMPLOYEUR", acct.Statements()[1].Description())
}

func TestParseAccount_LeadingZerosPreserved(t *testing.T) {
	body := "Livret A\t00042 000000789 01\t\t15/06/24\t\t0,01\n"
	acct, err := ParseAccount(body)
	require.NoError(t, err)
	assert.Equal(t, "00042 000000789 01", acct.AccountNumber())
}

func TestParseAccount_NoStatements(t *testing.T) {
	acct, err := ParseAccount("John Doe\t12345 123456789 01\t\t31/12/23\t\t0,00\n")
	require.NoError(t, err)
	assert.Empty(t, acct.Statements())
}

func TestParseAccount_CRLF(t *testing.T) {
	body := "John Doe\t12345 123456789 01\t\t31/12/23\t\t10,00\r\n" +
		"15/12/23\tX\t-1,00\r\n"
	acct, err := ParseAccount(body)
	require.NoError(t, err)
	require.Len(t, acct.Statements(), 1)
	assert.Equal(t, "X", acct.Statements()[0].Description())
}

func TestParseAccount_MalformedHeader(t *testing.T) {
	for _, body := range []string{
		"",
		"\n",
		"John Doe\n",                                       // nothing after name
		"John Doe\t1234 123456789 01\t\t31/12/23\t\t1,00",  // short account group
		"John Doe\t12345 123456789 01\t\t31/12/23\t\t",     // missing balance
		"John Doe\t12345 123456789 01\t\t2023-12-31\t\t1,00", // wrong date shape
	} {
		_, err := ParseAccount(body)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, "body %q", body)
		assert.Equal(t, "header", perr.Field, "body %q", body)
	}
}

func TestParseAccount_BadStatementAborts(t *testing.T) {
	body := "John Doe\t12345 123456789 01\t\t31/12/23\t\t1234,56\n" +
		"15/12/23\tOK\t-12,00\n" +
		"garbage line\n"

	_, err := ParseAccount(body)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "garbage line", perr.Line)
}

func TestIsNoActivity(t *testing.T) {
	assert.True(t, IsNoActivity([]byte("<html><body>Pas d'operations</body></html>")))
	assert.True(t, IsNoActivity([]byte("prefix <HTML> suffix")))
	assert.False(t, IsNoActivity([]byte("John Doe\t12345 123456789 01\t\t31/12/23\t\t1,00\n")))
}
