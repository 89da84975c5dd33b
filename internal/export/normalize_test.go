package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate_CenturyPivot(t *testing.T) {
	got, err := NormalizeDate("15/03/95")
	require.NoError(t, err)
	assert.Equal(t, "1995-03-15", got)

	got, err = NormalizeDate("01/01/24")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got)
}

func TestNormalizeDate_PivotBoundaries(t *testing.T) {
	// 70-99 resolve to 19xx, 00-69 to 20xx.
	got, err := NormalizeDate("01/01/70")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01", got)

	got, err = NormalizeDate("01/01/69")
	require.NoError(t, err)
	assert.Equal(t, "2069-01-01", got)

	got, err = NormalizeDate("31/12/99")
	require.NoError(t, err)
	assert.Equal(t, "1999-12-31", got)

	got, err = NormalizeDate("01/01/00")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01", got)
}

func TestNormalizeDate_Malformed(t *testing.T) {
	for _, in := range []string{"", "15/03", "15-03-95", "1/3/95", "aa/bb/cc", "15/03/1995"} {
		_, err := NormalizeDate(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestNormalizeAmount_CommaToDot(t *testing.T) {
	d, err := NormalizeAmount("1234,56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", d.StringFixed(2))

	d, err = NormalizeAmount("-12,00")
	require.NoError(t, err)
	assert.Equal(t, "-12.00", d.StringFixed(2))
}

func TestNormalizeAmount_NoComma(t *testing.T) {
	_, err := NormalizeAmount("1234.56")
	assert.Error(t, err)

	_, err = NormalizeAmount("1234")
	assert.Error(t, err)
}

func TestNormalizeAmount_TwoCommas(t *testing.T) {
	_, err := NormalizeAmount("1,234,56")
	assert.Error(t, err)
}

func TestNormalizeAmount_NonNumeric(t *testing.T) {
	_, err := NormalizeAmount("abc,def")
	assert.Error(t, err)
}
