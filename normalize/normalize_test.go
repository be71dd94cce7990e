package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/nroux/finledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = `Date,Amount,Description,Reference
2024-01-05,-20.50,GREENFIELD GROCERS,POS-123
2024-01-06,-12.00,CORNER PHARMACY,
2024-02-01,1850.00,ACME PAYROLL,SAL-02
`

func TestParse(t *testing.T) {
	fields, rowErrs, err := Parse(strings.NewReader(statement), "acc-1")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, fields, 3)

	first := fields[0]
	assert.Equal(t, "acc-1", first.AccountID)
	assert.Equal(t, "2024-01-05", first.Date.String())
	assert.True(t, first.Amount.Decimal().Equal(decimal.RequireFromString("-20.50")))
	assert.Equal(t, DefaultCurrency, first.Amount.Currency())
	assert.Equal(t, "GREENFIELD GROCERS", first.Description)
	assert.Equal(t, "POS-123", first.Reference)

	assert.Empty(t, fields[1].Reference)
	assert.True(t, fields[2].Amount.IsPositive())
}

func TestParse_HeaderCaseAndOrder(t *testing.T) {
	// Column order and header casing vary between institutions.
	in := `DESCRIPTION,Amount,DATE
COFFEE,-3.20,2024-01-05
`
	fields, rowErrs, err := Parse(strings.NewReader(in), "acc-1")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, fields, 1)
	assert.Equal(t, "COFFEE", fields[0].Description)
	assert.Equal(t, "2024-01-05", fields[0].Date.String())
}

func TestParse_CurrencyColumn(t *testing.T) {
	in := `date,amount,description,currency
2024-01-05,-20.50,LONDON HOTEL,GBP
2024-01-06,-8.00,COFFEE,
`
	fields, rowErrs, err := Parse(strings.NewReader(in), "acc-1")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, fields, 2)
	assert.Equal(t, "GBP", fields[0].Amount.Currency())
	assert.Equal(t, DefaultCurrency, fields[1].Amount.Currency())
}

func TestParse_AmountFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"-20.50", "-20.5"},
		{"-20,50", "-20.5"},
		{"1,234.56", "1234.56"},
		{"1 234,56", "1234.56"},
		{"100", "100"},
	}
	for _, tc := range tests {
		in := "date,amount,description\n2024-01-05," + `"` + tc.raw + `"` + ",X\n"
		fields, rowErrs, err := Parse(strings.NewReader(in), "acc-1")
		require.NoError(t, err, tc.raw)
		require.Empty(t, rowErrs, tc.raw)
		require.Len(t, fields, 1, tc.raw)
		assert.Equal(t, tc.want, fields[0].Amount.Decimal().String(), "amount %q", tc.raw)
	}
}

func TestParse_RowErrors(t *testing.T) {
	in := `date,amount,description
2024-01-05,-20.50,COFFEE
not-a-date,-5.00,BAD DATE
2024-01-07,abc,BAD AMOUNT
2024-01-08,-4.00,
2024-01-09,-2.00,OK AGAIN
`
	fields, rowErrs, err := Parse(strings.NewReader(in), "acc-1")
	require.NoError(t, err)

	// Good rows survive, each bad row is reported at its file position.
	require.Len(t, fields, 2)
	assert.Equal(t, "COFFEE", fields[0].Description)
	assert.Equal(t, "OK AGAIN", fields[1].Description)

	require.Len(t, rowErrs, 3)
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Error(), "invalid date")
	assert.Equal(t, 4, rowErrs[1].Row)
	assert.Contains(t, rowErrs[1].Error(), "invalid amount")
	assert.Equal(t, 5, rowErrs[2].Row)
	assert.Contains(t, rowErrs[2].Error(), "missing description")
}

func TestParse_UnusableInput(t *testing.T) {
	var verr *finledger.ValidationError

	_, _, err := Parse(strings.NewReader(""), "acc-1")
	assert.True(t, errors.As(err, &verr), "empty input: %v", err)

	_, _, err = Parse(strings.NewReader("date,description\n2024-01-05,COFFEE\n"), "acc-1")
	require.True(t, errors.As(err, &verr), "missing amount column: %v", err)
	assert.Contains(t, verr.Error(), "amount")
}

func TestImport(t *testing.T) {
	db, err := finledger.Open(t.TempDir())
	require.NoError(t, err)
	ing := finledger.NewIngestor(db.Store(finledger.Real))

	res, rowErrs, err := Import(strings.NewReader(statement), "acc-1", ing)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Equal(t, 3, res.Accepted)

	// Importing the same statement again is a no-op.
	res, _, err = Import(strings.NewReader(statement), "acc-1", ing)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Accepted)
	assert.Equal(t, 3, res.Duplicates)
}

func TestParse_Deterministic(t *testing.T) {
	a, _, err := Parse(strings.NewReader(statement), "acc-1")
	require.NoError(t, err)
	b, _, err := Parse(strings.NewReader(statement), "acc-1")
	require.NoError(t, err)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, finledger.TransactionID(a[i]), finledger.TransactionID(b[i]))
	}
}
