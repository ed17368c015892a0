package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_HeaderSynonyms(t *testing.T) {
	csv := "Transaction Date,Merchant,Amt,Dr/Cr,Card\n" +
		"2025-08-01,Starbucks,5.00,debit,Visa\n"

	table, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)

	for _, c := range RequiredColumns {
		assert.GreaterOrEqual(t, table.Index(c), 0, "column %s", c)
	}
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Starbucks", table.Rows[0][table.Index(ColDescription)])
}

func TestNormalize_StripsBOMAndCase(t *testing.T) {
	csv := "\ufeffDATE,Description,Amount,Type,Account\n" +
		"2025-08-01,Coffee,5.00,debit,Visa\n"

	table, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, ColDate, table.Headers[0])
}

func TestNormalize_SniffsDelimiter(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"semicolon", "date;description;amount;type;account\n2025-08-01;Coffee;5.00;debit;Visa\n"},
		{"tab", "date\tdescription\tamount\ttype\taccount\n2025-08-01\tCoffee\t5.00\tdebit\tVisa\n"},
		{"pipe", "date|description|amount|type|account\n2025-08-01|Coffee|5.00|debit|Visa\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Normalize(strings.NewReader(tt.csv))
			require.NoError(t, err)
			require.Len(t, table.Rows, 1)
			assert.Equal(t, "Coffee", table.Rows[0][table.Index(ColDescription)])
		})
	}
}

func TestNormalize_SynthesizesAmountFromDebitCredit(t *testing.T) {
	csv := "Transaction Date,Merchant,Debit,Credit,Dr/Cr,Card\n" +
		"2025-08-01,Starbucks,5.00,,debit,Visa\n" +
		"2025-08-02,Employer,,2000.00,credit,Checking\n" +
		"2025-08-03,Unknown,n/a,n/a,misc,Checking\n"

	table, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)

	amountIdx := table.Index(ColAmount)
	require.GreaterOrEqual(t, amountIdx, 0)
	assert.Equal(t, "-5", table.Rows[0][amountIdx])
	assert.Equal(t, "2000", table.Rows[1][amountIdx])
	// Unparseable values on both sides count as zero.
	assert.Equal(t, "0", table.Rows[2][amountIdx])
}

func TestNormalize_SingleDebitColumnBecomesAmount(t *testing.T) {
	csv := "date,description,debit,type,account\n" +
		"2025-08-01,Coffee,5.00,debit,Visa\n"

	table, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, table.Index(ColAmount), 0)
	assert.Equal(t, "5.00", table.Rows[0][table.Index(ColAmount)])
}

func TestNormalize_MissingColumns(t *testing.T) {
	csv := "date,description\n2025-08-01,Coffee\n"

	_, err := Normalize(strings.NewReader(csv))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.ElementsMatch(t, []string{ColAmount, ColType, ColAccount}, schemaErr.Missing)
	assert.Contains(t, schemaErr.Found, ColDate)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize(strings.NewReader(""))
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Len(t, schemaErr.Missing, 5)
}

func TestNormalize_ExtraColumnsPassThrough(t *testing.T) {
	csv := "date,description,amount,type,account,balance\n" +
		"2025-08-01,Coffee,5.00,debit,Visa,1200.00\n"

	table, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, table.Index("balance"), 0)
}
