package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoadvisor-dev/autoadvisor/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.NullDecimal {
	d, _ := decimal.NewFromString(s)
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func TestRoundTrip(t *testing.T) {
	txns := []model.Transaction{
		{
			Date:        date(2025, 8, 1),
			Description: "Starbucks",
			Category:    "Dining",
			Amount:      amount("-5.00"),
			Type:        "debit",
			Account:     "Visa",
		},
		{
			Date:        date(2025, 8, 5),
			Description: "ACME Payroll Salary",
			Category:    "Income",
			Amount:      amount("2000.00"),
			Type:        "credit",
			Account:     "Checking",
		},
		{
			// Null date and null amount must survive the round trip.
			Description: "City Electric",
			Category:    "Utilities",
			Amount:      decimal.NullDecimal{},
			Type:        "debit",
			Account:     "Checking",
		},
	}

	path := filepath.Join(t.TempDir(), "data", "cleaned_transactions.parquet")
	require.NoError(t, Write(path, txns), "parent dirs are created as needed")

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, len(txns))

	for i := range txns {
		assert.True(t, txns[i].Date.Equal(got[i].Date), "date mismatch row %d", i)
		assert.Equal(t, txns[i].Description, got[i].Description)
		assert.Equal(t, txns[i].Category, got[i].Category)
		assert.Equal(t, txns[i].Type, got[i].Type)
		assert.Equal(t, txns[i].Account, got[i].Account)
		require.Equal(t, txns[i].Amount.Valid, got[i].Amount.Valid, "row %d", i)
		if txns[i].Amount.Valid {
			assert.True(t, txns[i].Amount.Decimal.Equal(got[i].Amount.Decimal),
				"amount mismatch row %d: %s vs %s", i, txns[i].Amount.Decimal, got[i].Amount.Decimal)
		}
	}
}

func TestWrite_CanonicalColumnNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.parquet")
	txns := []model.Transaction{
		{
			Date:        date(2025, 8, 1),
			Description: "Starbucks",
			Category:    "Dining",
			Amount:      amount("-5.00"),
			Type:        "debit",
			Account:     "Visa",
		},
	}
	require.NoError(t, Write(path, txns))

	// The file is read by collaborators outside this package, so the column
	// names are part of the interface: title-case, in ledger order.
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	st, err := f.Stat()
	require.NoError(t, err)

	pf, err := parquet.OpenFile(f, st.Size())
	require.NoError(t, err)

	var names []string
	for _, field := range pf.Schema().Fields() {
		names = append(names, field.Name())
	}
	assert.Equal(t, []string{"Date", "Description", "Category", "Amount", "Type", "Account"}, names)
}

func TestWrite_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.parquet")
	require.NoError(t, Write(path, nil))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWrite_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.parquet")
	require.NoError(t, Write(path, []model.Transaction{{Description: "x", Amount: amount("1")}}))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should have been renamed away")
}

func TestRead_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.parquet")
	_, err := Read(path)
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, path, notFound.Path)
	assert.Contains(t, err.Error(), "run `autoadvisor ingest` first")
}
