// Package ledger persists the canonical transaction table as a Parquet file,
// the single source of truth for analysis.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"

	"github.com/autoadvisor-dev/autoadvisor/internal/model"
)

// NotFoundError means the ledger has not been written yet.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ledger not found at %s; run `autoadvisor ingest` first", e.Path)
}

// row is the on-disk schema. Column names are the canonical title-case ones
// collaborators reading the same file expect; date and amount are optional
// columns so rows with unparseable source values survive the round trip.
type row struct {
	Date        *time.Time `parquet:"Date,optional"`
	Description string     `parquet:"Description"`
	Category    string     `parquet:"Category"`
	Amount      *float64   `parquet:"Amount,optional"`
	Type        string     `parquet:"Type"`
	Account     string     `parquet:"Account"`
}

// Write serializes transactions to path, creating parent directories as
// needed. The file is written to a temporary sibling and renamed into place so
// a concurrent reader never observes a partial ledger.
func Write(path string, txns []model.Transaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger dir: %w", err)
		}
	}

	rows := make([]row, len(txns))
	for i, t := range txns {
		rows[i] = row{
			Description: t.Description,
			Category:    t.Category,
			Type:        t.Type,
			Account:     t.Account,
		}
		if t.HasDate() {
			d := t.Date
			rows[i].Date = &d
		}
		if t.Amount.Valid {
			f, _ := t.Amount.Decimal.Float64()
			rows[i].Amount = &f
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}

	w := parquet.NewGenericWriter[row](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing ledger rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("closing ledger writer: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing ledger file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}

// Read loads the canonical ledger from path. Returns a NotFoundError when the
// file does not exist.
func Read(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat ledger: %w", err)
	}

	rows, err := parquet.Read[row](f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}

	txns := make([]model.Transaction, len(rows))
	for i, r := range rows {
		txns[i] = model.Transaction{
			Description: r.Description,
			Category:    r.Category,
			Type:        r.Type,
			Account:     r.Account,
		}
		if r.Date != nil {
			d := r.Date.UTC()
			txns[i].Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		}
		if r.Amount != nil {
			txns[i].Amount = decimal.NullDecimal{Decimal: decimal.NewFromFloat(*r.Amount), Valid: true}
		}
	}
	return txns, nil
}
