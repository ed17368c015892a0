package ingest

import (
	"fmt"
	"os"

	"github.com/autoadvisor-dev/autoadvisor/internal/categorize"
	"github.com/autoadvisor-dev/autoadvisor/internal/model"
)

// Result summarizes one ingestion run.
type Result struct {
	Transactions []model.Transaction
	Source       string
	NullDates    int // rows whose date failed to parse
	NullAmounts  int // rows whose amount failed to parse
}

// LoadFile reads a transactions CSV, normalizes it into canonical form, and
// assigns categories from the lexicon. Fatal on a missing file or on a schema
// that cannot be reconciled; bad per-row values degrade to null instead.
func LoadFile(path string, lexicon categorize.Lexicon) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("transactions file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("opening transactions file: %w", err)
	}
	defer f.Close()

	table, err := Normalize(f)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", path, err)
	}

	txns := Coerce(table)
	res := &Result{Transactions: txns, Source: path}
	for i := range txns {
		txns[i].Category = lexicon.Categorize(txns[i].Description)
		if !txns[i].HasDate() {
			res.NullDates++
		}
		if !txns[i].HasAmount() {
			res.NullAmounts++
		}
	}
	return res, nil
}
