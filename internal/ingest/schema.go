package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical column names every raw table must resolve to.
const (
	ColDate        = "date"
	ColDescription = "description"
	ColAmount      = "amount"
	ColType        = "type"
	ColAccount     = "account"
)

// RequiredColumns lists the canonical columns ingestion depends on.
var RequiredColumns = []string{ColDate, ColDescription, ColAmount, ColType, ColAccount}

// headerSynonyms maps known header spellings (lower-cased, trimmed) to
// canonical names. Unmapped headers pass through unchanged.
var headerSynonyms = map[string]string{
	"date":             ColDate,
	"transaction date": ColDate,
	"posted date":      ColDate,
	"time":             ColDate, // last resort

	"description": ColDescription,
	"merchant":    ColDescription,
	"details":     ColDescription,
	"memo":        ColDescription,

	"amount": ColAmount,
	"amt":    ColAmount,

	"type":             ColType,
	"transaction type": ColType,
	"dr/cr":            ColType,

	"account":      ColAccount,
	"account name": ColAccount,
	"card":         ColAccount,
}

// SchemaError reports canonical columns still missing after normalization.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s (found: %s); fix the CSV headers or extend the synonym table",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// RawTable is a string-valued table whose headers have been normalized to the
// canonical schema. Values are untyped until coercion.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Index returns the position of a header, or -1.
func (t *RawTable) Index(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// delimiterCandidates in tie-break order; comma wins ties.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffDelimiter picks the candidate occurring most often in the header line.
func sniffDelimiter(header string) rune {
	best := ','
	bestCount := 0
	for _, d := range delimiterCandidates {
		if n := strings.Count(header, string(d)); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best
}

// Normalize reads a delimited export and reconciles its headers against the
// canonical five-column schema: the delimiter is auto-detected, a UTF-8 BOM is
// stripped, headers are trimmed and lower-cased, known synonyms are mapped,
// and a missing amount column is synthesized from split debit/credit columns.
// Returns a SchemaError when any canonical column is still absent.
func Normalize(r io.Reader) (*RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	firstLine, _, _ := strings.Cut(text, "\n")
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sniffDelimiter(firstLine)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(h, "\ufeff", "")))
		if canonical, ok := headerSynonyms[h]; ok {
			h = canonical
		}
		headers[i] = h
	}

	// Pad short rows so column indexes stay valid.
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(headers))
		copy(row, rec)
		rows = append(rows, row)
	}

	table := &RawTable{Headers: headers, Rows: rows}
	synthesizeAmount(table)

	var missing []string
	for _, c := range RequiredColumns {
		if table.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		found := append([]string(nil), table.Headers...)
		sort.Strings(found)
		return nil, &SchemaError{Missing: missing, Found: found}
	}
	return table, nil
}

// synthesizeAmount builds the unified amount column when the export splits it.
// With both debit and credit columns present, amount = credit - debit, missing
// or unparseable values counting as zero. With only one of the two present,
// that column is treated as the amount (mirrors the header synonym table).
func synthesizeAmount(t *RawTable) {
	if t.Index(ColAmount) >= 0 {
		return
	}
	debitIdx := t.Index("debit")
	creditIdx := t.Index("credit")

	switch {
	case debitIdx >= 0 && creditIdx >= 0:
		t.Headers = append(t.Headers, ColAmount)
		for i, row := range t.Rows {
			amount := numericOrZero(row[creditIdx]).Sub(numericOrZero(row[debitIdx]))
			t.Rows[i] = append(row, amount.String())
		}
	case debitIdx >= 0:
		t.Headers[debitIdx] = ColAmount
	case creditIdx >= 0:
		t.Headers[creditIdx] = ColAmount
	}
}

func numericOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
