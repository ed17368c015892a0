package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// InvestmentRow is one row of the investments export. Only the Date column is
// coerced; everything else is carried through for the presentation layer.
type InvestmentRow struct {
	Date   time.Time // zero when unparseable
	Fields map[string]string
}

// LoadInvestments reads the investments CSV. The file is a collaborator input
// (no canonical schema); headers are BOM-stripped and trimmed only.
func LoadInvestments(path string) ([]InvestmentRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("investments file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("opening investments file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading investments file: %w", err)
	}
	cr := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff")))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing investments CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	dateIdx := -1
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(strings.ReplaceAll(h, "\ufeff", ""))
		if strings.EqualFold(headers[i], "date") {
			dateIdx = i
		}
	}

	rows := make([]InvestmentRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := InvestmentRow{Fields: make(map[string]string, len(headers))}
		for i, h := range headers {
			if i < len(rec) {
				row.Fields[h] = rec[i]
			}
		}
		if dateIdx >= 0 && dateIdx < len(rec) {
			row.Date = ParseDate(rec[dateIdx])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
