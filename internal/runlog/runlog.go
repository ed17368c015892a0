// Package runlog keeps an append-only CSV audit log of ingestion runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the ingest log.
type Entry struct {
	Timestamp   time.Time
	RunID       string
	Source      string
	Rows        int
	NullDates   int
	NullAmounts int
	LedgerPath  string
}

// Header is the CSV header for ingest-log.csv.
const Header = "timestamp,run_id,source,rows,null_dates,null_amounts,ledger_path"

const (
	numFields      = 7
	logDir         = "logs"
	logFile        = "logs/ingest-log.csv"
	colTimestamp   = 0
	colRunID       = 1
	colSource      = 2
	colRows        = 3
	colNullDates   = 4
	colNullAmounts = 5
	colLedgerPath  = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colSource] = e.Source
	row[colRows] = strconv.Itoa(e.Rows)
	row[colNullDates] = strconv.Itoa(e.NullDates)
	row[colNullAmounts] = strconv.Itoa(e.NullAmounts)
	row[colLedgerPath] = e.LedgerPath
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[colRows], err)
	}
	nullDates, err := strconv.Atoi(record[colNullDates])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing null_dates %q: %w", record[colNullDates], err)
	}
	nullAmounts, err := strconv.Atoi(record[colNullAmounts])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing null_amounts %q: %w", record[colNullAmounts], err)
	}

	return Entry{
		Timestamp:   ts,
		RunID:       record[colRunID],
		Source:      record[colSource],
		Rows:        rows,
		NullDates:   nullDates,
		NullAmounts: nullAmounts,
		LedgerPath:  record[colLedgerPath],
	}, nil
}

// Append writes entries to <root>/logs/ingest-log.csv, creating the file and
// header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ingest log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for _, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/ingest-log.csv. A missing log is
// not an error.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ingest log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ingest log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
