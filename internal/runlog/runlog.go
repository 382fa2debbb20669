// Package runlog persists the run manifest: one CSV row per pipeline run,
// appended to <workDir>/logs/run-log.csv.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp    time.Time
	Period       string
	Accounts     int
	Leaves       int
	Unmapped     int
	ChecksPassed int
	ChecksFailed int
	Status       string // "ok" or "review"
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,period,accounts,leaves,unmapped,checks_passed,checks_failed,status"

const (
	numFields       = 8
	logDir          = "logs"
	logFile         = "logs/run-log.csv"
	colTimestamp    = 0
	colPeriod       = 1
	colAccounts     = 2
	colLeaves       = 3
	colUnmapped     = 4
	colChecksPassed = 5
	colChecksFailed = 6
	colStatus       = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colPeriod] = e.Period
	row[colAccounts] = strconv.Itoa(e.Accounts)
	row[colLeaves] = strconv.Itoa(e.Leaves)
	row[colUnmapped] = strconv.Itoa(e.Unmapped)
	row[colChecksPassed] = strconv.Itoa(e.ChecksPassed)
	row[colChecksFailed] = strconv.Itoa(e.ChecksFailed)
	row[colStatus] = e.Status
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

	e := Entry{Timestamp: ts, Period: record[colPeriod], Status: record[colStatus]}
	counts := []struct {
		col int
		dst *int
	}{
		{colAccounts, &e.Accounts},
		{colLeaves, &e.Leaves},
		{colUnmapped, &e.Unmapped},
		{colChecksPassed, &e.ChecksPassed},
		{colChecksFailed, &e.ChecksFailed},
	}
	for _, c := range counts {
		n, err := strconv.Atoi(record[c.col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[c.col], err)
		}
		*c.dst = n
	}
	return e, nil
}

// Append writes entries to <workDir>/logs/run-log.csv, creating the file
// and header if needed.
func Append(workDir string, entries []Entry) error {
	dir := filepath.Join(workDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(workDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if _, err := f.WriteString(Header + "\n"); err != nil {
			return fmt.Errorf("writing run log header: %w", err)
		}
	}

	for _, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing run log row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <workDir>/logs/run-log.csv. Returns an
// empty slice if the file does not exist.
func Read(workDir string) ([]Entry, error) {
	path := filepath.Join(workDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
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
