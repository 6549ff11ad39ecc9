// Package runlog keeps the append-only CSV log of statement generations.
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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one row in the generation log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Source    string // trial balance file, or "api"
	Standard  string
	Currency  string
	Format    string
	Entries   int
	Unmapped  int
	NetIncome decimal.Decimal
	Output    string // empty when written to stdout
}

// Header is the CSV header for generation-log.csv.
const Header = "timestamp,run_id,source,standard,currency,format,entries,unmapped,net_income,output"

const (
	numFields    = 10
	logDir       = "logs"
	logFile      = "logs/generation-log.csv"
	colTimestamp = 0
	colRunID     = 1
	colSource    = 2
	colStandard  = 3
	colCurrency  = 4
	colFormat    = 5
	colEntries   = 6
	colUnmapped  = 7
	colNetIncome = 8
	colOutput    = 9
)

// NewRunID returns a fresh identifier for one generation.
func NewRunID() string {
	return uuid.NewString()
}

// Path returns the log path inside a fiscmind directory.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, logFile)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colSource] = e.Source
	row[colStandard] = e.Standard
	row[colCurrency] = e.Currency
	row[colFormat] = e.Format
	row[colEntries] = strconv.Itoa(e.Entries)
	row[colUnmapped] = strconv.Itoa(e.Unmapped)
	row[colNetIncome] = e.NetIncome.StringFixed(2)
	row[colOutput] = e.Output
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
	if _, err := uuid.Parse(record[colRunID]); err != nil {
		return Entry{}, fmt.Errorf("parsing run id %q: %w", record[colRunID], err)
	}
	entries, err := strconv.Atoi(record[colEntries])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing entries %q: %w", record[colEntries], err)
	}
	unmapped, err := strconv.Atoi(record[colUnmapped])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing unmapped %q: %w", record[colUnmapped], err)
	}
	ni, err := decimal.NewFromString(record[colNetIncome])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing net income %q: %w", record[colNetIncome], err)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		Source:    record[colSource],
		Standard:  record[colStandard],
		Currency:  record[colCurrency],
		Format:    record[colFormat],
		Entries:   entries,
		Unmapped:  unmapped,
		NetIncome: ni,
		Output:    record[colOutput],
	}, nil
}

// Append writes entries to <repoRoot>/logs/generation-log.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(repoRoot)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening generation log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/generation-log.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(Path(repoRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening generation log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generation log CSV: %w", err)
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
