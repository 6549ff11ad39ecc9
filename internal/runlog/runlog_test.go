package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		RunID:     "4f7b2c1e-93a0-4a8e-9b7e-2c5d8e1f0a11",
		Source:    "trial-balance.csv",
		Standard:  "IFRS",
		Currency:  "USD",
		Format:    "pdf",
		Entries:   18,
		Unmapped:  1,
		NetIncome: decimal.RequireFromString("9750"),
		Output:    "exports/statements.pdf",
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "trial-balance.csv", entries[0].Source)

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Source = "api"
	e2.RunID = NewRunID()
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "trial-balance.csv", entries[0].Source)
	assert.Equal(t, "api", entries[1].Source)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.RunID, got.RunID)
	assert.Equal(t, original.Standard, got.Standard)
	assert.Equal(t, original.Format, got.Format)
	assert.Equal(t, 18, got.Entries)
	assert.Equal(t, 1, got.Unmapped)
	assert.True(t, original.NetIncome.Equal(got.NetIncome))
	assert.Equal(t, original.Output, got.Output)
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	good := MarshalEntry(testEntry())

	tests := []struct {
		name string
		col  int
		val  string
		want string
	}{
		{"timestamp", colTimestamp, "yesterday", "parsing timestamp"},
		{"run id", colRunID, "run-1", "parsing run id"},
		{"entries", colEntries, "many", "parsing entries"},
		{"unmapped", colUnmapped, "-", "parsing unmapped"},
		{"net income", colNetIncome, "n/a", "parsing net income"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := append([]string(nil), good...)
			rec[tt.col] = tt.val
			_, err := UnmarshalEntry(rec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := UnmarshalEntry(good[:3])
	assert.ErrorContains(t, err, "expected 10 fields")
}

func TestRead_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(Header+"\nshort,row\n"), 0o644))

	_, err := Read(dir)
	assert.Error(t, err)
}
