package runlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() Entry {
	return Entry{
		Timestamp:    time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
		Period:       "2025",
		Accounts:     120,
		Leaves:       95,
		Unmapped:     2,
		ChecksPassed: 4,
		ChecksFailed: 1,
		Status:       "review",
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	e := sampleEntry()
	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, []Entry{sampleEntry()}))

	second := sampleEntry()
	second.Period = "2024"
	second.Status = "ok"
	require.NoError(t, Append(dir, []Entry{second}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025", entries[0].Period)
	assert.Equal(t, "2024", entries[1].Period)
	assert.Equal(t, "ok", entries[1].Status)
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshal_BadCount(t *testing.T) {
	row := MarshalEntry(sampleEntry())
	row[2] = "many"
	_, err := UnmarshalEntry(row)
	assert.Error(t, err)
}
