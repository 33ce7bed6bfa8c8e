package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "records.csv")
	records := []*models.DeviceRecord{sampleRecord(), sampleRecord()}

	require.NoError(t, WriteRecords(path, records, WriteOptions{}))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)

	columns, err := BuildColumnUniverse(records)
	require.NoError(t, err)
	assert.Equal(t, columns, rows[0])

	header := rows[0]
	byName := map[string]string{}
	for i, c := range header {
		byName[c] = rows[1][i]
	}
	assert.Equal(t, "outdoor-ap1", byName["main_ap_name"])
	assert.Equal(t, "3", byName["satellites_total_count"])
}

func TestWriteRecordsDeterministicHeader(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	records := []*models.DeviceRecord{sampleRecord()}

	require.NoError(t, WriteRecords(a, records, WriteOptions{}))
	require.NoError(t, WriteRecords(b, records, WriteOptions{}))

	first, err := os.ReadFile(a)
	require.NoError(t, err)
	second, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteRecordsAppendKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	first := []*models.DeviceRecord{sampleRecord()}
	require.NoError(t, WriteRecords(path, first, WriteOptions{}))

	headerBefore := readCSV(t, path)[0]

	// the second batch carries a field the existing header does not know
	extra := sampleRecord()
	extra.RawData = map[string]any{"new_field": 1}
	require.NoError(t, WriteRecords(path, []*models.DeviceRecord{extra}, WriteOptions{Append: true}))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, headerBefore, rows[0])
	assert.NotContains(t, rows[0], "raw_new_field")
	assert.Len(t, rows[2], len(headerBefore))
}

func TestWriteRecordsAppendToMissingFileWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")

	require.NoError(t, WriteRecords(path, []*models.DeviceRecord{sampleRecord()}, WriteOptions{Append: true}))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.True(t, len(rows[0]) > 0)
}
