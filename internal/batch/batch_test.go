package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukejenkins/ap-gnss-stats/internal/parser"
)

const miniTranscript = `outdoor-ap1#show gnss info
GnssState: Enabled
Latitude: 41.193900
Longitude: -111.941000
`

func writeCapture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzipCapture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	plain := writeCapture(t, dir, "putty-example-outdoor-ap1.txt", miniTranscript)
	compressed := writeGzipCapture(t, dir, "20250421-101648-putty-example-outdoor-ap2.txt.gz", miniTranscript)

	results, err := ParseFiles(context.Background(), []string{plain, compressed}, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// results stay in input order
	assert.Equal(t, plain, results[0].Path)
	assert.Equal(t, compressed, results[1].Path)

	for _, res := range results {
		require.NoError(t, res.Err)
		require.NotNil(t, res.Record)
		assert.Equal(t, 41.1939, res.Record.GNSSState.Latitude)
	}

	assert.Equal(t, "putty-example-outdoor-ap1.txt", results[0].Record.Metadata.InputFile)
	// the gzip capture's timestamp comes from the filename
	assert.Equal(t, "2025-04-21T10:16:48Z", results[1].Record.Metadata.CaptureTime)
}

func TestParseFilesMissingFileIsPerFileError(t *testing.T) {
	dir := t.TempDir()
	good := writeCapture(t, dir, "ap.txt", miniTranscript)
	missing := filepath.Join(dir, "nope.txt")

	results, err := ParseFiles(context.Background(), []string{good, missing}, Options{Workers: 1})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Record)
}

func TestParseFilesBackfillsAPNameFromFilename(t *testing.T) {
	dir := t.TempDir()
	// no prompt in the content, so the name must come from the filename
	path := writeCapture(t, dir, "putty-example-outdoor-ap1.txt", "GnssState: Enabled\n")

	results, err := ParseFiles(context.Background(), []string{path}, Options{Workers: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "outdoor-ap1", results[0].Record.Main.APName)
}

func TestParseFilesSourceAddressReachesParser(t *testing.T) {
	dir := t.TempDir()
	path := writeCapture(t, dir, "capture.txt", "ogx-outdoor-a#show gnss info\nGnssState: Enabled\n")

	results, err := ParseFiles(context.Background(), []string{path}, Options{
		Workers: 1,
		Parse:   parser.Options{SourceAddress: "ogx-outdoor-ap1.mgmt.example.edu"},
	})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "ogx-outdoor-ap1", results[0].Record.Main.APName)
	assert.Equal(t, "ogx-outdoor-a", results[0].Record.Main.ObservedAPName)
}

func TestReadCaptureReportsOnDiskSize(t *testing.T) {
	dir := t.TempDir()
	path := writeGzipCapture(t, dir, "ap.txt.gz", miniTranscript)

	content, size, err := ReadCapture(path)
	require.NoError(t, err)
	assert.Equal(t, miniTranscript, content)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), size)
}
