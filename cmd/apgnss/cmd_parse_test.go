package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

const testTranscript = `outdoor-ap1#show gnss info
GnssState: Enabled
ValidFix: true
Latitude: 41.193900
Longitude: -111.941000
NumSat: 14

 Const.  SVID   Elev   Azim   SNR    Used
 GPS     5      45     120    40     yes
 GPS     12     30     210    30     yes
===========================
`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String() + errOut.String(), err
}

func TestParseCommandWritesRecords(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "putty-example-outdoor-ap1.txt")
	require.NoError(t, os.WriteFile(capture, []byte(testTranscript), 0o644))
	outDir := filepath.Join(dir, "records")

	out, err := runCommand(t, "parse", capture, "-o", outDir, "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed 1 of 1")

	data, err := os.ReadFile(filepath.Join(outDir, "putty-example-outdoor-ap1.json"))
	require.NoError(t, err)

	var rec models.DeviceRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "outdoor-ap1", rec.Main.APName)
	assert.Equal(t, 41.1939, rec.GNSSState.Latitude)
	assert.Len(t, rec.Satellites, 2)
}

func TestParseCommandDirectoryInput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(testTranscript), 0o644))
	}
	outDir := filepath.Join(dir, "records")

	out, err := runCommand(t, "parse", dir, "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed 2 of 2")
}

func TestParseCommandMissingInput(t *testing.T) {
	_, err := runCommand(t, "parse", "/does/not/exist.txt")
	assert.Error(t, err)
}

func TestParseThenExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "putty-example-outdoor-ap1.txt")
	require.NoError(t, os.WriteFile(capture, []byte(testTranscript), 0o644))
	outDir := filepath.Join(dir, "records")
	csvPath := filepath.Join(dir, "records.csv")

	_, err := runCommand(t, "parse", capture, "-o", outDir)
	require.NoError(t, err)

	out, err := runCommand(t, "export", outDir, "-o", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 record(s)")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gnss_state_latitude")
	assert.Contains(t, string(data), "41.1939")
}

func TestExportCommandNoRecords(t *testing.T) {
	_, err := runCommand(t, "export", t.TempDir())
	require.Error(t, err)

	var partial *PartialFailureError
	assert.False(t, errors.As(err, &partial))
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "capture.txt")
	require.NoError(t, os.WriteFile(capture, []byte(testTranscript), 0o644))

	out, err := runCommand(t, "analyze", capture)
	require.NoError(t, err)
	assert.Contains(t, out, "marker_counts")
	assert.Contains(t, out, "gnss_state")
}

func TestMetricsCommand(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "putty-example-outdoor-ap1.txt")
	require.NoError(t, os.WriteFile(capture, []byte(testTranscript), 0o644))
	outDir := filepath.Join(dir, "records")
	promPath := filepath.Join(dir, "ap_gnss.prom")

	_, err := runCommand(t, "parse", capture, "-o", outDir)
	require.NoError(t, err)

	_, err = runCommand(t, "metrics", outDir, "-o", promPath)
	require.NoError(t, err)

	data, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ap_gnss_latitude_degrees{ap_name="outdoor-ap1"}`)
}
