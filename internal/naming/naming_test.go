package naming

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPNameFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"putty-example-outdoor-ap1.txt", "outdoor-ap1"},
		{"20250421-101648-putty-example-outdoor-ap1.txt", "outdoor-ap1"},
		{"session-capture.ogxwsc-outdoor-ap1.mgmt.weber.edu.2025-04-29-173449.474.txt", "ogxwsc-outdoor-ap1"},
		{"random-capture.txt", ""},
		{"notes.md", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, APNameFromFilename(tt.filename), tt.filename)
	}
}

func TestTimestampFromFilename(t *testing.T) {
	ts, ok := TimestampFromFilename("20250421-101648-putty-example-outdoor-ap1.txt")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 4, 21, 10, 16, 48, 0, time.UTC), ts)

	ts, ok = TimestampFromFilename("session-capture.ap1.mgmt.weber.edu.2025-04-29-173449.474.txt")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 4, 29, 17, 34, 49, 0, time.UTC), ts)

	_, ok = TimestampFromFilename("putty-example-outdoor-ap1.txt")
	assert.False(t, ok)
}

func TestFindLogFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	for _, name := range []string{"a.txt", "b.log", "c.txt.gz", "skip.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(sub, "d.log"), nil, 0o644))

	flat, err := FindLogFiles(dir, false)
	require.NoError(t, err)
	assert.Len(t, flat, 3)
	for _, p := range flat {
		assert.NotContains(t, p, "skip.json")
		assert.NotContains(t, p, "sub")
	}

	deep, err := FindLogFiles(dir, true)
	require.NoError(t, err)
	assert.Len(t, deep, 4)
}

func TestCategorizeByAP(t *testing.T) {
	groups := CategorizeByAP([]string{
		"/captures/putty-example-outdoor-ap1.txt",
		"/captures/putty-other-outdoor-ap1.txt",
		"/captures/unmatched.txt",
	})

	assert.Len(t, groups["outdoor-ap1"], 2)
	assert.Len(t, groups["unknown"], 1)
}
