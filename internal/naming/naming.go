// Package naming derives AP names and capture timestamps from the filename
// conventions used by terminal capture tools, and discovers capture files on
// disk.
package naming

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	// putty-<location>-<type>-<name>.ext, where the AP name is the last two
	// hyphenated segments (e.g. putty-example-outdoor-ap1.txt -> outdoor-ap1).
	puttyNameRe = regexp.MustCompile(`putty-([^-.]+)-([^-.]+)-([^-.]+)\.`)
	// session-capture.<fqdn>.<timestamp>.ext, where the AP name is the first
	// label of the fully qualified name.
	sessionNameRe = regexp.MustCompile(`session-capture\.([^.]+)\.`)

	// 20250421-101648-putty-... style prefixes.
	compactStampRe = regexp.MustCompile(`^(\d{8})-(\d{6})`)
	// ...mgmt.example.edu.2025-04-29-173449.474.txt style infixes.
	dashedStampRe = regexp.MustCompile(`\.(\d{4}-\d{2}-\d{2})-(\d{6})\.`)
)

// APNameFromFilename extracts the AP name from a capture filename. It returns
// "" when the filename follows no known convention.
func APNameFromFilename(filename string) string {
	if m := puttyNameRe.FindStringSubmatch(filename); m != nil {
		return m[2] + "-" + m[3]
	}
	if m := sessionNameRe.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	return ""
}

// TimestampFromFilename extracts the capture timestamp from a filename. The
// boolean reports whether a timestamp was found and parsed.
func TimestampFromFilename(filename string) (time.Time, bool) {
	if m := compactStampRe.FindStringSubmatch(filename); m != nil {
		t, err := time.Parse("20060102 150405", m[1]+" "+m[2])
		if err == nil {
			return t, true
		}
	}
	if m := dashedStampRe.FindStringSubmatch(filename); m != nil {
		t, err := time.Parse("2006-01-02 150405", m[1]+" "+m[2])
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var captureExtensions = []string{".txt", ".log", ".txt.gz", ".log.gz"}

func isCaptureFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range captureExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FindLogFiles lists capture files under dir, sorted by path. With recursive
// set it walks the whole tree, otherwise only the directory itself.
func FindLogFiles(dir string, recursive bool) ([]string, error) {
	if recursive {
		var found []string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isCaptureFile(d.Name()) {
				found = append(found, path)
			}
			return nil
		})
		return found, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var found []string
	for _, e := range entries {
		if !e.IsDir() && isCaptureFile(e.Name()) {
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}
	return found, nil
}

// CategorizeByAP groups capture paths by the AP name in their filename.
// Paths with no recognizable name land under "unknown".
func CategorizeByAP(paths []string) map[string][]string {
	groups := map[string][]string{}
	for _, p := range paths {
		name := APNameFromFilename(filepath.Base(p))
		if name == "" {
			name = "unknown"
		}
		groups[name] = append(groups[name], p)
	}
	return groups
}
