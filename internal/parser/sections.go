package parser

import (
	"regexp"
	"strings"
)

// extractSection locates a named marker case-insensitively and returns the
// text from the marker to the next blank-line boundary (or end of input).
// found is false when the marker does not occur.
func extractSection(content, marker string) (string, bool) {
	start := indexFold(content, marker)
	if start < 0 {
		return "", false
	}
	section := content[start:]
	if end := strings.Index(section, "\n\n"); end >= 0 {
		section = section[:end]
	}
	return section, true
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}

// sentinelAfter reports whether the text immediately following the marker is
// the N/A sentinel, which signals deliberate absence of data for the whole
// section.
func sentinelAfter(content, marker string) bool {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(marker) + `\s*N/A`)
	return re.MatchString(content)
}

// composite applies a multi-capture pattern to section text and assigns all
// groups or none, so one misaligned line cannot set a partial field set.
// names and the pattern's capture groups correspond positionally.
func composite(section string, pattern *regexp.Regexp, names []string, vals map[string]any) {
	m := pattern.FindStringSubmatch(section)
	if m == nil {
		return
	}
	for i, name := range names {
		if v, ok := parseFloat(m[i+1]); ok {
			vals[name] = v
		} else {
			vals[name] = m[i+1]
		}
	}
}
