package parser

import (
	"regexp"
	"strings"
)

// kvRe scavenges loose `Label: value` pairs anywhere in the transcript for
// the optional raw_data section.
var kvRe = regexp.MustCompile(`([A-Za-z0-9_]+(?:\s+[A-Za-z0-9_]+)*)(?:\s*:)\s*([\d\.\-]+|[A-Za-z0-9]+(?:\s+[A-Za-z0-9]+)*)`)

// extractRawData collects free-text key/value pairs, normalizing keys to
// snake_case and coercing values to bool, int, float or string.
func extractRawData(content string) map[string]any {
	raw := map[string]any{}
	for _, m := range kvRe.FindAllStringSubmatch(content, -1) {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(m[1]), " ", "_"))
		raw[key] = coerceRaw(strings.TrimSpace(m[2]))
	}
	return raw
}

func coerceRaw(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if strings.Contains(value, ".") {
		if v, ok := parseFloat(value); ok {
			return v
		}
	} else if v, ok := parseInt(value); ok {
		return v
	}
	return value
}
