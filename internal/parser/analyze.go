package parser

import "strings"

// sectionMarkers are the transcript landmarks Analyze counts, keyed by the
// name they get in the census.
var sectionMarkers = map[string]string{
	"show_gnss_command":      "show gnss info",
	"show_version_command":   "show version",
	"show_inventory_command": "show inventory",
	"show_capwap_command":    "show capwap client configuration",
	"gnss_state":             "GnssState:",
	"gnss_postprocessor":     "GNSS_PostProcessor:",
	"cisco_gnss":             "CiscoGNSS:",
	"last_location_acquired": "Last Location Acquired:",
	"satellite_table":        "Const.",
	"no_gnss_sentinel":       "No GNSS detected",
}

// Analyze reports a structural census of a transcript without parsing it:
// which landmarks appear and how often, plus basic shape numbers. Useful for
// triaging captures that parse to mostly-empty records.
func Analyze(content string) map[string]any {
	counts := map[string]int{}
	lower := strings.ToLower(content)
	for name, marker := range sectionMarkers {
		counts[name] = strings.Count(lower, strings.ToLower(marker))
	}

	found := []string{}
	missing := []string{}
	for name := range sectionMarkers {
		if counts[name] > 0 {
			found = append(found, name)
		} else {
			missing = append(missing, name)
		}
	}

	return map[string]any{
		"line_count":       strings.Count(content, "\n") + 1,
		"byte_count":       len(content),
		"marker_counts":    counts,
		"sections_found":   len(found),
		"sections_missing": missing,
		"prompt_detected":  promptRe.MatchString(content),
	}
}
