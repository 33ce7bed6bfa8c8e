package parser

import (
	"regexp"
	"strings"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

// maxTableLines bounds the scan so a missing end-of-table marker cannot run
// into unrelated trailing content.
const maxTableLines = 50

// minTableColumns is the minimum cell count for a line to qualify as an
// observation row; shorter lines are skipped, not errors.
const minTableColumns = 5

var constellations = []string{"GPS", "GLONASS", "GALILEO", "BEIDOU"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// extractSatellites parses the columnar satellite-visibility table anchored
// by the `Const.` header token. The column set comes from the header row, so
// observations from different transcripts may carry different keys. An empty
// result is valid.
func extractSatellites(content string) []models.SatelliteObservation {
	satellites := []models.SatelliteObservation{}

	loc := satTableAnchorRe.FindStringIndex(content)
	if loc == nil {
		return satellites
	}
	lines := strings.Split(content[loc[0]:], "\n")
	headers := whitespaceRe.Split(strings.TrimSpace(lines[0]), -1)

	limit := len(lines)
	if limit > maxTableLines {
		limit = maxTableLines
	}
	for i := 1; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "=") || strings.Contains(line, "#") {
			break // separator or next prompt: end of table
		}
		if !startsWithConstellation(line) {
			continue
		}
		parts := whitespaceRe.Split(line, -1)
		if len(parts) < minTableColumns {
			continue
		}
		obs := models.SatelliteObservation{"constellation": parts[0]}
		for j := 1; j < len(parts) && j < len(headers); j++ {
			obs[strings.ToLower(headers[j])] = coerceCell(parts[j])
		}
		satellites = append(satellites, obs)
	}
	return satellites
}

func startsWithConstellation(line string) bool {
	upper := strings.ToUpper(line)
	for _, c := range constellations {
		if strings.HasPrefix(upper, c) {
			return true
		}
	}
	return false
}

var floatCellRe = regexp.MustCompile(`^[\d\.]+$`)

// coerceCell converts a table cell: int when all digits, float when numeric
// with a dot, otherwise the raw string. Signed cells such as the -128 SNR
// sentinel stay strings; the export aggregators parse them back when
// filtering.
func coerceCell(cell string) any {
	if allDigits(cell) {
		if v, ok := parseInt(cell); ok {
			return v
		}
	}
	if strings.Contains(cell, ".") && floatCellRe.MatchString(cell) {
		if v, ok := parseFloat(cell); ok {
			return v
		}
	}
	return cell
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
