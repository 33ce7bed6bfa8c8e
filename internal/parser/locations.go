package parser

import (
	"regexp"
	"strings"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

// Section markers for the three LocationFix blocks.
const (
	markerPostprocessor = "GNSS_PostProcessor:"
	markerCiscoGNSS     = "CiscoGNSS:"
	markerLastLocation  = "Last Location Acquired:"
)

var locationFields = []Field{
	field("latitude", `Latitude:\s*([\d\.-]+)`, KindFloat),
	field("longitude", `Longitude:\s*([\d\.-]+)`, KindFloat),
	field("altitude_msl", `Altitude MSL:\s*([\d\.]+)`, KindFloat),
	field("altitude_hae", `HAE:\s*([\d\.]+)`, KindFloat),
	field("vertical_accuracy", `VertAcc:\s*([\d\.]+)`, KindFloat),
}

var (
	locEllipseRe = regexp.MustCompile(`(?i)Major axis:\s*([\d\.]+)\s+Minor axis:\s*([\d\.]+)\s+Orientation:\s*([\d\.]+)`)
	locHorAccRe  = regexp.MustCompile(`(?i)HorAcc:\s*([\d\.]+)\s+hDOP:\s*([\d\.]+)`)
)

// extractLocationFix parses one LocationFix section. Sentinel detection
// takes precedence: a marker immediately followed by N/A sets Unavailable
// and leaves every numeric field nil.
func extractLocationFix(content, marker string) models.LocationFix {
	var fix models.LocationFix
	section, found := extractSection(content, marker)
	if !found {
		return fix
	}
	fix.Found = true
	if sentinelAfter(content, marker) {
		fix.Unavailable = true
		return fix
	}

	vals := extractAll(section, locationFields)
	composite(section, locEllipseRe, []string{"ellipse_major_axis", "ellipse_minor_axis", "ellipse_orientation"}, vals)
	composite(section, locHorAccRe, []string{"horizontal_accuracy", "horizontal_dop"}, vals)

	fix.Latitude = vals["latitude"]
	fix.Longitude = vals["longitude"]
	fix.HorizontalAccuracy = vals["horizontal_accuracy"]
	fix.HorizontalDOP = vals["horizontal_dop"]
	fix.AltitudeMSL = vals["altitude_msl"]
	fix.AltitudeHAE = vals["altitude_hae"]
	fix.VerticalAccuracy = vals["vertical_accuracy"]
	fix.EllipseMajorAxis = vals["ellipse_major_axis"]
	fix.EllipseMinorAxis = vals["ellipse_minor_axis"]
	fix.EllipseOrientation = vals["ellipse_orientation"]
	return fix
}

var (
	derivationTypeRe = regexp.MustCompile(`(?i)Derivation Type:\s*([^\n]+)`)
	derivationTimeRe = regexp.MustCompile(`(?i)Time:\s*([\d-]+\s+[\d:]+)`)
)

// extractLastLocation parses the Last Location Acquired section, which is a
// LocationFix plus the derivation type and time.
func extractLastLocation(content string) models.LastLocation {
	loc := models.LastLocation{LocationFix: extractLocationFix(content, markerLastLocation)}
	if !loc.Found || loc.Unavailable {
		return loc
	}
	section, _ := extractSection(content, markerLastLocation)
	if m := derivationTypeRe.FindStringSubmatch(section); m != nil {
		loc.DerivationType = strings.TrimSpace(m[1])
	}
	if m := derivationTimeRe.FindStringSubmatch(section); m != nil {
		loc.DerivationTime = strings.TrimSpace(m[1])
	}
	return loc
}
