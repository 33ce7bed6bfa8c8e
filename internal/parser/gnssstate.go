package parser

import (
	"regexp"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

var gnssStateFields = []Field{
	field("state", `GnssState:\s*(\w+)`, KindString),
	field("external_antenna", `ExternalAntenna:\s*(true|false)`, KindBool),
	field("fix_type", `Fix:\s*([^\s]+)`, KindString),
	field("valid_fix", `ValidFix:\s*(true|false)`, KindBool),
	field("fix_time", `Time:\s*([\d-]+\s+[\d:]+)`, KindString),
	field("last_fix_time", `LastFixTime:\s*([\d-]+\s+[\d:]+)`, KindString),
	field("latitude", `Latitude:\s*([\d\.-]+)`, KindFloat),
	field("longitude", `Longitude:\s*([\d\.-]+)`, KindFloat),
	field("horizontal_accuracy", `HorAcc:\s*([\d\.]+)`, KindFloat),
	field("altitude_msl", `Altitude MSL:\s*([\d\.]+)`, KindFloat),
	field("altitude_hae", `HAE:\s*([\d\.]+)`, KindFloat),
	field("vertical_accuracy", `VertAcc:\s*([\d\.]+)`, KindFloat),
	field("num_sat", `NumSat:\s*(\d+)`, KindInt),
	field("range_residual", `RangeRes:\s*([\d\.]+)`, KindFloat),
	field("gst_rms", `GpGstRms:\s*([\d\.]+)`, KindFloat),
	field("satellite_count", `SatelliteCount:\s*(\d+)`, KindInt),
}

var (
	noGNSSRe = regexp.MustCompile(`(?i)show gnss info\s*\n\s*No GNSS detected`)

	// These values are only ever emitted together on one line, so a combined
	// pattern keeps them all-or-nothing.
	ellipseRe = regexp.MustCompile(`(?i)Uncertainty Ellipse:\s*Major axis:\s*([\d\.]+)\s*Minor axis:\s*([\d\.]+)\s*Orientation:\s*([\d\.]+)`)
	dopRe     = regexp.MustCompile(`(?i)pDOP:\s*([\d\.]+)\s+hDOP:\s*([\d\.]+)\s+vDOP:\s*([\d\.]+)\s+nDOP:\s*([\d\.]+)\s+eDOP:\s*([\d\.]+)\s+gDOP:\s*([\d\.]+)\s+tDOP:\s*([\d\.]+)`)
	// the first hDOP rides on the HorAcc line, before the DOP block
	horAccHDOPRe = regexp.MustCompile(`(?i)HorAcc:\s*[\d\.]+\s+hDOP:\s*([\d\.]+)`)

	satTableAnchorRe = regexp.MustCompile(`(?i)Const\.`)
)

var ellipseNames = []string{"ellipse_major_axis", "ellipse_minor_axis", "ellipse_orientation"}
var dopNames = []string{"pdop", "hdop", "vdop", "ndop", "edop", "gdop", "tdop"}

// noGNSSDetected reports the short-circuit sentinel: `show gnss info`
// answered with `No GNSS detected`.
func noGNSSDetected(content string) bool {
	return noGNSSRe.MatchString(content)
}

// extractGNSSState parses the receiver state block. The section runs from
// the GnssState marker to the satellite table anchor.
func extractGNSSState(content string) models.GNSSState {
	var st models.GNSSState
	st.NoGNSSDetected = noGNSSDetected(content)
	if st.NoGNSSDetected {
		return st
	}

	start := indexFold(content, "GnssState:")
	if start < 0 {
		return st
	}
	section := content[start:]
	if loc := satTableAnchorRe.FindStringIndex(section); loc != nil {
		section = section[:loc[0]]
	}

	vals := extractAll(section, gnssStateFields)
	composite(section, ellipseRe, ellipseNames, vals)
	composite(section, dopRe, dopNames, vals)
	if m := horAccHDOPRe.FindStringSubmatch(section); m != nil {
		vals["horizontal_dop"] = coerce(KindFloat, m[1])
	}

	st.State = vals["state"]
	st.ExternalAntenna = vals["external_antenna"]
	st.FixType = vals["fix_type"]
	st.ValidFix = vals["valid_fix"]
	st.FixTime = vals["fix_time"]
	st.LastFixTime = vals["last_fix_time"]
	st.Latitude = vals["latitude"]
	st.Longitude = vals["longitude"]
	st.HorizontalAccuracy = vals["horizontal_accuracy"]
	st.HorizontalDOP = vals["horizontal_dop"]
	st.AltitudeMSL = vals["altitude_msl"]
	st.AltitudeHAE = vals["altitude_hae"]
	st.VerticalAccuracy = vals["vertical_accuracy"]
	st.NumSat = vals["num_sat"]
	st.RangeResidual = vals["range_residual"]
	st.GSTRMS = vals["gst_rms"]
	st.SatelliteCount = vals["satellite_count"]
	st.EllipseMajorAxis = vals["ellipse_major_axis"]
	st.EllipseMinorAxis = vals["ellipse_minor_axis"]
	st.EllipseOrientation = vals["ellipse_orientation"]
	st.PDOP = vals["pdop"]
	st.HDOP = vals["hdop"]
	st.VDOP = vals["vdop"]
	st.NDOP = vals["ndop"]
	st.EDOP = vals["edop"]
	st.GDOP = vals["gdop"]
	st.TDOP = vals["tdop"]
	return st
}
