// Package parser turns raw CLI session transcripts from Cisco access points
// into schema-complete GNSS records. Extraction is best-effort: a missing
// section or field is represented as null/false in the output, never as an
// error, and the record always carries every declared field.
package parser

import (
	"time"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

// Version is the parser version carried in record metadata.
const Version = "1.3.0"

// Options adjust a single parse.
type Options struct {
	// SourceAddress is the originating connection address, used only for
	// hostname truncation recovery.
	SourceAddress string
	// IncludeRaw adds the scavenged raw key/value section to the record.
	IncludeRaw bool
}

// Parser assembles DeviceRecords from transcript text. It holds no mutable
// state; a single Parser is safe for concurrent use.
type Parser struct {
	now func() time.Time
}

// New returns a Parser using the wall clock for parse timestamps.
func New() *Parser {
	return &Parser{now: time.Now}
}

// Parse converts one complete transcript into a DeviceRecord. It never fails
// on content: absent sections yield null fields, and an empty transcript
// yields a schema-complete record of nulls. When the transcript reports
// "No GNSS detected", satellite-table parsing and raw-data scavenging are
// skipped entirely.
func (p *Parser) Parse(content string, opts Options) *models.DeviceRecord {
	rec := &models.DeviceRecord{
		Metadata: models.Metadata{
			ParserVersion: Version,
			ParseTime:     p.now().UTC().Format(time.RFC3339),
		},
		Satellites: []models.SatelliteObservation{},
	}

	observed := extractAPName(content)
	name := recoverHostname(observed, opts.SourceAddress)
	if name != "" {
		rec.Main.APName = name
	}
	if name != observed {
		rec.Main.ObservedAPName = observed
	}
	if clock := extractClockTime(content); clock != "" {
		rec.Main.ClockTime = clock
	}

	rec.ShowVersion = extractShowVersion(content)
	rec.ShowInventory = extractShowInventory(content)
	rec.GNSSState = extractGNSSState(content)
	rec.GNSSPostprocessor = extractLocationFix(content, markerPostprocessor)
	rec.CiscoGNSS = extractLocationFix(content, markerCiscoGNSS)
	rec.LastLocation = extractLastLocation(content)
	rec.CapwapConfig = extractCapwapConfig(content)

	if !rec.GNSSState.NoGNSSDetected {
		rec.Satellites = extractSatellites(content)
		if opts.IncludeRaw {
			rec.RawData = extractRawData(content)
		}
	}

	return rec
}
