package models

import (
	"encoding/json"
	"fmt"
)

// Nullable scalar fields are typed `any`: a field holds nil until a value is
// extracted, and a numeric field whose matched text fails to parse keeps the
// raw string instead of aborting the record.

// Metadata identifies the parser run that produced a record.
type Metadata struct {
	ParserVersion string `json:"parser_version"`
	ParseTime     string `json:"parse_time"`
	InputFile     string `json:"input_file"`
	FileSize      int64  `json:"file_size"`
	CaptureTime   string `json:"capture_time,omitempty"`
}

// MainInfo holds the transcript-level identity fields. ObservedAPName keeps
// the name as it appeared in the prompt when truncation recovery substituted
// a longer candidate, so substitutions stay auditable.
type MainInfo struct {
	APName         any `json:"ap_name"`
	ObservedAPName any `json:"observed_ap_name"`
	ClockTime      any `json:"clock_time"`
}

// VersionInfo is the `show version` section.
type VersionInfo struct {
	Found            bool `json:"found"`
	APName           any  `json:"ap_name"`
	SerialNumber     any  `json:"serial_number"`
	Model            any  `json:"model"`
	ImageFamily      any  `json:"image_family"`
	ImageString      any  `json:"image_string"`
	RunningImage     any  `json:"running_image"`
	UptimeDays       any  `json:"uptime_days"`
	UptimeHours      any  `json:"uptime_hours"`
	UptimeMinutes    any  `json:"uptime_minutes"`
	LastReloadTime   any  `json:"last_reload_time"`
	LastReloadReason any  `json:"last_reload_reason"`
	EthernetMAC      any  `json:"ethernet_mac"`
	CloudID          any  `json:"cloud_id"`
}

// InventoryInfo is the `show inventory` section.
type InventoryInfo struct {
	Found           bool `json:"found"`
	APType          any  `json:"ap_type"`
	APDescription   any  `json:"ap_descr"`
	APProductID     any  `json:"ap_pid"`
	APVersionID     any  `json:"ap_vid"`
	APSerial        any  `json:"ap_serial"`
	APDeviceID      any  `json:"ap_devid"`
	USBDetected     any  `json:"usb_detected"`
	USBStatus       any  `json:"usb_status"`
	USBProductID    any  `json:"usb_pid"`
	USBVendorID     any  `json:"usb_vid"`
	USBManufacturer any  `json:"usb_manufacturer"`
	USBDescription  any  `json:"usb_descr"`
	USBSerial       any  `json:"usb_serial"`
	USBMaxPower     any  `json:"usb_max_power"`
}

// GNSSState is the receiver state block (`GnssState:` through the satellite
// table anchor).
type GNSSState struct {
	NoGNSSDetected     bool `json:"no_gnss_detected"`
	State              any  `json:"state"`
	ExternalAntenna    any  `json:"external_antenna"`
	FixType            any  `json:"fix_type"`
	ValidFix           any  `json:"valid_fix"`
	FixTime            any  `json:"fix_time"`
	LastFixTime        any  `json:"last_fix_time"`
	Latitude           any  `json:"latitude"`
	Longitude          any  `json:"longitude"`
	HorizontalAccuracy any  `json:"horizontal_accuracy"`
	HorizontalDOP      any  `json:"horizontal_dop"`
	AltitudeMSL        any  `json:"altitude_msl"`
	AltitudeHAE        any  `json:"altitude_hae"`
	VerticalAccuracy   any  `json:"vertical_accuracy"`
	NumSat             any  `json:"num_sat"`
	RangeResidual      any  `json:"range_residual"`
	GSTRMS             any  `json:"gst_rms"`
	SatelliteCount     any  `json:"satellite_count"`
	EllipseMajorAxis   any  `json:"ellipse_major_axis"`
	EllipseMinorAxis   any  `json:"ellipse_minor_axis"`
	EllipseOrientation any  `json:"ellipse_orientation"`
	PDOP               any  `json:"pdop"`
	HDOP               any  `json:"hdop"`
	VDOP               any  `json:"vdop"`
	NDOP               any  `json:"ndop"`
	EDOP               any  `json:"edop"`
	GDOP               any  `json:"gdop"`
	TDOP               any  `json:"tdop"`
}

// LocationFix is the reusable position sub-schema shared by the
// post-processor, Cisco GNSS and last-location sections.
//
// Invariant: when Unavailable is true every numeric field is nil; when Found
// is false (section absent) Unavailable is false and every numeric field is
// nil.
type LocationFix struct {
	Found              bool `json:"found"`
	Unavailable        bool `json:"unavailable"`
	Latitude           any  `json:"latitude"`
	Longitude          any  `json:"longitude"`
	HorizontalAccuracy any  `json:"horizontal_accuracy"`
	HorizontalDOP      any  `json:"horizontal_dop"`
	AltitudeMSL        any  `json:"altitude_msl"`
	AltitudeHAE        any  `json:"altitude_hae"`
	VerticalAccuracy   any  `json:"vertical_accuracy"`
	EllipseMajorAxis   any  `json:"ellipse_major_axis"`
	EllipseMinorAxis   any  `json:"ellipse_minor_axis"`
	EllipseOrientation any  `json:"ellipse_orientation"`
}

// LastLocation extends LocationFix with how and when the position was
// derived.
type LastLocation struct {
	LocationFix
	DerivationType any `json:"derivation_type"`
	DerivationTime any `json:"derivation_time"`
}

// SatelliteObservation is one row of the satellite-visibility table. The key
// set follows the table's header row, so observations from different
// transcripts may carry different optional keys; "constellation" is always
// present.
type SatelliteObservation map[string]any

// Constellation returns the constellation name, or "" when absent.
func (o SatelliteObservation) Constellation() string {
	s, _ := o["constellation"].(string)
	return s
}

// DeviceRecord is the assembled output for one transcript. Field order is
// fixed on serialization: metadata first, satellites near the end, raw_data
// last. Records are immutable once assembled.
type DeviceRecord struct {
	Metadata          Metadata               `json:"metadata"`
	Main              MainInfo               `json:"main"`
	ShowVersion       VersionInfo            `json:"show_version"`
	ShowInventory     InventoryInfo          `json:"show_inventory"`
	GNSSState         GNSSState              `json:"gnss_state"`
	GNSSPostprocessor LocationFix            `json:"gnss_postprocessor"`
	CiscoGNSS         LocationFix            `json:"cisco_gnss"`
	LastLocation      LastLocation           `json:"last_location_acquired"`
	CapwapConfig      map[string]any         `json:"capwap_config"`
	Satellites        []SatelliteObservation `json:"satellites"`
	RawData           map[string]any         `json:"raw_data,omitempty"`
}

// ToMap converts the record to its generic map form via a JSON round trip.
// Export and metrics code walk sections generically, and the sorted column
// universe makes key order irrelevant there.
func (r *DeviceRecord) ToMap() (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("remap record: %w", err)
	}
	return m, nil
}
