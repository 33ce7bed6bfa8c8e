// Package promexport renders parsed records as Prometheus metrics in the
// node_exporter textfile collector format. Metrics are written to a file for
// a collector to pick up; the tool itself never listens on the network.
package promexport

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

type gaugeDef struct {
	name  string
	help  string
	value func(*models.DeviceRecord) (float64, bool)
}

var gaugeDefs = []gaugeDef{
	{"ap_gnss_latitude_degrees", "Latitude of the last GNSS fix.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.Latitude) }},
	{"ap_gnss_longitude_degrees", "Longitude of the last GNSS fix.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.Longitude) }},
	{"ap_gnss_altitude_msl_meters", "Altitude above mean sea level.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.AltitudeMSL) }},
	{"ap_gnss_horizontal_accuracy_meters", "Estimated horizontal accuracy.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.HorizontalAccuracy) }},
	{"ap_gnss_vertical_accuracy_meters", "Estimated vertical accuracy.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.VerticalAccuracy) }},
	{"ap_gnss_pdop", "Position dilution of precision.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.PDOP) }},
	{"ap_gnss_hdop", "Horizontal dilution of precision.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.HDOP) }},
	{"ap_gnss_vdop", "Vertical dilution of precision.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.VDOP) }},
	{"ap_gnss_satellites_visible", "Satellites visible to the receiver.",
		func(r *models.DeviceRecord) (float64, bool) {
			if v, ok := numeric(r.GNSSState.SatelliteCount); ok {
				return v, true
			}
			return numeric(r.GNSSState.NumSat)
		}},
	{"ap_gnss_satellites_used", "Satellites used in the current fix.",
		func(r *models.DeviceRecord) (float64, bool) { return numeric(r.GNSSState.NumSat) }},
	{"ap_uptime_minutes", "AP uptime reported by show version.",
		func(r *models.DeviceRecord) (float64, bool) { return uptimeMinutes(r) }},
}

// WriteTextfile writes one gauge sample per record and metric to path,
// labeled by AP name. Records without an AP name are skipped since the label
// is the only thing distinguishing devices in a shared textfile.
func WriteTextfile(path string, records []*models.DeviceRecord) error {
	registry := prometheus.NewRegistry()
	gauges := make([]*prometheus.GaugeVec, len(gaugeDefs))
	for i, def := range gaugeDefs {
		gauges[i] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: def.name,
			Help: def.help,
		}, []string{"ap_name"})
		if err := registry.Register(gauges[i]); err != nil {
			return fmt.Errorf("registering %s: %w", def.name, err)
		}
	}

	exported := 0
	for _, rec := range records {
		name, _ := rec.Main.APName.(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		exported++
		for i, def := range gaugeDefs {
			if v, ok := def.value(rec); ok {
				gauges[i].WithLabelValues(name).Set(v)
			}
		}
	}
	if exported == 0 {
		return fmt.Errorf("no records with an AP name to export")
	}

	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("writing metrics textfile %q: %w", path, err)
	}
	return nil
}

func uptimeMinutes(r *models.DeviceRecord) (float64, bool) {
	days, dok := numeric(r.ShowVersion.UptimeDays)
	hours, hok := numeric(r.ShowVersion.UptimeHours)
	minutes, mok := numeric(r.ShowVersion.UptimeMinutes)
	if !dok && !hok && !mok {
		return 0, false
	}
	return days*24*60 + hours*60 + minutes, true
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
