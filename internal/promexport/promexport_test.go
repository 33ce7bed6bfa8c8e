package promexport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

func positionedRecord(name string, lat, lon float64) *models.DeviceRecord {
	rec := &models.DeviceRecord{}
	rec.Main.APName = name
	rec.GNSSState.Latitude = lat
	rec.GNSSState.Longitude = lon
	rec.GNSSState.PDOP = 1.5
	rec.GNSSState.NumSat = 14
	rec.ShowVersion.UptimeDays = 1
	rec.ShowVersion.UptimeHours = 2
	rec.ShowVersion.UptimeMinutes = 30
	return rec
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ap_gnss.prom")
	records := []*models.DeviceRecord{
		positionedRecord("outdoor-ap1", 41.1939, -111.941),
		positionedRecord("outdoor-ap2", 41.2, -111.95),
	}

	require.NoError(t, WriteTextfile(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `ap_gnss_latitude_degrees{ap_name="outdoor-ap1"} 41.1939`)
	assert.Contains(t, out, `ap_gnss_longitude_degrees{ap_name="outdoor-ap2"} -111.95`)
	assert.Contains(t, out, `ap_gnss_pdop{ap_name="outdoor-ap1"} 1.5`)
	assert.Contains(t, out, `ap_gnss_satellites_used{ap_name="outdoor-ap1"} 14`)
	// 1 day, 2 hours, 30 minutes
	assert.Contains(t, out, `ap_uptime_minutes{ap_name="outdoor-ap1"} 1590`)
	assert.Contains(t, out, "# HELP ap_gnss_latitude_degrees")
}

func TestWriteTextfileSkipsNamelessRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ap_gnss.prom")
	named := positionedRecord("outdoor-ap1", 41.0, -111.0)
	nameless := positionedRecord("", 42.0, -112.0)

	require.NoError(t, WriteTextfile(path, []*models.DeviceRecord{named, nameless}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "42")
}

func TestWriteTextfileAllNameless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ap_gnss.prom")
	err := WriteTextfile(path, []*models.DeviceRecord{positionedRecord("", 1, 2)})
	assert.Error(t, err)
}

func TestWriteTextfileSkipsNullFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ap_gnss.prom")
	rec := &models.DeviceRecord{}
	rec.Main.APName = "bare-ap"

	require.NoError(t, WriteTextfile(path, []*models.DeviceRecord{rec}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `ap_gnss_latitude_degrees{ap_name="bare-ap"}`)
}
