package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
	"github.com/lukejenkins/ap-gnss-stats/internal/statistics"
)

// Row is a single flattened record keyed by column name. Every column in the
// universe is present; columns with no value hold the empty string.
type Row map[string]string

// invalidReadingFloor filters receiver sentinel values such as -128 out of
// SNR and elevation statistics.
const invalidReadingFloor = -100

// FlattenRecord projects a record onto the given column universe. Fields not
// present in the universe are dropped.
func FlattenRecord(rec *models.DeviceRecord, columns []string) (Row, error) {
	m, err := rec.ToMap()
	if err != nil {
		return nil, err
	}
	return flattenMap(m, columns), nil
}

func flattenMap(record map[string]any, columns []string) Row {
	row := make(Row, len(columns))
	for _, c := range columns {
		row[c] = ""
	}
	set := func(column string, value any) {
		if _, ok := row[column]; ok {
			row[column] = formatValue(value)
		}
	}
	for section, data := range record {
		switch {
		case section == "satellites":
			sats, _ := data.([]any)
			for column, value := range aggregateSatellites(sats) {
				set(column, value)
			}
		case section == "raw_data":
			if raw, ok := data.(map[string]any); ok {
				for key, value := range raw {
					set("raw_"+key, value)
				}
			}
		default:
			sec, ok := data.(map[string]any)
			if !ok {
				set(section, data)
				continue
			}
			for key, value := range sec {
				if slots, isList := value.([]any); isList && key == "slots" {
					flattenSlots(slots, section, set)
					continue
				}
				set(section+"_"+key, value)
			}
		}
	}
	return row
}

func flattenSlots(slots []any, section string, set func(string, any)) {
	set(section+"_slots_count", len(slots))
	for _, s := range slots {
		slot, ok := s.(map[string]any)
		if !ok {
			continue
		}
		num := slotNumber(slot)
		config, _ := slot["configuration"].(map[string]any)
		for key, value := range config {
			set(fmt.Sprintf("%s_slot%d_%s", section, num, key), value)
		}
	}
}

// satelliteView projects the loose observation map onto the field aliases
// different receiver firmwares emit for the same quantity.
type satelliteView struct {
	Constellation string `mapstructure:"constellation"`
	Used          any    `mapstructure:"used"`
	SNR           any    `mapstructure:"snr"`
	CN0           any    `mapstructure:"cn0"`
	CNO           any    `mapstructure:"cno"`
	Elev          any    `mapstructure:"elev"`
	Elevation     any    `mapstructure:"elevation"`
}

// aggregateSatellites reduces the satellite list to counts and SNR/elevation
// statistics. An empty list yields no values, so the aggregate columns stay
// blank rather than reporting zero satellites for a device that listed none.
func aggregateSatellites(satellites []any) map[string]any {
	if len(satellites) == 0 {
		return nil
	}
	out := map[string]any{}
	var snrs, elevations []float64
	used := 0
	perConstellation := map[string][2]int{} // total, used
	for _, s := range satellites {
		obs, ok := s.(map[string]any)
		if !ok {
			continue
		}
		var view satelliteView
		if err := mapstructure.Decode(obs, &view); err != nil {
			continue
		}
		name := strings.ToLower(view.Constellation)
		if name == "" {
			name = "unknown"
		}
		counts := perConstellation[name]
		counts[0]++
		if usedFlag(view.Used) {
			used++
			counts[1]++
		}
		perConstellation[name] = counts
		if v, ok := numeric(firstNonNil(view.SNR, view.CN0, view.CNO)); ok && v > invalidReadingFloor {
			snrs = append(snrs, v)
		}
		if v, ok := numeric(firstNonNil(view.Elev, view.Elevation)); ok && v > invalidReadingFloor {
			elevations = append(elevations, v)
		}
	}

	total := len(satellites)
	out["satellites_total_count"] = total
	out["satellites_used_count"] = used
	out["satellites_unused_count"] = total - used
	for name, counts := range perConstellation {
		out["satellites_"+name+"_total"] = counts[0]
		out["satellites_"+name+"_used"] = counts[1]
		out["satellites_"+name+"_unused"] = counts[0] - counts[1]
	}
	if len(snrs) > 0 {
		out["satellites_snr_min"] = statistics.Min(snrs)
		out["satellites_snr_max"] = statistics.Max(snrs)
		out["satellites_snr_avg"] = statistics.Round2(statistics.Mean(snrs))
		out["satellites_snr_median"] = statistics.Median(snrs)
	}
	if len(elevations) > 0 {
		out["satellites_elevation_min"] = statistics.Min(elevations)
		out["satellites_elevation_max"] = statistics.Max(elevations)
		out["satellites_elevation_avg"] = statistics.Round2(statistics.Mean(elevations))
		out["satellites_elevation_median"] = statistics.Median(elevations)
	}
	return out
}

func usedFlag(v any) bool {
	switch u := v.(type) {
	case bool:
		return u
	case string:
		s := strings.ToLower(strings.TrimSpace(u))
		return s == "yes" || s == "true"
	default:
		return false
	}
}

func firstNonNil(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// formatValue renders a value for a CSV cell. Floats use the shortest exact
// representation, booleans are lowercased, and embedded newlines collapse to
// spaces so a cell never spans lines.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return strings.TrimSpace(newlineReplacer.Replace(x))
	default:
		return strings.TrimSpace(newlineReplacer.Replace(fmt.Sprint(x)))
	}
}
