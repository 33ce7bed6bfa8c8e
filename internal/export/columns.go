// Package export flattens batches of device records into delimited text.
// The column universe is computed in a first pass over the whole batch, then
// every record is flattened against that fixed set, which keeps the header
// stable and reproducible for a given input set.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

// satelliteAggregateColumns is the fixed part of the satellite column set.
// Satellite cardinality is unbounded and must not leak into column count, so
// the list contributes aggregates instead of one column per satellite.
var satelliteAggregateColumns = []string{
	"satellites_total_count",
	"satellites_used_count",
	"satellites_unused_count",
	"satellites_snr_min",
	"satellites_snr_max",
	"satellites_snr_avg",
	"satellites_snr_median",
	"satellites_elevation_min",
	"satellites_elevation_max",
	"satellites_elevation_avg",
	"satellites_elevation_median",
}

// BuildColumnUniverse computes the minimal complete set of flattened column
// names over a batch of records, sorted lexicographically so the header is
// byte-identical across runs with the same input set.
func BuildColumnUniverse(records []*models.DeviceRecord) ([]string, error) {
	set := map[string]struct{}{}
	for _, rec := range records {
		m, err := rec.ToMap()
		if err != nil {
			return nil, err
		}
		collectColumns(m, set)
	}
	columns := make([]string, 0, len(set))
	for c := range set {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns, nil
}

func collectColumns(record map[string]any, set map[string]struct{}) {
	for section, data := range record {
		switch {
		case section == "satellites":
			sats, _ := data.([]any)
			for _, c := range satelliteColumnNames(sats) {
				set[c] = struct{}{}
			}
		case section == "raw_data":
			if raw, ok := data.(map[string]any); ok {
				for key := range raw {
					set["raw_"+key] = struct{}{}
				}
			}
		default:
			sec, ok := data.(map[string]any)
			if !ok {
				set[section] = struct{}{}
				continue
			}
			for key, value := range sec {
				if slots, isList := value.([]any); isList && key == "slots" {
					for _, c := range slotColumnNames(slots, section) {
						set[c] = struct{}{}
					}
					continue
				}
				set[section+"_"+key] = struct{}{}
			}
		}
	}
}

func satelliteColumnNames(satellites []any) []string {
	columns := append([]string{}, satelliteAggregateColumns...)
	seen := map[string]struct{}{}
	for _, s := range satellites {
		obs, ok := s.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obs["constellation"].(string)
		name = strings.ToLower(name)
		if name == "" {
			name = "unknown"
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		columns = append(columns,
			fmt.Sprintf("satellites_%s_total", name),
			fmt.Sprintf("satellites_%s_used", name),
			fmt.Sprintf("satellites_%s_unused", name),
		)
	}
	return columns
}

// slotColumnNames contributes one column per distinct (slot number, field)
// pair plus the slots count.
func slotColumnNames(slots []any, section string) []string {
	columns := []string{section + "_slots_count"}
	for _, s := range slots {
		slot, ok := s.(map[string]any)
		if !ok {
			continue
		}
		num := slotNumber(slot)
		config, _ := slot["configuration"].(map[string]any)
		for key := range config {
			columns = append(columns, fmt.Sprintf("%s_slot%d_%s", section, num, key))
		}
	}
	return columns
}

func slotNumber(slot map[string]any) int {
	switch v := slot["slot_number"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
