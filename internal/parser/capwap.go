package parser

import (
	"regexp"
	"strings"
)

var (
	capwapSectionRe = regexp.MustCompile(`(?is)show capwap client configuration\s*(.*?)(?:\n\w+#|\z)`)
	slotHeaderRe    = regexp.MustCompile(`Slot (\d+) Config:`)
	slotSubheadRe   = regexp.MustCompile(`^\s+([^:]+?)\s*:\s*$`)
	slotKVRe        = regexp.MustCompile(`^\s+([^:]+?)\s*:\s*(.+?)$`)
	capwapKVRe      = regexp.MustCompile(`^([^:]+?)\s*:\s*(.+?)$`)
	deepIndentRe    = regexp.MustCompile(`^\s{6,}`)
)

// extractCapwapConfig parses the `show capwap client configuration` output:
// top-level key/value fields plus every `Slot N Config:` sub-block. The
// section is free-form, so it stays a map; "found" and "slots" are always
// present.
func extractCapwapConfig(content string) map[string]any {
	config := map[string]any{
		"found": false,
		"slots": []any{},
	}
	m := capwapSectionRe.FindStringSubmatch(content)
	if m == nil {
		return config
	}
	section := strings.TrimSpace(m[1])
	config["found"] = true

	for k, v := range capwapMainFields(section) {
		config[k] = v
	}
	config["slots"] = capwapSlots(section)
	return config
}

// capwapMainFields reads top-level key/value lines, skipping slot blocks and
// their indented content.
func capwapMainFields(section string) map[string]any {
	fields := map[string]any{}
	for _, line := range strings.Split(section, "\n") {
		if strings.TrimSpace(line) == "" ||
			strings.HasPrefix(strings.TrimSpace(line), "Slot") ||
			strings.HasPrefix(line, "    ") {
			continue
		}
		if m := capwapKVRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			fields[normalizeKey(m[1])] = normalizeValue(m[2])
		}
	}
	return fields
}

// capwapSlots splits the section on `Slot N Config:` headers and parses each
// block's key/value pairs, keeping nested subsections (ends-with-colon
// headers followed by deeper-indented lines) as nested maps.
func capwapSlots(section string) []any {
	headers := slotHeaderRe.FindAllStringSubmatchIndex(section, -1)
	slots := make([]any, 0, len(headers))
	for i, h := range headers {
		end := len(section)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		num, _ := parseInt(section[h[2]:h[3]])
		slots = append(slots, map[string]any{
			"slot_number":   num,
			"configuration": parseSlotBlock(section[h[1]:end]),
		})
	}
	return slots
}

func parseSlotBlock(block string) map[string]any {
	config := map[string]any{}
	var subName string
	var subData map[string]any

	flush := func() {
		if subName != "" && len(subData) > 0 {
			config[subName] = subData
		}
		subName = ""
		subData = nil
	}

	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := slotSubheadRe.FindStringSubmatch(line); m != nil {
			flush()
			subName = normalizeKey(m[1])
			subData = map[string]any{}
			continue
		}
		if m := slotKVRe.FindStringSubmatch(line); m != nil {
			key := normalizeKey(m[1])
			value := normalizeValue(m[2])
			if subName != "" && deepIndentRe.MatchString(line) {
				subData[key] = value
			} else {
				config[key] = value
				flush()
			}
		}
	}
	flush()
	return config
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), " ", "_"))
}

// normalizeValue widens the boolean spellings this output uses
// (yes/no, enabled/disabled) and coerces numerics.
func normalizeValue(value string) any {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "true", "yes", "enabled":
		return true
	case "false", "no", "disabled":
		return false
	}
	if v, ok := parseInt(value); ok {
		return v
	}
	if v, ok := parseFloat(value); ok {
		return v
	}
	return value
}
