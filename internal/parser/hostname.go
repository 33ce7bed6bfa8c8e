package parser

import (
	"regexp"
	"strings"
)

// Cisco AP prompts look like `<name>#show ...`; AP names cap at 32 chars.
var promptRe = regexp.MustCompile(`(?i)(?:^|\n)([^\n#]+)#show `)

const maxAPNameLen = 32

// extractAPName reads the device name from the line immediately preceding a
// command invocation. Returns "" when no prompt is present.
func extractAPName(content string) string {
	m := promptRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	if len(name) > maxAPNameLen {
		name = name[:maxAPNameLen]
	}
	return name
}

// recoverHostname works around an upstream capture defect that truncates
// hostnames ending in a hyphen plus a 1-2 character suffix (for example
// "site-outdoor-a" captured from "site-outdoor-ap1"). The candidate is the
// host part of the originating connection address. The substitution fires
// only when the truncated suffix is at most two characters and the candidate
// strictly extends the truncated prefix; otherwise the observed name is kept
// unchanged. The heuristic is deliberately not extended beyond this: a wrong
// guess would silently mislabel a device's records.
func recoverHostname(observed, address string) string {
	if observed == "" || address == "" || !strings.Contains(observed, "-") {
		return observed
	}
	segments := strings.Split(observed, "-")
	last := segments[len(segments)-1]
	if len(last) > 2 {
		return observed
	}
	candidate := strings.Split(address, ".")[0]
	prefix := observed[:len(observed)-len(last)]
	if len(candidate) > len(observed) && strings.HasPrefix(candidate, prefix) {
		// the substituted name honors the same cap as observed names
		if len(candidate) > maxAPNameLen {
			candidate = candidate[:maxAPNameLen]
		}
		return candidate
	}
	return observed
}
