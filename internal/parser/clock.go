package parser

import (
	"regexp"
	"strings"
)

var (
	// prompt style: `show clock` followed by a line starting with `*`
	clockPromptRe = regexp.MustCompile(`(?i)show clock\s*\n\s*\*([^\n]+)`)
	// banner style: `***** show clock *****` block up to the next banner
	clockBannerRe = regexp.MustCompile(`(?i)\*{5} show clock \*{5}([\s\S]+?)(?:\n\*{5} )`)
)

// extractClockTime accepts both transcript styles; whichever matches first
// wins. Returns "" when neither is present.
func extractClockTime(content string) string {
	if m := clockPromptRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := clockBannerRe.FindStringSubmatch(content); m != nil {
		for _, line := range strings.Split(m[1], "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "*") {
				return strings.TrimSpace(strings.TrimLeft(line, "*"))
			}
		}
	}
	return ""
}
