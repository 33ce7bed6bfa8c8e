package parser

import (
	"regexp"
	"strings"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

// commandSection extracts the output of a prompt-delimited command: from the
// `<name>#<command>` line to the next prompt of the same device. Transcripts
// without a closing prompt fall back to a bounded slice, and banner-delimited
// captures (`***** <command> *****`) are accepted as a second style.
func commandSection(content string, cmdRe, bannerRe *regexp.Regexp) (string, bool) {
	if m := cmdRe.FindStringSubmatchIndex(content); m != nil {
		prompt := strings.TrimSpace(content[m[2]:m[3]])
		rest := content[m[1]:]
		if end := strings.Index(rest, "\n"+prompt+"#"); end >= 0 {
			return rest[:end], true
		}
		if len(rest) > 2000 {
			rest = rest[:2000]
		}
		return rest, true
	}
	if m := bannerRe.FindString(content); m != "" {
		return m, true
	}
	return "", false
}

var (
	versionCmdRe    = regexp.MustCompile(`(?i)(?:^|\n)([^\n#]+)#\s*show\s+version`)
	versionBannerRe = regexp.MustCompile(`(?i)\*{5} show version \*{5}[\s\S]+?(?:\n\*{5} |\z)`)

	uptimeRe       = regexp.MustCompile(`(?m)^(.*?) uptime is (\d+) days, (\d+) hours, (\d+) minutes`)
	imageLineRe    = regexp.MustCompile(`Cisco AP Software, \(([^)]+)\),\s*([^\n]+)`)
	reloadReasonRe = regexp.MustCompile(`(?m)^Last reload reason\s*:\s*(.*)$`)
)

var versionFields = []Field{
	field("serial_number", `Top Assembly Serial Number\s*:\s*([^\n]+)`, KindString),
	field("model", `Product/Model Number\s*:\s*([^\n]+)`, KindString),
	field("running_image", `AP Running Image\s*:\s*([^\n]+)`, KindString),
	field("last_reload_time", `Last reload time\s*:\s*([^\n]+)`, KindString),
	field("ethernet_mac", `Base ethernet MAC Address\s*:\s*([^\n]+)`, KindString),
	field("cloud_id", `Cloud ID\s*:\s*([^\n]+)`, KindString),
}

func extractShowVersion(content string) models.VersionInfo {
	var info models.VersionInfo
	section, found := commandSection(content, versionCmdRe, versionBannerRe)
	if !found {
		return info
	}
	info.Found = true

	if m := uptimeRe.FindStringSubmatch(section); m != nil {
		info.APName = strings.TrimSpace(m[1])
		info.UptimeDays = coerce(KindInt, m[2])
		info.UptimeHours = coerce(KindInt, m[3])
		info.UptimeMinutes = coerce(KindInt, m[4])
	}

	vals := extractAll(section, versionFields)
	info.SerialNumber = vals["serial_number"]
	info.Model = vals["model"]
	info.RunningImage = vals["running_image"]
	info.LastReloadTime = vals["last_reload_time"]
	info.EthernetMAC = vals["ethernet_mac"]
	info.CloudID = vals["cloud_id"]

	if m := imageLineRe.FindStringSubmatch(section); m != nil {
		info.ImageFamily = strings.TrimSpace(m[1])
		info.ImageString = strings.TrimSpace(m[2])
	}

	// `Last reload reason :` with nothing after the colon stays null
	if m := reloadReasonRe.FindStringSubmatch(section); m != nil {
		if reason := strings.TrimSpace(m[1]); reason != "" {
			info.LastReloadReason = m[1]
		}
	}

	return info
}
