package parser

import (
	"regexp"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

var (
	inventoryCmdRe    = regexp.MustCompile(`(?i)(?:^|\n)([^\n#]+)#\s*show\s+inventory`)
	inventoryBannerRe = regexp.MustCompile(`(?i)\*{5}\s*show\s+inventory\s*\*{5}[\s\S]+?(?:\n\*{5}|\z)`)

	nameDescrRe = regexp.MustCompile(`(?i)NAME\s*:\s*([^,]+),\s*DESCR\s*:\s*([^\n]+)`)
	pidVidSnRe  = regexp.MustCompile(`(?i)PID\s*:\s*([^,]+)\s*,\s*VID\s*:\s*([^,]+),\s*SN\s*:\s*([^\n]+)`)
)

var inventoryFields = []Field{
	field("ap_devid", `DEVID\s*:\s*([^\n]+)`, KindString),
	field("usb_detected", `Detected\s*:\s*([^\n]+)`, KindString),
	field("usb_status", `Status\s*:\s*([^\n]+)`, KindString),
	field("usb_pid", `Product ID\s*:\s*([^\n]+)`, KindString),
	field("usb_vid", `Vendor ID\s*:\s*([^\n]+)`, KindString),
	field("usb_manufacturer", `Manufacturer\s*:\s*([^\n]+)`, KindString),
	field("usb_descr", `Description\s*:\s*([^\n]+)`, KindString),
	field("usb_serial", `Serial Number\s*:\s*([^\n]+)`, KindString),
	field("usb_max_power", `Max Power\s*:\s*([^\n]+)`, KindString),
}

func extractShowInventory(content string) models.InventoryInfo {
	var info models.InventoryInfo
	section, found := commandSection(content, inventoryCmdRe, inventoryBannerRe)
	if !found {
		return info
	}
	info.Found = true

	if m := nameDescrRe.FindStringSubmatch(section); m != nil {
		info.APType = trimmed(m[1])
		info.APDescription = trimmed(m[2])
	}
	if m := pidVidSnRe.FindStringSubmatch(section); m != nil {
		info.APProductID = trimmed(m[1])
		info.APVersionID = trimmed(m[2])
		info.APSerial = trimmed(m[3])
	}

	vals := extractAll(section, inventoryFields)
	info.APDeviceID = vals["ap_devid"]
	info.USBDetected = vals["usb_detected"]
	info.USBStatus = vals["usb_status"]
	info.USBProductID = vals["usb_pid"]
	info.USBVendorID = vals["usb_vid"]
	info.USBManufacturer = vals["usb_manufacturer"]
	info.USBDescription = vals["usb_descr"]
	info.USBSerial = vals["usb_serial"]
	info.USBMaxPower = vals["usb_max_power"]
	return info
}
