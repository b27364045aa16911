package tool

import (
	"fmt"
	"strings"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count in human-readable 1024-based units.
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, byteUnits[0])
	}
	return fmt.Sprintf("%.2f %s", value, byteUnits[unit])
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"/", "&#x2F;",
)

// EscapeMarkup escapes a string for safe insertion into the presentation
// sink. File names and server-provided strings go through this before they
// appear in any rendered payload.
func EscapeMarkup(s string) string {
	if s == "" {
		return ""
	}
	return markupEscaper.Replace(s)
}
