package diag

import (
	"strings"

	"stylecheck/internal/source"
)

// FormatShort renders diagnostics one per line in the canonical
// `<path>: Line <n>: <CODE> <message>` form. Order is preserved; the result
// has no trailing newline and is empty when diags is empty.
func FormatShort(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		d.Path = source.DisplayPath(d.Path)
		d.Message = sanitizeMessage(d.Message)
		b.WriteString(d.String())
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
