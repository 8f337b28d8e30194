package diag

import (
	"fmt"

	"stylecheck/internal/source"
)

// Diagnostic: одна находка. Line - 1-based номер физической строки.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Path     string
	Line     int
	Args     Args
	Message  string
	Primary  source.Span
}

// String renders the canonical form `<path>: Line <n>: <CODE> <message>`.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: Line %d: %s %s", d.Path, d.Line, d.Code.ID(), d.Message)
}
