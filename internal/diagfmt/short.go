package diagfmt

import (
	"fmt"
	"io"

	"stylecheck/internal/diag"
)

// Short пишет диагностики в канонической форме, по одной на строку:
// <path>: Line <n>: <CODE> <message>
func Short(w io.Writer, diags []diag.Diagnostic, opts ShortOpts) error {
	for _, d := range diags {
		d.Path = formatPath(d.Path, opts.PathMode, opts.BaseDir)
		if _, err := fmt.Fprintln(w, diag.FormatShort([]diag.Diagnostic{d})); err != nil {
			return err
		}
	}
	return nil
}

// ShortFailures пишет ошибки ввода в том же построчном стиле.
func ShortFailures(w io.Writer, failures []Failure, opts ShortOpts) error {
	for _, f := range failures {
		path := formatPath(f.Path, opts.PathMode, opts.BaseDir)
		var err error
		if f.Line > 0 {
			_, err = fmt.Fprintf(w, "%s: Line %d: %s error: %s\n", path, f.Line, f.Kind, f.Message)
		} else {
			_, err = fmt.Fprintf(w, "%s: %s error: %s\n", path, f.Kind, f.Message)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
