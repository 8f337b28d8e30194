package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stylecheck/internal/diag"
	"stylecheck/internal/source"
)

const tabWidth = 4

type palette struct {
	path, warning, errorSev, info, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:     mk(color.Bold),
		warning:  mk(color.FgYellow, color.Bold),
		errorSev: mk(color.FgRed, color.Bold),
		info:     mk(color.FgBlue),
		code:     mk(color.FgCyan),
		gutter:   mk(color.FgHiBlack),
		caret:    mk(color.FgYellow),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.errorSev
	case diag.SevWarning:
		return p.warning
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает:
// <path>:<line>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^^^ (если fs знает файл).
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i, d := range diags {
		if i > 0 && opts.ShowSource {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		path := formatPath(d.Path, opts.PathMode, opts.BaseDir)
		_, err := fmt.Fprintf(w, "%s:%d: %s %s: %s\n",
			pal.path.Sprint(path), d.Line,
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()), d.Message)
		if err != nil {
			return err
		}
		if !opts.ShowSource || fs == nil {
			continue
		}
		file, ok := fs.GetByPath(d.Path)
		if !ok {
			continue
		}
		if err := writeSourceLine(w, file, d.Line, opts.Width, pal); err != nil {
			return err
		}
	}
	return nil
}

func writeSourceLine(w io.Writer, file *source.File, line int, width uint8, pal palette) error {
	text := strings.TrimRight(file.Line(line), "\r\n")
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	if width > 0 {
		text = runewidth.Truncate(text, int(width), "…")
	}
	gutter := fmt.Sprintf("%d", line)
	pad := strings.Repeat(" ", len(gutter))

	body := strings.TrimLeft(text, " ")
	indent := runewidth.StringWidth(text) - runewidth.StringWidth(body)
	marks := max(runewidth.StringWidth(body), 1)

	if _, err := fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(gutter), pal.gutter.Sprint("|"), text); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"),
		strings.Repeat(" ", indent), pal.caret.Sprint(strings.Repeat("^", marks)))
	return err
}

// PrettyFailures печатает ошибки ввода красным, в том же формате заголовка.
func PrettyFailures(w io.Writer, failures []Failure, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, f := range failures {
		loc := pal.path.Sprint(formatPath(f.Path, opts.PathMode, opts.BaseDir))
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, f.Line)
		}
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n", loc, pal.errorSev.Sprint("ERROR"), f.Kind, f.Message); err != nil {
			return err
		}
	}
	return nil
}
