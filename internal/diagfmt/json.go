package diagfmt

import (
	"encoding/json"
	"io"

	"stylecheck/internal/diag"
	"stylecheck/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// ArgsJSON: типизированные аргументы сообщения
type ArgsJSON struct {
	Keyword string `json:"keyword,omitempty"`
	Name    string `json:"name,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Path     string        `json:"path"`
	Line     int           `json:"line"`
	Code     string        `json:"code"`
	Rule     string        `json:"rule"`
	Severity string        `json:"severity"`
	Message  string        `json:"message"`
	Args     *ArgsJSON     `json:"args,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
}

// FailureJSON: файл, который не удалось проанализировать
type FailureJSON struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Omitted     int              `json:"omitted,omitempty"`
	Failures    []FailureJSON    `json:"failures,omitempty"`
}

func makeLocation(d diag.Diagnostic, fs *source.FileSet) *LocationJSON {
	loc := &LocationJSON{StartByte: d.Primary.Start, EndByte: d.Primary.End}
	if fs == nil {
		return loc
	}
	if f, ok := fs.GetByPath(d.Path); ok {
		loc.StartCol = f.Position(d.Primary.Start).Col
		loc.EndCol = f.Position(d.Primary.End).Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, failures []Failure, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	maxItems := len(diags)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, maxItems),
		Omitted:     len(diags) - maxItems,
	}
	for _, d := range diags[:maxItems] {
		dj := DiagnosticJSON{
			Path:     formatPath(d.Path, opts.PathMode, opts.BaseDir),
			Line:     d.Line,
			Code:     d.Code.ID(),
			Rule:     d.Code.Slug(),
			Severity: d.Severity.String(),
			Message:  d.Message,
		}
		if opts.IncludeArgs && d.Args != (diag.Args{}) {
			dj.Args = &ArgsJSON{Keyword: d.Args.Keyword, Name: d.Args.Name}
		}
		if opts.IncludeLocation {
			dj.Location = makeLocation(d, fs)
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)

	for _, f := range failures {
		out.Failures = append(out.Failures, FailureJSON{
			Path:    formatPath(f.Path, opts.PathMode, opts.BaseDir),
			Kind:    f.Kind,
			Line:    f.Line,
			Message: f.Message,
		})
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []diag.Diagnostic, failures []Failure, fs *source.FileSet, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(diags, failures, fs, opts)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
