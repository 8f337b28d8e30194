package diag

import "stylecheck/internal/source"

// New builds a style finding; the message is rendered from args.
func New(code Code, path string, line int, args Args) Diagnostic {
	return Diagnostic{
		Severity: SevWarning,
		Code:     code,
		Path:     path,
		Line:     line,
		Args:     args,
		Message:  code.Render(args),
	}
}

func (d Diagnostic) WithSpan(sp source.Span) Diagnostic {
	d.Primary = sp
	return d
}

func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}
