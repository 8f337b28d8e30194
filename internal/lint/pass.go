package lint

import (
	"fmt"

	"fortio.org/safecast"

	"stylecheck/internal/diag"
	"stylecheck/internal/source"
	"stylecheck/internal/syntaxindex"
)

// Pass: явный контекст одного прохода по файлу. Строится один раз,
// дальше только читается.
type Pass struct {
	Path  string
	File  *source.File
	Lines []source.SourceLine
	Index *syntaxindex.Index
}

// Line returns the raw text of line n (1-based) or "" when n is out of range.
// Lookback rules rely on the empty result near the top of the file.
func (p *Pass) Line(n int) string {
	if n < 1 || n > len(p.Lines) {
		return ""
	}
	return p.Lines[n-1].Text
}

func (p *Pass) report(code diag.Code, line int, args diag.Args) diag.Diagnostic {
	return diag.New(code, p.Path, line, args).WithSpan(p.lineSpan(line))
}

// lineSpan: байтовый диапазон строки без терминатора.
func (p *Pass) lineSpan(n int) source.Span {
	if p.File == nil || n < 1 || n > len(p.Lines) {
		return source.Span{}
	}
	var start uint32
	if n > 1 {
		start = p.File.LineIdx[n-2] + 1
	}
	text := p.Lines[n-1].Text
	width, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("line length overflow: %w", err))
	}
	end := start + width
	if len(text) > 0 && text[len(text)-1] == '\n' {
		end--
	}
	return source.Span{File: p.File.ID, Start: start, End: end}
}
