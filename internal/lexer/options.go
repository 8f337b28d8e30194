package lexer

import (
	"stylecheck/internal/source"
)

// Reporter: тонкий интерфейс, чтобы не тянуть парсер сюда.
// Лексер **только вызывает** его; что делать с ошибкой, решает внешний слой.
type Reporter interface {
	Report(span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

// DeferredReporter получает ещё и смещение, на котором лексер заметил ошибку,
// если оно дальше начала span (незакрытые скобки видны только в конце файла).
type DeferredReporter interface {
	ReportAt(span source.Span, detected uint32, msg string)
}

func (lx *Lexer) report(sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(sp, msg)
	}
}

func (lx *Lexer) reportAt(sp source.Span, detected uint32, msg string) {
	if r, ok := lx.opts.Reporter.(DeferredReporter); ok {
		r.ReportAt(sp, detected, msg)
		return
	}
	lx.report(sp, msg)
}

// Error is a lexical error with its resolved position.
type Error struct {
	Span source.Span
	Line int
	Col  int
	Msg  string
	// Detected: смещение, где ошибка обнаружена; обычно Span.Start.
	Detected uint32
}

// ErrorList collects lexical errors in the order they were found.
type ErrorList struct {
	File   *source.File
	Errors []Error
}

// Report implements Reporter.
func (l *ErrorList) Report(span source.Span, msg string) {
	l.ReportAt(span, span.Start, msg)
}

// ReportAt implements DeferredReporter.
func (l *ErrorList) ReportAt(span source.Span, detected uint32, msg string) {
	e := Error{Span: span, Msg: msg, Detected: detected}
	if l.File != nil {
		pos := l.File.Position(span.Start)
		e.Line, e.Col = int(pos.Line), int(pos.Col)
	}
	l.Errors = append(l.Errors, e)
}
