package driver

import (
	"errors"
	"fmt"

	"stylecheck/internal/parser"
	"stylecheck/internal/source"
)

// InputKind: почему файл не удалось проверить.
type InputKind uint8

const (
	// InputRead: файл не прочитан (нет доступа, не существует, это каталог).
	InputRead InputKind = iota + 1
	// InputEncoding: содержимое не является UTF-8.
	InputEncoding
	// InputSyntax: файл не разобран как Python.
	InputSyntax
)

func (k InputKind) String() string {
	switch k {
	case InputRead:
		return "read"
	case InputEncoding:
		return "encoding"
	case InputSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// InputError is an input failure for one file. A file with an InputError
// gets no diagnostics.
type InputError struct {
	Path string
	Kind InputKind
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", source.DisplayPath(e.Path), e.Kind, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Line возвращает строку синтаксической ошибки или 0.
func (e *InputError) Line() int {
	var se *parser.SyntaxError
	if errors.As(e.Err, &se) {
		return se.Line
	}
	return 0
}

// Message: текст причины без пути и вида ошибки.
func (e *InputError) Message() string {
	var se *parser.SyntaxError
	if errors.As(e.Err, &se) {
		return se.Msg
	}
	return e.Err.Error()
}

func loadError(path string, err error) *InputError {
	kind := InputRead
	if errors.Is(err, source.ErrInvalidUTF8) {
		kind = InputEncoding
	}
	return &InputError{Path: path, Kind: kind, Err: err}
}
