package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	// Неизвестный код - не должен попадать в вывод
	UnknownCode Code = 0

	// Строковые правила (по физической строке)
	LineTooLong        Code = 1
	IndentationError   Code = 2
	Semicolon          Code = 3
	CommentSpacing     Code = 4
	TodoComment        Code = 5
	BlankLines         Code = 6
	KeywordSpacing     Code = 7
	ClassNameCamelCase Code = 8

	// Правила по синтаксическому дереву
	FuncNameSnakeCase Code = 9
	ArgNameSnakeCase  Code = 10
	VarNameSnakeCase  Code = 11
	MutableDefault    Code = 12
)

// Args: типизированные параметры сообщения. Подстановка позиционная, поэтому
// имя, похожее на шаблон, не может «подставиться» повторно.
type Args struct {
	Keyword string // S007: class | def
	Name    string // S008..S011
}

var codeTitles = map[Code]string{
	LineTooLong:        "The line is too long",
	IndentationError:   "Indention Error",
	Semicolon:          "Unnecessary semicolon",
	CommentSpacing:     "At least two spaces required before inline comments",
	TodoComment:        "Find TODO in line",
	BlankLines:         "More than two blank lines used before this line",
	KeywordSpacing:     "Too many spaces after '<keyword>'",
	ClassNameCamelCase: "Class name '<name>' should use CamelCase",
	FuncNameSnakeCase:  "Function name '<name>' should use snake_case",
	ArgNameSnakeCase:   "Argument name '<name>' should be snake_case",
	VarNameSnakeCase:   "Variable '<name>' should be snake_case",
	MutableDefault:     "Default argument value is mutable",
}

var codeSlugs = map[Code]string{
	LineTooLong:        "line-too-long",
	IndentationError:   "indentation",
	Semicolon:          "semicolon",
	CommentSpacing:     "inline-comment-spacing",
	TodoComment:        "todo-comment",
	BlankLines:         "blank-lines",
	KeywordSpacing:     "keyword-spacing",
	ClassNameCamelCase: "class-name-camelcase",
	FuncNameSnakeCase:  "function-name-snakecase",
	ArgNameSnakeCase:   "argument-name-snakecase",
	VarNameSnakeCase:   "variable-name-snakecase",
	MutableDefault:     "mutable-default",
}

// Codes returns every known code in emission order.
func Codes() []Code {
	return []Code{
		LineTooLong, IndentationError, Semicolon, CommentSpacing,
		TodoComment, BlankLines, KeywordSpacing, ClassNameCamelCase,
		FuncNameSnakeCase, ArgNameSnakeCase, VarNameSnakeCase, MutableDefault,
	}
}

// ParseCode принимает "S001" (регистр не важен).
func ParseCode(s string) (Code, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Codes() {
		if c.ID() == s {
			return c, true
		}
	}
	return UnknownCode, false
}

func (c Code) ID() string {
	if _, ok := codeTitles[c]; !ok {
		return "S000"
	}
	return fmt.Sprintf("S%03d", uint16(c))
}

// Title: шаблон сообщения с плейсхолдерами, для справки (`stylecheck rules`).
func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return "Unknown diagnostic"
}

// Slug: короткое имя правила (SARIF ruleId name, вывод rules).
func (c Code) Slug() string {
	if slug, ok := codeSlugs[c]; ok {
		return slug
	}
	return "unknown"
}

// Render строит текст сообщения из аргументов.
func (c Code) Render(args Args) string {
	switch c {
	case KeywordSpacing:
		return fmt.Sprintf("Too many spaces after '%s'", args.Keyword)
	case ClassNameCamelCase:
		return fmt.Sprintf("Class name '%s' should use CamelCase", args.Name)
	case FuncNameSnakeCase:
		return fmt.Sprintf("Function name '%s' should use snake_case", args.Name)
	case ArgNameSnakeCase:
		return fmt.Sprintf("Argument name '%s' should be snake_case", args.Name)
	case VarNameSnakeCase:
		return fmt.Sprintf("Variable '%s' should be snake_case", args.Name)
	}
	return c.Title()
}

func (c Code) String() string {
	return c.ID()
}
