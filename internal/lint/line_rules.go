package lint

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"stylecheck/internal/diag"
	"stylecheck/internal/source"
)

const (
	// MaxLineLength: предел длины строки в рунах, терминатор считается.
	MaxLineLength = 79
	// IndentWidth: шаг отступа в пробелах.
	IndentWidth = 4
	// BlankRun: сколько пустых строк подряд перед непустой уже нарушение.
	BlankRun = 3
)

var (
	// `;` после `#`: считаем, что точка с запятой в комментарии
	semicolonInComment = regexp.MustCompile(`#.*;`)
	// `;` между кавычками: считаем, что внутри строкового литерала
	semicolonInString = regexp.MustCompile(`['"].*;.*['"]`)
	camelCaseWord     = regexp.MustCompile(`\s[A-Z][a-z]+(?:[A-Z][a-z]*)?`)
)

func lineRules() []*Rule {
	return []*Rule{
		{Code: diag.LineTooLong, Name: diag.LineTooLong.Slug(), Kind: LineRule, Line: checkLength,
			Doc: "line is longer than 79 characters, terminator included"},
		{Code: diag.IndentationError, Name: diag.IndentationError.Slug(), Kind: LineRule, Line: checkIndentation,
			Doc: "leading spaces are not a multiple of four"},
		{Code: diag.Semicolon, Name: diag.Semicolon.Slug(), Kind: LineRule, Line: checkSemicolon,
			Doc: "statement ends with a semicolon outside a comment or quotes"},
		{Code: diag.CommentSpacing, Name: diag.CommentSpacing.Slug(), Kind: LineRule, Line: checkCommentSpacing,
			Doc: "inline comment is not preceded by two spaces"},
		{Code: diag.TodoComment, Name: diag.TodoComment.Slug(), Kind: LineRule, Line: checkTodo,
			Doc: "comment contains a TODO marker"},
		{Code: diag.BlankLines, Name: diag.BlankLines.Slug(), Kind: LineRule, Line: checkBlankLines,
			Doc: "three or more blank lines precede this line"},
		{Code: diag.KeywordSpacing, Name: diag.KeywordSpacing.Slug(), Kind: LineRule, Line: checkKeywordSpacing,
			Doc: "more than one space after 'class' or 'def'"},
		{Code: diag.ClassNameCamelCase, Name: diag.ClassNameCamelCase.Slug(), Kind: LineRule, Line: checkClassName,
			Doc: "class name is not CamelCase"},
	}
}

func checkLength(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool) {
	if utf8.RuneCountInString(ln.Text) > MaxLineLength {
		return p.report(diag.LineTooLong, ln.Index, diag.Args{}), true
	}
	return diag.Diagnostic{}, false
}

// табы прерывают счёт и сами пробелами не считаются
func checkIndentation(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool) {
	spaces := 0
	for spaces < len(ln.Text) && ln.Text[spaces] == ' ' {
		spaces++
	}
	if spaces%IndentWidth != 0 {
		return p.report(diag.IndentationError, ln.Index, diag.Args{}), true
	}
	return diag.Diagnostic{}, false
}

// Эвристика по одной строке: многострочные строки и комментарии не отслеживаются.
func checkSemicolon(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool) {
	if !strings.Contains(ln.Text, ";") {
		return diag.Diagnostic{}, false
	}
	if semicolonInComment.MatchString(ln.Text) || semicolonInString.MatchString(ln.Text) {
		return diag.Diagnostic{}, false
	}
	return p.report(diag.Semicolon, ln.Index, diag.Args{}), true
}

func checkCommentSpacing(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool) {
	hash := strings.IndexByte(ln.Text, '#')
	if hash <= 0 {
		return diag.Diagnostic{}, false
	}
	if hash >= 2 && ln.Text[hash-2:hash] == "  " {
		return diag.Diagnostic{}, false
	}
	return p.report(diag.CommentSpacing, ln.Index, diag.Args{}), true
}

func checkTodo(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool) {
	hash := strings.IndexByte(ln.Text, '#')
	if hash < 0 {
		return diag.Diagnostic{}, false
	}
	if strings.Contains(strings.ToLower(ln.Text[hash:]), "todo") {
		return p.report(diag.TodoComment, ln.Index, diag.Args{}), true
	}
	return diag.Diagnostic{}, false
}

// Пустая строка - ровно "\n". Строка из пробелов пустой не считается.
// Для n <= BlankRun истории не хватает, находки нет.
func checkBlankLines(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool) {
	n := ln.Index
	if n <= BlankRun || ln.Text == "\n" {
		return diag.Diagnostic{}, false
	}
	for back := 1; back <= BlankRun; back++ {
		if p.Line(n-back) != "\n" {
			return diag.Diagnostic{}, false
		}
	}
	return p.report(diag.BlankLines, n, diag.Args{}), true
}

func checkKeywordSpacing(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool) {
	stripped := strings.TrimSpace(ln.Text)
	for _, kw := range [...]string{"class", "def"} {
		// keyword, обязательный пробел, и ещё один пробел сразу за ним
		if strings.HasPrefix(stripped, kw+"  ") {
			return p.report(diag.KeywordSpacing, ln.Index, diag.Args{Keyword: kw}), true
		}
	}
	return diag.Diagnostic{}, false
}

func checkClassName(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool) {
	name, ok := className(ln.Text)
	if !ok || camelCaseWord.MatchString(ln.Text) {
		return diag.Diagnostic{}, false
	}
	return p.report(diag.ClassNameCamelCase, ln.Index, diag.Args{Name: name}), true
}

// className вытаскивает имя из строки вида `class Name(...):`.
// Имя обрезается на `(` или `:`; пустое имя - не объявление.
func className(text string) (string, bool) {
	stripped := strings.TrimSpace(text)
	rest, ok := strings.CutPrefix(stripped, "class")
	if !ok || rest == "" {
		return "", false
	}
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
		return "", false
	}
	if i := strings.IndexAny(rest, "(:"); i >= 0 {
		rest = rest[:i]
	}
	name := strings.TrimSpace(rest)
	return name, name != ""
}
