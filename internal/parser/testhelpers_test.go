package parser_test

import (
	"errors"
	"strings"
	"testing"

	"stylecheck/internal/ast"
	"stylecheck/internal/parser"
	"stylecheck/internal/source"
)

func newFile(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.py", []byte(src)))
}

// mustParse разбирает src и падает на синтаксической ошибке.
func mustParse(t *testing.T, src string) (*ast.Builder, *ast.File) {
	t.Helper()
	mod, err := parser.Parse(newFile(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return mod.Builder, mod.Builder.Files.Get(mod.File)
}

// parseErr разбирает src и ожидает SyntaxError с подстрокой want.
func parseErr(t *testing.T, src, want string) *parser.SyntaxError {
	t.Helper()
	_, err := parser.Parse(newFile(src))
	if err == nil {
		t.Fatalf("parse %q: expected error containing %q", src, want)
	}
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("parse %q: expected *SyntaxError, got %T", src, err)
	}
	if !strings.Contains(se.Msg, want) {
		t.Fatalf("parse %q: got %q, want substring %q", src, se.Msg, want)
	}
	return se
}

// firstStmt возвращает единственную (первую) инструкцию файла.
func firstStmt(t *testing.T, src string) (*ast.Builder, ast.StmtID) {
	t.Helper()
	b, f := mustParse(t, src)
	if len(f.Body) == 0 {
		t.Fatalf("parse %q: empty body", src)
	}
	return b, f.Body[0]
}

// assignValue возвращает значение первого присваивания в src.
func assignValue(t *testing.T, src string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, id := firstStmt(t, src)
	as, ok := b.Stmts.Assign(id)
	if !ok {
		t.Fatalf("parse %q: first statement is %v, want Assign", src, b.Stmts.Get(id).Kind)
	}
	return b, as.Value
}
