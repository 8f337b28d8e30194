package parser_test

import (
	"testing"

	"stylecheck/internal/ast"
)

func TestParseAssign(t *testing.T) {
	b, id := firstStmt(t, "x = 1\n")
	as, ok := b.Stmts.Assign(id)
	if !ok {
		t.Fatalf("expected Assign")
	}
	if len(as.Targets) != 1 {
		t.Fatalf("targets: got %d", len(as.Targets))
	}
	name, ok := b.Exprs.Name(as.Targets[0])
	if !ok || name.Name != "x" {
		t.Fatalf("target: got %+v", name)
	}
	lit, ok := b.Exprs.Literal(as.Value)
	if !ok || lit.Kind != ast.LitInt || lit.Text() != "1" {
		t.Fatalf("value: got %+v", lit)
	}
}

func TestParseChainedAssign(t *testing.T) {
	b, id := firstStmt(t, "a = b = c\n")
	as, _ := b.Stmts.Assign(id)
	if len(as.Targets) != 2 {
		t.Fatalf("targets: got %d, want 2", len(as.Targets))
	}
}

func TestParseSemicolonStatements(t *testing.T) {
	b, f := mustParse(t, "a = 1; b = 2;\nc = 3\n")
	if len(f.Body) != 3 {
		t.Fatalf("statements: got %d, want 3", len(f.Body))
	}
	wantLines := []int{1, 1, 2}
	for i, id := range f.Body {
		if got := b.Stmts.Get(id).Line; got != wantLines[i] {
			t.Fatalf("stmt %d line: got %d, want %d", i, got, wantLines[i])
		}
	}
}

func TestParseAnnAndAugAssign(t *testing.T) {
	b, f := mustParse(t, "x: int = 1\ny += 2\nself.z: str\n")
	kinds := []ast.StmtKind{ast.StmtAnnAssign, ast.StmtAugAssign, ast.StmtAnnAssign}
	for i, id := range f.Body {
		if got := b.Stmts.Get(id).Kind; got != kinds[i] {
			t.Fatalf("stmt %d: got %v, want %v", i, got, kinds[i])
		}
	}
}

func TestParseFuncDefParams(t *testing.T) {
	b, id := firstStmt(t, "def f(a, /, b, *args, c, d=2, **kw):\n    pass\n")
	fn, ok := b.Stmts.FuncDef(id)
	if !ok {
		t.Fatalf("expected FuncDef")
	}
	if fn.Name != "f" || fn.IsAsync {
		t.Fatalf("unexpected header: %+v", fn)
	}
	want := []struct {
		name    string
		kind    ast.ParamKind
		hasDflt bool
	}{
		{"a", ast.ParamPosOnly, false},
		{"b", ast.ParamRegular, false},
		{"args", ast.ParamVarArgs, false},
		{"c", ast.ParamKwOnly, false},
		{"d", ast.ParamKwOnly, true},
		{"kw", ast.ParamVarKw, false},
	}
	if len(fn.Params) != len(want) {
		t.Fatalf("params: got %d, want %d", len(fn.Params), len(want))
	}
	for i, w := range want {
		got := fn.Params[i]
		if got.Name != w.name || got.Kind != w.kind || got.Default.IsValid() != w.hasDflt {
			t.Fatalf("param %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestParseDecoratedAsyncDef(t *testing.T) {
	b, id := firstStmt(t, "@dec\n@other.attr(1)\nasync def g(x=[]):\n    return x\n")
	st := b.Stmts.Get(id)
	if st.Line != 3 {
		t.Fatalf("def line: got %d, want 3", st.Line)
	}
	fn, _ := b.Stmts.FuncDef(id)
	if !fn.IsAsync || len(fn.Decorators) != 2 || fn.Name != "g" {
		t.Fatalf("unexpected def: %+v", fn)
	}
	if b.Exprs.Get(fn.Params[0].Default).Kind != ast.ExprList {
		t.Fatalf("default kind: got %v", b.Exprs.Get(fn.Params[0].Default).Kind)
	}
}

func TestInspectNested(t *testing.T) {
	src := "class A(Base, metaclass=M):\n" +
		"    def m(self):\n" +
		"        if self:\n" +
		"            y = 2\n" +
		"        else:\n" +
		"            for i in range(3):\n" +
		"                z = i\n" +
		"    w = 1\n"
	b, f := mustParse(t, src)

	type visit struct {
		kind ast.StmtKind
		line int
	}
	var got []visit
	b.Inspect(f.Body, func(_ ast.StmtID, st *ast.Stmt) bool {
		got = append(got, visit{st.Kind, st.Line})
		return true
	})
	want := []visit{
		{ast.StmtClassDef, 1},
		{ast.StmtFuncDef, 2},
		{ast.StmtIf, 3},
		{ast.StmtAssign, 4},
		{ast.StmtFor, 6},
		{ast.StmtAssign, 7},
		{ast.StmtAssign, 8},
	}
	if len(got) != len(want) {
		t.Fatalf("visits: got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visit %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseMatch(t *testing.T) {
	src := "match cmd:\n" +
		"    case [x, y]:\n" +
		"        pass\n" +
		"    case {'k': v} if v:\n" +
		"        pass\n" +
		"    case _:\n" +
		"        z = 1\n"
	b, id := firstStmt(t, src)
	m, ok := b.Stmts.Match(id)
	if !ok {
		t.Fatalf("expected Match, got %v", b.Stmts.Get(id).Kind)
	}
	if len(m.Cases) != 3 || m.Cases[2].Line != 6 {
		t.Fatalf("cases: %+v", m.Cases)
	}
}

func TestSoftKeywordsAsNames(t *testing.T) {
	b, f := mustParse(t, "match = 3\ncase = match\ntype = 5\nmatch(x)\n")
	kinds := []ast.StmtKind{ast.StmtAssign, ast.StmtAssign, ast.StmtAssign, ast.StmtExpr}
	for i, id := range f.Body {
		if got := b.Stmts.Get(id).Kind; got != kinds[i] {
			t.Fatalf("stmt %d: got %v, want %v", i, got, kinds[i])
		}
	}
}

func TestParseTypeAlias(t *testing.T) {
	b, id := firstStmt(t, "type Point[T] = tuple[T, T]\n")
	if k := b.Stmts.Get(id).Kind; k != ast.StmtTypeAlias {
		t.Fatalf("got %v", k)
	}
}

func TestParseTry(t *testing.T) {
	src := "try:\n    pass\nexcept* ValueError as e:\n    pass\nexcept (A, B):\n    pass\nelse:\n    pass\nfinally:\n    pass\n"
	b, id := firstStmt(t, src)
	tr, ok := b.Stmts.Try(id)
	if !ok {
		t.Fatalf("expected Try")
	}
	if len(tr.Handlers) != 2 || !tr.Handlers[0].Star || tr.Handlers[0].Name != "e" {
		t.Fatalf("handlers: %+v", tr.Handlers)
	}
	if len(tr.Orelse) != 1 || len(tr.Finalbody) != 1 {
		t.Fatalf("else/finally: %+v", tr)
	}
}

func TestParseWith(t *testing.T) {
	for _, src := range []string{
		"with open(a) as f, open(b) as g:\n    pass\n",
		"with (open(a) as f, open(b) as g):\n    pass\n",
		"async def f():\n    async with lock:\n        pass\n",
	} {
		mustParse(t, src)
	}
	b, id := firstStmt(t, "with (open(a) as f, open(b)):\n    pass\n")
	w, _ := b.Stmts.Block(id)
	if len(w.Items) != 2 {
		t.Fatalf("items: got %d", len(w.Items))
	}
}

func TestParseImports(t *testing.T) {
	b, f := mustParse(t, "import os.path as p, sys\nfrom . import (a as b, c,)\nfrom ..pkg.mod import *\n")
	imp, _ := b.Stmts.NameList(f.Body[0])
	if len(imp.Names) != 2 || imp.Names[0] != "p" {
		t.Fatalf("import names: %+v", imp.Names)
	}
	from, _ := b.Stmts.NameList(f.Body[1])
	if from.Module != "." || len(from.Names) != 2 {
		t.Fatalf("from-import: %+v", from)
	}
	star, _ := b.Stmts.NameList(f.Body[2])
	if star.Module != "..pkg.mod" || star.Names[0] != "*" {
		t.Fatalf("star import: %+v", star)
	}
}

func TestParseOtherSimpleStatements(t *testing.T) {
	src := "def f():\n" +
		"    global g\n" +
		"    del a[0], b.c\n" +
		"    assert x, 'msg'\n" +
		"    raise E from None\n" +
		"    yield\n" +
		"    x = yield from g()\n" +
		"    return\n"
	mustParse(t, src)
}

func TestParseCompoundInlineSuite(t *testing.T) {
	b, f := mustParse(t, "if x: a = 1; b = 2\nwhile y: pass\n")
	blk, _ := b.Stmts.Block(f.Body[0])
	if len(blk.Body) != 2 {
		t.Fatalf("inline suite: got %d statements", len(blk.Body))
	}
}

func TestParseEmptyFile(t *testing.T) {
	_, f := mustParse(t, "")
	if len(f.Body) != 0 {
		t.Fatalf("expected empty body")
	}
	_, f = mustParse(t, "# comment only\n\n")
	if len(f.Body) != 0 {
		t.Fatalf("expected empty body")
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing colon", "if x\n    pass\n", "expected ':'"},
		{"no indented block", "if x:\npass\n", "expected an indented block"},
		{"unexpected indent", "x = 1\n    y = 2\n", "unexpected indent"},
		{"bad params", "def f(:\n    pass\n", "invalid syntax"},
		{"non-default after default", "def f(a=1, b):\n    pass\n", "parameter without a default follows parameter with a default"},
		{"bare star", "def f(*):\n    pass\n", "named arguments must follow bare *"},
		{"assign literal", "1 = x\n", "cannot assign to literal"},
		{"assign call", "f() = 1\n", "cannot assign to function call"},
		{"stray else", "else:\n    pass\n", "invalid syntax"},
		{"dangling operator", "x = 1 +\n", "invalid syntax"},
		{"positional after keyword", "f(a=1, b)\n", "positional argument follows keyword argument"},
		{"unterminated string", "s = 'abc\n", "unterminated string literal"},
		{"never closed", "x = (1,\n", "'(' was never closed"},
		{"bad dedent", "if x:\n    a\n  b\n", "unindent does not match"},
		{"mixed bytes", "s = b'x' 'y'\n", "cannot mix bytes and nonbytes literals"},
		{"try without handlers", "try:\n    pass\nx = 1\n", "expected 'except' or 'finally' block"},
		{"walrus statement", "x := 1\n", "invalid syntax"},
		{"annotated tuple", "a, b: int\n", "illegal target for annotated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseErr(t, tt.src, tt.want)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	se := parseErr(t, "x = 1\n    y = 2\n", "unexpected indent")
	if se.Line != 2 {
		t.Fatalf("line: got %d, want 2", se.Line)
	}
	if se.Error() == "" {
		t.Fatalf("empty error text")
	}
}

func TestSyntaxErrorBeforeUnclosedBracket(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		want      string
		line, col int
	}{
		// парсер падает раньше, чем лексер доходит до конца файла
		{"bad params", "def f(:\n    pass\n", "invalid syntax", 1, 7},
		{"call then garbage", "f(a b\n", "invalid syntax", 1, 5},
		// иначе ошибка указывает на незакрытую скобку
		{"never closed", "x = (1,\n", "'(' was never closed", 1, 5},
		{"never closed later line", "y = 2\nx = {1: 2,\n", "'{' was never closed", 2, 5},
		{"string inside call", "f('abc\n", "unterminated string literal", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := parseErr(t, tt.src, tt.want)
			if se.Line != tt.line || se.Col != tt.col {
				t.Fatalf("position: got %d:%d, want %d:%d", se.Line, se.Col, tt.line, tt.col)
			}
		})
	}
}

func TestNestingLimit(t *testing.T) {
	src := "x = "
	for range 300 {
		src += "("
	}
	src += "1"
	for range 300 {
		src += ")"
	}
	parseErr(t, src+"\n", "too many nested parentheses")
}
