package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"stylecheck/internal/ast"
	"stylecheck/internal/lexer"
	"stylecheck/internal/parser"
	"stylecheck/internal/source"
)

const astSample = `@cache
def fetch(url, *, retries=3, **opts):
    try:
        return get(url)
    except IOError as err:
        raise
x = [1, 2]
`

func TestFormatASTPretty(t *testing.T) {
	file := source.NewFile("pkg/mod.py", []byte(astSample), source.FileVirtual)
	mod, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, mod, file); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"pkg/mod.py (2 statements)",
		"├─ Stmt[0]: FunctionDef (line 2)",
		"│  ├─ Name: fetch",
		"│  ├─ Decorators: cache",
		"│  ├─ Params: url, retries=3, **opts",
		"Handler[1]: Except (line 5)",
		"Name: err",
		"└─ Stmt[1]: Assign (line 7)",
		"   ├─ Targets: x",
		"   └─ Value: [1, 2]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestASTKindsUseStmtNames(t *testing.T) {
	src := "class A:\n    pass\nasync def g():\n    pass\nimport os\nfor i in x:\n    pass\n"
	file := source.NewFile("k.py", []byte(src), source.FileVirtual)
	mod, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, mod, file); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []ast.StmtKind{ast.StmtClassDef, ast.StmtFuncDef, ast.StmtImport, ast.StmtFor}
	if len(root.Children) != len(want) {
		t.Fatalf("children: %+v", root.Children)
	}
	for i, k := range want {
		if root.Children[i].Kind != k.String() {
			t.Errorf("child %d: got %q, want %q", i, root.Children[i].Kind, k.String())
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	file := source.NewFile("mod.py", []byte(astSample), source.FileVirtual)
	mod, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, mod, file); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(root.Children) != 2 || root.Children[0].Kind != "FunctionDef" || root.Children[0].Line != 2 {
		t.Fatalf("unexpected root: %+v", root)
	}
}

func TestFormatTokens(t *testing.T) {
	file := source.NewFile("t.py", []byte("x = 1\n"), source.FileVirtual)
	toks := lexer.New(file, lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("want %d lines, got %d:\n%s", len(toks), len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"x" at 1:1`) {
		t.Fatalf("first token line: %q", lines[0])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(toks) || out[len(out)-1].Kind != toks[len(toks)-1].Kind.String() {
		t.Fatalf("unexpected token JSON: %+v", out)
	}
}
