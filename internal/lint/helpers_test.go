package lint

import (
	"strings"
	"testing"

	"stylecheck/internal/diag"
	"stylecheck/internal/parser"
	"stylecheck/internal/source"
)

const testPath = "./pkg/sample.py"

func newFile(src string) *source.File {
	return source.NewFile(testPath, []byte(src), source.FileVirtual)
}

// runLines запускает только строковые правила (без дерева).
func runLines(src string) []diag.Diagnostic {
	bag := diag.NewBag(0)
	Default().Run(NewPass(testPath, newFile(src), nil), diag.BagReporter{Bag: bag})
	return bag.Items()
}

func analyzeSource(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	file := newFile(src)
	mod, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Analyze(testPath, file, mod)
}

func codesOf(diags []diag.Diagnostic, line int) []string {
	var out []string
	for _, d := range diags {
		if line == 0 || d.Line == line {
			out = append(out, d.Code.ID())
		}
	}
	return out
}

func count(diags []diag.Diagnostic, code diag.Code) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

func expectShort(t *testing.T, diags []diag.Diagnostic, want ...string) {
	t.Helper()
	got := diag.FormatShort(diags)
	if exp := strings.Join(want, "\n"); got != exp {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", exp, got)
	}
}
