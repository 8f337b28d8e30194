package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"stylecheck/internal/diag"
	"stylecheck/internal/parser"
	"stylecheck/internal/source"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscoverWalksPythonFilesSorted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.py", "x = 1\n")
	writeFile(t, dir, "a.py", "x = 1\n")
	writeFile(t, dir, "pkg/mod.py", "x = 1\n")
	writeFile(t, dir, "notes.txt", "hello\n")
	writeFile(t, dir, "__pycache__/a.py", "x = 1\n")
	writeFile(t, dir, ".venv/lib/site.py", "x = 1\n")

	files, err := Discover([]string{dir}, DiscoverOptions{})
	if err != nil {
		t.Fatal(err)
	}
	got := relAll(t, dir, files)
	want := []string{"a.py", "b.py", "pkg/mod.py"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDiscoverGitignoreAndExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated/\n")
	writeFile(t, dir, "generated/out.py", "x = 1\n")
	writeFile(t, dir, "src/.gitignore", "skip_*.py\n")
	writeFile(t, dir, "src/skip_me.py", "x = 1\n")
	writeFile(t, dir, "src/keep.py", "x = 1\n")
	writeFile(t, dir, "tests/test_a.py", "x = 1\n")
	writeFile(t, dir, "main.py", "x = 1\n")

	files, err := Discover([]string{dir}, DiscoverOptions{RespectGitignore: true, Exclude: []string{"tests/"}})
	if err != nil {
		t.Fatal(err)
	}
	got := relAll(t, dir, files)
	want := []string{"main.py", "src/keep.py"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// без RespectGitignore игнорируемые файлы возвращаются
	files, err = Discover([]string{dir}, DiscoverOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 5 {
		t.Fatalf("expected 5 files without gitignore, got %v", relAll(t, dir, files))
	}
}

func TestDiscoverKeepsExplicitFilesAndDedups(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "script", "x = 1\n")
	a := writeFile(t, dir, "a.py", "x = 1\n")
	missing := filepath.Join(dir, "missing.py")

	files, err := Discover([]string{script, a, dir, missing}, DiscoverOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{script, a, missing}
	if !slices.Equal(files, want) {
		t.Fatalf("got %v, want %v", files, want)
	}
}

func TestLintFile(t *testing.T) {
	file := source.NewFile("m.py", []byte("class  myClass:\n    pass\n"), 0)
	diags, dropped, err := LintFile(file, 0)
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 0 {
		t.Fatalf("dropped = %d", dropped)
	}
	got := diag.FormatShort(diags)
	want := "m.py: Line 1: S007 Too many spaces after 'class'\n" +
		"m.py: Line 1: S008 Class name 'myClass' should use CamelCase"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLintFileSyntaxError(t *testing.T) {
	file := source.NewFile("bad.py", []byte("def f(:\n    pass\n"), 0)
	diags, _, err := LintFile(file, 0)
	if diags != nil {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	var ie *InputError
	if !errors.As(err, &ie) || ie.Kind != InputSyntax {
		t.Fatalf("expected syntax InputError, got %v", err)
	}
	var se *parser.SyntaxError
	if !errors.As(err, &se) || se.Line != 1 {
		t.Fatalf("expected SyntaxError on line 1, got %v", err)
	}
	if ie.Line() != 1 {
		t.Fatalf("Line() = %d", ie.Line())
	}
}

func TestCheckPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def Foo():\n    pass\n")
	writeFile(t, dir, "b.py", "x = 1\n")
	writeFile(t, dir, "c.py", "def f(:\n")
	writeFile(t, dir, "d.py", "x = '\xff'\n")

	var mu sync.Mutex
	var events []Event
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	res, err := CheckPaths(context.Background(), []string{dir}, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 4 {
		t.Fatalf("expected 4 files, got %d", len(res.Files))
	}

	a := res.Files[0]
	if a.Err != nil || len(a.Diagnostics) != 1 || a.Diagnostics[0].Code != diag.FuncNameSnakeCase {
		t.Fatalf("a.py: unexpected result %+v", a)
	}
	if b := res.Files[1]; b.Err != nil || len(b.Diagnostics) != 0 {
		t.Fatalf("b.py: unexpected result %+v", b)
	}
	if c := res.Files[2]; c.Err == nil || c.Err.Kind != InputSyntax || c.Diagnostics != nil {
		t.Fatalf("c.py: expected syntax error, got %+v", c)
	}
	if d := res.Files[3]; d.Err == nil || d.Err.Kind != InputEncoding || d.Loaded {
		t.Fatalf("d.py: expected encoding error, got %+v", d)
	}

	if len(res.Failures()) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(res.Failures()))
	}
	if res.ExitCode() != ExitErrors {
		t.Fatalf("exit code = %d", res.ExitCode())
	}
	if len(res.Timing.Phases) != 3 {
		t.Fatalf("expected discover/load/lint phases, got %+v", res.Timing.Phases)
	}

	done := 0
	for _, ev := range events {
		if ev.Status == StatusDone {
			done++
		}
	}
	if done != 2 {
		t.Fatalf("expected 2 done events, got %d", done)
	}
}

func TestCheckPathsExitCodes(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.py", "x = 1\n")
	dirty := writeFile(t, dir, "dirty.py", "x = 1;\n")

	res, err := CheckPaths(context.Background(), []string{clean}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode() != ExitClean {
		t.Fatalf("clean exit code = %d", res.ExitCode())
	}

	res, err = CheckPaths(context.Background(), []string{dirty}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode() != ExitFindings {
		t.Fatalf("dirty exit code = %d", res.ExitCode())
	}
}

func TestCheckPathsMaxDiagnostics(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "many.py", "a = 1;\nb = 2;\nc = 3;\n")

	res, err := CheckPaths(context.Background(), []string{p}, Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatal(err)
	}
	fr := res.Files[0]
	if len(fr.Diagnostics) != 2 || fr.Dropped != 1 {
		t.Fatalf("expected 2 kept and 1 dropped, got %d/%d", len(fr.Diagnostics), fr.Dropped)
	}
	if res.Dropped() != 1 || res.ExitCode() != ExitFindings {
		t.Fatalf("unexpected totals: dropped=%d exit=%d", res.Dropped(), res.ExitCode())
	}
}

func TestCheckPathsDeterministic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.py", "b.py", "c.py", "d.py", "e.py"} {
		writeFile(t, dir, name, "class  bad_name:\n    X = 1\n")
	}
	first, err := CheckPaths(context.Background(), []string{dir}, Options{Jobs: 4})
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		again, err := CheckPaths(context.Background(), []string{dir}, Options{Jobs: 4})
		if err != nil {
			t.Fatal(err)
		}
		if diag.FormatShort(again.Diagnostics()) != diag.FormatShort(first.Diagnostics()) {
			t.Fatal("output differs between runs")
		}
	}
}

func TestCheckPathsCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckPaths(ctx, []string{dir}, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTokenizeAndParse(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "m.py", "x = 1\n")

	tr, err := Tokenize(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Tokens) == 0 || len(tr.Errors) != 0 {
		t.Fatalf("unexpected tokenize result: %d tokens, %v", len(tr.Tokens), tr.Errors)
	}

	pr, err := Parse(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(pr.Module.Body()) != 1 {
		t.Fatalf("expected one statement, got %d", len(pr.Module.Body()))
	}

	_, err = Parse(filepath.Join(dir, "missing.py"))
	var ie *InputError
	if !errors.As(err, &ie) || ie.Kind != InputRead {
		t.Fatalf("expected read InputError, got %v", err)
	}
}
