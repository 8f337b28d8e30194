package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the CLI in-process and returns stdout, stderr and exit code.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	code := exitCodeFor(rootCmd.Execute())
	traceCleanup(code)
	traceCleanup = func(int) {}
	return stdout.String(), stderr.String(), code
}

func writePy(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExitCodeFor(t *testing.T) {
	if exitCodeFor(nil) != 0 {
		t.Fatal("nil error must exit 0")
	}
	if exitCodeFor(&exitError{code: 1}) != 1 {
		t.Fatal("exitError code must be kept")
	}
	if exitCodeFor(errors.New("unknown flag")) != 2 {
		t.Fatal("other errors must exit 2")
	}
}

func TestReadColorMode(t *testing.T) {
	for in, want := range map[string]colorMode{"": colorAuto, "AUTO": colorAuto, "on": colorOn, "off": colorOff} {
		got, err := readColorMode(in)
		if err != nil || got != want {
			t.Fatalf("readColorMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readColorMode("always"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCheckShort(t *testing.T) {
	dir := t.TempDir()
	p := writePy(t, dir, "m.py", "x = 1;\ndef f():\n    pass\n")

	stdout, _, code := run(t, "check", "--format", "short", "--no-cache", p)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	want := filepath.ToSlash(p) + ": Line 1: S003 Unnecessary semicolon\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestCheckCleanFile(t *testing.T) {
	dir := t.TempDir()
	p := writePy(t, dir, "ok.py", "x = 1\n")
	stdout, _, code := run(t, "check", "--format", "short", "--no-cache", p)
	if code != 0 || stdout != "" {
		t.Fatalf("expected clean run, got code=%d stdout=%q", code, stdout)
	}
}

func TestCheckSyntaxErrorExitsTwo(t *testing.T) {
	dir := t.TempDir()
	p := writePy(t, dir, "bad.py", "def f(:\n")
	stdout, stderr, code := run(t, "check", "--format", "short", "--no-cache", p)
	if code != 2 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "" {
		t.Fatalf("no diagnostics expected for a failed file, got %q", stdout)
	}
	if !strings.Contains(stderr, "syntax error") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestCheckJSON(t *testing.T) {
	dir := t.TempDir()
	writePy(t, dir, "m.py", "def Foo():\n    pass\n")
	stdout, _, code := run(t, "check", "--format", "json", "--no-cache", dir)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	var out struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "S009" {
		t.Fatalf("unexpected output: %s", stdout)
	}
}

func TestCheckUsesConfig(t *testing.T) {
	dir := t.TempDir()
	writePy(t, dir, "stylecheck.toml", "[check]\nexclude = [\"skip.py\"]\n")
	writePy(t, dir, "skip.py", "x = 1;\n")
	writePy(t, dir, "keep.py", "y = 2;\n")

	stdout, _, code := run(t, "check", "--format", "short", "--no-cache", dir)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.Contains(stdout, "skip.py") || !strings.Contains(stdout, "keep.py") {
		t.Fatalf("exclude from config not applied: %q", stdout)
	}
}

func TestRulesList(t *testing.T) {
	stdout, _, code := run(t, "rules", "--format", "pretty")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 12 || !strings.HasPrefix(lines[0], "S001") || !strings.HasPrefix(lines[11], "S012") {
		t.Fatalf("unexpected rules output:\n%s", stdout)
	}
}

func TestRulesSelectByCode(t *testing.T) {
	stdout, _, code := run(t, "rules", "--format", "pretty", "S009", "s001")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "S009") || !strings.HasPrefix(lines[1], "S001") {
		t.Fatalf("unexpected rules output:\n%s", stdout)
	}

	_, _, code = run(t, "rules", "S099")
	if code != 2 {
		t.Fatalf("unknown code: exit code = %d", code)
	}
}

func TestParseIndex(t *testing.T) {
	dir := t.TempDir()
	p := writePy(t, dir, "m.py", "def f(a, b=[], *, c=1):\n    pass\nx = 1\n")
	t.Cleanup(func() { _ = parseCmd.Flags().Set("index", "false") })

	stdout, _, code := run(t, "parse", "--index", "--format", "json", p)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	var entries []indexEntry
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: %+v", entries)
	}
	fn := entries[0]
	if fn.Line != 1 || fn.Kind != "function" || fn.Name != "f" || strings.Join(fn.Args, ",") != "a,b,c" {
		t.Fatalf("function entry: %+v", fn)
	}
	if len(fn.Defaults) != 2 || fn.Defaults[0] != (defaultOutput{Kind: "list", Repr: "[]"}) ||
		fn.Defaults[1] != (defaultOutput{Kind: "int", Repr: "1"}) {
		t.Fatalf("defaults: %+v", fn.Defaults)
	}
	if v := entries[1]; v.Line != 3 || v.Kind != "variable" || v.Name != "x" || v.Args != nil {
		t.Fatalf("variable entry: %+v", entries[1])
	}

	stdout, _, code = run(t, "parse", "--index", "--format", "pretty", p)
	if code != 0 || !strings.Contains(stdout, "defaults: list []; int 1") {
		t.Fatalf("pretty index (exit %d):\n%s", code, stdout)
	}
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	_, _, code := run(t, "init", dir)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "stylecheck.toml")); err != nil {
		t.Fatal(err)
	}
}
