package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"stylecheck/internal/diag"
	"stylecheck/internal/source"
)

func sampleSet() (*source.FileSet, []diag.Diagnostic) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("import os\n    class  myClass:\n")
	id := fs.AddVirtual("/home/user/project/src/mod.py", content)
	file := fs.Get(id)

	line2 := source.Span{File: id, Start: file.LineIdx[0] + 1, End: file.LineIdx[1]}
	diags := []diag.Diagnostic{
		diag.New(diag.KeywordSpacing, "/home/user/project/src/mod.py", 2, diag.Args{Keyword: "class"}).WithSpan(line2),
		diag.New(diag.ClassNameCamelCase, "/home/user/project/src/mod.py", 2, diag.Args{Name: "myClass"}).WithSpan(line2),
	}
	return fs, diags
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs, diags := sampleSet()

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/mod.py:2:"},
		{"Relative path", PathModeRelative, "\nsrc/mod.py:2:"},
		{"Basename only", PathModeBasename, "\nmod.py:2:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{PathMode: tt.mode, BaseDir: fs.BaseDir(), ShowSource: true}
			if err := Pretty(&buf, diags, fs, opts); err != nil {
				t.Fatal(err)
			}
			output := "\n" + buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING") || !strings.Contains(output, "S007") {
				t.Errorf("Expected severity and code in output:\n%s", output)
			}
		})
	}
}

func TestPrettySourceCaret(t *testing.T) {
	fs, diags := sampleSet()
	var buf bytes.Buffer
	opts := PrettyOpts{PathMode: PathModeBasename, ShowSource: true}
	if err := Pretty(&buf, diags[:1], fs, opts); err != nil {
		t.Fatal(err)
	}
	want := "mod.py:2: WARNING S007: Too many spaces after 'class'\n" +
		" 2 |     class  myClass:\n" +
		"   |     ^^^^^^^^^^^^^^^\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected pretty output:\nwant:\n%q\ngot:\n%q", want, got)
	}
}

func TestPrettyNoColorCodes(t *testing.T) {
	fs, diags := sampleSet()
	var buf bytes.Buffer
	if err := Pretty(&buf, diags, fs, PrettyOpts{Color: false}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("escape codes with color disabled: %q", buf.String())
	}

	buf.Reset()
	if err := Pretty(&buf, diags, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected escape codes with color enabled: %q", buf.String())
	}
}

func TestPrettyWidthTruncates(t *testing.T) {
	fs := source.NewFileSet()
	long := "x = '" + strings.Repeat("ж", 100) + "'\n"
	id := fs.AddVirtual("long.py", []byte(long))
	d := diag.New(diag.LineTooLong, "long.py", 1, diag.Args{}).WithSpan(source.Span{File: id, End: uint32(len(long) - 1)})

	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{ShowSource: true, Width: 20}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 || !strings.HasSuffix(lines[1], "…") {
		t.Fatalf("expected truncated source line, got:\n%s", buf.String())
	}
}

func TestShortAndFailures(t *testing.T) {
	_, diags := sampleSet()
	var buf bytes.Buffer
	if err := Short(&buf, diags, ShortOpts{PathMode: PathModeRelative, BaseDir: "/home/user/project"}); err != nil {
		t.Fatal(err)
	}
	want := "src/mod.py: Line 2: S007 Too many spaces after 'class'\n" +
		"src/mod.py: Line 2: S008 Class name 'myClass' should use CamelCase\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s", buf.String())
	}

	buf.Reset()
	failures := []Failure{
		{Path: "./bad.py", Kind: "syntax", Line: 3, Message: "expected ':'"},
		{Path: "gone.py", Kind: "read", Message: "no such file"},
	}
	if err := ShortFailures(&buf, failures, ShortOpts{}); err != nil {
		t.Fatal(err)
	}
	want = "bad.py: Line 3: syntax error: expected ':'\n" +
		"gone.py: read error: no such file\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s", buf.String())
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "auto": PathModeAuto, "absolute": PathModeAbsolute, "relative": PathModeRelative, "basename": PathModeBasename} {
		if got, ok := ParsePathMode(in); !ok || got != want {
			t.Errorf("%q: got %v %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("weird"); ok {
		t.Errorf("unknown mode accepted")
	}
}
