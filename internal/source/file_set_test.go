package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.py", []byte("x = 1\n"), 0)
	id2 := fs.Add("test.py", []byte("x = 2\n"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", id1, id2)
	}

	// Индекс указывает на последнюю версию
	f, ok := fs.GetByPath("./test.py")
	if !ok {
		t.Fatal("expected file to be found by path")
	}
	if string(f.Content) != "x = 2\n" {
		t.Errorf("expected latest content, got %q", f.Content)
	}
	if string(fs.Get(id1).Content) != "x = 1\n" {
		t.Errorf("old version must stay reachable by id")
	}
}

func TestLinesKeepTerminators(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: nil},
		{name: "single without newline", content: "pass", want: []string{"pass"}},
		{name: "single with newline", content: "pass\n", want: []string{"pass\n"}},
		{name: "blank lines", content: "a\n\n\nb\n", want: []string{"a\n", "\n", "\n", "b\n"}},
		{name: "trailing line without newline", content: "a\nb", want: []string{"a\n", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFile("t.py", []byte(tt.content), FileVirtual)
			lines := f.Lines()
			if len(lines) != len(tt.want) {
				t.Fatalf("expected %d lines, got %d (%q)", len(tt.want), len(lines), lines)
			}
			if f.LineCount() != len(tt.want) {
				t.Errorf("LineCount = %d, want %d", f.LineCount(), len(tt.want))
			}
			for i, l := range lines {
				if l.Index != i+1 {
					t.Errorf("line %d has index %d", i+1, l.Index)
				}
				if l.Text != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i+1, l.Text, tt.want[i])
				}
			}
		})
	}
}

func TestLineOutOfRange(t *testing.T) {
	f := NewFile("t.py", []byte("a\nb\n"), 0)
	if got := f.Line(0); got != "" {
		t.Errorf("Line(0) = %q", got)
	}
	if got := f.Line(3); got != "" {
		t.Errorf("Line(3) = %q", got)
	}
	if got := f.Line(2); got != "b\n" {
		t.Errorf("Line(2) = %q", got)
	}
}

// TestCRLFNormalization проверяет нормализацию CRLF
func TestCRLFNormalization(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\r\nc\r"))
	if !changed {
		t.Error("expected CRLF normalization to be detected")
	}
	if string(normalized) != "a\nb\nc\r" {
		t.Errorf("unexpected normalized content %q", normalized)
	}
}

// TestBOMRemoval проверяет удаление BOM
func TestBOMRemoval(t *testing.T) {
	withoutBOM, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x', '\n'})
	if !hadBOM {
		t.Error("expected BOM to be detected")
	}
	if string(withoutBOM) != "x\n" {
		t.Errorf("unexpected content %q", withoutBOM)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.py", []byte("ab\ncd\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам \n принадлежит первой строке
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.py")
	content := []byte{0xEF, 0xBB, 0xBF, 'x', ' ', '=', ' ', '1', '\r', '\n'}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x = 1\n" {
		t.Errorf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", f.Flags)
	}
}

func TestLoadRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.py")
	if err := os.WriteFile(path, []byte("s = '\xe9'\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewFileSet().Load(path)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewFileSet().Load(filepath.Join(t.TempDir(), "nope.py"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDisplayPath(t *testing.T) {
	if got := DisplayPath("./././pkg/mod.py"); got != "pkg/mod.py" {
		t.Errorf("DisplayPath = %q", got)
	}
}
