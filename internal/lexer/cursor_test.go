package lexer

import (
	"testing"
	"unicode/utf8"

	"stylecheck/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.py", []byte(content)))
}

func TestCursorBumpAndEOF(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for i, want := range []byte{'a', '\n', 'b'} {
		if c.EOF() {
			t.Fatalf("EOF before byte %d", i)
		}
		if got := c.Peek(); got != want {
			t.Fatalf("peek %d: got %q, want %q", i, got, want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("bump %d: got %q, want %q", i, got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("expected EOF with zero bytes, off=%d", c.Off)
	}
	if c.Off != 3 {
		t.Fatalf("bump past EOF moved cursor to %d", c.Off)
	}
}

func TestCursorPeekN(t *testing.T) {
	c := NewCursor(createFile("**="))
	if b0, b1, b2, ok := c.Peek3(); !ok || b0 != '*' || b1 != '*' || b2 != '=' {
		t.Fatalf("peek3: %q %q %q %v", b0, b1, b2, ok)
	}
	c.Bump()
	if _, _, _, ok := c.Peek3(); ok {
		t.Fatal("peek3 must fail with two bytes left")
	}
	if b0, b1, ok := c.Peek2(); !ok || b0 != '*' || b1 != '=' {
		t.Fatalf("peek2: %q %q %v", b0, b1, ok)
	}
	c.Bump()
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("peek2 must fail on the last byte")
	}
}

func TestCursorRunes(t *testing.T) {
	c := NewCursor(createFile("αb"))
	r, sz := c.PeekRune()
	if r != 'α' || sz != 2 {
		t.Fatalf("got %q/%d", r, sz)
	}
	c.BumpRune()
	if r, sz = c.PeekRune(); r != 'b' || sz != 1 {
		t.Fatalf("got %q/%d", r, sz)
	}
	c.BumpRune()
	if r, sz = c.PeekRune(); r != utf8.RuneError || sz != 0 {
		t.Fatalf("at EOF got %q/%d", r, sz)
	}
	c.BumpRune()
	if c.Off != 3 {
		t.Fatalf("BumpRune at EOF moved cursor to %d", c.Off)
	}
}

func TestCursorSkip(t *testing.T) {
	c := NewCursor(createFile("   x = 1  # note\ny"))
	if n := c.SkipWhile(func(b byte) bool { return b == ' ' }); n != 3 {
		t.Fatalf("skipped %d spaces", n)
	}
	if !c.Eat('x') || c.Eat('x') {
		t.Fatal("Eat must consume exactly one matching byte")
	}
	for c.Peek() != '#' {
		c.Bump()
	}
	m := c.Mark()
	c.SkipToEOL()
	if got := c.TextFrom(m); got != "# note" {
		t.Fatalf("comment text %q", got)
	}
	if c.Peek() != '\n' {
		t.Fatalf("SkipToEOL must stop before newline, at %q", c.Peek())
	}
	c.Bump()
	c.SkipToEOL()
	if !c.EOF() {
		t.Fatal("SkipToEOL on last line must reach EOF")
	}
}

func TestCursorSpanAndReset(t *testing.T) {
	file := createFile("abc\ndef")
	c := NewCursor(file)
	c.Bump()
	m := c.Mark()
	for range 4 {
		c.Bump()
	}
	sp := c.SpanFrom(m)
	if sp.File != file.ID || sp.Start != 1 || sp.End != 5 {
		t.Fatalf("span %v", sp)
	}
	if got := file.Position(sp.Start); got != (source.LineCol{Line: 1, Col: 2}) {
		t.Fatalf("start %+v", got)
	}
	if got := file.Position(sp.End); got != (source.LineCol{Line: 2, Col: 2}) {
		t.Fatalf("end %+v", got)
	}
	c.Reset(m)
	if c.Peek() != 'b' || c.Off != 1 {
		t.Fatalf("reset to %d, peek %q", c.Off, c.Peek())
	}
}
