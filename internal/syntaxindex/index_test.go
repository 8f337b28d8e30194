package syntaxindex_test

import (
	"slices"
	"testing"

	"stylecheck/internal/parser"
	"stylecheck/internal/source"
	"stylecheck/internal/syntaxindex"
)

func buildIndex(t *testing.T, src string) *syntaxindex.Index {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(src)))
	mod, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return syntaxindex.Build(mod, file)
}

func TestFunctionsByDefLine(t *testing.T) {
	src := "@decorator\n" +
		"def outer(a, b=1, *args, c, d=[], **kw):\n" +
		"    async def inner(self):\n" +
		"        pass\n" +
		"class K:\n" +
		"    def method(self, x=()):\n" +
		"        return lambda y=[]: y\n"
	idx := buildIndex(t, src)

	if len(idx.Functions) != 3 {
		t.Fatalf("functions: got %d, want 3 (%v)", len(idx.Functions), idx.Functions)
	}
	outer, ok := idx.Function(2)
	if !ok || outer.Name != "outer" {
		t.Fatalf("outer: got %+v", outer)
	}
	if want := []string{"a", "b", "args", "c", "d", "kw"}; !slices.Equal(outer.Args, want) {
		t.Fatalf("args: got %v, want %v", outer.Args, want)
	}
	if len(outer.Defaults) != 2 ||
		outer.Defaults[0].Kind != syntaxindex.KindInt ||
		outer.Defaults[1].Kind != syntaxindex.KindList ||
		outer.Defaults[1].Repr != "[]" {
		t.Fatalf("defaults: %+v", outer.Defaults)
	}
	if inner, ok := idx.Function(3); !ok || inner.Name != "inner" {
		t.Fatalf("inner: got %+v", inner)
	}
	if m, ok := idx.Function(6); !ok || m.Defaults[0].Kind != syntaxindex.KindTuple {
		t.Fatalf("method: got %+v", m)
	}
	if _, ok := idx.Function(1); ok {
		t.Fatalf("decorator line must not carry a function")
	}
}

func TestKeywordOnlyDefaultsFollowPositional(t *testing.T) {
	idx := buildIndex(t, "def f(a=1, *, k={}, j='s'):\n    pass\n")
	fn, _ := idx.Function(1)
	got := make([]syntaxindex.Kind, 0, len(fn.Defaults))
	for _, d := range fn.Defaults {
		got = append(got, d.Kind)
	}
	want := []syntaxindex.Kind{syntaxindex.KindInt, syntaxindex.KindDict, syntaxindex.KindString}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestVariables(t *testing.T) {
	src := "x = 1\n" +
		"a = 1; b = 2\n" +
		"c = d = 3\n" +
		"e, f = 1, 2\n" +
		"obj.attr = 5\n" +
		"g: int = 6\n" +
		"h += 1\n" +
		"def fn():\n" +
		"    local_Var = 7\n"
	idx := buildIndex(t, src)
	want := map[int]string{1: "x", 2: "b", 9: "local_Var"}
	if len(idx.Variables) != len(want) {
		t.Fatalf("variables: got %v, want %v", idx.Variables, want)
	}
	for line, name := range want {
		if got, ok := idx.Variable(line); !ok || got != name {
			t.Fatalf("line %d: got %q, want %q", line, got, name)
		}
	}
}

func TestDefaultKinds(t *testing.T) {
	tests := []struct {
		def  string
		want syntaxindex.Kind
	}{
		{"1", syntaxindex.KindInt},
		{"-1", syntaxindex.KindInt},
		{"0x10", syntaxindex.KindInt},
		{"1.5", syntaxindex.KindFloat},
		{"-2.5e3", syntaxindex.KindFloat},
		{"2j", syntaxindex.KindComplex},
		{"1+2j", syntaxindex.KindComplex},
		{"'s'", syntaxindex.KindString},
		{"'a' 'b'", syntaxindex.KindString},
		{"b'x'", syntaxindex.KindBytes},
		{"True", syntaxindex.KindBool},
		{"None", syntaxindex.KindNone},
		{"()", syntaxindex.KindTuple},
		{"(1, 'a', (None,))", syntaxindex.KindTuple},
		{"frozenset()", syntaxindex.KindFrozenSet},
		{"frozenset({1, 2})", syntaxindex.KindFrozenSet},
		{"[]", syntaxindex.KindList},
		{"[1, 2]", syntaxindex.KindList},
		{"{}", syntaxindex.KindDict},
		{"{'a': 1}", syntaxindex.KindDict},
		{"{1}", syntaxindex.KindSet},
		{"set()", syntaxindex.KindSet},
		{"f'{x}'", syntaxindex.KindOpaque},
		{"CONST", syntaxindex.KindOpaque},
		{"list()", syntaxindex.KindOpaque},
		{"(x, 1)", syntaxindex.KindOpaque},
		{"[i for i in r]", syntaxindex.KindOpaque},
		{"frozenset(items)", syntaxindex.KindOpaque},
		{"-x", syntaxindex.KindOpaque},
		{"lambda: 0", syntaxindex.KindOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			idx := buildIndex(t, "def f(p="+tt.def+"):\n    pass\n")
			fn, ok := idx.Function(1)
			if !ok || len(fn.Defaults) != 1 {
				t.Fatalf("function: %+v", fn)
			}
			if got := fn.Defaults[0].Kind; got != tt.want {
				t.Fatalf("kind: got %v, want %v", got, tt.want)
			}
			if fn.Defaults[0].Repr != tt.def {
				t.Fatalf("repr: got %q, want %q", fn.Defaults[0].Repr, tt.def)
			}
		})
	}
}

func TestImmutableKinds(t *testing.T) {
	immutable := []syntaxindex.Kind{
		syntaxindex.KindInt, syntaxindex.KindString, syntaxindex.KindBool,
		syntaxindex.KindTuple, syntaxindex.KindFrozenSet, syntaxindex.KindNone,
	}
	for k := syntaxindex.KindOpaque; k <= syntaxindex.KindSet; k++ {
		if got, want := k.Immutable(), slices.Contains(immutable, k); got != want {
			t.Fatalf("%v: Immutable() = %v, want %v", k, got, want)
		}
	}
}

func TestNamesAreNFKCNormalized(t *testing.T) {
	// U+FB01 (ﬁ) раскладывается в "fi"
	idx := buildIndex(t, "def \ufb01nd(x):\n    pass\n\ufb01le = 1\n")
	if fn, _ := idx.Function(1); fn.Name != "find" {
		t.Fatalf("function name: got %q", fn.Name)
	}
	if v, _ := idx.Variable(3); v != "file" {
		t.Fatalf("variable name: got %q", v)
	}
}

func TestLines(t *testing.T) {
	idx := buildIndex(t, "a = 1\ndef f():\n    b = 2\n")
	if got := idx.Lines(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("lines: got %v", got)
	}
}
