package diag

import (
	"testing"
)

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		New(LineTooLong, "./pkg/mod.py", 1, Args{}),
		New(KeywordSpacing, "./pkg/mod.py", 3, Args{Keyword: "class"}),
		New(ClassNameCamelCase, "pkg/mod.py", 3, Args{Name: "myClass"}),
	}

	expected := "pkg/mod.py: Line 1: S001 The line is too long\n" +
		"pkg/mod.py: Line 3: S007 Too many spaces after 'class'\n" +
		"pkg/mod.py: Line 3: S008 Class name 'myClass' should use CamelCase"

	if got := FormatShort(diags); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatShort(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderUsesPositionalArgs(t *testing.T) {
	// имя, похожее на шаблон, не должно подставляться повторно
	d := New(VarNameSnakeCase, "a.py", 7, Args{Name: "<name>"})
	if want := "Variable '<name>' should be snake_case"; d.Message != want {
		t.Fatalf("got %q, want %q", d.Message, want)
	}

	cases := []struct {
		code Code
		args Args
		want string
	}{
		{KeywordSpacing, Args{Keyword: "def"}, "Too many spaces after 'def'"},
		{FuncNameSnakeCase, Args{Name: "myFunc"}, "Function name 'myFunc' should use snake_case"},
		{ArgNameSnakeCase, Args{Name: "Bad"}, "Argument name 'Bad' should be snake_case"},
		{MutableDefault, Args{Name: "ignored"}, "Default argument value is mutable"},
		{IndentationError, Args{}, "Indention Error"},
		{BlankLines, Args{}, "More than two blank lines used before this line"},
	}
	for _, tc := range cases {
		if got := tc.code.Render(tc.args); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestCodeIDs(t *testing.T) {
	codes := Codes()
	if len(codes) != 12 {
		t.Fatalf("expected 12 codes, got %d", len(codes))
	}
	for i, c := range codes {
		if c != Code(i+1) {
			t.Fatalf("codes out of order at %d: %s", i, c)
		}
	}
	if got := MutableDefault.ID(); got != "S012" {
		t.Fatalf("got %q", got)
	}
	if got := UnknownCode.ID(); got != "S000" {
		t.Fatalf("got %q", got)
	}
	if c, ok := ParseCode(" s004 "); !ok || c != CommentSpacing {
		t.Fatalf("ParseCode: %v %v", c, ok)
	}
	if _, ok := ParseCode("S013"); ok {
		t.Fatalf("S013 must not parse")
	}
}

func TestBagCapAndSort(t *testing.T) {
	b := NewBag(0)
	b.Add(New(MutableDefault, "b.py", 2, Args{}))
	b.Add(New(MutableDefault, "b.py", 2, Args{}))
	b.Add(New(LineTooLong, "b.py", 2, Args{}))
	b.Add(New(TodoComment, "a.py", 9, Args{}))
	b.Sort()

	got := FormatShort(b.Items())
	want := "a.py: Line 9: S005 Find TODO in line\n" +
		"b.py: Line 2: S001 The line is too long\n" +
		"b.py: Line 2: S012 Default argument value is mutable\n" +
		"b.py: Line 2: S012 Default argument value is mutable"
	if got != want {
		t.Fatalf("unexpected order:\n%s", got)
	}

	capped := NewBag(1)
	if !capped.Add(New(Semicolon, "x.py", 1, Args{})) {
		t.Fatalf("first add must succeed")
	}
	if capped.Add(New(Semicolon, "x.py", 2, Args{})) {
		t.Fatalf("second add must be dropped")
	}
	if capped.Len() != 1 || capped.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", capped.Len(), capped.Dropped())
	}
}

func TestReporters(t *testing.T) {
	bag := NewBag(0)
	var r Reporter = BagReporter{Bag: bag}
	r.Report(New(Semicolon, "x.py", 1, Args{}))
	NopReporter{}.Report(New(Semicolon, "x.py", 1, Args{}))

	var seen []Code
	FuncReporter(func(d Diagnostic) { seen = append(seen, d.Code) }).Report(New(TodoComment, "x.py", 1, Args{}))

	if bag.Len() != 1 || len(seen) != 1 || seen[0] != TodoComment {
		t.Fatalf("bag=%d seen=%v", bag.Len(), seen)
	}
}
