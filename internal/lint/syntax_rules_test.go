package lint

import (
	"strings"
	"testing"

	"stylecheck/internal/diag"
)

func TestIsSnakeCase(t *testing.T) {
	cases := map[string]bool{
		"x":           true,
		"my_function": true,
		"__init__":    true,
		"_private":    true,
		"a1_b2":       true,
		"9lives":      true,
		"trailing__":  true,
		"":            false,
		"_":           false,
		"___x":        false,
		"a__b":        false,
		"camelCase":   false,
		"Upper":       false,
		"trailing___": false,
		"dash-name":   false,
	}
	for name, want := range cases {
		if got := IsSnakeCase(name); got != want {
			t.Errorf("IsSnakeCase(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFunctionName(t *testing.T) {
	expectShort(t, analyzeSource(t, "def myFunction(arg):\n    pass\n"),
		"pkg/sample.py: Line 1: S009 Function name 'myFunction' should use snake_case")
	expectShort(t, analyzeSource(t, "def my_function(arg):\n    pass\n"))
}

func TestFunctionNameNestedAndDecorated(t *testing.T) {
	src := "class Foo:\n" +
		"    @staticmethod\n" +
		"    def Method():\n" +
		"        def innerFn():\n" +
		"            return 1\n" +
		"        return innerFn\n" +
		"\n" +
		"\n" +
		"async def fetchAll():\n" +
		"    pass\n"
	expectShort(t, analyzeSource(t, src),
		"pkg/sample.py: Line 3: S009 Function name 'Method' should use snake_case",
		"pkg/sample.py: Line 4: S009 Function name 'innerFn' should use snake_case",
		"pkg/sample.py: Line 9: S009 Function name 'fetchAll' should use snake_case")
}

func TestArgumentNameFirstOnly(t *testing.T) {
	diags := analyzeSource(t, "def f(self, myArg, otherArg):\n    pass\n")
	expectShort(t, diags,
		"pkg/sample.py: Line 1: S010 Argument name 'myArg' should be snake_case")

	diags = analyzeSource(t, "def f(ok, *Args, **KW):\n    pass\n")
	expectShort(t, diags,
		"pkg/sample.py: Line 1: S010 Argument name 'Args' should be snake_case")

	diags = analyzeSource(t, "def f(a, /, b, *, Kw=1):\n    pass\n")
	expectShort(t, diags,
		"pkg/sample.py: Line 1: S010 Argument name 'Kw' should be snake_case")
}

func TestVariableName(t *testing.T) {
	expectShort(t, analyzeSource(t, "myVar = 1\n"),
		"pkg/sample.py: Line 1: S011 Variable 'myVar' should be snake_case")
	expectShort(t, analyzeSource(t, "my_var = 1\n"))

	// на строке побеждает последнее присваивание
	expectShort(t, analyzeSource(t, "Aa = 1; Bb = 2\n"),
		"pkg/sample.py: Line 1: S003 Unnecessary semicolon",
		"pkg/sample.py: Line 1: S011 Variable 'Bb' should be snake_case")
	expectShort(t, analyzeSource(t, "Bb = 1; aa = 2\n"),
		"pkg/sample.py: Line 1: S003 Unnecessary semicolon")

	// не простые присваивания не учитываются
	src := "Aa = Bb = 1\n" +
		"Cc: int = 1\n" +
		"Dd += 1\n" +
		"obj.Attr = 1\n" +
		"Ee, Ff = 1, 2\n"
	expectShort(t, analyzeSource(t, src))
}

func TestMutableDefault(t *testing.T) {
	diags := analyzeSource(t, "def f(x=[]):\n    pass\n")
	if got := count(diags, diag.MutableDefault); got != 1 {
		t.Fatalf("S012 count = %d, want 1", got)
	}
	expectShort(t, analyzeSource(t, "def f(x=()):\n    pass\n"))
}

func TestMutableDefaultKinds(t *testing.T) {
	src := "def f(a=1, b='s', c=True, d=None,\n" +
		"      e=(1, 2), g=frozenset(), h=1.5,\n" +
		"      i={}, j=set(), k=-1, m=name):\n" +
		"    pass\n"
	diags := analyzeSource(t, src)
	var lines []int
	for _, d := range diags {
		if d.Code == diag.MutableDefault {
			lines = append(lines, d.Line)
		}
	}
	// h (float), i (dict), j (set), m (opaque) - все на строке def
	if len(lines) != 4 {
		t.Fatalf("S012 count = %d, want 4: %v", len(lines), diag.FormatShort(diags))
	}
	for _, l := range lines {
		if l != 1 {
			t.Fatalf("S012 must be keyed by the def line, got %d", l)
		}
	}
}

func TestSyntaxRuleOrder(t *testing.T) {
	diags := analyzeSource(t, "def Foo(A=[], b={}): Var = 1\n")
	got := codesOf(diags, 1)
	want := []string{"S009", "S010", "S011", "S012", "S012"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}
