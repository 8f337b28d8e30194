package fuzztests

import (
	"errors"
	"strings"
	"testing"
	"time"

	"stylecheck/internal/lint"
	"stylecheck/internal/parser"
	"stylecheck/internal/source"
	"stylecheck/internal/testkit"
)

// parseTimeout is the maximum time allowed for checking a single input.
// If it takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))

		mod, err := parser.Parse(file)
		if err != nil {
			var se *parser.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("parse error is %T, want *parser.SyntaxError", err)
			}
			if se.Line < 1 {
				t.Fatalf("syntax error without line: %v", se)
			}
			return
		}
		if err := testkit.CheckSpanInvariants(mod, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzCheckNoHang runs the whole per-file pipeline under a timeout. Rules must
// stay total on any module the parser accepts.
func FuzzCheckNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// глубокая вложенность и длинные строки продолжения
	f.Add([]byte("x = " + strings.Repeat("(", 200) + "1" + strings.Repeat(")", 200) + "\n"))
	f.Add([]byte(strings.Repeat("if a:\n ", 50) + "pass\n"))
	f.Add([]byte("x = [\n" + strings.Repeat("    1,\n", 500) + "]\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.py", input))
			mod, err := parser.Parse(file)
			if err != nil {
				return
			}
			for _, d := range lint.Analyze("fuzz.py", file, mod) {
				if d.Line < 1 {
					t.Errorf("diagnostic without line: %v", d)
				}
			}
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("check hang detected: took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
