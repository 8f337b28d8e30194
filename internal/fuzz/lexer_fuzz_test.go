package fuzztests

import (
	"testing"

	"stylecheck/internal/lexer"
	"stylecheck/internal/source"
	"stylecheck/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))
		end := uint32(len(file.Content))

		errs := &lexer.ErrorList{File: file}
		lx := lexer.New(file, lexer.Options{Reporter: errs})
		var prev uint32
		// каждый токен двигает курсор не назад; INDENT/DEDENT могут быть пустыми
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Span.End > end || tok.Span.Start > tok.Span.End {
				t.Fatalf("token %d (%v): span %v outside %d bytes", i, tok.Kind, tok.Span, end)
			}
			if tok.Span.Start < prev {
				t.Fatalf("token %d (%v): span %v goes back before %d", i, tok.Kind, tok.Span, prev)
			}
			prev = tok.Span.Start
			if tok.Kind == token.EOF {
				break
			}
			if i > 4*len(input)+64 {
				t.Fatalf("lexer does not reach EOF on %d bytes", len(input))
			}
		}
		for _, e := range errs.Errors {
			if e.Line < 1 || e.Col < 1 {
				t.Fatalf("lexer error with bad position %d:%d: %s", e.Line, e.Col, e.Msg)
			}
		}
	})
}
