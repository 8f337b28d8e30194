package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"stylecheck/internal/ast"
	"stylecheck/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed module:
// 1) file span is within content bounds and points at sf
// 2) every statement span is non-empty and inside the file span
// 3) a statement's Line lies within the lines its span covers
// 4) sibling statements appear in source order
func CheckSpanInvariants(mod *ast.Module, sf *source.File) error {
	if mod == nil || mod.Builder == nil || sf == nil {
		return fmt.Errorf("nil module or file")
	}
	f := mod.Builder.Files.Get(mod.File)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	if err := checkSiblings(mod.Builder, f.Body); err != nil {
		return err
	}

	var walkErr error
	mod.Inspect(func(id ast.StmtID, st *ast.Stmt) bool {
		if walkErr != nil {
			return false
		}
		// 2) statement inside file
		sp := st.Span
		if sp.End <= sp.Start {
			walkErr = fmt.Errorf("stmt %d (%s): empty span %v", id, st.Kind, sp)
			return false
		}
		if sp.File != sf.ID {
			walkErr = fmt.Errorf("stmt %d: span file mismatch: got=%d want=%d", id, sp.File, sf.ID)
			return false
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			walkErr = fmt.Errorf("stmt %d: span %v is outside file span %v", id, sp, f.Span)
			return false
		}
		// 3) строка узла внутри его span
		first := int(sf.Position(sp.Start).Line)
		last := int(sf.Position(sp.End - 1).Line)
		if st.Line < first || st.Line > last {
			walkErr = fmt.Errorf("stmt %d: line %d outside span lines %d..%d", id, st.Line, first, last)
			return false
		}
		// 4) порядок вложенных инструкций
		for _, body := range mod.Builder.Children(id) {
			if err := checkSiblings(mod.Builder, body); err != nil {
				walkErr = err
				return false
			}
		}
		return true
	})
	return walkErr
}

func checkSiblings(b *ast.Builder, stmts []ast.StmtID) error {
	var prev source.Span
	for i, id := range stmts {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil stmt for id=%d", id)
		}
		if i > 0 && st.Span.Start < prev.Start {
			return fmt.Errorf("stmt %d starts at %d before previous sibling at %d", id, st.Span.Start, prev.Start)
		}
		prev = st.Span
	}
	return nil
}
