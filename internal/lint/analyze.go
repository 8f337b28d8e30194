package lint

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/diag"
	"stylecheck/internal/source"
	"stylecheck/internal/syntaxindex"
)

// Analyze runs the default rule set over file and returns diagnostics in
// emission order: line ascending, then rule order within a line.
// mod must be the parse result of file's content.
func Analyze(path string, file *source.File, mod *ast.Module) []diag.Diagnostic {
	bag := diag.NewBag(0)
	AnalyzeInto(diag.BagReporter{Bag: bag}, path, file, mod)
	return bag.Items()
}

// AnalyzeInto is Analyze with an explicit sink.
func AnalyzeInto(r diag.Reporter, path string, file *source.File, mod *ast.Module) {
	Default().Run(NewPass(path, file, mod), r)
}

// NewPass builds the per-file context: line buffer and syntax index.
// mod may be nil; then only line rules can fire.
func NewPass(path string, file *source.File, mod *ast.Module) *Pass {
	p := &Pass{
		Path:  source.DisplayPath(path),
		File:  file,
		Lines: file.Lines(),
		Index: &syntaxindex.Index{
			Functions: map[int]syntaxindex.Function{},
			Variables: map[int]string{},
		},
	}
	if mod != nil {
		p.Index = syntaxindex.Build(mod, file)
	}
	return p
}

// Run: один проход по строкам 1..N.
func (s *Set) Run(p *Pass, r diag.Reporter) {
	for _, ln := range p.Lines {
		for _, rule := range s.rules {
			if rule.Kind != LineRule {
				continue
			}
			if d, ok := rule.Line(p, ln); ok {
				r.Report(d)
			}
		}
		if !p.hasEntry(ln.Index) {
			continue
		}
		for _, rule := range s.rules {
			if rule.Kind == SyntaxRule {
				rule.Syntax(p, ln.Index, r)
			}
		}
	}
}

func (p *Pass) hasEntry(line int) bool {
	if _, ok := p.Index.Functions[line]; ok {
		return true
	}
	_, ok := p.Index.Variables[line]
	return ok
}
