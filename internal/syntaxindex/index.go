package syntaxindex

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"stylecheck/internal/ast"
	"stylecheck/internal/source"
)

// Function: объявление функции на строке `def`.
type Function struct {
	Name     string
	Args     []string
	Defaults []DefaultValue
}

// Index: типизированная карта объявлений по номеру строки (1-based).
type Index struct {
	Functions map[int]Function
	Variables map[int]string
}

// Lines returns every line that carries an entry, ascending.
func (idx *Index) Lines() []int {
	seen := make(map[int]struct{}, len(idx.Functions)+len(idx.Variables))
	for l := range idx.Functions {
		seen[l] = struct{}{}
	}
	for l := range idx.Variables {
		seen[l] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Function returns the function declared on line, if any.
func (idx *Index) Function(line int) (Function, bool) {
	fn, ok := idx.Functions[line]
	return fn, ok
}

// Variable returns the variable assigned on line, if any.
func (idx *Index) Variable(line int) (string, bool) {
	name, ok := idx.Variables[line]
	return name, ok
}

type indexer struct {
	builder *ast.Builder
	src     *source.File
	idx     *Index
}

// Build walks mod once and records every function declaration and every
// single-target assignment to a plain name. src supplies the text used for
// DefaultValue.Repr; it may be nil.
func Build(mod *ast.Module, src *source.File) *Index {
	ix := &indexer{
		builder: mod.Builder,
		src:     src,
		idx: &Index{
			Functions: make(map[int]Function),
			Variables: make(map[int]string),
		},
	}
	mod.Inspect(func(id ast.StmtID, st *ast.Stmt) bool {
		ix.handleStmt(id, st)
		return true
	})
	return ix.idx
}

func (ix *indexer) handleStmt(id ast.StmtID, st *ast.Stmt) {
	switch st.Kind {
	case ast.StmtFuncDef:
		if fn, ok := ix.builder.Stmts.FuncDef(id); ok && fn != nil {
			ix.declareFunction(st.Line, fn)
		}
	case ast.StmtAssign:
		if as, ok := ix.builder.Stmts.Assign(id); ok && as != nil {
			ix.declareVariable(st.Line, as)
		}
	}
}

func (ix *indexer) declareFunction(line int, fn *ast.StmtFuncDefData) {
	decl := Function{
		Name: normalizeName(fn.Name),
		Args: make([]string, 0, len(fn.Params)),
	}
	var kwDefaults []DefaultValue
	for _, param := range fn.Params {
		decl.Args = append(decl.Args, normalizeName(param.Name))
		if !param.Default.IsValid() {
			continue
		}
		dv := ix.classify(param.Default)
		// позиционные значения по умолчанию идут раньше keyword-only
		if param.Kind == ast.ParamKwOnly {
			kwDefaults = append(kwDefaults, dv)
		} else {
			decl.Defaults = append(decl.Defaults, dv)
		}
	}
	decl.Defaults = append(decl.Defaults, kwDefaults...)
	ix.idx.Functions[line] = decl
}

func (ix *indexer) declareVariable(line int, as *ast.StmtAssignData) {
	if len(as.Targets) != 1 {
		return
	}
	name, ok := ix.builder.Exprs.Name(as.Targets[0])
	if !ok {
		return
	}
	ix.idx.Variables[line] = normalizeName(name.Name)
}

// normalizeName приводит идентификатор к NFKC, как это делает Python при
// разборе имён.
func normalizeName(name string) string {
	return norm.NFKC.String(name)
}
