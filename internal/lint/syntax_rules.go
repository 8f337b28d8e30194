package lint

import (
	"regexp"

	"stylecheck/internal/diag"
)

// до двух подчёркиваний по краям, внутри группы [a-z0-9] через одиночный `_`
var snakeCase = regexp.MustCompile(`^_{0,2}[a-z0-9]+(_[a-z0-9]+)*_{0,2}$`)

// IsSnakeCase reports whether name is acceptable for functions, arguments
// and variables.
func IsSnakeCase(name string) bool {
	return snakeCase.MatchString(name)
}

func syntaxRules() []*Rule {
	return []*Rule{
		{Code: diag.FuncNameSnakeCase, Name: diag.FuncNameSnakeCase.Slug(), Kind: SyntaxRule, Syntax: checkFuncName,
			Doc: "function name is not snake_case"},
		{Code: diag.ArgNameSnakeCase, Name: diag.ArgNameSnakeCase.Slug(), Kind: SyntaxRule, Syntax: checkArgNames,
			Doc: "argument name is not snake_case (first offender per declaration)"},
		{Code: diag.VarNameSnakeCase, Name: diag.VarNameSnakeCase.Slug(), Kind: SyntaxRule, Syntax: checkVarName,
			Doc: "assigned variable name is not snake_case"},
		{Code: diag.MutableDefault, Name: diag.MutableDefault.Slug(), Kind: SyntaxRule, Syntax: checkDefaults,
			Doc: "argument default is not an int, str, bool, tuple, frozenset or None literal"},
	}
}

func checkFuncName(p *Pass, line int, r diag.Reporter) {
	fn, ok := p.Index.Function(line)
	if !ok || IsSnakeCase(fn.Name) {
		return
	}
	r.Report(p.report(diag.FuncNameSnakeCase, line, diag.Args{Name: fn.Name}))
}

// Только первый неподходящий аргумент; остальные на этой строке не проверяются.
func checkArgNames(p *Pass, line int, r diag.Reporter) {
	fn, ok := p.Index.Function(line)
	if !ok {
		return
	}
	for _, arg := range fn.Args {
		if !IsSnakeCase(arg) {
			r.Report(p.report(diag.ArgNameSnakeCase, line, diag.Args{Name: arg}))
			return
		}
	}
}

func checkVarName(p *Pass, line int, r diag.Reporter) {
	name, ok := p.Index.Variable(line)
	if !ok || IsSnakeCase(name) {
		return
	}
	r.Report(p.report(diag.VarNameSnakeCase, line, diag.Args{Name: name}))
}

func checkDefaults(p *Pass, line int, r diag.Reporter) {
	fn, ok := p.Index.Function(line)
	if !ok {
		return
	}
	for _, def := range fn.Defaults {
		if !def.Kind.Immutable() {
			r.Report(p.report(diag.MutableDefault, line, diag.Args{}))
		}
	}
}
