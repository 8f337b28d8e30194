// Package lint runs the style rules S001..S012 over one file.
//
// The input is the normalised source.File together with its parsed
// ast.Module. Analyze builds the syntaxindex once, then walks physical lines
// 1..N: every line rule runs in registry order, then the syntax rules whose
// entry is keyed by the current line. The package performs no I/O and never
// logs; callers decide presentation.
package lint
