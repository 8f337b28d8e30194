package token

import (
	"stylecheck/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line int // 1-based line of the first byte
	Col  int // 1-based byte column
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, ImagLit, StringLit, BytesLit, FStringLit:
		return true
	default:
		return false
	}
}

// IsString reports whether the token is any kind of string literal.
func (t Token) IsString() bool {
	return t.Kind == StringLit || t.Kind == BytesLit || t.Kind == FStringLit
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsSoft reports whether the token is the identifier name (used for soft keywords).
func (t Token) IsSoft(name string) bool { return t.Kind == Ident && t.Text == name }
