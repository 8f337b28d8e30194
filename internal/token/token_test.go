package token_test

import (
	"testing"

	"stylecheck/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	for _, word := range []string{"def", "class", "None", "True", "lambda", "async"} {
		k, ok := token.LookupKeyword(word)
		if !ok {
			t.Fatalf("%q must be a keyword", word)
		}
		if k.String() != word {
			t.Fatalf("%q round-trips as %q", word, k.String())
		}
	}
	for _, word := range []string{"match", "case", "none", "Def", "print"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must NOT be a keyword", word)
		}
	}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.ImagLit, token.StringLit, token.BytesLit, token.FStringLit}
	for _, k := range lits {
		if !(token.Token{Kind: k}).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwNone, token.LParen} {
		if (token.Token{Kind: k}).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestAugAssign(t *testing.T) {
	if !token.PlusAssign.IsAugAssign() || !token.PowAssign.IsAugAssign() {
		t.Fatal("augmented assignment bounds")
	}
	if token.Assign.IsAugAssign() || token.Walrus.IsAugAssign() {
		t.Fatal("plain = and := are not augmented")
	}
}
