package token_test

import (
	"testing"

	"dry/internal/source"
	"dry/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.CharLit}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.Punct, token.LParen, token.EOF}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestDelimiterPairs(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.LParen:   token.RParen,
		token.LBracket: token.RBracket,
		token.LBrace:   token.RBrace,
	}
	for open, closeKind := range pairs {
		if !open.IsOpen() || open.IsClose() {
			t.Fatalf("%v must be an opening delimiter", open)
		}
		if !closeKind.IsClose() || closeKind.IsOpen() {
			t.Fatalf("%v must be a closing delimiter", closeKind)
		}
		if open.Closer() != closeKind {
			t.Fatalf("%v.Closer() = %v, want %v", open, open.Closer(), closeKind)
		}
	}
	if token.Ident.Closer() != token.Invalid {
		t.Fatal("Ident has no closer")
	}
}

func TestIs(t *testing.T) {
	dollar := token.Token{Kind: token.Punct, Text: "$"}
	if !dollar.Is("$") || dollar.Is("!") {
		t.Fatal("Is must compare punct text")
	}
	str := token.Token{Kind: token.StringLit, Text: `"$"`}
	if str.Is(`"$"`) {
		t.Fatal("literals never match Is")
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Fatal("unknown kinds must not panic")
	}
}
