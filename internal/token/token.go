package token

import (
	"dry/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	// Joint is set on a Punct that is immediately followed by another Punct.
	Joint bool
}

// IsLiteral reports whether the token is a numeric, string, or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPunct reports whether the token is a punctuation character.
func (t Token) IsPunct() bool { return t.Kind == Punct }

// IsDelimiter reports whether the token opens or closes a group.
func (t Token) IsDelimiter() bool { return t.Kind.IsOpen() || t.Kind.IsClose() }

// Is reports whether the token is a Punct or Ident with exactly the given text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Ident) && t.Text == text
}

// Synthetic builds a token without source position.
func Synthetic(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}
