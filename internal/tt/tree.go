package tt

import (
	"dry/internal/source"
	"dry/internal/token"
)

// Delim is the delimiter kind of a group.
type Delim uint8

const (
	Paren Delim = iota + 1
	Bracket
	Brace
)

func (d Delim) String() string {
	switch d {
	case Paren:
		return "paren"
	case Bracket:
		return "bracket"
	case Brace:
		return "brace"
	default:
		return "delim(?)"
	}
}

// Open returns the opening delimiter text.
func (d Delim) Open() string {
	switch d {
	case Paren:
		return "("
	case Bracket:
		return "["
	case Brace:
		return "{"
	}
	return ""
}

// Close returns the closing delimiter text.
func (d Delim) Close() string {
	switch d {
	case Paren:
		return ")"
	case Bracket:
		return "]"
	case Brace:
		return "}"
	}
	return ""
}

// OpenKind returns the token kind of the opening delimiter.
func (d Delim) OpenKind() token.Kind {
	switch d {
	case Paren:
		return token.LParen
	case Bracket:
		return token.LBracket
	case Brace:
		return token.LBrace
	}
	return token.Invalid
}

// DelimOf maps an opening or closing token kind to its delimiter.
func DelimOf(k token.Kind) (Delim, bool) {
	switch k {
	case token.LParen, token.RParen:
		return Paren, true
	case token.LBracket, token.RBracket:
		return Bracket, true
	case token.LBrace, token.RBrace:
		return Brace, true
	}
	return 0, false
}

// Tree is a Leaf or a *Group.
type Tree interface {
	Span() source.Span
	isTree()
}

// Leaf wraps a single non-delimiter token.
type Leaf struct {
	Tok token.Token
}

// Group is a delimited subtree. Open and Close are the delimiter tokens; they
// carry spans and trivia but are not part of Children.
type Group struct {
	Delim    Delim
	Open     token.Token
	Close    token.Token
	Children []Tree
}

func (Leaf) isTree()   {}
func (*Group) isTree() {}

func (l Leaf) Span() source.Span { return l.Tok.Span }

func (g *Group) Span() source.Span {
	return g.Open.Span.Cover(g.Close.Span)
}

// Text returns the token text.
func (l Leaf) Text() string { return l.Tok.Text }

// Is reports whether the leaf is a punctuation or identifier with the given text.
func (l Leaf) Is(text string) bool { return l.Tok.Is(text) }

// IsIdent reports whether the leaf is an identifier.
func (l Leaf) IsIdent() bool { return l.Tok.Kind == token.Ident }

// IsPunct reports whether the leaf is punctuation.
func (l Leaf) IsPunct() bool { return l.Tok.Kind == token.Punct }

// NewLeaf wraps tok.
func NewLeaf(tok token.Token) Leaf { return Leaf{Tok: tok} }

// Ident builds a synthetic identifier leaf.
func Ident(name string) Leaf { return Leaf{Tok: token.Synthetic(token.Ident, name)} }

// Punct builds a synthetic punctuation leaf.
func Punct(ch string) Leaf { return Leaf{Tok: token.Synthetic(token.Punct, ch)} }

// NewGroup builds a group with synthetic delimiter tokens.
func NewGroup(d Delim, children []Tree) *Group {
	return &Group{
		Delim:    d,
		Open:     token.Synthetic(d.OpenKind(), d.Open()),
		Close:    token.Synthetic(d.OpenKind().Closer(), d.Close()),
		Children: children,
	}
}

// WithChildren returns a copy of g with the same delimiters and new children.
func (g *Group) WithChildren(children []Tree) *Group {
	return &Group{Delim: g.Delim, Open: g.Open, Close: g.Close, Children: children}
}
