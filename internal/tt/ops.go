package tt

import (
	"strings"

	"dry/internal/source"
	"dry/internal/token"
)

// Flatten returns the token stream of a forest, delimiters included.
func Flatten(trees []Tree) []token.Token {
	out := make([]token.Token, 0, len(trees))
	return appendTokens(out, trees)
}

func appendTokens(out []token.Token, trees []Tree) []token.Token {
	for _, t := range trees {
		switch n := t.(type) {
		case Leaf:
			out = append(out, n.Tok)
		case *Group:
			out = append(out, n.Open)
			out = appendTokens(out, n.Children)
			out = append(out, n.Close)
		}
	}
	return out
}

// Equal compares two forests by structure, delimiter, leaf kind and text.
// Spans, trivia and Joint flags are ignored.
func Equal(a, b []Tree) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalTree(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalTree(a, b Tree) bool {
	switch x := a.(type) {
	case Leaf:
		y, ok := b.(Leaf)
		return ok && x.Tok.Kind == y.Tok.Kind && x.Tok.Text == y.Tok.Text
	case *Group:
		y, ok := b.(*Group)
		return ok && x.Delim == y.Delim && Equal(x.Children, y.Children)
	}
	return false
}

// String renders a forest with a single space between tokens: "print ( 1 ) ;".
func String(trees []Tree) string {
	toks := Flatten(trees)
	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

// Span covers every real span of the forest; synthetic tokens are skipped.
func Span(trees []Tree) source.Span {
	var sp source.Span
	for _, t := range trees {
		sp = sp.Cover(t.Span())
	}
	return sp
}

// Count returns the number of top-level trees plus all nested trees.
func Count(trees []Tree) int {
	n := 0
	for _, t := range trees {
		n++
		if g, ok := t.(*Group); ok {
			n += Count(g.Children)
		}
	}
	return n
}

// Leading returns the leading trivia of the first token of t.
func Leading(t Tree) []token.Trivia {
	switch n := t.(type) {
	case Leaf:
		return n.Tok.Leading
	case *Group:
		return n.Open.Leading
	}
	return nil
}

// WithLeading returns t with the leading trivia of its first token replaced.
// Groups are copied shallowly.
func WithLeading(t Tree, trivia []token.Trivia) Tree {
	switch n := t.(type) {
	case Leaf:
		n.Tok.Leading = trivia
		return n
	case *Group:
		g := *n
		g.Open.Leading = trivia
		return &g
	}
	return t
}

// Walk visits every tree depth-first. Returning false from fn skips the children of a group.
func Walk(trees []Tree, fn func(Tree) bool) {
	for _, t := range trees {
		if !fn(t) {
			continue
		}
		if g, ok := t.(*Group); ok {
			Walk(g.Children, fn)
		}
	}
}

// Clone deep-copies a forest so that every group in the result is freshly allocated.
func Clone(trees []Tree) []Tree {
	if trees == nil {
		return nil
	}
	out := make([]Tree, len(trees))
	for i, t := range trees {
		if g, ok := t.(*Group); ok {
			out[i] = g.WithChildren(Clone(g.Children))
			continue
		}
		out[i] = t
	}
	return out
}
