package expand

import (
	"dry/internal/token"
	"dry/internal/tt"
)

// Substitute returns a copy of body in which every placeholder identifier that
// directly follows the marker in the output built so far is replaced by value.
//
// The marker is appended like any other leaf and popped again when the
// placeholder arrives, so "$ x" and "$x" are the same site. A placeholder that
// does not follow the marker is copied unchanged. Groups keep their delimiter
// and are rebuilt around the substituted children.
func Substitute(body []tt.Tree, placeholder string, value []tt.Tree, marker string) []tt.Tree {
	out := make([]tt.Tree, 0, len(body)+len(value))
	for _, t := range body {
		switch n := t.(type) {
		case tt.Leaf:
			if n.IsIdent() && n.Text() == placeholder {
				if prev, ok := lastMarker(out, marker); ok {
					out = out[:len(out)-1]
					out = appendValue(out, value, prev.Tok.Leading)
					continue
				}
			}
			out = append(out, n)
		case *tt.Group:
			out = append(out, n.WithChildren(Substitute(n.Children, placeholder, value, marker)))
		}
	}
	return out
}

func lastMarker(out []tt.Tree, marker string) (tt.Leaf, bool) {
	if len(out) == 0 {
		return tt.Leaf{}, false
	}
	prev, ok := out[len(out)-1].(tt.Leaf)
	if !ok || !prev.IsPunct() || prev.Text() != marker {
		return tt.Leaf{}, false
	}
	return prev, true
}

// appendValue splices a fresh copy of value; the first tree takes over the
// marker's leading trivia.
func appendValue(out []tt.Tree, value []tt.Tree, leading []token.Trivia) []tt.Tree {
	cp := tt.Clone(value)
	if len(cp) > 0 {
		cp[0] = tt.WithLeading(cp[0], leading)
	}
	return append(out, cp...)
}
