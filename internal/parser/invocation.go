package parser

import (
	"dry/internal/source"
	"dry/internal/tt"
)

// Value is one substitution value: any, possibly empty, token sequence.
type Value []tt.Tree

// Invocation is a parsed macro_for input.
type Invocation struct {
	Marker      tt.Leaf
	Placeholder tt.Leaf
	Keyword     tt.Leaf
	ValuesGroup *tt.Group
	Values      []Value
	BodyGroup   *tt.Group
	Body        []tt.Tree
	// Trailing holds the trees after the body group; they take no part in expansion.
	Trailing []tt.Tree
}

// Span covers the invocation from the marker to the body, trailing trees excluded.
func (inv *Invocation) Span() source.Span {
	sp := inv.Marker.Span()
	if inv.BodyGroup != nil {
		sp = sp.Cover(inv.BodyGroup.Span())
	}
	return sp
}

// splitValues splits the children of the bracket group on top-level commas.
// An empty group yields a single empty value.
func splitValues(children []tt.Tree) []Value {
	values := make([]Value, 0, 4)
	cur := Value{}
	for _, child := range children {
		if l, ok := child.(tt.Leaf); ok && l.IsPunct() && l.Text() == "," {
			values = append(values, cur)
			cur = Value{}
			continue
		}
		cur = append(cur, child)
	}
	return append(values, cur)
}
