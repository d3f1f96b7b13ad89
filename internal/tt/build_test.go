package tt_test

import (
	"testing"

	"dry/internal/diag"
	"dry/internal/testkit"
	"dry/internal/tt"
)

func TestBuildNesting(t *testing.T) {
	trees := testkit.MustTree(t, "a (b [c, {d}]) e")
	if len(trees) != 3 {
		t.Fatalf("expected 3 top-level trees, got %d: %s", len(trees), tt.String(trees))
	}
	g, ok := trees[1].(*tt.Group)
	if !ok || g.Delim != tt.Paren {
		t.Fatalf("expected paren group, got %#v", trees[1])
	}
	if len(g.Children) != 2 {
		t.Fatalf("paren children: %s", tt.String(g.Children))
	}
	inner, ok := g.Children[1].(*tt.Group)
	if !ok || inner.Delim != tt.Bracket || len(inner.Children) != 3 {
		t.Fatalf("bracket group: %#v", g.Children[1])
	}
	if got := tt.String(trees); got != "a ( b [ c , { d } ] ) e" {
		t.Fatalf("String: %q", got)
	}
}

func TestBuildDelimiterErrors(t *testing.T) {
	tests := []struct {
		input string
		codes []diag.Code
		out   string
	}{
		{"a )", []diag.Code{diag.SynUnexpectedClose}, "a"},
		{"( a", []diag.Code{diag.SynUnclosedDelimiter}, "( a )"},
		{"( [ a )", []diag.Code{diag.SynMismatchedClose}, "( [ a ] )"},
		{"( a ]", []diag.Code{diag.SynMismatchedClose, diag.SynUnclosedDelimiter}, "( a )"},
	}
	for _, tc := range tests {
		src := testkit.Lex(tc.input)
		trees := src.Trees()
		items := src.Bag.Items()
		if len(items) != len(tc.codes) {
			t.Errorf("%q: expected %d diagnostics, got %v", tc.input, len(tc.codes), items)
			continue
		}
		for i, code := range tc.codes {
			if items[i].Code != code {
				t.Errorf("%q: diagnostic %d: expected %s, got %s", tc.input, i, code.ID(), items[i].Code.ID())
			}
		}
		if got := tt.String(trees); got != tc.out {
			t.Errorf("%q: recovered tree %q, want %q", tc.input, got, tc.out)
		}
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	src := testkit.MustLex(t, "f(x)[0] { y }")
	trees := src.Trees()
	flat := tt.Flatten(trees)
	if len(flat) != len(src.Tokens)-1 { // minus EOF
		t.Fatalf("flatten: %d tokens, lexer: %d", len(flat), len(src.Tokens)-1)
	}
	for i := range flat {
		if flat[i].Text != src.Tokens[i].Text || flat[i].Span != src.Tokens[i].Span {
			t.Fatalf("token %d differs: %+v vs %+v", i, flat[i], src.Tokens[i])
		}
	}
}

func TestEqualIgnoresTrivia(t *testing.T) {
	a := testkit.MustTree(t, "f( x ,y )")
	b := testkit.MustTree(t, "f(x, /* c */ y)")
	if !tt.Equal(a, b) {
		t.Fatalf("expected equal: %s vs %s", tt.String(a), tt.String(b))
	}
	c := testkit.MustTree(t, "f[x, y]")
	if tt.Equal(a, c) {
		t.Fatalf("different delimiters must not be equal")
	}
}

func TestSpanCoversForest(t *testing.T) {
	trees := testkit.MustTree(t, "  a (b) c")
	sp := tt.Span(trees)
	if sp.Start != 2 || sp.End != 9 {
		t.Fatalf("span %v", sp)
	}
	if !tt.Span(nil).IsZero() {
		t.Fatalf("empty forest must have zero span")
	}
}

func TestWithLeadingDoesNotMutate(t *testing.T) {
	trees := testkit.MustTree(t, " (a)")
	g := trees[0].(*tt.Group)
	moved := tt.WithLeading(g, nil).(*tt.Group)
	if len(g.Open.Leading) != 1 || len(moved.Open.Leading) != 0 {
		t.Fatalf("WithLeading must copy the group")
	}
}

func TestCount(t *testing.T) {
	trees := testkit.MustTree(t, "a (b {c}) d")
	if n := tt.Count(trees); n != 6 {
		t.Fatalf("count = %d", n)
	}
}

func TestCloneAllocatesGroups(t *testing.T) {
	trees := testkit.MustTree(t, "a (b [c])")
	cp := tt.Clone(trees)
	if !tt.Equal(trees, cp) {
		t.Fatalf("clone differs")
	}
	if cp[1] == trees[1] || cp[1].(*tt.Group).Children[1] == trees[1].(*tt.Group).Children[1] {
		t.Fatalf("clone shares groups")
	}
}
