package parser

import (
	"fmt"

	"dry/internal/diag"
	"dry/internal/source"
	"dry/internal/tt"
)

const (
	DefaultMarker  = "$"
	DefaultKeyword = "in"
)

type Options struct {
	Marker  string // "$" по умолчанию
	Keyword string // "in" по умолчанию
	// CheckAdjacency rejects whitespace between marker and identifier.
	// It only applies when both tokens carry real spans.
	CheckAdjacency bool
	// Site anchors errors that have no offending token (empty input, premature end).
	Site source.Span
}

func (o Options) withDefaults() Options {
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if o.Keyword == "" {
		o.Keyword = DefaultKeyword
	}
	return o
}

// Parser: состояние разбора одного вызова
type Parser struct {
	trees    []tt.Tree
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного дерева для лучшей диагностики
}

// Parse reads an invocation from the inner trees of a macro_for call.
// It returns the first grammar error and never a partial invocation.
func Parse(trees []tt.Tree, opts Options) (*Invocation, error) {
	p := Parser{trees: trees, opts: opts.withDefaults(), lastSpan: opts.Site}
	inv, gerr := p.parse()
	if gerr != nil {
		return nil, gerr
	}
	return inv, nil
}

func (p *Parser) parse() (*Invocation, *GrammarError) {
	inv := &Invocation{}
	var err *GrammarError

	if inv.Marker, inv.Placeholder, err = p.parsePlaceholder(); err != nil {
		return nil, err
	}
	if inv.Keyword, err = p.parseKeyword(); err != nil {
		return nil, err
	}
	if inv.ValuesGroup, err = p.parseValues(); err != nil {
		return nil, err
	}
	inv.Values = splitValues(inv.ValuesGroup.Children)
	if inv.BodyGroup, err = p.parseBody(); err != nil {
		return nil, err
	}
	inv.Body = inv.BodyGroup.Children
	inv.Trailing = p.trees[p.pos:]
	return inv, nil
}

// advance: съедает следующее дерево и обновляет lastSpan
func (p *Parser) advance() (tt.Tree, bool) {
	if p.pos >= len(p.trees) {
		return nil, false
	}
	t := p.trees[p.pos]
	p.pos++
	if sp := t.Span(); !sp.IsZero() {
		p.lastSpan = sp
	}
	return t, true
}

// siteSpan: лучший span, когда конкретного токена нет
func (p *Parser) siteSpan() source.Span {
	if !p.opts.Site.IsZero() {
		return p.opts.Site
	}
	return p.lastSpan
}

func (p *Parser) parsePlaceholder() (marker, ident tt.Leaf, err *GrammarError) {
	m := p.opts.Marker
	t, ok := p.advance()
	if !ok {
		return marker, ident, newError(ErrMissingMarker, p.siteSpan(),
			fmt.Sprintf("expected substitution identifier starting with '%s'", m))
	}

	leaf, isLeaf := t.(tt.Leaf)
	switch {
	case isLeaf && leaf.IsPunct() && leaf.Text() == m:
		marker = leaf
	case isLeaf && leaf.IsIdent() && leaf.Text() == p.opts.Keyword:
		return marker, ident, newError(ErrMissingMarker, leaf.Span(),
			fmt.Sprintf("missing substitution identifier starting with '%s' before '%s'", m, p.opts.Keyword))
	case isLeaf && leaf.IsIdent():
		return marker, ident, newError(ErrMissingMarker, leaf.Span(),
			fmt.Sprintf("substitution identifier should start with '%s'", m),
			fmt.Sprintf("write `%s%s`", m, leaf.Text()))
	default:
		return marker, ident, newError(ErrMissingMarker, t.Span(),
			fmt.Sprintf("expected substitution identifier starting with '%s'", m))
	}

	next, ok := p.advance()
	if !ok {
		return marker, ident, newError(ErrMissingIdent, marker.Span(),
			fmt.Sprintf("missing identifier after '%s'", m))
	}
	nl, isLeaf := next.(tt.Leaf)
	if !isLeaf || !nl.IsIdent() {
		return marker, ident, newError(ErrMissingIdent, next.Span(),
			fmt.Sprintf("missing identifier after '%s'", m))
	}
	ident = nl

	if p.opts.CheckAdjacency && spaced(marker, ident) {
		gap := source.Span{File: marker.Span().File, Start: marker.Span().End, End: ident.Span().Start}
		gerr := newError(ErrMarkerSpacing, marker.Span().Cover(ident.Span()),
			fmt.Sprintf("extraneous space between '%s' and substitution identifier", m))
		gerr.Fix = &diag.Fix{
			Title: "remove the space",
			Edits: []diag.FixEdit{{Span: gap, NewText: ""}},
		}
		return marker, ident, gerr
	}
	return marker, ident, nil
}

// spaced reports a gap between two real, same-file spans.
func spaced(a, b tt.Leaf) bool {
	as, bs := a.Span(), b.Span()
	if as.IsZero() || bs.IsZero() || as.File != bs.File {
		return false
	}
	return !as.Touches(bs)
}

func (p *Parser) parseKeyword() (tt.Leaf, *GrammarError) {
	kw := p.opts.Keyword
	t, ok := p.advance()
	if !ok {
		return tt.Leaf{}, newError(ErrExpectedIn, p.siteSpan(), fmt.Sprintf("expected '%s'", kw))
	}
	if leaf, isLeaf := t.(tt.Leaf); isLeaf && leaf.IsIdent() && leaf.Text() == kw {
		return leaf, nil
	}
	return tt.Leaf{}, newError(ErrExpectedIn, t.Span(), fmt.Sprintf("expected '%s'", kw))
}

func (p *Parser) parseValues() (*tt.Group, *GrammarError) {
	const msgInside = "expected substituted values inside square brackets and separated with commas"
	const helpLike = "like this: `[one, two, three]`"

	t, ok := p.advance()
	if !ok {
		return nil, newError(ErrExpectedValues, p.siteSpan(), msgInside, helpLike)
	}
	g, isGroup := t.(*tt.Group)
	if !isGroup {
		return nil, newError(ErrExpectedValues, t.Span(), msgInside, helpLike)
	}
	if g.Delim == tt.Bracket {
		return g, nil
	}

	inner := tt.Render(g.Children, nil, tt.StyleCompact)
	gerr := newError(ErrExpectedValues, g.Span(),
		"expected substituted values to be enclosed in square brackets and separated with commas",
		fmt.Sprintf("try using [] instead of %s", g.Delim.Open()+g.Delim.Close()),
		fmt.Sprintf("like this: `[%s]`", inner))
	if !g.Open.Span.IsZero() && !g.Close.Span.IsZero() {
		gerr.Fix = &diag.Fix{
			Title: "use square brackets",
			Edits: []diag.FixEdit{
				{Span: g.Open.Span, NewText: "["},
				{Span: g.Close.Span, NewText: "]"},
			},
		}
	}
	return nil, gerr
}

func (p *Parser) parseBody() (*tt.Group, *GrammarError) {
	const msgBrace = "expected '{' after substituted values"

	start := p.pos
	t, ok := p.advance()
	if !ok {
		return nil, newError(ErrExpectedBody, p.siteSpan(), "unexpected end of macro, "+msgBrace)
	}
	if g, isGroup := t.(*tt.Group); isGroup {
		if g.Delim == tt.Brace {
			return g, nil
		}
		return nil, newError(ErrExpectedBody, g.Open.Span, msgBrace,
			fmt.Sprintf("try placing this code inside a block: `{ %s }`", tt.Render([]tt.Tree{g}, nil, tt.StyleCompact)))
	}
	rest := tt.Render(p.trees[start:], nil, tt.StyleCompact)
	return nil, newError(ErrExpectedBody, t.Span(), msgBrace,
		fmt.Sprintf("try placing this code inside a block: `{ %s }`", rest))
}
