package driver

import (
	"errors"
	"fmt"
	"strconv"

	"dry/internal/diag"
	"dry/internal/expand"
	"dry/internal/parser"
	"dry/internal/source"
	"dry/internal/trace"
	"dry/internal/tt"
)

// Stats counts what the host did to one input.
type Stats struct {
	Passes      int
	Invocations int
}

// host stands in for a compiler's macro dispatcher: it finds
// "<name> ! <group>" call sites, hands the group to the engine and splices
// the result back, pass after pass.
type host struct {
	opts     Options
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64
	stats    Stats
	failed   bool
}

// run expands until a pass dispatches nothing. It reports SYN2107 when call
// sites remain after RecursionLimit passes.
func (h *host) run(trees []tt.Tree) ([]tt.Tree, bool) {
	for pass := 0; ; pass++ {
		if pass == h.opts.RecursionLimit {
			if name, site, ok := h.findCall(trees); ok {
				diag.ReportError(h.reporter, diag.SynRecursionLimit, site,
					fmt.Sprintf("recursion limit reached while expanding `%s!`", name)).
					WithHelp(fmt.Sprintf("increase `recursion_limit` in dry.toml (current: %d)", h.opts.RecursionLimit)).
					Emit()
				return nil, false
			}
			return trees, true
		}
		before := h.stats.Invocations
		span := trace.Begin(h.tracer, trace.ScopePass, "pass "+strconv.Itoa(pass+1), h.parent)
		trees = h.level(trees, span.ID())
		span.WithExtra("invocations", strconv.Itoa(h.stats.Invocations-before)).End("")
		h.stats.Passes++
		if h.failed {
			return nil, false
		}
		if h.stats.Invocations == before {
			return trees, true
		}
	}
}

// callee reports the macro named by the two trees before a group.
func (h *host) callee(prev2, prev1 tt.Tree) (string, bool) {
	id, ok := prev2.(tt.Leaf)
	if !ok || !id.IsIdent() {
		return "", false
	}
	bang, ok := prev1.(tt.Leaf)
	if !ok || !bang.IsPunct() || bang.Text() != "!" {
		return "", false
	}
	switch id.Text() {
	case h.opts.ForMacro, h.opts.WrapMacro:
		return id.Text(), true
	}
	return "", false
}

// level rewrites one nesting level. Expanded output is not rescanned in the
// same pass; the next pass picks it up.
func (h *host) level(trees []tt.Tree, parent uint64) []tt.Tree {
	out := make([]tt.Tree, 0, len(trees))
	var prev2, prev1 tt.Tree

	for _, t := range trees {
		name, called := h.callee(prev2, prev1)
		g, isGroup := t.(*tt.Group)
		switch {
		case called && isGroup:
			if expanded, ok := h.dispatch(name, prev2, g, parent); ok {
				out = out[:len(out)-2]
				out = append(out, expanded...)
			} else {
				out = append(out, t)
			}
		case called:
			h.notGrouped(name, prev2, t.Span())
			out = append(out, t)
		case isGroup:
			out = append(out, g.WithChildren(h.level(g.Children, parent)))
		default:
			out = append(out, t)
		}
		prev2, prev1 = prev1, t
	}
	if name, called := h.callee(prev2, prev1); called {
		h.notGrouped(name, prev2, prev1.Span())
	}
	return out
}

func (h *host) dispatch(name string, ident tt.Tree, g *tt.Group, parent uint64) ([]tt.Tree, bool) {
	h.stats.Invocations++
	site := ident.Span().Cover(g.Span())
	span := trace.Begin(h.tracer, trace.ScopeInvocation, name+"!", parent)
	opts := h.opts.engine(site, h.reporter)

	var (
		out []tt.Tree
		err error
	)
	if name == h.opts.ForMacro {
		out, err = expand.ForEach(g.Children, opts)
	} else {
		out, err = expand.Wrap(g.Children, opts)
	}
	if err != nil {
		span.End("error")
		h.fail(err, site)
		return nil, false
	}
	span.WithExtra("trees", strconv.Itoa(len(out))).End("")
	if len(out) > 0 {
		out[0] = tt.WithLeading(out[0], tt.Leading(ident))
	}
	return out, true
}

func (h *host) fail(err error, site source.Span) {
	h.failed = true
	var gerr *parser.GrammarError
	if errors.As(err, &gerr) {
		gerr.Report(h.reporter)
		return
	}
	diag.ReportError(h.reporter, diag.UnknownCode, site, err.Error()).Emit()
}

func (h *host) notGrouped(name string, ident tt.Tree, after source.Span) {
	h.failed = true
	diag.ReportError(h.reporter, diag.SynMacroNotGrouped, ident.Span().Cover(after),
		fmt.Sprintf("expected a delimited group after `%s!`", name)).
		WithHelp(fmt.Sprintf("write `%s!( ... )`", name)).
		Emit()
}

// findCall returns the first remaining call site in depth-first order.
func (h *host) findCall(trees []tt.Tree) (string, source.Span, bool) {
	var prev2, prev1 tt.Tree
	for _, t := range trees {
		g, isGroup := t.(*tt.Group)
		if name, called := h.callee(prev2, prev1); called && isGroup {
			return name, prev2.Span().Cover(g.Span()), true
		}
		if isGroup {
			if name, site, ok := h.findCall(g.Children); ok {
				return name, site, true
			}
		}
		prev2, prev1 = prev1, t
	}
	return "", source.Span{}, false
}
