package tt

import (
	"dry/internal/diag"
	"dry/internal/source"
	"dry/internal/token"
)

type frame struct {
	delim    Delim
	open     token.Token
	children []Tree
}

// Build folds a flat token stream into a forest. EOF tokens are skipped.
//
// Delimiter errors are reported and repaired so the whole stream is always
// consumed:
//   - a closer with no open group is dropped (SynUnexpectedClose);
//   - a closer that matches an outer group closes the inner groups implicitly
//     (SynMismatchedClose for the innermost one);
//   - a closer that matches nothing open is dropped (SynMismatchedClose);
//   - groups still open at the end are closed with synthetic tokens (SynUnclosedDelimiter).
func Build(tokens []token.Token, r diag.Reporter) []Tree {
	stack := []frame{{}}
	var end source.Span

	push := func(t Tree) {
		top := &stack[len(stack)-1]
		top.children = append(top.children, t)
	}
	closeTop := func(closeTok token.Token) {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(&Group{Delim: f.delim, Open: f.open, Close: closeTok, Children: f.children})
	}
	synthClose := func(f frame, at source.Span) token.Token {
		tok := token.Synthetic(f.delim.OpenKind().Closer(), f.delim.Close())
		tok.Span = at
		return tok
	}

	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			end = tok.Span
			continue
		}
		end = source.Span{File: tok.Span.File, Start: tok.Span.End, End: tok.Span.End}

		switch {
		case tok.Kind.IsOpen():
			d, _ := DelimOf(tok.Kind)
			stack = append(stack, frame{delim: d, open: tok})

		case tok.Kind.IsClose():
			d, _ := DelimOf(tok.Kind)
			if len(stack) == 1 {
				report(r, diag.SynUnexpectedClose, tok.Span, "unexpected closing delimiter '"+tok.Text+"'", source.Span{}, "")
				continue
			}
			top := stack[len(stack)-1]
			if top.delim == d {
				closeTop(tok)
				continue
			}
			report(r, diag.SynMismatchedClose, tok.Span,
				"mismatched closing delimiter '"+tok.Text+"'",
				top.open.Span, "unclosed '"+top.delim.Open()+"' opened here")

			match := -1
			for i := len(stack) - 1; i >= 1; i-- {
				if stack[i].delim == d {
					match = i
					break
				}
			}
			if match < 0 {
				continue
			}
			for len(stack)-1 > match {
				closeTop(synthClose(stack[len(stack)-1], tok.Span.StartSpan()))
			}
			closeTop(tok)

		default:
			push(Leaf{Tok: tok})
		}
	}

	for len(stack) > 1 {
		f := stack[len(stack)-1]
		report(r, diag.SynUnclosedDelimiter, f.open.Span, "unclosed delimiter '"+f.delim.Open()+"'", source.Span{}, "")
		closeTop(synthClose(f, end))
	}
	return stack[0].children
}

func report(r diag.Reporter, code diag.Code, sp source.Span, msg string, noteSpan source.Span, note string) {
	if r == nil {
		return
	}
	b := diag.ReportError(r, code, sp, msg)
	if note != "" {
		b.WithNote(noteSpan, note)
	}
	b.Emit()
}
