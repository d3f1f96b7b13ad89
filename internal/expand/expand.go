package expand

import (
	"dry/internal/diag"
	"dry/internal/parser"
	"dry/internal/tt"
)

// Expand concatenates one substituted copy of the body per value, in order.
func Expand(inv *parser.Invocation, opts Options) []tt.Tree {
	opts = opts.withDefaults()
	name := inv.Placeholder.Text()
	out := make([]tt.Tree, 0, len(inv.Values)*len(inv.Body))
	for _, v := range inv.Values {
		out = append(out, Substitute(inv.Body, name, v, opts.Marker)...)
	}
	return out
}

// ForEach parses trees as the input of one macro_for call and expands it.
// On error nothing is returned; the error is a *parser.GrammarError.
func ForEach(trees []tt.Tree, opts Options) ([]tt.Tree, error) {
	opts = opts.withDefaults()
	inv, err := parser.Parse(trees, opts.parserOptions())
	if err != nil {
		return nil, err
	}
	if opts.WarnTrailing && len(inv.Trailing) > 0 && opts.Reporter != nil {
		diag.ReportWarning(opts.Reporter, diag.SynTrailingTokens, tt.Span(inv.Trailing),
			"tokens after the body are ignored").
			WithNote(inv.BodyGroup.Span(), "body ends here").
			Emit()
	}
	return Expand(inv, opts), nil
}
