package expand

import (
	"dry/internal/tt"
)

// lookback is the two-slot window of the trees most recently seen at one level.
type lookback struct {
	prev2 tt.Tree
	prev1 tt.Tree
}

func (w lookback) push(t tt.Tree) lookback {
	return lookback{prev2: w.prev1, prev1: t}
}

// calls reports whether the window spells "<name> !".
func (w lookback) calls(name string) bool {
	id, ok := w.prev2.(tt.Leaf)
	if !ok || !id.IsIdent() || id.Text() != name {
		return false
	}
	bang, ok := w.prev1.(tt.Leaf)
	return ok && bang.IsPunct() && bang.Text() == "!"
}

// Wrap returns trees with every "<ForMacro> ! <group>" replaced by the
// expansion of the group's contents, spliced inline. The scan visits each
// original group once; spliced output is not scanned again. A failing nested
// invocation aborts the whole wrap.
func Wrap(trees []tt.Tree, opts Options) ([]tt.Tree, error) {
	return wrapLevel(trees, opts.withDefaults())
}

func wrapLevel(trees []tt.Tree, opts Options) ([]tt.Tree, error) {
	out := make([]tt.Tree, 0, len(trees))
	var win lookback

	for _, t := range trees {
		g, isGroup := t.(*tt.Group)
		switch {
		case isGroup && win.calls(opts.ForMacro):
			// имя и '!' уже в out: снимаем их
			leading := tt.Leading(win.prev2)
			inner := opts
			inner.Site = win.prev2.Span().Cover(g.Span())
			expanded, err := ForEach(g.Children, inner)
			if err != nil {
				return nil, err
			}
			out = out[:len(out)-2]
			if len(expanded) > 0 {
				expanded[0] = tt.WithLeading(expanded[0], leading)
			}
			out = append(out, expanded...)

		case isGroup:
			children, err := wrapLevel(g.Children, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, g.WithChildren(children))

		default:
			out = append(out, t)
		}
		win = win.push(t)
	}
	return out, nil
}
