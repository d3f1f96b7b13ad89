package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dry/internal/source"
	"dry/internal/tt"
)

// TreeNodeJSON is one node of a token-tree dump.
type TreeNodeJSON struct {
	Kind     string         `json:"kind"`
	Delim    string         `json:"delim,omitempty"`
	Text     string         `json:"text,omitempty"`
	Span     source.Span    `json:"span"`
	Children []TreeNodeJSON `json:"children,omitempty"`
}

// FormatTreePretty печатает дерево токенов с отступами по уровню вложенности.
func FormatTreePretty(w io.Writer, trees []tt.Tree, fs *source.FileSet) error {
	return writeTree(w, trees, fs, 0)
}

func writeTree(w io.Writer, trees []tt.Tree, fs *source.FileSet, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, t := range trees {
		start, end := fs.Resolve(t.Span())
		switch n := t.(type) {
		case tt.Leaf:
			if _, err := fmt.Fprintf(w, "%s%s %q %d:%d-%d:%d\n", indent, n.Tok.Kind, n.Tok.Text,
				start.Line, start.Col, end.Line, end.Col); err != nil {
				return err
			}
		case *tt.Group:
			if _, err := fmt.Fprintf(w, "%sGroup %s%s %d:%d-%d:%d\n", indent, n.Delim.Open(), n.Delim.Close(),
				start.Line, start.Col, end.Line, end.Col); err != nil {
				return err
			}
			if err := writeTree(w, n.Children, fs, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildTreeOutput converts a forest to its JSON form.
func BuildTreeOutput(trees []tt.Tree) []TreeNodeJSON {
	out := make([]TreeNodeJSON, 0, len(trees))
	for _, t := range trees {
		switch n := t.(type) {
		case tt.Leaf:
			out = append(out, TreeNodeJSON{Kind: n.Tok.Kind.String(), Text: n.Tok.Text, Span: n.Span()})
		case *tt.Group:
			out = append(out, TreeNodeJSON{
				Kind:     "Group",
				Delim:    n.Delim.String(),
				Span:     n.Span(),
				Children: BuildTreeOutput(n.Children),
			})
		}
	}
	return out
}

// FormatTreeJSON выводит дерево токенов в JSON формате
func FormatTreeJSON(w io.Writer, trees []tt.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeOutput(trees))
}
