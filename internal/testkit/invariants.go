package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"dry/internal/source"
	"dry/internal/tt"
)

// CheckTreeInvariants runs a minimal set of invariants on a token tree built from sf:
// 1) every real span belongs to sf and lies within its content
// 2) group open/close tokens match the group delimiter
// 3) no child of a group is a delimiter leaf
// 4) sibling spans never overlap and appear in source order
func CheckTreeInvariants(trees []tt.Tree, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkLevel(trees, sf.ID, lenContent)
}

func checkLevel(trees []tt.Tree, file source.FileID, limit uint32) error {
	var prevEnd uint32
	for _, t := range trees {
		sp := t.Span()
		if !sp.IsZero() {
			if sp.File != file {
				return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, file)
			}
			if sp.End > limit || sp.Start > sp.End {
				return fmt.Errorf("span %v outside content (len %d)", sp, limit)
			}
			if sp.Start < prevEnd {
				return fmt.Errorf("span %v overlaps previous sibling ending at %d", sp, prevEnd)
			}
			prevEnd = sp.End
		}

		switch n := t.(type) {
		case tt.Leaf:
			if n.Tok.IsDelimiter() {
				return fmt.Errorf("delimiter %q stored as leaf at %v", n.Tok.Text, sp)
			}
		case *tt.Group:
			if n.Open.Kind != n.Delim.OpenKind() {
				return fmt.Errorf("group %v has open token %v", n.Delim, n.Open.Kind)
			}
			if n.Close.Kind != n.Delim.OpenKind().Closer() {
				return fmt.Errorf("group %v has close token %v", n.Delim, n.Close.Kind)
			}
			if err := checkLevel(n.Children, file, limit); err != nil {
				return err
			}
		}
	}
	return nil
}
