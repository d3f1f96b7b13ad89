package diag

import (
	"strings"

	"dry/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

const helpPrefix = "help: "

// Help returns the help hints attached to the diagnostic, without prefix.
func (d Diagnostic) Help() []string {
	var out []string
	for _, n := range d.Notes {
		if msg, ok := strings.CutPrefix(n.Msg, helpPrefix); ok {
			out = append(out, msg)
		}
	}
	return out
}
