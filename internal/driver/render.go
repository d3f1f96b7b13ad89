package driver

import (
	"bytes"
	"encoding/json"
	"fmt"

	"dry/internal/diagfmt"
	"dry/internal/tt"
)

// Format is the rendering of an expansion result.
type Format string

const (
	FormatSource  Format = "source"
	FormatCompact Format = "compact"
	FormatTree    Format = "tree"
	FormatTokens  Format = "tokens"
	FormatJSON    Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatSource, FormatCompact, FormatTree, FormatTokens, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected: source|compact|tree|tokens|json)", s)
}

// resultJSON is the --format json document for one input.
type resultJSON struct {
	Path        string                 `json:"path"`
	Entry       string                 `json:"entry"`
	Passes      int                    `json:"passes"`
	Invocations int                    `json:"invocations"`
	Output      string                 `json:"output"`
	Tree        []diagfmt.TreeNodeJSON `json:"tree"`
}

// Render prints res.Output in the given format. A result with errors renders
// to nothing.
func Render(res *Result, format Format) ([]byte, error) {
	if res == nil || res.Failed() {
		return nil, nil
	}
	var buf bytes.Buffer
	switch format {
	case FormatSource, "":
		buf.WriteString(tt.Render(res.Output, res.Trailing, tt.StyleSource))
	case FormatCompact:
		buf.WriteString(tt.Render(res.Output, res.Trailing, tt.StyleCompact))
	case FormatTree:
		if err := diagfmt.FormatTreePretty(&buf, res.Output, res.Files); err != nil {
			return nil, err
		}
	case FormatTokens:
		if err := diagfmt.FormatTokensPretty(&buf, tt.Flatten(res.Output), res.Files); err != nil {
			return nil, err
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err := enc.Encode(resultJSON{
			Path:        res.Path,
			Entry:       res.Entry.String(),
			Passes:      res.Stats.Passes,
			Invocations: res.Stats.Invocations,
			Output:      tt.Render(res.Output, res.Trailing, tt.StyleSource),
			Tree:        diagfmt.BuildTreeOutput(res.Output),
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return buf.Bytes(), nil
}
