package main

import (
	"fmt"
	"io"

	"dry/internal/diag"
	"dry/internal/diagfmt"
	"dry/internal/driver"
	"dry/internal/observ"
	"dry/internal/source"
)

// reportDiagnostics prints the bag to w in the format chosen by --diagnostics
// and reports whether it holds errors. In quiet mode only errors are printed.
func reportDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, g globals) (bool, error) {
	if bag == nil {
		return false, nil
	}
	if g.quiet {
		bag = onlyErrors(bag)
	}
	if bag.Len() == 0 {
		return false, nil
	}
	bag.Sort()
	switch g.diagnostics {
	case "short":
		if _, err := io.WriteString(w, diag.FormatShortDiagnostics(bag.Items(), fs, true)); err != nil {
			return false, err
		}
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}
		if err := diagfmt.JSON(w, bag, fs, opts); err != nil {
			return false, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		diagfmt.Pretty(w, bag, fs, prettyOpts(g))
	}
	return bag.HasErrors(), nil
}

func onlyErrors(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(bag.Len())
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			out.Add(d)
		}
	}
	return out
}

// mergeBags folds per-file bags into one for a directory run.
func mergeBags(results []*driver.Result, maxPerFile int) *diag.Bag {
	bag := diag.NewBag(maxPerFile)
	for _, r := range results {
		if r != nil {
			bag.Merge(r.Bag)
		}
	}
	return bag
}

// reportTimings prints the timer summary, or appends it to the JSON
// diagnostics so machine readers get it in one document.
func reportTimings(w io.Writer, bag *diag.Bag, timer *observ.Timer, g globals, kind, path string, files int) {
	if timer == nil {
		return
	}
	if g.diagnostics == "json" {
		driver.AppendTimings(bag, timer, kind, path, files)
		return
	}
	fmt.Fprint(w, timer.Summary())
}
