package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"dry/internal/diag"
	"dry/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, help, fix, plus, minus *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed),
		note:   mk(color.FgCyan),
		help:   mk(color.FgGreen),
		fix:    mk(color.FgMagenta),
		plus:   mk(color.FgGreen),
		minus:  mk(color.FgRed),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	writeSnippet(w, fs, d.Primary, opts, pal)

	for _, n := range d.Notes {
		if msg, ok := strings.CutPrefix(n.Msg, "help: "); ok {
			fmt.Fprintf(w, "  %s %s\n", pal.help.Sprint("help:"), msg)
			continue
		}
		if !opts.ShowNotes {
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}

	if !opts.ShowFixes {
		return
	}
	for i, fix := range d.Fixes {
		fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprintf("fix #%d:", i+1), fix.Title)
		for _, edit := range fix.Edits {
			es, ee := fs.Resolve(edit.Span)
			fmt.Fprintf(w, "    - %s:%d:%d-%d:%d apply=%q\n",
				formatPath(fs, edit.Span.File, opts.PathMode), es.Line, es.Col, ee.Line, ee.Col, edit.NewText)
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "      preview:")
			for _, line := range preview.before {
				fmt.Fprintf(w, "        %s\n", pal.minus.Sprint("- "+line))
			}
			for _, line := range preview.after {
				fmt.Fprintf(w, "        %s\n", pal.plus.Sprint("+ "+line))
			}
		}
	}
}

// writeSnippet печатает строку span'а (и Context строк вокруг) с подчёркиванием.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette) {
	f := fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	lineCount := uint32(len(f.LineIdx)) + 1
	last = min(last, lineCount)

	gutterWidth := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := clip(f.GetLine(ln), opts.Width)
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		lineText := f.GetLine(ln)
		startCol := int(start.Col) - 1
		endCol := len(lineText)
		if end.Line == start.Line {
			endCol = int(end.Col) - 1
		}
		startCol = min(startCol, len(lineText))
		endCol = max(min(endCol, len(lineText)), startCol)

		pad := padFor(lineText[:startCol])
		width := max(runewidth.StringWidth(lineText[startCol:endCol]), 1)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), pad, pal.caret.Sprint(marks))
	}
}

// padFor повторяет табы и заменяет остальные символы пробелами их ширины.
func padFor(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}
