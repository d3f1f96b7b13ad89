package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"dry/internal/diag"
	"dry/internal/source"
	"dry/internal/token"
	"dry/internal/tt"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte("fn main() {\n\tlet x = \"open\n}"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 21, End: 28}, "unterminated string literal").
		WithHelp("close the string"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Title != "Unterminated string literal" {
		t.Errorf("unexpected header: %+v", d)
	}
	if d.Location.File != "test.rs" || d.Location.StartLine != 2 || d.Location.StartCol != 10 {
		t.Errorf("unexpected location: %+v", d.Location)
	}
	if len(d.Help) != 1 || d.Help[0] != "close the string" {
		t.Errorf("help: %v", d.Help)
	}
}

func TestJSONMaxAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("f.rs", []byte("$x in (1) {}"))

	bag := diag.NewBag(10)
	for range 3 {
		bag.Add(diag.New(diag.SevError, diag.SynExpectValues, source.Span{File: fileID, Start: 6, End: 9}, "values").
			WithFix("use square brackets",
				diag.FixEdit{Span: source.Span{File: fileID, Start: 6, End: 7}, NewText: "["}))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2, IncludeFixes: true, IncludePreviews: true})
	if out.Count != 2 {
		t.Fatalf("expected truncation to 2, got %d", out.Count)
	}
	fix := out.Diagnostics[0].Fixes
	if len(fix) != 1 || len(fix[0].Edits) != 1 {
		t.Fatalf("fixes: %+v", fix)
	}
	edit := fix[0].Edits[0]
	if edit.OldText != "(" || edit.NewText != "[" {
		t.Fatalf("edit: %+v", edit)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "$x in [1) {}" {
		t.Fatalf("preview: %+v", edit)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.rs", []byte("$x"))
	toks := []token.Token{
		{Kind: token.Punct, Text: "$", Span: source.Span{File: fileID, Start: 0, End: 1}},
		{Kind: token.Ident, Text: "x", Span: source.Span{File: fileID, Start: 1, End: 2}},
		{Kind: token.EOF, Span: source.Span{File: fileID, Start: 2, End: 2}},
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 3 || !strings.Contains(lines[1], `Ident      "x" at 1:2-1:3`) {
		t.Fatalf("pretty tokens:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil || len(out) != 3 || out[0].Kind != "Punct" {
		t.Fatalf("json tokens: %v %s", err, buf.String())
	}
}

func TestFormatTree(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.rs", []byte("f(x)"))
	sp := func(s, e uint32) source.Span { return source.Span{File: fileID, Start: s, End: e} }
	group := &tt.Group{
		Delim:    tt.Paren,
		Open:     token.Token{Kind: token.LParen, Text: "(", Span: sp(1, 2)},
		Close:    token.Token{Kind: token.RParen, Text: ")", Span: sp(3, 4)},
		Children: []tt.Tree{tt.NewLeaf(token.Token{Kind: token.Ident, Text: "x", Span: sp(2, 3)})},
	}
	trees := []tt.Tree{tt.NewLeaf(token.Token{Kind: token.Ident, Text: "f", Span: sp(0, 1)}), group}

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, trees, fs); err != nil {
		t.Fatal(err)
	}
	want := "Ident \"f\" 1:1-1:2\nGroup () 1:2-1:5\n  Ident \"x\" 1:3-1:4\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	nodes := BuildTreeOutput(trees)
	if len(nodes) != 2 || nodes[1].Delim != "paren" || len(nodes[1].Children) != 1 {
		t.Fatalf("json nodes: %+v", nodes)
	}
}
