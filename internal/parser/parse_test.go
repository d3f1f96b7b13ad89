package parser_test

import (
	"errors"
	"strings"
	"testing"

	"dry/internal/diag"
	"dry/internal/parser"
	"dry/internal/testkit"
	"dry/internal/tt"
)

func parseSrc(t *testing.T, src string, opts parser.Options) (*parser.Invocation, *parser.GrammarError) {
	t.Helper()
	inv, err := parser.Parse(testkit.MustTree(t, src), opts)
	if err == nil {
		return inv, nil
	}
	if inv != nil {
		t.Fatalf("partial invocation returned with error %v", err)
	}
	var gerr *parser.GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GrammarError, got %T", err)
	}
	return nil, gerr
}

func TestParseValid(t *testing.T) {
	inv, gerr := parseSrc(t, "$number in [1, 2, 3] { print($number); }", parser.Options{})
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	if inv.Placeholder.Text() != "number" || inv.Marker.Text() != "$" {
		t.Fatalf("placeholder: %q %q", inv.Marker.Text(), inv.Placeholder.Text())
	}
	if len(inv.Values) != 3 {
		t.Fatalf("values: %d", len(inv.Values))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got := tt.String(inv.Values[i]); got != want {
			t.Errorf("value %d: %q want %q", i, got, want)
		}
	}
	if got := tt.String(inv.Body); got != "print ( $ number ) ;" {
		t.Fatalf("body: %q", got)
	}
	if len(inv.Trailing) != 0 {
		t.Fatalf("unexpected trailing trees")
	}
}

func TestParseValuesSplitOnTopLevelCommas(t *testing.T) {
	inv, gerr := parseSrc(t, "$s in [a;, f(x, y), [1, 2], ] { $s }", parser.Options{})
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	want := []string{"a ;", "f ( x , y )", "[ 1 , 2 ]", ""}
	if len(inv.Values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(inv.Values))
	}
	for i := range want {
		if got := tt.String(inv.Values[i]); got != want[i] {
			t.Errorf("value %d: %q want %q", i, got, want[i])
		}
	}
}

func TestParseEmptyBracketYieldsOneEmptyValue(t *testing.T) {
	inv, gerr := parseSrc(t, "$x in [] { $x }", parser.Options{})
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	if len(inv.Values) != 1 || len(inv.Values[0]) != 0 {
		t.Fatalf("expected exactly one empty value, got %d values", len(inv.Values))
	}
}

func TestParseTrailingTokensAreKept(t *testing.T) {
	inv, gerr := parseSrc(t, "$x in [1] { $x } extra ;", parser.Options{})
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	if got := tt.String(inv.Trailing); got != "extra ;" {
		t.Fatalf("trailing: %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    parser.ErrorKind
		message string
		help    string
	}{
		{"bare identifier", "x in [1,2] { }", parser.ErrMissingMarker, "substitution identifier should start with '$'", "`$x`"},
		{"keyword first", "in [1] { }", parser.ErrMissingMarker, "missing substitution identifier starting with '$' before 'in'", ""},
		{"literal first", "1 in [1] { }", parser.ErrMissingMarker, "expected substitution identifier starting with '$'", ""},
		{"empty", "", parser.ErrMissingMarker, "expected substitution identifier starting with '$'", ""},
		{"marker alone", "$", parser.ErrMissingIdent, "missing identifier after '$'", ""},
		{"marker literal", "$1 in [1] {}", parser.ErrMissingIdent, "missing identifier after '$'", ""},
		{"no in", "$x of [1] {}", parser.ErrExpectedIn, "expected 'in'", ""},
		{"end after ident", "$x", parser.ErrExpectedIn, "expected 'in'", ""},
		{"paren values", "$x in (1, 2) {}", parser.ErrExpectedValues, "expected substituted values to be enclosed in square brackets and separated with commas", "try using [] instead of ()"},
		{"bare values", "$x in 1 {}", parser.ErrExpectedValues, "expected substituted values inside square brackets and separated with commas", "[one, two, three]"},
		{"no values", "$x in", parser.ErrExpectedValues, "expected substituted values inside square brackets and separated with commas", ""},
		{"paren body", "$x in [1] ($x)", parser.ErrExpectedBody, "expected '{' after substituted values", "{ ($x) }"},
		{"bare body", "$x in [1] $x;", parser.ErrExpectedBody, "expected '{' after substituted values", "{ $x; }"},
		{"no body", "$x in [1]", parser.ErrExpectedBody, "unexpected end of macro, expected '{' after substituted values", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, gerr := parseSrc(t, tc.src, parser.Options{})
			if gerr == nil {
				t.Fatalf("expected error, got invocation %+v", inv)
			}
			if gerr.Kind != tc.kind {
				t.Fatalf("kind: got %v want %v", gerr.Kind, tc.kind)
			}
			if gerr.Message != tc.message {
				t.Fatalf("message: got %q want %q", gerr.Message, tc.message)
			}
			if tc.help != "" && !strings.Contains(strings.Join(gerr.Help, "\n"), tc.help) {
				t.Fatalf("help %q does not mention %q", gerr.Help, tc.help)
			}
		})
	}
}

func TestParseErrorAnchoredAtOffendingToken(t *testing.T) {
	src := testkit.MustLex(t, "$x of [1] {}")
	_, err := parser.Parse(src.Trees(), parser.Options{})
	var gerr *parser.GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected grammar error, got %v", err)
	}
	if got := src.File.Text(gerr.Span); got != "of" {
		t.Fatalf("anchored at %q", got)
	}
}

func TestParseErrorFallsBackToSite(t *testing.T) {
	site := testkit.MustLex(t, "macro_for!()")
	siteSpan := tt.Span(site.Trees())
	_, err := parser.Parse(nil, parser.Options{Site: siteSpan})
	var gerr *parser.GrammarError
	if !errors.As(err, &gerr) || gerr.Span != siteSpan {
		t.Fatalf("expected error at call site %v, got %v", siteSpan, err)
	}
}

func TestParseBracketFix(t *testing.T) {
	_, gerr := parseSrc(t, "$x in (1) {}", parser.Options{})
	if gerr == nil || gerr.Fix == nil || len(gerr.Fix.Edits) != 2 {
		t.Fatalf("expected two-edit fix, got %+v", gerr)
	}
	if gerr.Fix.Edits[0].NewText != "[" || gerr.Fix.Edits[1].NewText != "]" {
		t.Fatalf("fix edits: %+v", gerr.Fix.Edits)
	}
}

func TestParseAdjacency(t *testing.T) {
	src := "$ x in [1] { $x }"
	if _, gerr := parseSrc(t, src, parser.Options{}); gerr != nil {
		t.Fatalf("spacing must be accepted without CheckAdjacency: %v", gerr)
	}
	_, gerr := parseSrc(t, src, parser.Options{CheckAdjacency: true})
	if gerr == nil || gerr.Kind != parser.ErrMarkerSpacing {
		t.Fatalf("expected marker spacing error, got %v", gerr)
	}
	if gerr.Fix == nil || gerr.Fix.Edits[0].Span.Len() != 1 {
		t.Fatalf("expected fix removing one space: %+v", gerr.Fix)
	}

	// synthetic tokens carry no position and are never checked
	trees := []tt.Tree{
		tt.Punct("$"), tt.Ident("x"), tt.Ident("in"),
		tt.NewGroup(tt.Bracket, []tt.Tree{tt.Ident("a")}),
		tt.NewGroup(tt.Brace, nil),
	}
	if _, err := parser.Parse(trees, parser.Options{CheckAdjacency: true}); err != nil {
		t.Fatalf("synthetic input: %v", err)
	}
}

func TestParseCustomMarkerAndKeyword(t *testing.T) {
	inv, gerr := parseSrc(t, "@item over [a] { @item }", parser.Options{Marker: "@", Keyword: "over"})
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	if inv.Placeholder.Text() != "item" {
		t.Fatalf("placeholder %q", inv.Placeholder.Text())
	}
	_, gerr = parseSrc(t, "item over [a] {}", parser.Options{Marker: "@", Keyword: "over"})
	if gerr == nil || gerr.Message != "substitution identifier should start with '@'" {
		t.Fatalf("custom marker message: %v", gerr)
	}
}

func TestGrammarErrorReport(t *testing.T) {
	_, gerr := parseSrc(t, "$x in (1) {}", parser.Options{})
	bag := diag.NewBag(diag.DefaultMax)
	gerr.Report(diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(items))
	}
	d := items[0]
	if d.Code != diag.SynExpectValues || d.Severity != diag.SevError {
		t.Fatalf("diagnostic %s %v", d.Code.ID(), d.Severity)
	}
	if len(d.Help()) != 2 || len(d.Fixes) != 1 {
		t.Fatalf("help %v fixes %v", d.Help(), d.Fixes)
	}
}
