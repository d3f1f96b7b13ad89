package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"dry/internal/diag"
	"dry/internal/lexer"
	"dry/internal/source"
	"dry/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(diag.DefaultMax)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

// significant возвращает все токены без EOF
func significant(input string) ([]token.Token, *diag.Bag) {
	lx, bag := makeTestLexer(input)
	tokens := lx.All()
	return tokens[:len(tokens)-1], bag
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	tokens, bag := significant(input)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\ndiags: %v",
			len(expected), len(tokens), input, tokensToString(tokens), bag.Items())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"macro_for", "macro_for"},
		{"x1_2", "x1_2"},
		{"имя", "имя"},
		{"r#type", "r#type"},
		{"e\u0301", "\u00e9"}, // NFC
	}
	for _, tt := range tests {
		tokens := expectTokens(t, tt.input, token.Ident)
		if tokens[0].Text != tt.text {
			t.Errorf("%q: expected text %q, got %q", tt.input, tt.text, tokens[0].Text)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"0xFF", token.IntLit},
		{"0b1010u8", token.IntLit},
		{"42usize", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"2.0e+10", token.FloatLit},
		{"3f32", token.FloatLit},
	}
	for _, tt := range tests {
		tokens := expectTokens(t, tt.input, tt.kind)
		if tokens[0].Text != tt.input {
			t.Errorf("%q: text %q", tt.input, tokens[0].Text)
		}
	}
}

func TestNumberDotIsNotFraction(t *testing.T) {
	expectTokens(t, "1..2", token.IntLit, token.Punct, token.Punct, token.IntLit)
	expectTokens(t, "t.0", token.Ident, token.Punct, token.IntLit)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{`"hello"`, token.StringLit},
		{`"esc \" quote"`, token.StringLit},
		{"\"multi\nline\"", token.StringLit},
		{`b"bytes"`, token.StringLit},
		{`r"raw \n"`, token.StringLit},
		{`r#"has "quotes""#`, token.StringLit},
		{`br##"x"#y"##`, token.StringLit},
		{`c"cstr"`, token.StringLit},
		{`'a'`, token.CharLit},
		{`'\n'`, token.CharLit},
		{`'\u{1F600}'`, token.CharLit},
		{`'ж'`, token.CharLit},
		{`b'x'`, token.CharLit},
	}
	for _, tt := range tests {
		tokens := expectTokens(t, tt.input, tt.kind)
		if tokens[0].Text != tt.input {
			t.Errorf("%q: text %q", tt.input, tokens[0].Text)
		}
	}
}

func TestLifetimeApostrophe(t *testing.T) {
	tokens := expectTokens(t, "&'a str", token.Punct, token.Punct, token.Ident, token.Ident)
	if !tokens[1].Joint || tokens[1].Text != "'" {
		t.Fatalf("expected joint apostrophe, got %+v", tokens[1])
	}
	if !tokens[0].Joint {
		t.Fatalf("'&' followed by '\\'' must be joint")
	}
}

func TestPunctJoint(t *testing.T) {
	tokens := expectTokens(t, "=> : ::", token.Punct, token.Punct, token.Punct, token.Punct, token.Punct)
	joint := []bool{true, false, false, true, false}
	for i, tok := range tokens {
		if tok.Joint != joint[i] {
			t.Errorf("token %d %q: joint=%v, want %v", i, tok.Text, tok.Joint, joint[i])
		}
	}
}

func TestDelimiters(t *testing.T) {
	expectTokens(t, "([{}])",
		token.LParen, token.LBracket, token.LBrace, token.RBrace, token.RBracket, token.RParen)
}

func TestMarkerAndPlaceholder(t *testing.T) {
	tokens := expectTokens(t, "$x $ y", token.Punct, token.Ident, token.Punct, token.Ident)
	if !tokens[0].Span.Touches(tokens[1].Span) {
		t.Fatalf("expected $ and x to touch: %v %v", tokens[0].Span, tokens[1].Span)
	}
	if tokens[2].Span.Touches(tokens[3].Span) {
		t.Fatalf("expected $ and y separated by space")
	}
}

func TestLeadingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("a // c\n  /* x /* nested */ */ b\n")
	tokens := lx.All()
	if len(tokens) != 3 {
		t.Fatalf("got %s", tokensToString(tokens))
	}
	b := tokens[1]
	kinds := make([]token.TriviaKind, 0, len(b.Leading))
	for _, tr := range b.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline,
		token.TriviaSpace, token.TriviaBlockComment, token.TriviaSpace,
	}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("trivia kinds: got %v, want %v", kinds, want)
	}
	if b.Leading[4].Text != "/* x /* nested */ */" {
		t.Fatalf("block comment text %q", b.Leading[4].Text)
	}
	eof := tokens[2]
	if eof.Kind != token.EOF || len(eof.Leading) != 1 || eof.Leading[0].Kind != token.TriviaNewline {
		t.Fatalf("EOF must carry trailing newline, got %+v", eof)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{`r#"open"`, diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{`'\n`, diag.LexUnterminatedChar},
		{"a ` b", diag.LexUnknownChar},
		{"a § b", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		_, bag := significant(tt.input)
		items := bag.Items()
		if len(items) != 1 || items[0].Code != tt.code {
			t.Errorf("%q: expected single %s, got %v", tt.input, tt.code.ID(), items)
		}
	}
}

func TestUnknownCharKeepsLexing(t *testing.T) {
	tokens, bag := significant("a ` b")
	if !bag.HasErrors() {
		t.Fatalf("expected error")
	}
	if len(tokens) != 3 || tokens[1].Kind != token.Invalid || tokens[2].Text != "b" {
		t.Fatalf("unexpected tokens %s", tokensToString(tokens))
	}
}

func TestTokenTooLong(t *testing.T) {
	input := "x " + strings.Repeat("a", (1<<16)+1) + " y"
	tokens, bag := significant(input)
	if len(tokens) != 2 || tokens[1].Kind != token.Invalid {
		t.Fatalf("expected lexing to stop after oversized token, got %d tokens", len(tokens))
	}
	if items := bag.Items(); len(items) != 1 || items[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong, got %v", items)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek: %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek: %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next: %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected sticky EOF, got %v", n.Kind)
		}
	}
}
