package tt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"dry/internal/token"
)

// Style selects how Render lays out tokens.
type Style uint8

const (
	// StyleSource reproduces each token's leading trivia verbatim, so untouched
	// regions of a file print exactly as they were written.
	StyleSource Style = iota
	// StyleCompact drops comments and collapses any leading trivia to one space.
	StyleCompact
)

// Render prints a forest. Tokens that carry no leading trivia but would lex as
// one token together with the previous one get a single separating space, so
// the printed text always lexes back into the same token sequence. trailing is the trivia that followed the last token
// (the EOF token's leading trivia) and is only printed in StyleSource.
func Render(trees []Tree, trailing []token.Trivia, style Style) string {
	var sb strings.Builder
	p := printer{sb: &sb, style: style}
	for _, tok := range Flatten(trees) {
		p.token(tok)
	}
	if style == StyleSource {
		p.trivia(trailing)
	} else if sb.Len() > 0 && token.HasNewline(trailing) {
		sb.WriteByte('\n')
	}
	return sb.String()
}

type printer struct {
	sb    *strings.Builder
	style Style

	prev, prev2 token.Token // последние два напечатанных токена
	glued       bool        // prev напечатан вплотную к prev2
	started     bool
}

func (p *printer) token(tok token.Token) {
	separated := len(tok.Leading) > 0
	switch p.style {
	case StyleSource:
		p.trivia(tok.Leading)
	case StyleCompact:
		if p.sb.Len() > 0 && separated {
			p.sb.WriteByte(' ')
		}
	}
	if !separated && p.started && p.fuses(tok) {
		p.sb.WriteByte(' ')
		separated = true
	}
	p.sb.WriteString(tok.Text)

	p.prev2, p.prev = p.prev, tok
	p.glued = p.started && !separated
	p.started = true
}

// fuses reports whether next, printed right after prev, would lex differently.
func (p *printer) fuses(next token.Token) bool {
	prev := p.prev
	if prev.Text == "" || next.Text == "" {
		return false
	}
	a, _ := utf8.DecodeLastRuneInString(prev.Text)
	b, _ := utf8.DecodeRuneInString(next.Text)
	switch {
	case identRune(a) && identRune(b):
		// a b, x 1, 1 u8
		return true
	case a == '/' && (b == '/' || b == '*'):
		// comment openers
		return true
	case prev.Kind == token.Ident && stringPrefix(prev.Text, b):
		// b"..", r#"..", c".."
		return true
	case prev.Text == "." && p.glued && p.prev2.Kind == token.IntLit && b >= '0' && b <= '9':
		// 1 . 5 would lex as a float
		return true
	case b == '\'' && prev.Kind == token.Ident && utf8.RuneCountInString(prev.Text) == 1 &&
		p.glued && p.prev2.Kind == token.Punct && p.prev2.Text == "'":
		// lifetime 'a followed by ' would close into a char literal
		return true
	}
	return false
}

func identRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func stringPrefix(ident string, next rune) bool {
	switch ident {
	case "b":
		return next == '"' || next == '\''
	case "r", "br":
		return next == '"' || next == '#'
	case "c":
		return next == '"'
	}
	return false
}

func (p *printer) trivia(trivia []token.Trivia) {
	for _, tr := range trivia {
		p.sb.WriteString(tr.Text)
	}
}
