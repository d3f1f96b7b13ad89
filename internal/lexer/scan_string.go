package lexer

import (
	"dry/internal/diag"
	"dry/internal/token"
)

// atStringPrefix: b"..", b'.', r"..", r#".."#, br"..", c"..".
func (lx *Lexer) atStringPrefix() bool {
	switch lx.cursor.Peek() {
	case 'b':
		switch lx.cursor.PeekAt(1) {
		case '"', '\'':
			return true
		case 'r':
			return lx.atRawQuote(2)
		}
	case 'r':
		return lx.atRawQuote(1)
	case 'c':
		return lx.cursor.PeekAt(1) == '"'
	}
	return false
}

// atRawQuote reports whether the bytes from offset n are zero or more '#' followed by '"'.
func (lx *Lexer) atRawQuote(n uint32) bool {
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return lx.cursor.PeekAt(n) == '"'
}

func (lx *Lexer) scanPrefixedString() token.Token {
	start := lx.cursor.Mark()
	raw := false
	for {
		b := lx.cursor.Peek()
		if b != 'b' && b != 'r' && b != 'c' {
			break
		}
		if b == 'r' {
			raw = true
		}
		lx.cursor.Bump()
	}

	switch {
	case lx.cursor.Peek() == '\'':
		return lx.scanCharBody(start)
	case raw:
		return lx.scanRawBody(start)
	default:
		return lx.scanStringBody(start)
	}
}

// scanString: обычная строка с escape-последовательностями; перевод строки внутри разрешён.
func (lx *Lexer) scanString() token.Token {
	return lx.scanStringBody(lx.cursor.Mark())
}

func (lx *Lexer) scanStringBody(start Mark) token.Token {
	lx.cursor.Bump() // "
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanRawBody: r#"..."# закрывается кавычкой и тем же числом '#'.
func (lx *Lexer) scanRawBody(start Mark) token.Token {
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // "
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanQuote различает символьный литерал 'x' / '\n' и апостроф лайфтайма 'a.
// Апостроф лайфтайма становится Joint-пунктуацией, за которой следует идентификатор.
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.PeekAt(1) != '\\' {
		r, sz := lx.runeAt(1)
		closed := sz > 0 && lx.cursor.PeekAt(1+uint32(sz)) == '\''
		if !closed && sz > 0 && (isIdentStartRune(r) || (r < utf8RuneSelf && isIdentStartByte(byte(r)))) {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Punct, Span: sp, Text: "'", Joint: true}
		}
	}
	return lx.scanCharBody(start)
}

func (lx *Lexer) scanCharBody(start Mark) token.Token {
	lx.cursor.Bump() // '
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		// \u{...}, \x7f
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	} else if lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
		lx.bumpRune()
	}

	if lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
