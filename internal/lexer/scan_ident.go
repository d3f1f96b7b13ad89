package lexer

import (
	"golang.org/x/text/unicode/norm"

	"dry/internal/diag"
	"dry/internal/token"
)

// scanIdent сканирует идентификатор (ASCII fast-path или Unicode) и raw-идентификатор r#name.
// Non-ASCII identifiers are normalized to NFC so that "$é" matches a decomposed "é".
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || (r >= utf8RuneSelf && !isIdentStartRune(r)) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteRune(r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	ascii := true
	lx.bumpRune()
	if r >= utf8RuneSelf {
		ascii = false
	}
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 {
			break
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				break
			}
		} else {
			if !isIdentContinueRune(r2) {
				break
			}
			ascii = false
		}
		lx.bumpRune()
	}

	// r#ident
	if lx.cursor.Off == uint32(start)+1 && r == 'r' && lx.cursor.Peek() == '#' && isIdentStartByte(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
