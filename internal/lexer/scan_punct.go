package lexer

import (
	"dry/internal/diag"
	"dry/internal/token"
)

var delimiterKinds = [...]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
}

// scanPunct выдаёт разделители и односимвольную пунктуацию.
// Многосимвольные операторы (=>, ::, ..) не склеиваются: каждый символ получает
// свой токен, а Joint отмечает, что следующий символ тоже пунктуация без пробела.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	if int(b) < len(delimiterKinds) && delimiterKinds[b] != token.Invalid {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: delimiterKinds[b], Span: sp, Text: lx.text(sp)}
	}

	if isPunctByte(b) {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		next := lx.cursor.Peek()
		joint := isPunctByte(next) && !lx.atCommentStart()
		return token.Token{Kind: token.Punct, Span: sp, Text: lx.text(sp), Joint: joint}
	}

	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteRune(r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) atCommentStart() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}
