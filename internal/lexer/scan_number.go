package lexer

import (
	"strings"

	"dry/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10 и суффиксы (u8, f32, usize).
// Точка входит в число только если за ней цифра: "1..2" и "x.0.1" остаются пунктуацией.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B', 'o', 'O', 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			lx.scanSuffix()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
	}

	lx.scanDigits()

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.scanDigits()
	}

	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			kind = token.FloatLit
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			lx.scanDigits()
		}
	}

	suffixStart := lx.cursor.Off
	lx.scanSuffix()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if suffix := text[suffixStart-sp.Start:]; strings.HasPrefix(suffix, "f") {
		kind = token.FloatLit
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) scanDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanSuffix() {
	if !isIdentStartByte(lx.cursor.Peek()) {
		return
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
