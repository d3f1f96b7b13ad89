package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = 0x80

// peekRune reads the rune at the cursor.
func (lx *Lexer) peekRune() (r rune, size int) {
	return lx.runeAt(0)
}

// runeAt decodes the rune starting n bytes after the cursor.
func (lx *Lexer) runeAt(n uint32) (r rune, size int) {
	off := lx.cursor.Off + n
	if off >= lx.cursor.Limit {
		return utf8.RuneError, 0
	}
	b := lx.file.Content[off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[off:lx.cursor.Limit])
}

// bumpRune moves the cursor past the rune at the cursor.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// ===== Классификаторы =====

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// isPunctByte covers the single-character punctuation of Rust-like token streams.
func isPunctByte(b byte) bool {
	switch b {
	case '=', '<', '>', '!', '~', '+', '-', '*', '/', '%', '^', '&', '|',
		'@', '.', ',', ';', ':', '#', '$', '?', '\'':
		return true
	}
	return false
}
