package token

import "dry/internal/source"

// TriviaKind classifies whitespace and comments preceding a token.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	default:
		return "Trivia(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// HasNewline reports whether any of the trivia breaks the line.
func HasNewline(trivia []Trivia) bool {
	for _, tv := range trivia {
		if tv.Kind == TriviaNewline || tv.Kind == TriviaLineComment {
			return true
		}
	}
	return false
}
