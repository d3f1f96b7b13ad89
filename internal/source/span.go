package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
// The zero Span is used for synthesized tokens that have no source position.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// IsZero reports whether the span carries no position at all.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged; a zero span is absorbed.
func (s Span) Cover(other Span) Span {
	if s.IsZero() {
		return other
	}
	if other.IsZero() || s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Touches reports whether other starts exactly where s ends, in the same file.
func (s Span) Touches(other Span) bool {
	return s.File == other.File && s.End == other.Start
}

// StartSpan returns the empty span at the beginning of s.
func (s Span) StartSpan() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}
