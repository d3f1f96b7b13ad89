package expand

import (
	"dry/internal/diag"
	"dry/internal/parser"
	"dry/internal/source"
)

const DefaultForMacro = "macro_for"

type Options struct {
	Marker   string // "$"
	Keyword  string // "in"
	ForMacro string // имя макроса, который распознаёт Wrap
	// CheckAdjacency rejects "$ x" when both tokens have positions.
	CheckAdjacency bool
	// Site anchors errors of an empty or truncated invocation.
	Site source.Span
	// Reporter receives warnings for tokens after the body; nil drops them.
	Reporter     diag.Reporter
	WarnTrailing bool
}

func (o Options) withDefaults() Options {
	if o.Marker == "" {
		o.Marker = parser.DefaultMarker
	}
	if o.Keyword == "" {
		o.Keyword = parser.DefaultKeyword
	}
	if o.ForMacro == "" {
		o.ForMacro = DefaultForMacro
	}
	return o
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{
		Marker:         o.Marker,
		Keyword:        o.Keyword,
		CheckAdjacency: o.CheckAdjacency,
		Site:           o.Site,
	}
}
