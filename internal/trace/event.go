package trace

import "time"

// Kind is the kind of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event.
type Scope uint8

const (
	ScopeDriver     Scope = iota // CLI command
	ScopePass                    // lex, tree, expand, render
	ScopeFile                    // one input file
	ScopeInvocation              // one macro call site
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeInvocation:
		return "invocation"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string // "expand", "file:src/lib.rs", "macro_for"
	Detail   string
	Extra    map[string]string
}
