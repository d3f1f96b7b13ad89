package parser

import (
	"dry/internal/diag"
	"dry/internal/source"
)

// ErrorKind identifies the grammar step that failed.
type ErrorKind uint8

const (
	ErrMissingMarker ErrorKind = iota + 1
	ErrMissingIdent
	ErrMarkerSpacing
	ErrExpectedIn
	ErrExpectedValues
	ErrExpectedBody
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMissingMarker:
		return "missing-marker"
	case ErrMissingIdent:
		return "missing-ident"
	case ErrMarkerSpacing:
		return "marker-spacing"
	case ErrExpectedIn:
		return "expected-in"
	case ErrExpectedValues:
		return "expected-values"
	case ErrExpectedBody:
		return "expected-body"
	default:
		return "unknown"
	}
}

// Code maps the kind to its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case ErrMissingMarker:
		return diag.SynMissingMarker
	case ErrMissingIdent:
		return diag.SynMissingIdent
	case ErrMarkerSpacing:
		return diag.SynMarkerSpacing
	case ErrExpectedIn:
		return diag.SynExpectIn
	case ErrExpectedValues:
		return diag.SynExpectValues
	case ErrExpectedBody:
		return diag.SynExpectBody
	default:
		return diag.UnknownCode
	}
}

// GrammarError describes the first failed grammar step of an invocation.
type GrammarError struct {
	Kind    ErrorKind
	Span    source.Span
	Message string
	Help    []string
	Fix     *diag.Fix
}

func (e *GrammarError) Error() string {
	return e.Message
}

// Report emits the error as exactly one diagnostic.
func (e *GrammarError) Report(r diag.Reporter) {
	if e == nil || r == nil {
		return
	}
	b := diag.ReportError(r, e.Kind.Code(), e.Span, e.Message)
	for _, h := range e.Help {
		b.WithHelp(h)
	}
	if e.Fix != nil {
		b.WithFix(e.Fix.Title, e.Fix.Edits...)
	}
	b.Emit()
}

func newError(kind ErrorKind, sp source.Span, msg string, help ...string) *GrammarError {
	return &GrammarError{Kind: kind, Span: sp, Message: msg, Help: help}
}
