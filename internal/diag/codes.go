package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006

	// Дерево токенов
	SynInfo              Code = 2000
	SynUnclosedDelimiter Code = 2002
	SynUnexpectedClose   Code = 2030
	SynMismatchedClose   Code = 2031

	// Грамматика вызова
	SynMissingMarker   Code = 2100
	SynMissingIdent    Code = 2101
	SynMarkerSpacing   Code = 2102
	SynExpectIn        Code = 2103
	SynExpectValues    Code = 2104
	SynExpectBody      Code = 2105
	SynTrailingTokens  Code = 2106
	SynRecursionLimit  Code = 2107
	SynMacroNotGrouped Code = 2108

	// I/O
	IOLoadFileError Code = 4001
	IOWriteError    Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexTokenTooLong:             "Token too long",
	LexUnterminatedChar:         "Unterminated character literal",
	SynInfo:                     "Syntax information",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnexpectedClose:          "Unexpected closing delimiter",
	SynMismatchedClose:          "Mismatched closing delimiter",
	SynMissingMarker:            "Missing substitution marker",
	SynMissingIdent:             "Missing substitution identifier",
	SynMarkerSpacing:            "Space between marker and identifier",
	SynExpectIn:                 "Expected 'in'",
	SynExpectValues:             "Expected bracketed substitution values",
	SynExpectBody:               "Expected '{' body",
	SynTrailingTokens:           "Trailing tokens ignored",
	SynRecursionLimit:           "Recursion limit reached while expanding",
	SynMacroNotGrouped:          "Macro name not followed by a group",
	IOLoadFileError:             "Failed to load file",
	IOWriteError:                "Failed to write output",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
