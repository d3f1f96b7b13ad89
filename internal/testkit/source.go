package testkit

import (
	"testing"

	"dry/internal/diag"
	"dry/internal/lexer"
	"dry/internal/source"
	"dry/internal/token"
	"dry/internal/tt"
)

// Source is a lexed in-memory file.
type Source struct {
	Files  *source.FileSet
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// Lex lexes src as a virtual file and collects diagnostics into a bag.
func Lex(src string) *Source {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.rs", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(diag.DefaultMax)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &Source{Files: fs, File: file, Tokens: lx.All(), Bag: bag}
}

// Trees folds the tokens into a forest, reporting into the same bag.
func (s *Source) Trees() []tt.Tree {
	return tt.Build(s.Tokens, diag.BagReporter{Bag: s.Bag})
}

// Trailing returns the trivia that follows the last token.
func (s *Source) Trailing() []token.Trivia {
	if len(s.Tokens) == 0 {
		return nil
	}
	return s.Tokens[len(s.Tokens)-1].Leading
}

// MustLex lexes src and fails the test on any diagnostic.
func MustLex(tb testing.TB, src string) *Source {
	tb.Helper()
	s := Lex(src)
	if s.Bag.Len() > 0 {
		tb.Fatalf("unexpected diagnostics for %q:\n%s", src, diag.FormatShortDiagnostics(s.Bag.Items(), s.Files, true))
	}
	return s
}

// MustTree lexes and builds src, failing the test on any diagnostic or broken invariant.
func MustTree(tb testing.TB, src string) []tt.Tree {
	tb.Helper()
	s := MustLex(tb, src)
	trees := s.Trees()
	if s.Bag.Len() > 0 {
		tb.Fatalf("unexpected diagnostics for %q:\n%s", src, diag.FormatShortDiagnostics(s.Bag.Items(), s.Files, true))
	}
	if err := CheckTreeInvariants(trees, s.File); err != nil {
		tb.Fatalf("tree invariants for %q: %v", src, err)
	}
	return trees
}
