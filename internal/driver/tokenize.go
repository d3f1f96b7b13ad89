package driver

import (
	"fmt"

	"dry/internal/diag"
	"dry/internal/lexer"
	"dry/internal/source"
	"dry/internal/token"
	"dry/internal/tt"
)

// TokenizeResult backs `dry tokenize` and `dry tree`.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Trees   []tt.Tree // nil unless built
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it; withTree also folds the tokens into trees.
func Tokenize(path string, maxDiagnostics int, withTree bool) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(fs, id, maxDiagnostics, withTree), nil
}

// TokenizeSource is Tokenize over an in-memory input.
func TokenizeSource(name string, src []byte, maxDiagnostics int, withTree bool) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(fs, fs.AddVirtual(name, src), maxDiagnostics, withTree)
}

func tokenizeFile(fs *source.FileSet, id source.FileID, maxDiagnostics int, withTree bool) *TokenizeResult {
	file := fs.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lexer.New(file, lexer.Options{Reporter: reporter}).All(),
		Bag:     bag,
	}
	if withTree {
		res.Trees = tt.Build(res.Tokens, reporter)
	}
	return res
}
