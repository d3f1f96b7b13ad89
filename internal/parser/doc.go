// Package parser reads the invocation grammar of macro_for:
//
//	$<ident> in [ <value>, <value>, ... ] { <body> }
//
// The parser works on a token-tree forest, so value boundaries are the commas
// at the top level of the bracket group only. It never reports through a
// diag.Reporter directly: every step returns a *GrammarError, and the caller
// decides whether to turn it into a diagnostic.
package parser
