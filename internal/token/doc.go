// Package token defines the flat lexical tokens produced by the lexer.
// Invariants:
//   - Token.Text is the exact source text of the token (identifiers are NFC-normalized).
//   - Token.Span matches Text exactly (Start..End) for lexed tokens; synthesized tokens
//     carry a zero Span.
//   - Punctuation is always a single character. Multi-character operators ("::", "=>")
//     are sequences of Punct tokens where every token but the last has Joint set.
//   - Delimiters are separate kinds; the tt package folds them into groups and they
//     never reach the expansion engine as leaves.
//   - There are no keywords: the engine is syntax-blind, "in" is an Ident.
package token
