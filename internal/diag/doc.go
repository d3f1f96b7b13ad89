// Package diag defines the diagnostic model shared by the lexer, the token-tree
// builder, the invocation parser and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error.
//   - Code – compact numeric identifier (codes.go) with a stable string form
//     (LEX1001, SYN2100, ...).
//   - Message – short, human oriented text.
//   - Primary – the source.Span the diagnostic is anchored to. Call-site anchored
//     diagnostics use an empty span at the start of the invocation.
//   - Notes – secondary spans/messages. Help hints are notes whose message starts
//     with "help: ".
//   - Fixes – optional text edits that would resolve the problem.
//
// # Emitting diagnostics
//
// Producers depend only on Reporter. ReportBuilder (ReportError/ReportWarning)
// chains WithNote/WithHelp/WithFix before Emit. BagReporter collects into a Bag,
// which supports limits, sorting, deduplication and merging.
//
// Package diag performs no formatting beyond the single-line short form in
// golden.go; terminal and JSON rendering lives in internal/diagfmt.
package diag
