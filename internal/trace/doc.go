// Package trace records what the expander is doing while it runs.
//
// Tracing is off by default. Enable it from the command line:
//
//	dry expand --trace=- --trace-level=detail src/
//
// Events carry a scope, from coarse to fine:
//
//   - ScopeDriver: one span per CLI command
//   - ScopeFile: one span per input file
//   - ScopePass: lex, tree, expand, render
//   - ScopeInvocation: every dispatched macro call site
//
// The level decides which scopes reach the output. LevelPhase keeps driver and
// pass spans, LevelDetail adds files, LevelDebug adds invocations.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", parentID)
//	defer span.End("")
package trace
