// Package expand rewrites token trees.
//
// Substitute replaces marked placeholder occurrences in one copy of a body,
// Expand concatenates one copy per substitution value, ForEach is the direct
// macro_for entry point and Wrap pre-expands macro_for calls nested where a
// host would not dispatch them. All functions are pure: inputs are never
// modified and nothing is shared between calls.
package expand
