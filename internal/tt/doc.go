// Package tt models token trees: a flat token stream with its delimiters folded
// into nested groups. Every rewriting pass in dry operates on this representation.
//
// A Tree is either a Leaf (identifier, punctuation or literal) or a *Group.
// Group delimiters are kept as metadata on the group and never appear among its
// children, so a comma inside a nested group can never be confused with a comma
// at the current level.
package tt
