// Package ast defines the syntax tree produced by the parser.
//
// The set of node kinds is closed: Statement and Expression are sealed
// interfaces implemented only by the types in this package, and consumers
// (the semantic analyzer, the type inferrer, the terminal UI) dispatch with
// exhaustive type switches.
//
// Every expression owns an optional type slot. The type inferrer fills it on
// first inference and reads it back afterwards; ClearTypeCache empties the
// slot of an expression and of every expression below it, including those
// inside subqueries.
package ast
