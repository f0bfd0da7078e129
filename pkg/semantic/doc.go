// Package semantic validates parsed statements against a catalog.
//
// The Analyzer walks a statement, builds the name-resolution scope for it
// (table name or alias to schema), and uses a TypeInferrer to type every
// expression. Validation is fail-fast: the first unknown name, ambiguous
// column or type error is returned and nothing else is checked.
//
// The TypeInferrer memoizes the type of each expression node in the node's own
// type slot. A second InferType call on the same node returns the cached type.
// ast.ClearTypeCache resets a node and everything below it so the tree can be
// re-analyzed after it is modified or after the catalog changes.
//
// Scopes are replaced, not merged, at the start of each statement and around
// each subquery. The previous scope is restored when the nested analysis
// returns, whether it succeeded or failed.
package semantic
