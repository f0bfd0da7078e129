// Package parser converts SQL text into an abstract syntax tree (AST).
//
// ParseStatement is the entry point. It tokenizes the input, parses exactly
// one statement and requires it to end with a semicolon followed by nothing
// else.
//
// # Supported statements
//
//   - CREATE TABLE with column types, VARCHAR length and the PRIMARY KEY,
//     NOT NULL, UNIQUE and DEFAULT constraints
//   - DROP TABLE over a comma-separated list (duplicates are dropped)
//   - SELECT with WHERE, GROUP BY, ORDER BY and LIMIT
//   - INSERT with an optional column list and multiple value tuples
//   - UPDATE with one or more assignments and an optional WHERE
//   - DELETE with an optional WHERE
//
// # Expressions
//
// Expressions are parsed by recursive descent, lowest precedence first:
// OR, AND, comparison (including BETWEEN and IN), additive, multiplicative,
// unary (NOT, +, -) and primary. BETWEEN and IN do not chain and may not
// follow a comparison; parenthesize the comparison instead.
//
// # Usage
//
//	stmt, err := parser.ParseStatement("SELECT id, name FROM users WHERE age > 18;", logger)
//	if err != nil {
//	    return err
//	}
//	switch s := stmt.(type) {
//	case *ast.Select:
//	    ...
//	}
//
// # Error handling
//
// Every failure is a *DBError from litedb/pkg/error. Lexical errors carry
// ILLEGAL_TOKEN; syntax errors carry UNEXPECTED_TOKEN, MISSING_TERMINATOR,
// TRAILING_INPUT or UNSUPPORTED_STATEMENT and name the expected construct.
package parser
