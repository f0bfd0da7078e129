// Package lexer implements the tokenizer for litedb's SQL dialect.
//
// NewLexer scans the whole input eagerly. Scanning fails fast: the first
// character sequence that is not a valid token aborts with an ILLEGAL_TOKEN
// error and no tokens are returned. Once constructed, NextToken hands out
// tokens in order and returns END forever after the input is exhausted.
//
// # Usage
//
//	l, err := lexer.NewLexer("SELECT * FROM users;", logger)
//	if err != nil {
//	    return err
//	}
//	for tok := l.NextToken(); tok.Type != lexer.END; tok = l.NextToken() {
//	    fmt.Printf("%s %q\n", tok.Type, tok.Value)
//	}
//
// # Token types
//
// Keywords are matched case-insensitively against a fixed table; type names
// have aliases (INTEGER is INT_TYPE, STRING and TEXT are VARCHAR, BOOLEAN is
// BOOL_TYPE, REAL and DOUBLE are FLOAT_TYPE). Literals are INT, FLOAT and
// STRING. A number is INT only when its lexeme parses as a 64-bit integer.
// Any other word is an IDENTIFIER and keeps its source spelling.
//
// Punctuation is matched greedily: <=, >=, != and <> are single tokens, while
// + - * / % , ; ( ) . = < > never absorb the following character.
package lexer
