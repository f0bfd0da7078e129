package parser

import (
	"log/slog"

	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
	"litedb/pkg/parser/lexer"
)

// Parser builds one statement from a token sequence.
type Parser struct {
	lexer  *lexer.Lexer
	logger *slog.Logger
}

// NewParser tokenizes sql and returns a parser over the tokens.
func NewParser(sql string, logger *slog.Logger) (*Parser, error) {
	l, err := lexer.NewLexer(sql, logger)
	if err != nil {
		return nil, err
	}
	return &Parser{lexer: l, logger: logger}, nil
}

// ParseStatement parses a SQL statement string and returns its syntax tree.
//
// Supported SQL statements:
//   - CREATE TABLE, DROP TABLE
//   - SELECT, INSERT, UPDATE, DELETE
func ParseStatement(sql string, logger *slog.Logger) (ast.Statement, error) {
	p, err := NewParser(sql, logger)
	if err != nil {
		return nil, err
	}
	return p.ParseStatement()
}

// ParseStatement parses exactly one statement terminated by a semicolon.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	stmt, err := p.parseStatementBody()
	if err != nil {
		p.logger.Debug("parse failed", "error", err)
		return nil, err
	}

	if tok := p.lexer.NextToken(); tok.Type != lexer.SEMICOLON {
		return nil, dberror.New(dberror.ErrCategorySyntax, dberror.CodeMissingTerminator,
			"SQL statement must end with a semicolon").
			WithDetail("got %s at position %d", tok, tok.Position).
			In("Parser", "ParseStatement")
	}
	if tok := p.lexer.NextToken(); tok.Type != lexer.END {
		return nil, dberror.Newf(dberror.ErrCategorySyntax, dberror.CodeTrailingInput,
			"unexpected %s after end of statement", tok).
			WithDetail("at position %d", tok.Position).
			In("Parser", "ParseStatement")
	}

	p.logger.Debug("parsed statement", "type", stmt.GetType().String())
	return stmt, nil
}

func (p *Parser) parseStatementBody() (ast.Statement, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.CREATE:
		return p.parseCreateTable()
	case lexer.DROP:
		return p.parseDropTable()
	case lexer.SELECT:
		return p.parseSelect()
	case lexer.INSERT:
		return p.parseInsert()
	case lexer.UPDATE:
		return p.parseUpdate()
	case lexer.DELETE:
		return p.parseDelete()
	case lexer.END:
		return nil, dberror.New(dberror.ErrCategorySyntax, dberror.CodeUnsupportedStatement, "empty statement").
			In("Parser", "ParseStatement")
	default:
		return nil, dberror.Newf(dberror.ErrCategorySyntax, dberror.CodeUnsupportedStatement,
			"expected CREATE, DROP, SELECT, INSERT, UPDATE or DELETE, got %s", tok).
			WithDetail("at position %d", tok.Position).
			In("Parser", "ParseStatement")
	}
}
