package parser

import (
	"litedb/pkg/parser/ast"
	"litedb/pkg/parser/lexer"
)

// parseInsert parses:
//
//	INSERT INTO name [(col, ...)] VALUES (lit, ...)[, (lit, ...)]*
func (p *Parser) parseInsert() (*ast.Insert, error) {
	if err := p.expectTokenSequence(lexer.INSERT, lexer.INTO); err != nil {
		return nil, err
	}

	table, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt := &ast.Insert{Table: table}

	if p.accept(lexer.LPAREN) {
		stmt.Columns, err = parseDelimitedList(p, func() (string, error) {
			return p.expectIdentifier("column name")
		}, lexer.RPAREN, "column list")
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.VALUES, "VALUES"); err != nil {
		return nil, err
	}

	stmt.Rows, err = parseCommaList(p, p.parseValueTuple)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseValueTuple() ([]*ast.Literal, error) {
	if _, err := p.expect(lexer.LPAREN, "'(' before value list"); err != nil {
		return nil, err
	}
	return parseDelimitedList(p, p.parseValue, lexer.RPAREN, "value list")
}

// parseValue parses a literal value: a possibly signed number, a string,
// TRUE, FALSE or NULL.
func (p *Parser) parseValue() (*ast.Literal, error) {
	tok := p.next()

	negative := false
	if tok.Type == lexer.MINUS || tok.Type == lexer.PLUS {
		negative = tok.Type == lexer.MINUS
		tok = p.next()
		if tok.Type != lexer.INT && tok.Type != lexer.FLOAT {
			return nil, unexpected(tok, "number after sign")
		}
	}

	switch tok.Type {
	case lexer.INT:
		v, err := parseInt(tok, negative)
		if err != nil {
			return nil, err
		}
		return ast.NewIntLiteral(v), nil
	case lexer.FLOAT:
		v, err := parseFloat(tok, negative)
		if err != nil {
			return nil, err
		}
		return ast.NewFloatLiteral(v), nil
	case lexer.STRING:
		return ast.NewStringLiteral(tok.Value), nil
	case lexer.TRUE:
		return ast.NewBoolLiteral(true), nil
	case lexer.FALSE:
		return ast.NewBoolLiteral(false), nil
	case lexer.NULL:
		return ast.NewNullLiteral(), nil
	default:
		return nil, unexpected(tok, "literal value")
	}
}

// parseUpdate parses:
//
//	UPDATE name SET col = expr[, col = expr]* [WHERE expr]
func (p *Parser) parseUpdate() (*ast.Update, error) {
	if _, err := p.expect(lexer.UPDATE, "UPDATE"); err != nil {
		return nil, err
	}

	table, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.SET, "SET"); err != nil {
		return nil, err
	}

	assignments, err := parseCommaList(p, p.parseAssignment)
	if err != nil {
		return nil, err
	}

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}

	return &ast.Update{Table: table, Assignments: assignments, Where: where}, nil
}

func (p *Parser) parseAssignment() (ast.Assignment, error) {
	column, err := p.expectIdentifier("column name in SET")
	if err != nil {
		return ast.Assignment{}, err
	}
	if _, err := p.expect(lexer.EQUAL, "'=' in SET"); err != nil {
		return ast.Assignment{}, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return ast.Assignment{}, err
	}
	return ast.Assignment{Column: column, Value: value}, nil
}

// parseDelete parses DELETE FROM name [WHERE expr].
func (p *Parser) parseDelete() (*ast.Delete, error) {
	if err := p.expectTokenSequence(lexer.DELETE, lexer.FROM); err != nil {
		return nil, err
	}

	table, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}

	return &ast.Delete{Table: table, Where: where}, nil
}

func (p *Parser) parseOptionalWhere() (ast.Expression, error) {
	if !p.accept(lexer.WHERE) {
		return nil, nil
	}
	return p.parseExpression()
}
