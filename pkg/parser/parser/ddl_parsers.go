package parser

import (
	"strings"

	"litedb/pkg/catalog/schema"
	"litedb/pkg/parser/ast"
	"litedb/pkg/parser/lexer"
	"litedb/pkg/types"
)

// parseCreateTable parses:
//
//	CREATE TABLE name (col type [(len)] [constraint ...], ...)
func (p *Parser) parseCreateTable() (*ast.CreateTable, error) {
	if err := p.expectTokenSequence(lexer.CREATE, lexer.TABLE); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LPAREN, "'(' before column definitions"); err != nil {
		return nil, err
	}

	columns, err := parseDelimitedList(p, p.parseColumnDefinition, lexer.RPAREN, "column definitions")
	if err != nil {
		return nil, err
	}

	return &ast.CreateTable{Table: name, Columns: columns}, nil
}

func (p *Parser) parseColumnDefinition() (schema.ColumnDefinition, error) {
	var col schema.ColumnDefinition

	name, err := p.expectIdentifier("column name")
	if err != nil {
		return col, err
	}
	col.Name = name

	fieldType, err := p.parseDataType()
	if err != nil {
		return col, err
	}
	col.Type = fieldType

	if p.peek().Type == lexer.LPAREN {
		if fieldType != types.StringType {
			return col, syntaxError(p.peek(), "length is only allowed for VARCHAR columns, not %s", fieldType)
		}
		p.next()
		tok, err := p.expect(lexer.INT, "column length")
		if err != nil {
			return col, err
		}
		length, err := parseInt(tok, false)
		if err != nil {
			return col, err
		}
		n := int(length)
		col.Length = &n
		if _, err := p.expect(lexer.RPAREN, "')' after column length"); err != nil {
			return col, err
		}
	}

	constraints, err := p.parseFieldConstraints()
	if err != nil {
		return col, err
	}
	col.Constraints = constraints
	return col, nil
}

func (p *Parser) parseDataType() (types.Type, error) {
	tok := p.next()
	switch tok.Type {
	case lexer.INT_TYPE:
		return types.IntType, nil
	case lexer.FLOAT_TYPE:
		return types.FloatType, nil
	case lexer.VARCHAR:
		return types.StringType, nil
	case lexer.BOOL_TYPE:
		return types.BoolType, nil
	default:
		return 0, unexpected(tok, "column type (INT, FLOAT, VARCHAR or BOOL)")
	}
}

// parseFieldConstraints parses zero or more column constraints.
func (p *Parser) parseFieldConstraints() ([]schema.Constraint, error) {
	var constraints []schema.Constraint

	for {
		tok := p.peek()
		switch tok.Type {
		case lexer.PRIMARY:
			if err := p.expectTokenSequence(lexer.PRIMARY, lexer.KEY); err != nil {
				return nil, err
			}
			constraints = append(constraints, schema.Constraint{Kind: schema.PrimaryKey})
		case lexer.NOT:
			if err := p.expectTokenSequence(lexer.NOT, lexer.NULL); err != nil {
				return nil, err
			}
			constraints = append(constraints, schema.Constraint{Kind: schema.NotNull})
		case lexer.UNIQUE:
			p.next()
			constraints = append(constraints, schema.Constraint{Kind: schema.Unique})
		case lexer.DEFAULT:
			p.next()
			value, err := p.parseDefaultLexeme()
			if err != nil {
				return nil, err
			}
			constraints = append(constraints, schema.Constraint{Kind: schema.Default, Value: value})
		default:
			return constraints, nil
		}
	}
}

// parseDefaultLexeme returns the DEFAULT value as written. A sign directly
// before a number is kept as part of the lexeme.
func (p *Parser) parseDefaultLexeme() (string, error) {
	tok := p.next()
	switch tok.Type {
	case lexer.MINUS, lexer.PLUS:
		num := p.next()
		if num.Type != lexer.INT && num.Type != lexer.FLOAT {
			return "", unexpected(num, "number after sign in DEFAULT")
		}
		return tok.Value + num.Value, nil
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NULL, lexer.IDENTIFIER:
		return tok.Value, nil
	default:
		return "", unexpected(tok, "value after DEFAULT")
	}
}

// parseDropTable parses DROP TABLE a, b, ... and removes repeated names,
// ignoring case and keeping the first spelling.
func (p *Parser) parseDropTable() (*ast.DropTable, error) {
	if err := p.expectTokenSequence(lexer.DROP, lexer.TABLE); err != nil {
		return nil, err
	}

	names, err := parseCommaList(p, func() (string, error) {
		return p.expectIdentifier("table name")
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(names))
	tables := make([]string, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tables = append(tables, n)
	}

	return &ast.DropTable{Tables: tables}, nil
}
