package parser

import (
	"litedb/pkg/parser/ast"
	"litedb/pkg/parser/lexer"
)

// parseSelect parses:
//
//	SELECT item, ... FROM table [alias], ...
//	  [WHERE expr] [GROUP BY col, ...] [ORDER BY col [ASC|DESC], ...] [LIMIT n]
//
// It is shared by top-level statements and subqueries.
func (p *Parser) parseSelect() (*ast.Select, error) {
	if _, err := p.expect(lexer.SELECT, "SELECT"); err != nil {
		return nil, err
	}

	items, err := parseCommaList(p, p.parseSelectItem)
	if err != nil {
		return nil, err
	}
	stmt := &ast.Select{Items: items}

	if _, err := p.expect(lexer.FROM, "FROM after select list"); err != nil {
		return nil, err
	}

	stmt.From, err = parseCommaList(p, p.parseTableWithAlias)
	if err != nil {
		return nil, err
	}

	if stmt.Where, err = p.parseOptionalWhere(); err != nil {
		return nil, err
	}

	if p.accept(lexer.GROUP) {
		if _, err := p.expect(lexer.BY, "BY after GROUP"); err != nil {
			return nil, err
		}
		if stmt.GroupBy, err = parseCommaList(p, p.parseColumnRef); err != nil {
			return nil, err
		}
	}

	if p.accept(lexer.ORDER) {
		if _, err := p.expect(lexer.BY, "BY after ORDER"); err != nil {
			return nil, err
		}
		if stmt.OrderBy, err = parseCommaList(p, p.parseOrderItem); err != nil {
			return nil, err
		}
	}

	if p.accept(lexer.LIMIT) {
		tok, err := p.expect(lexer.INT, "row count after LIMIT")
		if err != nil {
			return nil, err
		}
		n, err := parseInt(tok, false)
		if err != nil {
			return nil, err
		}
		stmt.Limit = &n
	}

	return stmt, nil
}

func (p *Parser) parseSelectItem() (ast.SelectItem, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return ast.SelectItem{}, err
	}
	item := ast.SelectItem{Expr: expr}

	if tok := p.peek(); tok.Type == lexer.AS {
		if _, isStar := expr.(*ast.Star); isStar {
			return item, syntaxError(tok, "AS cannot follow %s", expr)
		}
		p.next()
		alias := p.next()
		if alias.Type != lexer.IDENTIFIER {
			return item, syntaxError(alias, "AS must be followed by an identifier, got %s", alias)
		}
		item.Alias = alias.Value
	}
	return item, nil
}

// parseTableWithAlias parses a table reference with optional alias.
// Example: "users u" yields {users, u}, "users" yields {users, ""}.
func (p *Parser) parseTableWithAlias() (ast.TableRef, error) {
	name, err := p.expectIdentifier("table name")
	if err != nil {
		return ast.TableRef{}, err
	}
	ref := ast.TableRef{Name: name}
	if p.peek().Type == lexer.IDENTIFIER {
		ref.Alias = p.next().Value
	}
	return ref, nil
}

// parseColumnRef parses col or table.col.
func (p *Parser) parseColumnRef() (*ast.ColumnRef, error) {
	first, err := p.expectIdentifier("column name")
	if err != nil {
		return nil, err
	}
	if !p.accept(lexer.DOT) {
		return &ast.ColumnRef{Column: first}, nil
	}
	column, err := p.expectIdentifier("column name after '.'")
	if err != nil {
		return nil, err
	}
	return &ast.ColumnRef{Table: first, Column: column}, nil
}

func (p *Parser) parseOrderItem() (ast.OrderItem, error) {
	col, err := p.parseColumnRef()
	if err != nil {
		return ast.OrderItem{}, err
	}
	item := ast.OrderItem{Column: col}
	if p.accept(lexer.DESC) {
		item.Desc = true
	} else {
		p.accept(lexer.ASC)
	}
	return item, nil
}
