package parser

import (
	"litedb/pkg/parser/ast"
	"litedb/pkg/parser/lexer"
)

var comparisonOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.EQUAL:         ast.OpEqual,
	lexer.NOT_EQUAL:     ast.OpNotEqual,
	lexer.LESS_THAN:     ast.OpLess,
	lexer.LESS_EQUAL:    ast.OpLessEqual,
	lexer.GREATER_THAN:  ast.OpGreater,
	lexer.GREATER_EQUAL: ast.OpGreaterEqual,
}

var additiveOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS:  ast.OpAdd,
	lexer.MINUS: ast.OpSub,
}

var multiplicativeOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.ASTERISK: ast.OpMul,
	lexer.SLASH:    ast.OpDiv,
	lexer.PERCENT:  ast.OpMod,
}

var unaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.NOT:   ast.OpNot,
	lexer.PLUS:  ast.OpPlus,
	lexer.MINUS: ast.OpNegate,
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(lexer.OR) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.accept(lexer.AND) {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

// parseComparison handles simple comparisons, which chain left to left,
// and BETWEEN and IN, which end the comparison level. BETWEEN and IN take a
// single operand, so they may not follow a comparison chain.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	chained := false
	for {
		tok := p.peek()
		switch {
		case chained && (tok.Type == lexer.BETWEEN || tok.Type == lexer.IN):
			return nil, syntaxError(tok, "%s cannot follow comparison %s; add parentheses", tok.Type, left)
		case tok.Type == lexer.BETWEEN:
			p.next()
			return p.parseBetween(left)
		case tok.Type == lexer.IN:
			p.next()
			return p.parseIn(left)
		case tok.Type.IsComparison():
			p.next()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = &ast.Binary{Op: comparisonOps[tok.Type], Left: left, Right: right}
			chained = true
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseBetween(subject ast.Expression) (ast.Expression, error) {
	lower, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.AND, "AND between BETWEEN bounds"); err != nil {
		return nil, err
	}
	upper, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.Between{Expr: subject, Lower: lower, Upper: upper}, nil
}

func (p *Parser) parseIn(subject ast.Expression) (ast.Expression, error) {
	if _, err := p.expect(lexer.LPAREN, "'(' after IN"); err != nil {
		return nil, err
	}

	if p.peek().Type == lexer.SELECT {
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')' after IN subquery"); err != nil {
			return nil, err
		}
		return &ast.In{Expr: subject, Query: &ast.Subquery{Select: sel}}, nil
	}

	values, err := parseDelimitedList(p, p.parseExpression, lexer.RPAREN, "IN list")
	if err != nil {
		return nil, err
	}
	return &ast.In{Expr: subject, Values: values}, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinaryLevel(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinaryLevel(multiplicativeOps, p.parseUnary)
}

// parseBinaryLevel parses a left-associative chain of operators from ops.
func (p *Parser) parseBinaryLevel(ops map[lexer.TokenType]ast.BinaryOp, operand func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.peek().Type]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if op, ok := unaryOps[p.peek().Type]; ok {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.LPAREN:
		p.next()
		if p.peek().Type == lexer.SELECT {
			sel, err := p.parseSelect()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN, "')' after subquery"); err != nil {
				return nil, err
			}
			return &ast.Subquery{Select: sel}, nil
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NULL:
		lit, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return lit, nil

	case lexer.ASTERISK:
		p.next()
		return &ast.Star{}, nil

	case lexer.IDENTIFIER:
		switch p.peekAt(1).Type {
		case lexer.LPAREN:
			return p.parseFunctionCall()
		case lexer.DOT:
			if p.peekAt(2).Type == lexer.ASTERISK {
				p.next()
				p.next()
				p.next()
				return &ast.Star{Table: tok.Value}, nil
			}
		}
		ref, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		return ref, nil

	default:
		if tok.Type.IsFunctionKeyword() {
			return p.parseFunctionCall()
		}
		return nil, unexpected(tok, "expression")
	}
}

// parseFunctionCall parses name(arg, ...). A bare * argument becomes a Star
// node; whether it is allowed is decided during analysis.
func (p *Parser) parseFunctionCall() (ast.Expression, error) {
	name := p.next()
	if _, err := p.expect(lexer.LPAREN, "'(' after function name "+name.Value); err != nil {
		return nil, err
	}

	call := &ast.FunctionCall{Name: name.Value}
	if p.accept(lexer.RPAREN) {
		return call, nil
	}

	args, err := parseDelimitedList(p, p.parseExpression, lexer.RPAREN, "argument list of "+name.Value)
	if err != nil {
		return nil, err
	}
	call.Args = args
	return call, nil
}
