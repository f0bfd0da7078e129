package parser

import (
	"fmt"
	"strconv"

	dberror "litedb/pkg/error"
	"litedb/pkg/parser/lexer"
)

func (p *Parser) peek() lexer.Token {
	return p.lexer.Peek(0)
}

func (p *Parser) peekAt(n int) lexer.Token {
	return p.lexer.Peek(n)
}

func (p *Parser) next() lexer.Token {
	return p.lexer.NextToken()
}

// accept consumes the next token if it has type t.
func (p *Parser) accept(t lexer.TokenType) bool {
	if p.peek().Type == t {
		p.next()
		return true
	}
	return false
}

// expect consumes the next token and fails unless it has type t.
// what names the expected construct in the error message.
func (p *Parser) expect(t lexer.TokenType, what string) (lexer.Token, error) {
	tok := p.next()
	if tok.Type != t {
		return tok, unexpected(tok, what)
	}
	return tok, nil
}

// expectTokenSequence validates that the next tokens match the expected
// types in order.
func (p *Parser) expectTokenSequence(expectedTypes ...lexer.TokenType) error {
	for _, expectedType := range expectedTypes {
		if _, err := p.expect(expectedType, expectedType.String()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) expectIdentifier(what string) (string, error) {
	tok, err := p.expect(lexer.IDENTIFIER, what)
	return tok.Value, err
}

func unexpected(tok lexer.Token, what string) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategorySyntax, dberror.CodeUnexpectedToken,
		"expected %s, got %s", what, tok).
		WithDetail("at position %d", tok.Position).
		In("Parser", "ParseStatement")
}

func syntaxError(tok lexer.Token, format string, args ...any) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategorySyntax, dberror.CodeUnexpectedToken, format, args...).
		WithDetail("at position %d", tok.Position).
		In("Parser", "ParseStatement")
}

// parseDelimitedList parses comma-separated items up to and including terminator.
func parseDelimitedList[T any](p *Parser, parseItem func() (T, error), terminator lexer.TokenType, what string) ([]T, error) {
	var items []T

	for {
		item, err := parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		tok := p.next()
		switch tok.Type {
		case lexer.COMMA:
			continue
		case terminator:
			return items, nil
		default:
			return nil, unexpected(tok, fmt.Sprintf("',' or %s in %s", terminatorName(terminator), what))
		}
	}
}

// parseCommaList parses one or more comma-separated items with no terminator.
func parseCommaList[T any](p *Parser, parseItem func() (T, error)) ([]T, error) {
	var items []T
	for {
		item, err := parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.accept(lexer.COMMA) {
			return items, nil
		}
	}
}

func terminatorName(t lexer.TokenType) string {
	switch t {
	case lexer.RPAREN:
		return "')'"
	case lexer.SEMICOLON:
		return "';'"
	default:
		return t.String()
	}
}

func parseInt(tok lexer.Token, negative bool) (int64, error) {
	text := tok.Value
	if negative {
		text = "-" + text
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, syntaxError(tok, "invalid integer value: %s", text)
	}
	return v, nil
}

func parseFloat(tok lexer.Token, negative bool) (float64, error) {
	v, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0, syntaxError(tok, "invalid float value: %s", tok.Value)
	}
	if negative {
		v = -v
	}
	return v, nil
}
