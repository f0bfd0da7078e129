package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"litedb/pkg/parser/lexer"
	"litedb/pkg/ui/base"
)

// SQLHighlighter colors SQL text using the statement lexer, so keywords and
// literals are classified exactly as the parser will see them. Whitespace in
// the input is preserved.
type SQLHighlighter struct {
	keywordStyle  lipgloss.Style
	functionStyle lipgloss.Style
	typeStyle     lipgloss.Style
	stringStyle   lipgloss.Style
	numberStyle   lipgloss.Style
	operatorStyle lipgloss.Style
	illegalStyle  lipgloss.Style
}

func NewSQLHighlighter(p base.SyntaxPalette) *SQLHighlighter {
	return &SQLHighlighter{
		keywordStyle:  lipgloss.NewStyle().Foreground(p.Keyword).Bold(true),
		functionStyle: lipgloss.NewStyle().Foreground(p.Function).Bold(true),
		typeStyle:     lipgloss.NewStyle().Foreground(p.Type),
		stringStyle:   lipgloss.NewStyle().Foreground(p.String),
		numberStyle:   lipgloss.NewStyle().Foreground(p.Number),
		operatorStyle: lipgloss.NewStyle().Foreground(p.Operator),
		illegalStyle:  lipgloss.NewStyle().Foreground(p.Illegal).Underline(true),
	}
}

func (h *SQLHighlighter) Highlight(sql string) string {
	var b strings.Builder
	prev := 0

	for _, sp := range lexer.Scan(sql) {
		b.WriteString(sql[prev:sp.Position])
		text := sql[sp.Position:sp.End]
		if style, ok := h.styleFor(sp.Token); ok {
			b.WriteString(style.Render(text))
		} else {
			b.WriteString(text)
		}
		prev = sp.End
	}
	return b.String()
}

func (h *SQLHighlighter) styleFor(tok lexer.Token) (lipgloss.Style, bool) {
	switch {
	case tok.Type == lexer.ILLEGAL:
		return h.illegalStyle, true
	case tok.Type.IsFunctionKeyword():
		return h.functionStyle, true
	case tok.Type.IsTypeKeyword():
		return h.typeStyle, true
	case tok.Type == lexer.STRING:
		return h.stringStyle, true
	case tok.Type == lexer.INT || tok.Type == lexer.FLOAT:
		return h.numberStyle, true
	case tok.Type.IsComparison() || isArithmetic(tok.Type):
		return h.operatorStyle, true
	}
	if _, ok := lexer.LookupKeyword(tok.Value); ok {
		return h.keywordStyle, true
	}
	return lipgloss.Style{}, false
}

func isArithmetic(t lexer.TokenType) bool {
	switch t {
	case lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT:
		return true
	}
	return false
}
