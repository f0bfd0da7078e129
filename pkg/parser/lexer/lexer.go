package lexer

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	dberror "litedb/pkg/error"
)

// keywords maps uppercase SQL keyword strings to their token types.
var keywords = map[string]TokenType{
	"CREATE":  CREATE,
	"TABLE":   TABLE,
	"DROP":    DROP,
	"PRIMARY": PRIMARY,
	"KEY":     KEY,
	"UNIQUE":  UNIQUE,
	"DEFAULT": DEFAULT,
	"NULL":    NULL,
	"NOT":     NOT,
	"SELECT":  SELECT,
	"FROM":    FROM,
	"WHERE":   WHERE,
	"GROUP":   GROUP,
	"ORDER":   ORDER,
	"BY":      BY,
	"LIMIT":   LIMIT,
	"ASC":     ASC,
	"DESC":    DESC,
	"AS":      AS,
	"AND":     AND,
	"OR":      OR,
	"IN":      IN,
	"BETWEEN": BETWEEN,
	"TRUE":    TRUE,
	"FALSE":   FALSE,
	"INSERT":  INSERT,
	"INTO":    INTO,
	"VALUES":  VALUES,
	"UPDATE":  UPDATE,
	"SET":     SET,
	"DELETE":  DELETE,
	"COUNT":   COUNT,
	"SUM":     SUM,
	"AVG":     AVG,
	"MIN":     MIN,
	"MAX":     MAX,
	"INT":     INT_TYPE,
	"INTEGER": INT_TYPE,
	"FLOAT":   FLOAT_TYPE,
	"REAL":    FLOAT_TYPE,
	"DOUBLE":  FLOAT_TYPE,
	"VARCHAR": VARCHAR,
	"STRING":  VARCHAR,
	"TEXT":    VARCHAR,
	"BOOL":    BOOL_TYPE,
	"BOOLEAN": BOOL_TYPE,
}

// twoCharTokens are tried before singleCharTokens.
var twoCharTokens = map[string]TokenType{
	"<=": LESS_EQUAL,
	">=": GREATER_EQUAL,
	"!=": NOT_EQUAL,
	"<>": NOT_EQUAL,
}

// singleCharTokens maps single-byte punctuation to their token types.
var singleCharTokens = map[byte]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	'/': SLASH,
	'%': PERCENT,
	',': COMMA,
	';': SEMICOLON,
	'(': LPAREN,
	')': RPAREN,
	'.': DOT,
	'=': EQUAL,
	'<': LESS_THAN,
	'>': GREATER_THAN,
}

// LookupKeyword returns the keyword token type for word, ignoring case.
func LookupKeyword(word string) (TokenType, bool) {
	tt, ok := keywords[strings.ToUpper(word)]
	return tt, ok
}

// Lexer holds the token sequence of one SQL string.
type Lexer struct {
	tokens []Token
	next   int
	end    Token
}

// scanner is the cursor used while building the token list.
type scanner struct {
	input  string
	pos    int
	length int
}

// NewLexer tokenizes input. It returns an ILLEGAL_TOKEN error for the first
// invalid token; the illegal token is also logged at error level.
func NewLexer(input string, logger *slog.Logger) (*Lexer, error) {
	s := &scanner{input: input, length: len(input)}
	tokens := make([]Token, 0, len(input)/4+1)

	for {
		tok := s.nextToken()
		if tok.Type == ILLEGAL {
			logger.Error("illegal token", "lexeme", tok.Value, "position", tok.Position)
			return nil, dberror.Newf(dberror.ErrCategoryLexical, dberror.CodeIllegalToken,
				"Invalid SQL syntax: illegal token '%s' at position %d", tok.Value, tok.Position).
				In("Lexer", "Tokenize")
		}
		if tok.Type == END {
			logger.Debug("tokenized statement", "tokens", len(tokens))
			return &Lexer{tokens: tokens, end: tok}, nil
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or END once the input is exhausted.
func (l *Lexer) NextToken() Token {
	if l.next >= len(l.tokens) {
		return l.end
	}
	tok := l.tokens[l.next]
	l.next++
	return tok
}

// Peek returns the token n positions ahead without consuming anything.
// Peek(0) is the token the next call to NextToken will return.
func (l *Lexer) Peek(n int) Token {
	if l.next+n >= len(l.tokens) {
		return l.end
	}
	return l.tokens[l.next+n]
}

// Tokens returns every token including the trailing END.
func (l *Lexer) Tokens() []Token {
	out := make([]Token, 0, len(l.tokens)+1)
	out = append(out, l.tokens...)
	return append(out, l.end)
}

func (s *scanner) nextToken() Token {
	s.skipWhitespace()

	if s.pos >= s.length {
		return Token{Type: END, Value: "", Position: s.pos}
	}

	start := s.pos
	ch := s.input[s.pos]

	switch {
	case s.isQuoteChar(ch):
		return s.readString(start)
	case isDigit(ch):
		return s.readNumber(start)
	case isLetter(ch) || ch == '_':
		return s.readIdentifier(start)
	default:
		return s.readPunctuation(start)
	}
}

func (s *scanner) isQuoteChar(ch byte) bool {
	return ch == '\'' || ch == '"'
}

// skipWhitespace advances the position past any whitespace characters.
func (s *scanner) skipWhitespace() {
	for s.pos < s.length && unicode.IsSpace(rune(s.input[s.pos])) {
		s.pos++
	}
}

func (s *scanner) readPunctuation(start int) Token {
	if s.pos+1 < s.length {
		if tt, ok := twoCharTokens[s.input[s.pos:s.pos+2]]; ok {
			s.pos += 2
			return s.createToken(tt, s.input[start:s.pos], start)
		}
	}

	ch := s.input[s.pos]
	if tt, ok := singleCharTokens[ch]; ok {
		s.pos++
		return s.createToken(tt, string(ch), start)
	}

	return s.createToken(ILLEGAL, s.illegalLexeme(), start)
}

// illegalLexeme returns the offending character, decoded as a rune so that
// non-ASCII input is reported whole.
func (s *scanner) illegalLexeme() string {
	_, size := utf8.DecodeRuneInString(s.input[s.pos:])
	return s.input[s.pos : s.pos+size]
}

// readString reads a quoted string literal delimited by single or double quotes.
// The token value excludes the quotes. An unterminated string is illegal.
func (s *scanner) readString(start int) Token {
	quote := s.input[s.pos]
	s.pos++

	end := strings.IndexByte(s.input[s.pos:], quote)
	if end < 0 {
		s.pos = s.length
		return s.createToken(ILLEGAL, s.input[start:], start)
	}

	value := s.input[s.pos : s.pos+end]
	s.pos += end + 1
	return s.createToken(STRING, value, start)
}

// readNumber reads digits with an optional fraction and exponent.
func (s *scanner) readNumber(start int) Token {
	s.readDigits()

	if s.pos+1 < s.length && s.input[s.pos] == '.' && isDigit(s.input[s.pos+1]) {
		s.pos++
		s.readDigits()
	}

	if s.pos < s.length && (s.input[s.pos] == 'e' || s.input[s.pos] == 'E') {
		s.pos++
		if s.pos < s.length && (s.input[s.pos] == '+' || s.input[s.pos] == '-') {
			s.pos++
		}
		if s.pos >= s.length || !isDigit(s.input[s.pos]) {
			return s.createToken(ILLEGAL, s.input[start:s.pos], start)
		}
		s.readDigits()
	}

	value := s.input[start:s.pos]
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return s.createToken(INT, value, start)
	}
	return s.createToken(FLOAT, value, start)
}

func (s *scanner) readDigits() {
	for s.pos < s.length && isDigit(s.input[s.pos]) {
		s.pos++
	}
}

// readIdentifier reads an identifier or keyword token. It matches the value
// against known SQL keywords and returns the appropriate token type, falling
// back to IDENTIFIER for unrecognized words.
func (s *scanner) readIdentifier(start int) Token {
	for s.pos < s.length && isIdentChar(s.input[s.pos]) {
		s.pos++
	}
	value := s.input[start:s.pos]
	if tt, ok := keywords[strings.ToUpper(value)]; ok {
		return s.createToken(tt, value, start)
	}
	return s.createToken(IDENTIFIER, value, start)
}

// createToken constructs a Token with the given type, value, and starting position.
func (s *scanner) createToken(t TokenType, value string, start int) Token {
	return Token{
		Type:     t,
		Value:    value,
		Position: start,
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

// Span is a token together with the end of the byte range it covers.
type Span struct {
	Token
	End int
}

// Scan tokenizes input without stopping at illegal tokens, for callers such
// as highlighters that must cope with partial input. The result always ends
// with an END span.
func Scan(input string) []Span {
	s := &scanner{input: input, length: len(input)}
	var spans []Span

	for {
		tok := s.nextToken()
		if tok.Type == ILLEGAL && s.pos == tok.Position {
			s.pos += len(tok.Value)
		}
		spans = append(spans, Span{Token: tok, End: s.pos})
		if tok.Type == END {
			return spans
		}
	}
}
