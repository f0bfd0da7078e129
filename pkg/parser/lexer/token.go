package lexer

import "fmt"

type TokenType int

const (
	CREATE TokenType = iota
	TABLE
	DROP
	PRIMARY
	KEY
	UNIQUE
	DEFAULT
	NULL
	NOT

	SELECT
	FROM
	WHERE
	GROUP
	ORDER
	BY
	LIMIT
	ASC
	DESC
	AS

	AND
	OR
	IN
	BETWEEN
	TRUE
	FALSE

	INSERT
	INTO
	VALUES
	UPDATE
	SET
	DELETE

	COUNT
	SUM
	AVG
	MIN
	MAX

	INT_TYPE
	FLOAT_TYPE
	VARCHAR
	BOOL_TYPE

	INT
	FLOAT
	STRING
	IDENTIFIER

	EQUAL
	NOT_EQUAL
	LESS_THAN
	LESS_EQUAL
	GREATER_THAN
	GREATER_EQUAL
	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT

	COMMA
	SEMICOLON
	LPAREN
	RPAREN
	DOT

	ILLEGAL
	END
)

var tokenTypeNames = map[TokenType]string{
	CREATE:        "CREATE",
	TABLE:         "TABLE",
	DROP:          "DROP",
	PRIMARY:       "PRIMARY",
	KEY:           "KEY",
	UNIQUE:        "UNIQUE",
	DEFAULT:       "DEFAULT",
	NULL:          "NULL",
	NOT:           "NOT",
	SELECT:        "SELECT",
	FROM:          "FROM",
	WHERE:         "WHERE",
	GROUP:         "GROUP",
	ORDER:         "ORDER",
	BY:            "BY",
	LIMIT:         "LIMIT",
	ASC:           "ASC",
	DESC:          "DESC",
	AS:            "AS",
	AND:           "AND",
	OR:            "OR",
	IN:            "IN",
	BETWEEN:       "BETWEEN",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	INSERT:        "INSERT",
	INTO:          "INTO",
	VALUES:        "VALUES",
	UPDATE:        "UPDATE",
	SET:           "SET",
	DELETE:        "DELETE",
	COUNT:         "COUNT",
	SUM:           "SUM",
	AVG:           "AVG",
	MIN:           "MIN",
	MAX:           "MAX",
	INT_TYPE:      "INT_TYPE",
	FLOAT_TYPE:    "FLOAT_TYPE",
	VARCHAR:       "VARCHAR",
	BOOL_TYPE:     "BOOL_TYPE",
	INT:           "INT",
	FLOAT:         "FLOAT",
	STRING:        "STRING",
	IDENTIFIER:    "IDENTIFIER",
	EQUAL:         "EQUAL",
	NOT_EQUAL:     "NOT_EQUAL",
	LESS_THAN:     "LESS_THAN",
	LESS_EQUAL:    "LESS_EQUAL",
	GREATER_THAN:  "GREATER_THAN",
	GREATER_EQUAL: "GREATER_EQUAL",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	ASTERISK:      "ASTERISK",
	SLASH:         "SLASH",
	PERCENT:       "PERCENT",
	COMMA:         "COMMA",
	SEMICOLON:     "SEMICOLON",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	DOT:           "DOT",
	ILLEGAL:       "ILLEGAL",
	END:           "END",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsFunctionKeyword reports whether t is a reserved aggregate name that may
// start a function call.
func (t TokenType) IsFunctionKeyword() bool {
	return t >= COUNT && t <= MAX
}

// IsTypeKeyword reports whether t names a column type.
func (t TokenType) IsTypeKeyword() bool {
	return t >= INT_TYPE && t <= BOOL_TYPE
}

// IsComparison reports whether t is one of = <> != < <= > >=.
func (t TokenType) IsComparison() bool {
	return t >= EQUAL && t <= GREATER_EQUAL
}

type Token struct {
	Type     TokenType
	Value    string
	Position int
}

func (t Token) String() string {
	if t.Type == END {
		return "end of input"
	}
	return fmt.Sprintf("%s '%s'", t.Type, t.Value)
}
