package ast

import (
	"strings"

	"litedb/pkg/types"
)

type StatementType int

const (
	CreateTableStmt StatementType = iota
	DropTableStmt
	SelectStmt
	InsertStmt
	UpdateStmt
	DeleteStmt
)

func (st StatementType) String() string {
	switch st {
	case CreateTableStmt:
		return "CREATE TABLE"
	case DropTableStmt:
		return "DROP TABLE"
	case SelectStmt:
		return "SELECT"
	case InsertStmt:
		return "INSERT"
	case UpdateStmt:
		return "UPDATE"
	case DeleteStmt:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// IsDML returns true if the statement type is a DML operation (INSERT, UPDATE, DELETE, SELECT)
func (st StatementType) IsDML() bool {
	return st == SelectStmt || st == InsertStmt || st == UpdateStmt || st == DeleteStmt
}

// IsDDL returns true if the statement type is a DDL operation (CREATE, DROP)
func (st StatementType) IsDDL() bool {
	return st == CreateTableStmt || st == DropTableStmt
}

// Node is any syntax tree node.
type Node interface {
	String() string
	node()
}

// Statement is the root of a parsed SQL statement.
type Statement interface {
	Node
	GetType() StatementType
	statementNode()
}

// Expression is a value-producing node with a type cache slot.
type Expression interface {
	Node
	// CachedType returns the memoized type, if one has been set.
	CachedType() (types.ExpressionType, bool)
	SetCachedType(types.ExpressionType)
	ClearCachedType()
	expressionNode()
}

// typeSlot is embedded in every expression node.
type typeSlot struct {
	cached *types.ExpressionType
}

func (s *typeSlot) CachedType() (types.ExpressionType, bool) {
	if s.cached == nil {
		return types.ExpressionType{}, false
	}
	return *s.cached, true
}

func (s *typeSlot) SetCachedType(t types.ExpressionType) {
	s.cached = &t
}

func (s *typeSlot) ClearCachedType() {
	s.cached = nil
}

// statementBuilder wraps strings.Builder with helpers that eliminate
// the repetitive if-then-WriteString pattern in String() methods.
type statementBuilder struct {
	strings.Builder
}

// writeIf appends s only when cond is true.
func (b *statementBuilder) writeIf(cond bool, s string) {
	if cond {
		b.WriteString(s)
	}
}

// writeClause appends " keyword value" only when value is non-empty.
func (b *statementBuilder) writeClause(keyword, value string) {
	if value != "" {
		b.WriteString(" " + keyword + " " + value)
	}
}

func joinNodes[T Node](nodes []T) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
