package schema

import (
	"fmt"
	"strings"

	"litedb/pkg/types"
)

// ConstraintKind identifies a column constraint.
type ConstraintKind int

const (
	PrimaryKey ConstraintKind = iota
	NotNull
	Unique
	Default
)

func (k ConstraintKind) String() string {
	switch k {
	case PrimaryKey:
		return "PRIMARY KEY"
	case NotNull:
		return "NOT NULL"
	case Unique:
		return "UNIQUE"
	case Default:
		return "DEFAULT"
	default:
		return "UNKNOWN"
	}
}

// Constraint is one constraint attached to a column definition. Value is only
// set for DEFAULT and holds the raw lexeme as written; it is never coerced to
// the column type.
type Constraint struct {
	Kind  ConstraintKind
	Value string
}

func (c Constraint) String() string {
	if c.Kind == Default {
		return "DEFAULT " + c.Value
	}
	return c.Kind.String()
}

// ColumnDefinition describes a single column of a table.
type ColumnDefinition struct {
	Name        string
	Type        types.Type
	Length      *int // declared VARCHAR length, if any
	Constraints []Constraint
}

// NewColumnDefinition creates a column with no constraints.
func NewColumnDefinition(name string, fieldType types.Type) (*ColumnDefinition, error) {
	if name == "" {
		return nil, fmt.Errorf("column name cannot be empty")
	}
	return &ColumnDefinition{Name: name, Type: fieldType}, nil
}

// Has reports whether the column carries a constraint of the given kind.
func (c ColumnDefinition) Has(kind ConstraintKind) bool {
	for _, con := range c.Constraints {
		if con.Kind == kind {
			return true
		}
	}
	return false
}

// IsNullable reports whether the column may hold NULL.
// Primary key columns are implicitly NOT NULL.
func (c ColumnDefinition) IsNullable() bool {
	return !c.Has(NotNull) && !c.Has(PrimaryKey)
}

// DefaultValue returns the raw DEFAULT lexeme, if any.
func (c ColumnDefinition) DefaultValue() (string, bool) {
	for _, con := range c.Constraints {
		if con.Kind == Default {
			return con.Value, true
		}
	}
	return "", false
}

func (c ColumnDefinition) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(c.Type.String())
	if c.Length != nil {
		fmt.Fprintf(&b, "(%d)", *c.Length)
	}
	for _, con := range c.Constraints {
		b.WriteByte(' ')
		b.WriteString(con.String())
	}
	return b.String()
}
