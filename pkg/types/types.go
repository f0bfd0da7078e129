package types

import "strings"

// Type is the base type of a column or scalar expression.
type Type int

const (
	IntType Type = iota
	FloatType
	StringType
	BoolType
)

// String returns a string representation of the type
func (t Type) String() string {
	switch t {
	case IntType:
		return "INT"
	case FloatType:
		return "FLOAT"
	case StringType:
		return "VARCHAR"
	case BoolType:
		return "BOOL"
	default:
		return "UNKNOWN_TYPE"
	}
}

// IsNumeric reports whether arithmetic is defined on the type.
func (t Type) IsNumeric() bool {
	return t == IntType || t == FloatType
}

// IsOrderable reports whether <, <=, > and >= are defined on the type.
func (t Type) IsOrderable() bool {
	return t.IsNumeric() || t == StringType
}

// ParseType maps a SQL type name (including aliases such as INTEGER or TEXT)
// to a base type.
func ParseType(name string) (Type, bool) {
	switch strings.ToUpper(name) {
	case "INT", "INTEGER":
		return IntType, true
	case "FLOAT", "REAL", "DOUBLE":
		return FloatType, true
	case "VARCHAR", "STRING", "TEXT":
		return StringType, true
	case "BOOL", "BOOLEAN":
		return BoolType, true
	default:
		return 0, false
	}
}

// ValueKind is the kind of a literal value written in SQL text.
type ValueKind int

const (
	IntValue ValueKind = iota
	FloatValue
	StringValue
	BoolValue
	NullValue
)

func (k ValueKind) String() string {
	switch k {
	case IntValue:
		return "INT"
	case FloatValue:
		return "FLOAT"
	case StringValue:
		return "STRING"
	case BoolValue:
		return "BOOL"
	case NullValue:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// BaseType returns the base type a literal of this kind has on its own.
// NULL has none.
func (k ValueKind) BaseType() (Type, bool) {
	switch k {
	case IntValue:
		return IntType, true
	case FloatValue:
		return FloatType, true
	case StringValue:
		return StringType, true
	case BoolValue:
		return BoolType, true
	default:
		return 0, false
	}
}

// IsCompatible reports whether a value of kind k may be stored in a column
// of type t: exact matches, NULL into anything, and INT into FLOAT.
func IsCompatible(k ValueKind, t Type) bool {
	if k == NullValue {
		return true
	}
	base, ok := k.BaseType()
	if !ok {
		return false
	}
	if base == t {
		return true
	}
	return base == IntType && t == FloatType
}
