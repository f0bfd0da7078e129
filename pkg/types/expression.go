package types

import (
	"fmt"
	"strings"
)

// TypeKind tags an ExpressionType.
type TypeKind int

const (
	UnknownKind TypeKind = iota
	ScalarKind
	RowSetKind
)

// ExpressionType is the inferred type of an expression: a nullable scalar,
// the row set produced by a subquery, or unknown (a bare NULL literal).
type ExpressionType struct {
	Kind     TypeKind
	Base     Type
	Nullable bool
	// Columns holds the projected column types of a row set, in order.
	Columns []ExpressionType
}

// Scalar returns a scalar expression type.
func Scalar(base Type, nullable bool) ExpressionType {
	return ExpressionType{Kind: ScalarKind, Base: base, Nullable: nullable}
}

// RowSet returns a row-set type over the given column types.
func RowSet(columns ...ExpressionType) ExpressionType {
	return ExpressionType{Kind: RowSetKind, Columns: columns}
}

// Unknown returns the type of an expression with no intrinsic type.
func Unknown() ExpressionType {
	return ExpressionType{Kind: UnknownKind}
}

func (e ExpressionType) IsScalar() bool  { return e.Kind == ScalarKind }
func (e ExpressionType) IsRowSet() bool  { return e.Kind == RowSetKind }
func (e ExpressionType) IsUnknown() bool { return e.Kind == UnknownKind }

// IsBool reports whether e is a scalar boolean, nullable or not.
func (e ExpressionType) IsBool() bool {
	return e.Kind == ScalarKind && e.Base == BoolType
}

// Narrow returns the single column of a one-column row set as a scalar.
// Scalars are returned unchanged; anything else reports false.
func (e ExpressionType) Narrow() (ExpressionType, bool) {
	switch e.Kind {
	case ScalarKind:
		return e, true
	case RowSetKind:
		if len(e.Columns) == 1 && e.Columns[0].Kind == ScalarKind {
			return e.Columns[0], true
		}
	}
	return ExpressionType{}, false
}

// Equal reports structural equality.
func (e ExpressionType) Equal(o ExpressionType) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ScalarKind:
		return e.Base == o.Base && e.Nullable == o.Nullable
	case RowSetKind:
		if len(e.Columns) != len(o.Columns) {
			return false
		}
		for i := range e.Columns {
			if !e.Columns[i].Equal(o.Columns[i]) {
				return false
			}
		}
	}
	return true
}

func (e ExpressionType) String() string {
	switch e.Kind {
	case ScalarKind:
		if e.Nullable {
			return e.Base.String() + " NULL"
		}
		return e.Base.String()
	case RowSetKind:
		parts := make([]string, len(e.Columns))
		for i, c := range e.Columns {
			parts[i] = c.String()
		}
		return fmt.Sprintf("ROWSET(%s)", strings.Join(parts, ", "))
	default:
		return "UNKNOWN"
	}
}
