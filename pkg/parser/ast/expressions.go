package ast

import (
	"fmt"
	"strconv"
	"strings"

	"litedb/pkg/types"
)

type BinaryOp int

const (
	OpEqual BinaryOp = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

var binaryOpSymbols = map[BinaryOp]string{
	OpEqual:        "=",
	OpNotEqual:     "<>",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpAnd:          "AND",
	OpOr:           "OR",
	OpAdd:          "+",
	OpSub:          "-",
	OpMul:          "*",
	OpDiv:          "/",
	OpMod:          "%",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpSymbols[op]; ok {
		return s
	}
	return "?"
}

func (op BinaryOp) IsComparison() bool { return op >= OpEqual && op <= OpGreaterEqual }
func (op BinaryOp) IsLogical() bool    { return op == OpAnd || op == OpOr }
func (op BinaryOp) IsArithmetic() bool { return op >= OpAdd && op <= OpMod }

// IsEquality reports whether op is = or <>, which need no ordering.
func (op BinaryOp) IsEquality() bool { return op == OpEqual || op == OpNotEqual }

type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpPlus
	OpNegate
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "NOT"
	case OpPlus:
		return "+"
	case OpNegate:
		return "-"
	default:
		return "?"
	}
}

// Literal is a constant. Value holds int64, float64, string, bool or nil
// according to Kind.
type Literal struct {
	typeSlot
	Kind  types.ValueKind
	Value any
}

func NewIntLiteral(v int64) *Literal     { return &Literal{Kind: types.IntValue, Value: v} }
func NewFloatLiteral(v float64) *Literal { return &Literal{Kind: types.FloatValue, Value: v} }
func NewStringLiteral(v string) *Literal { return &Literal{Kind: types.StringValue, Value: v} }
func NewBoolLiteral(v bool) *Literal     { return &Literal{Kind: types.BoolValue, Value: v} }
func NewNullLiteral() *Literal           { return &Literal{Kind: types.NullValue} }

// Float returns a numeric literal's value as float64.
func (l *Literal) Float() (float64, bool) {
	switch v := l.Value.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func (l *Literal) String() string {
	switch l.Kind {
	case types.IntValue:
		return strconv.FormatInt(l.Value.(int64), 10)
	case types.FloatValue:
		return strconv.FormatFloat(l.Value.(float64), 'g', -1, 64)
	case types.StringValue:
		return "'" + l.Value.(string) + "'"
	case types.BoolValue:
		if l.Value.(bool) {
			return "TRUE"
		}
		return "FALSE"
	default:
		return "NULL"
	}
}

// ColumnRef names a column, optionally qualified by a table name or alias.
type ColumnRef struct {
	typeSlot
	Table  string
	Column string
}

func (c *ColumnRef) String() string {
	if c.Table != "" {
		return c.Table + "." + c.Column
	}
	return c.Column
}

type Binary struct {
	typeSlot
	Op          BinaryOp
	Left, Right Expression
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

type Unary struct {
	typeSlot
	Op      UnaryOp
	Operand Expression
}

func (u *Unary) String() string {
	if u.Op == OpNot {
		return fmt.Sprintf("(NOT %s)", u.Operand)
	}
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}

type Between struct {
	typeSlot
	Expr         Expression
	Lower, Upper Expression
}

func (b *Between) String() string {
	return fmt.Sprintf("(%s BETWEEN %s AND %s)", b.Expr, b.Lower, b.Upper)
}

// In tests membership in a value list or in the single column of a subquery.
// Exactly one of Values and Query is set.
type In struct {
	typeSlot
	Expr   Expression
	Values []Expression
	Query  *Subquery
}

func (in *In) String() string {
	if in.Query != nil {
		return fmt.Sprintf("(%s IN %s)", in.Expr, in.Query)
	}
	return fmt.Sprintf("(%s IN (%s))", in.Expr, joinNodes(in.Values))
}

type FunctionCall struct {
	typeSlot
	Name string
	Args []Expression
}

// HasStarArg reports whether any argument is a bare *.
func (f *FunctionCall) HasStarArg() bool {
	for _, a := range f.Args {
		if _, ok := a.(*Star); ok {
			return true
		}
	}
	return false
}

func (f *FunctionCall) String() string {
	return fmt.Sprintf("%s(%s)", strings.ToUpper(f.Name), joinNodes(f.Args))
}

// Star is * or table.* in a select list, or the * argument of COUNT(*).
type Star struct {
	typeSlot
	Table string
}

func (s *Star) String() string {
	if s.Table != "" {
		return s.Table + ".*"
	}
	return "*"
}

// Subquery is a parenthesized SELECT used as an expression.
type Subquery struct {
	typeSlot
	Select *Select
}

func (s *Subquery) String() string {
	return "(" + s.Select.body() + ")"
}

func (*Literal) node()      {}
func (*ColumnRef) node()    {}
func (*Binary) node()       {}
func (*Unary) node()        {}
func (*Between) node()      {}
func (*In) node()           {}
func (*FunctionCall) node() {}
func (*Star) node()         {}
func (*Subquery) node()     {}

func (*Literal) expressionNode()      {}
func (*ColumnRef) expressionNode()    {}
func (*Binary) expressionNode()       {}
func (*Unary) expressionNode()        {}
func (*Between) expressionNode()      {}
func (*In) expressionNode()           {}
func (*FunctionCall) expressionNode() {}
func (*Star) expressionNode()         {}
func (*Subquery) expressionNode()     {}
