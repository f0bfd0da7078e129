package catalog

import (
	"slices"
	"strings"

	"litedb/pkg/types"
)

var (
	AnyTypes        = []types.Type{types.IntType, types.FloatType, types.StringType, types.BoolType}
	NumericTypes    = []types.Type{types.IntType, types.FloatType}
	ComparableTypes = []types.Type{types.IntType, types.FloatType, types.StringType}
)

// FunctionParameter is one positional parameter of a function.
type FunctionParameter struct {
	Name     string
	Accepts  []types.Type
	Optional bool
}

// AcceptsType reports whether t is in the parameter's accepted set.
func (p FunctionParameter) AcceptsType(t types.Type) bool {
	return slices.Contains(p.Accepts, t)
}

// FunctionDefinition is the signature of a scalar or aggregate function.
type FunctionDefinition struct {
	Name        string
	Parameters  []FunctionParameter
	ReturnType  types.Type
	IsAggregate bool
	// AcceptsStar allows a bare * as the only argument, as in COUNT(*).
	AcceptsStar bool
}

// RequiredParams returns the number of non-optional parameters.
func (f *FunctionDefinition) RequiredParams() int {
	n := 0
	for _, p := range f.Parameters {
		if !p.Optional {
			n++
		}
	}
	return n
}

// MaxParams returns the total number of parameters.
func (f *FunctionDefinition) MaxParams() int {
	return len(f.Parameters)
}

// ReturnsArgumentType reports whether the result takes the type of the first
// argument instead of the declared return type (MIN and MAX).
func (f *FunctionDefinition) ReturnsArgumentType() bool {
	name := strings.ToUpper(f.Name)
	return name == "MIN" || name == "MAX"
}

// Builtins returns the functions every catalog starts with.
func Builtins() []*FunctionDefinition {
	return []*FunctionDefinition{
		{
			Name:        "COUNT",
			Parameters:  []FunctionParameter{{Name: "value", Accepts: AnyTypes, Optional: true}},
			ReturnType:  types.IntType,
			IsAggregate: true,
			AcceptsStar: true,
		},
		{
			Name:        "SUM",
			Parameters:  []FunctionParameter{{Name: "value", Accepts: NumericTypes}},
			ReturnType:  types.IntType,
			IsAggregate: true,
		},
		{
			Name:        "AVG",
			Parameters:  []FunctionParameter{{Name: "value", Accepts: NumericTypes}},
			ReturnType:  types.FloatType,
			IsAggregate: true,
		},
		{
			Name:        "MIN",
			Parameters:  []FunctionParameter{{Name: "value", Accepts: ComparableTypes}},
			ReturnType:  types.IntType,
			IsAggregate: true,
		},
		{
			Name:        "MAX",
			Parameters:  []FunctionParameter{{Name: "value", Accepts: ComparableTypes}},
			ReturnType:  types.IntType,
			IsAggregate: true,
		},
	}
}
