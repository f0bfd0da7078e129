package semantic

import (
	"fmt"
	"strings"

	"litedb/pkg/catalog"
	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
	"litedb/pkg/types"
)

// checkScalar validates expr and returns its type as a scalar. A subquery is
// accepted only when it provably yields a single value.
func (a *Analyzer) checkScalar(expr ast.Expression) (types.ExpressionType, error) {
	t, err := a.checkExpression(expr)
	if err != nil {
		return types.ExpressionType{}, err
	}
	return scalarOperand(expr, t)
}

func scalarOperand(expr ast.Expression, t types.ExpressionType) (types.ExpressionType, error) {
	if !t.IsRowSet() {
		return t, nil
	}
	narrowed, ok := t.Narrow()
	if !ok {
		return types.ExpressionType{}, nonScalar(expr, t)
	}
	sq, ok := expr.(*ast.Subquery)
	if !ok || !IsSingleValued(sq.Select) {
		return types.ExpressionType{}, dberror.Newf(dberror.ErrCategoryType, dberror.CodeScalarSubquery,
			"subquery %s is not guaranteed to return a single row", expr).
			WithHint("select an aggregate or add LIMIT 1").
			In("Analyzer", "CheckExpression")
	}
	return narrowed, nil
}

// IsSingleValued reports whether sel provably yields at most one value: one
// non-star column that is a function call or is limited to one row.
func IsSingleValued(sel *ast.Select) bool {
	if len(sel.Items) != 1 {
		return false
	}
	switch sel.Items[0].Expr.(type) {
	case *ast.Star:
		return false
	case *ast.FunctionCall:
		return true
	}
	return sel.Limit != nil && *sel.Limit <= 1
}

// checkExpression validates expr and everything below it, then returns its
// inferred type. Row-set types are returned unnarrowed.
func (a *Analyzer) checkExpression(expr ast.Expression) (types.ExpressionType, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		// nothing beyond typing
	case *ast.ColumnRef:
		if err := a.checkColumnRef(e); err != nil {
			return types.ExpressionType{}, err
		}
	case *ast.Star:
		return types.ExpressionType{}, misplacedStar(e)
	case *ast.Binary:
		if err := a.checkBinary(e); err != nil {
			return types.ExpressionType{}, err
		}
	case *ast.Unary:
		if _, err := a.checkScalar(e.Operand); err != nil {
			return types.ExpressionType{}, err
		}
	case *ast.Between:
		if err := a.checkBetween(e); err != nil {
			return types.ExpressionType{}, err
		}
	case *ast.In:
		if err := a.checkIn(e); err != nil {
			return types.ExpressionType{}, err
		}
	case *ast.FunctionCall:
		if err := a.checkFunction(e); err != nil {
			return types.ExpressionType{}, err
		}
	case *ast.Subquery:
		if err := a.analyzeSelect(e.Select); err != nil {
			return types.ExpressionType{}, err
		}
	default:
		return types.ExpressionType{}, dberror.Newf(dberror.ErrCategoryType, dberror.CodeUnknownType,
			"unsupported expression %T", expr).In("Analyzer", "CheckExpression")
	}

	return a.inferrer.InferType(expr)
}

// checkColumnRef rejects an unqualified column present in more than one
// scoped table. Unlike the inferrer, it does so even when the column types
// agree: a statement must name its columns unambiguously.
func (a *Analyzer) checkColumnRef(ref *ast.ColumnRef) error {
	if ref.Table != "" {
		return nil
	}
	var tables []string
	for _, entry := range a.inferrer.Scope().Entries() {
		if _, ok := entry.Schema.Column(ref.Column); ok {
			tables = append(tables, entry.Name)
		}
	}
	if len(tables) > 1 {
		return ambiguousColumn(ref.Column, tables)
	}
	return nil
}

func (a *Analyzer) checkBinary(b *ast.Binary) error {
	left, err := a.checkScalar(b.Left)
	if err != nil {
		return err
	}
	right, err := a.checkScalar(b.Right)
	if err != nil {
		return err
	}

	switch {
	case b.Op.IsComparison():
		return checkComparable(b.Op, left, right)
	case b.Op.IsLogical():
		for _, operand := range []types.ExpressionType{left, right} {
			if !operand.IsUnknown() && !operand.IsBool() {
				return typeMismatch("operator %s requires boolean operands, got %s and %s", b.Op, left, right)
			}
		}
	}
	return nil
}

// checkComparable reports whether two scalars may be compared with op.
// Equal base types compare, as do any two numeric types. Ordering operators
// additionally need numeric or string operands. NULL compares with anything.
func checkComparable(op ast.BinaryOp, left, right types.ExpressionType) error {
	if left.IsUnknown() || right.IsUnknown() {
		return nil
	}

	sameFamily := left.Base == right.Base || (left.Base.IsNumeric() && right.Base.IsNumeric())
	if !sameFamily {
		return dberror.Newf(dberror.ErrCategoryType, dberror.CodeIncomparableOperands,
			"cannot compare %s with %s using %s", left.Base, right.Base, op).
			In("Analyzer", "CheckComparison")
	}
	if !op.IsEquality() && !left.Base.IsOrderable() {
		return dberror.Newf(dberror.ErrCategoryType, dberror.CodeIncomparableOperands,
			"operator %s requires numeric or string operands, got %s", op, left.Base).
			In("Analyzer", "CheckComparison")
	}
	return nil
}

func (a *Analyzer) checkBetween(b *ast.Between) error {
	subject, err := a.checkScalar(b.Expr)
	if err != nil {
		return err
	}
	lower, err := a.checkScalar(b.Lower)
	if err != nil {
		return err
	}
	upper, err := a.checkScalar(b.Upper)
	if err != nil {
		return err
	}

	pairs := [][2]types.ExpressionType{{subject, lower}, {subject, upper}, {lower, upper}}
	for _, pair := range pairs {
		if err := checkComparable(ast.OpLessEqual, pair[0], pair[1]); err != nil {
			return err
		}
	}

	lo, loOK := constantValue(b.Lower)
	hi, hiOK := constantValue(b.Upper)
	if loOK && hiOK && constantGreater(lo, hi) {
		return dberror.Newf(dberror.ErrCategoryType, dberror.CodeBetweenBounds,
			"BETWEEN lower bound (%s) must be <= upper bound (%s)", b.Lower, b.Upper).
			In("Analyzer", "CheckBetween")
	}
	return nil
}

func (a *Analyzer) checkIn(in *ast.In) error {
	subject, err := a.checkScalar(in.Expr)
	if err != nil {
		return err
	}

	if in.Query != nil {
		t, err := a.checkExpression(in.Query)
		if err != nil {
			return err
		}
		column, ok := t.Narrow()
		if !ok {
			return dberror.Newf(dberror.ErrCategoryType, dberror.CodeNonScalarExpression,
				"IN subquery must select exactly one column, got %s", t).In("Analyzer", "CheckIn")
		}
		return checkComparable(ast.OpEqual, subject, column)
	}

	for _, v := range in.Values {
		t, err := a.checkScalar(v)
		if err != nil {
			return err
		}
		if err := checkComparable(ast.OpEqual, subject, t); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkFunction(f *ast.FunctionCall) error {
	def := a.catalog.GetFunction(f.Name)
	if def == nil {
		return unknownFunction(f.Name)
	}

	if f.HasStarArg() {
		if !def.AcceptsStar {
			return starNotAllowed(f.Name)
		}
		if len(f.Args) != 1 {
			return dberror.Newf(dberror.ErrCategoryType, dberror.CodeFunctionArity,
				"%s(*) takes no other arguments", strings.ToUpper(f.Name)).In("Analyzer", "CheckFunction")
		}
		return nil
	}

	if n := len(f.Args); n < def.RequiredParams() || n > def.MaxParams() {
		return dberror.Newf(dberror.ErrCategoryType, dberror.CodeFunctionArity,
			"function %s expects %s, got %d", strings.ToUpper(f.Name), arityText(def), n).
			In("Analyzer", "CheckFunction")
	}

	for i, arg := range f.Args {
		t, err := a.checkScalar(arg)
		if err != nil {
			return err
		}
		if t.IsUnknown() {
			continue
		}
		param := def.Parameters[i]
		if !param.AcceptsType(t.Base) {
			return dberror.Newf(dberror.ErrCategoryType, dberror.CodeFunctionArgumentType,
				"argument %d of %s must be %s, got %s", i+1, strings.ToUpper(f.Name), acceptedText(param), t.Base).
				In("Analyzer", "CheckFunction")
		}
	}
	return nil
}

func arityText(def *catalog.FunctionDefinition) string {
	req, max := def.RequiredParams(), def.MaxParams()
	if req == max {
		return fmt.Sprintf("%d argument(s)", req)
	}
	return fmt.Sprintf("between %d and %d arguments", req, max)
}

func acceptedText(p catalog.FunctionParameter) string {
	names := make([]string, len(p.Accepts))
	for i, t := range p.Accepts {
		names[i] = t.String()
	}
	return strings.Join(names, " or ")
}

// constantValue extracts a literal number or string, allowing a sign on
// numbers. It returns float64 or string.
func constantValue(expr ast.Expression) (any, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		if f, ok := e.Float(); ok {
			return f, true
		}
		if s, ok := e.Value.(string); ok {
			return s, true
		}
	case *ast.Unary:
		if e.Op == ast.OpNot {
			return nil, false
		}
		v, ok := constantValue(e.Operand)
		f, isNum := v.(float64)
		if !ok || !isNum {
			return nil, false
		}
		if e.Op == ast.OpNegate {
			f = -f
		}
		return f, true
	}
	return nil, false
}

func constantGreater(lo, hi any) bool {
	switch l := lo.(type) {
	case float64:
		h, ok := hi.(float64)
		return ok && l > h
	case string:
		h, ok := hi.(string)
		return ok && l > h
	}
	return false
}
