package semantic

import (
	"litedb/pkg/catalog"
	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
	"litedb/pkg/types"
)

// TypeInferrer computes expression types against a catalog and the current
// scope, caching each result on the expression node.
type TypeInferrer struct {
	catalog catalog.Catalog
	scope   *Scope

	// computed counts cache misses; tests use it to observe memoization.
	computed int
}

// NewTypeInferrer returns an inferrer bound to cat and scope. scope may be nil
// for expressions that reference no columns.
func NewTypeInferrer(cat catalog.Catalog, scope *Scope) *TypeInferrer {
	return &TypeInferrer{catalog: cat, scope: scope}
}

// Scope returns the scope column references are resolved against.
func (ti *TypeInferrer) Scope() *Scope {
	return ti.scope
}

// withScope runs fn with scope installed and restores the previous scope
// on every exit path.
func (ti *TypeInferrer) withScope(scope *Scope, fn func() error) error {
	saved := ti.scope
	ti.scope = scope
	defer func() { ti.scope = saved }()
	return fn()
}

// InferType returns the type of expr, computing and caching it on first use.
func (ti *TypeInferrer) InferType(expr ast.Expression) (types.ExpressionType, error) {
	if t, ok := expr.CachedType(); ok {
		return t, nil
	}

	t, err := ti.infer(expr)
	if err != nil {
		return types.ExpressionType{}, err
	}
	ti.computed++
	expr.SetCachedType(t)
	return t, nil
}

// ClearTypeCache resets the cached type of expr and all of its descendants.
func (ti *TypeInferrer) ClearTypeCache(expr ast.Expression) {
	ast.ClearTypeCache(expr)
}

func (ti *TypeInferrer) infer(expr ast.Expression) (types.ExpressionType, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalType(e), nil
	case *ast.ColumnRef:
		col, err := ti.resolveColumn(e)
		if err != nil {
			return types.ExpressionType{}, err
		}
		return types.Scalar(col.Type, col.IsNullable()), nil
	case *ast.Binary:
		return ti.inferBinary(e)
	case *ast.Unary:
		return ti.inferUnary(e)
	case *ast.FunctionCall:
		return ti.inferFunction(e)
	case *ast.Between:
		return ti.inferPredicate(e.Expr)
	case *ast.In:
		return ti.inferPredicate(e.Expr)
	case *ast.Subquery:
		return ti.inferSubquery(e)
	case *ast.Star:
		return types.ExpressionType{}, misplacedStar(e)
	default:
		return types.ExpressionType{}, dberror.Newf(dberror.ErrCategoryType, dberror.CodeUnknownType,
			"cannot infer type of %T", expr).In("TypeInferrer", "InferType")
	}
}

func literalType(l *ast.Literal) types.ExpressionType {
	base, ok := l.Kind.BaseType()
	if !ok {
		return types.Unknown()
	}
	return types.Scalar(base, false)
}

// resolveColumn finds the column a reference names. Qualified references look
// in one table. Unqualified references must match exactly one table, unless
// every match has the same base type.
func (ti *TypeInferrer) resolveColumn(ref *ast.ColumnRef) (schema.ColumnDefinition, error) {
	if ref.Table != "" {
		sch, ok := ti.scope.Lookup(ref.Table)
		if !ok {
			return schema.ColumnDefinition{}, dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownTable,
				"unknown table or alias '%s' in column reference %s", ref.Table, ref).
				In("TypeInferrer", "ResolveColumn")
		}
		col, ok := sch.Column(ref.Column)
		if !ok {
			return schema.ColumnDefinition{}, dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownColumn,
				"column '%s' does not exist in table '%s'", ref.Column, ref.Table).
				In("TypeInferrer", "ResolveColumn")
		}
		return col, nil
	}

	var (
		matches []schema.ColumnDefinition
		tables  []string
	)
	for _, entry := range ti.scope.Entries() {
		if col, ok := entry.Schema.Column(ref.Column); ok {
			matches = append(matches, col)
			tables = append(tables, entry.Name)
		}
	}

	switch len(matches) {
	case 0:
		return schema.ColumnDefinition{}, dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownColumn,
			"column '%s' does not exist", ref.Column).
			In("TypeInferrer", "ResolveColumn")
	case 1:
		return matches[0], nil
	}

	for _, m := range matches[1:] {
		if m.Type != matches[0].Type {
			return schema.ColumnDefinition{}, ambiguousColumn(ref.Column, tables)
		}
	}
	return matches[0], nil
}

func (ti *TypeInferrer) inferBinary(b *ast.Binary) (types.ExpressionType, error) {
	left, err := ti.scalarOf(b.Left)
	if err != nil {
		return types.ExpressionType{}, err
	}
	right, err := ti.scalarOf(b.Right)
	if err != nil {
		return types.ExpressionType{}, err
	}

	if b.Op.IsComparison() || b.Op.IsLogical() {
		return types.Scalar(types.BoolType, isNullable(left) || isNullable(right)), nil
	}

	if left.IsUnknown() && right.IsUnknown() {
		return types.Unknown(), nil
	}
	for _, operand := range []types.ExpressionType{left, right} {
		if !operand.IsUnknown() && !operand.Base.IsNumeric() {
			return types.ExpressionType{}, dberror.Newf(dberror.ErrCategoryType, dberror.CodeTypeMismatch,
				"operator %s requires numeric operands, got %s and %s", b.Op, left, right).
				In("TypeInferrer", "InferBinary")
		}
	}

	base := types.IntType
	if left.Base == types.FloatType && left.IsScalar() || right.Base == types.FloatType && right.IsScalar() {
		base = types.FloatType
	}
	return types.Scalar(base, isNullable(left) || isNullable(right)), nil
}

func (ti *TypeInferrer) inferUnary(u *ast.Unary) (types.ExpressionType, error) {
	operand, err := ti.scalarOf(u.Operand)
	if err != nil {
		return types.ExpressionType{}, err
	}
	if operand.IsUnknown() {
		if u.Op == ast.OpNot {
			return types.Scalar(types.BoolType, true), nil
		}
		return operand, nil
	}

	if u.Op == ast.OpNot {
		if operand.Base != types.BoolType {
			return types.ExpressionType{}, dberror.Newf(dberror.ErrCategoryType, dberror.CodeTypeMismatch,
				"NOT requires a boolean operand, got %s", operand).In("TypeInferrer", "InferUnary")
		}
		return operand, nil
	}

	if !operand.Base.IsNumeric() {
		return types.ExpressionType{}, dberror.Newf(dberror.ErrCategoryType, dberror.CodeTypeMismatch,
			"unary %s requires a numeric operand, got %s", u.Op, operand).In("TypeInferrer", "InferUnary")
	}
	return operand, nil
}

func (ti *TypeInferrer) inferFunction(f *ast.FunctionCall) (types.ExpressionType, error) {
	def := ti.catalog.GetFunction(f.Name)
	if def == nil {
		return types.ExpressionType{}, unknownFunction(f.Name)
	}

	if f.HasStarArg() {
		if !def.AcceptsStar {
			return types.ExpressionType{}, starNotAllowed(f.Name)
		}
		return types.Scalar(def.ReturnType, false), nil
	}

	nullable := false
	var first types.ExpressionType
	for i, arg := range f.Args {
		t, err := ti.scalarOf(arg)
		if err != nil {
			return types.ExpressionType{}, err
		}
		if i == 0 {
			first = t
		}
		nullable = nullable || isNullable(t)
	}

	if def.ReturnsArgumentType() && len(f.Args) > 0 && first.IsScalar() {
		return types.Scalar(first.Base, nullable), nil
	}
	return types.Scalar(def.ReturnType, nullable), nil
}

func (ti *TypeInferrer) inferPredicate(subject ast.Expression) (types.ExpressionType, error) {
	t, err := ti.scalarOf(subject)
	if err != nil {
		return types.ExpressionType{}, err
	}
	return types.Scalar(types.BoolType, isNullable(t)), nil
}

// inferSubquery types a subquery as the row set of its projection, resolved
// in a scope built from its own FROM list.
func (ti *TypeInferrer) inferSubquery(sq *ast.Subquery) (types.ExpressionType, error) {
	var columns []types.ExpressionType
	err := ti.inSelectScope(sq.Select, func() error {
		cols, err := ti.projection(sq.Select)
		if err != nil {
			return err
		}
		columns = make([]types.ExpressionType, len(cols))
		for i, c := range cols {
			columns[i] = c.Type
		}
		return nil
	})
	if err != nil {
		return types.ExpressionType{}, err
	}
	return types.RowSet(columns...), nil
}

// inSelectScope runs fn with the scope of sel's FROM list installed.
func (ti *TypeInferrer) inSelectScope(sel *ast.Select, fn func() error) error {
	scope, err := buildScope(ti.catalog, sel.From)
	if err != nil {
		return err
	}
	return ti.withScope(scope, fn)
}

// ResultColumn is one output column of a SELECT.
type ResultColumn struct {
	Name string
	Type types.ExpressionType
}

// projection lists the output columns of sel in the current scope. Stars
// expand to every column of the named table, or of every table in FROM
// order.
func (ti *TypeInferrer) projection(sel *ast.Select) ([]ResultColumn, error) {
	var out []ResultColumn
	for _, item := range sel.Items {
		if star, ok := item.Expr.(*ast.Star); ok {
			cols, err := ti.expandStar(star)
			if err != nil {
				return nil, err
			}
			out = append(out, cols...)
			continue
		}

		t, err := ti.InferType(item.Expr)
		if err != nil {
			return nil, err
		}
		out = append(out, ResultColumn{Name: itemName(item), Type: t})
	}
	return out, nil
}

func (ti *TypeInferrer) expandStar(star *ast.Star) ([]ResultColumn, error) {
	var entries []ScopeEntry
	if star.Table != "" {
		sch, ok := ti.scope.Lookup(star.Table)
		if !ok {
			return nil, dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownTable,
				"unknown table or alias '%s' in %s", star.Table, star).In("TypeInferrer", "ExpandStar")
		}
		entries = []ScopeEntry{{Name: star.Table, Schema: sch}}
	} else {
		entries = ti.scope.Entries()
	}

	var out []ResultColumn
	for _, entry := range entries {
		for _, col := range entry.Schema.Columns {
			out = append(out, ResultColumn{
				Name: col.Name,
				Type: types.Scalar(col.Type, col.IsNullable()),
			})
		}
	}
	return out, nil
}

func itemName(item ast.SelectItem) string {
	if item.Alias != "" {
		return item.Alias
	}
	if ref, ok := item.Expr.(*ast.ColumnRef); ok {
		return ref.Column
	}
	return item.Expr.String()
}

// scalarOf infers expr and narrows a single-column row set to its column.
// Whether such a subquery is allowed in a scalar position is the analyzer's
// concern; the inferrer only needs a scalar to reason with.
func (ti *TypeInferrer) scalarOf(expr ast.Expression) (types.ExpressionType, error) {
	t, err := ti.InferType(expr)
	if err != nil {
		return types.ExpressionType{}, err
	}
	if !t.IsRowSet() {
		return t, nil
	}
	narrowed, ok := t.Narrow()
	if !ok {
		return types.ExpressionType{}, nonScalar(expr, t)
	}
	return narrowed, nil
}

func isNullable(t types.ExpressionType) bool {
	return t.IsUnknown() || t.Nullable
}
