package semantic

import (
	"strings"

	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
	"litedb/pkg/types"
)

func unknownFunction(name string) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownFunction,
		"unknown function '%s'", strings.ToUpper(name)).In("Analyzer", "CheckFunction")
}

func starNotAllowed(name string) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategoryType, dberror.CodeStarArgument,
		"Only COUNT(*) is allowed; %s(*) is not supported", strings.ToUpper(name)).
		In("Analyzer", "CheckFunction")
}

func misplacedStar(star *ast.Star) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategoryType, dberror.CodeStarArgument,
		"%s is only allowed as a select item or as the argument of COUNT(*)", star).
		In("Analyzer", "CheckExpression")
}

func nonScalar(expr ast.Expression, t types.ExpressionType) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategoryType, dberror.CodeNonScalarExpression,
		"expression %s has non-scalar type %s", expr, t).
		WithHint("a subquery used as a value must select exactly one column").
		In("Analyzer", "CheckExpression")
}

func ambiguousColumn(column string, tables []string) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeAmbiguousColumn,
		"column reference '%s' is ambiguous", column).
		WithDetail("present in %s", strings.Join(tables, ", ")).
		WithHint("qualify the column with a table name or alias").
		In("Analyzer", "ResolveColumn")
}

func typeMismatch(format string, args ...any) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategoryType, dberror.CodeTypeMismatch, format, args...).
		In("Analyzer", "CheckTypes")
}
