package ast

// Children returns the direct child expressions of expr. For a subquery these
// are the expressions of its select list, WHERE, GROUP BY and ORDER BY.
func Children(expr Expression) []Expression {
	switch e := expr.(type) {
	case *Literal, *ColumnRef, *Star:
		return nil
	case *Binary:
		return []Expression{e.Left, e.Right}
	case *Unary:
		return []Expression{e.Operand}
	case *Between:
		return []Expression{e.Expr, e.Lower, e.Upper}
	case *In:
		out := append([]Expression{e.Expr}, e.Values...)
		if e.Query != nil {
			out = append(out, e.Query)
		}
		return out
	case *FunctionCall:
		return e.Args
	case *Subquery:
		return SelectExpressions(e.Select)
	default:
		return nil
	}
}

// SelectExpressions returns every top-level expression of a SELECT.
func SelectExpressions(s *Select) []Expression {
	if s == nil {
		return nil
	}
	out := make([]Expression, 0, len(s.Items)+len(s.GroupBy)+len(s.OrderBy)+1)
	for _, it := range s.Items {
		out = append(out, it.Expr)
	}
	if s.Where != nil {
		out = append(out, s.Where)
	}
	for _, g := range s.GroupBy {
		out = append(out, g)
	}
	for _, o := range s.OrderBy {
		out = append(out, o.Column)
	}
	return out
}

// Walk calls fn for expr and every descendant in depth-first pre-order.
// Returning false from fn skips that node's children.
func Walk(expr Expression, fn func(Expression) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	for _, c := range Children(expr) {
		Walk(c, fn)
	}
}

// ClearTypeCache empties the type slot of expr and of every expression below it.
func ClearTypeCache(expr Expression) {
	Walk(expr, func(e Expression) bool {
		e.ClearCachedType()
		return true
	})
}

// ClearStatementTypeCache clears the type slots of every expression in stmt.
func ClearStatementTypeCache(stmt Statement) {
	for _, e := range StatementExpressions(stmt) {
		ClearTypeCache(e)
	}
}

// StatementExpressions returns the top-level expressions of a statement.
func StatementExpressions(stmt Statement) []Expression {
	switch s := stmt.(type) {
	case *Select:
		return SelectExpressions(s)
	case *Insert:
		var out []Expression
		for _, row := range s.Rows {
			for _, v := range row {
				out = append(out, v)
			}
		}
		return out
	case *Update:
		out := make([]Expression, 0, len(s.Assignments)+1)
		for _, a := range s.Assignments {
			out = append(out, a.Value)
		}
		if s.Where != nil {
			out = append(out, s.Where)
		}
		return out
	case *Delete:
		if s.Where != nil {
			return []Expression{s.Where}
		}
		return nil
	default:
		return nil
	}
}
