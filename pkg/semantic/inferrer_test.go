package semantic

import (
	"testing"

	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
	"litedb/pkg/types"
)

func usersInferrer(t *testing.T) *TypeInferrer {
	t.Helper()
	cat := newTestCatalog(t)
	scope, err := buildScope(cat, []ast.TableRef{{Name: "users"}})
	if err != nil {
		t.Fatalf("buildScope failed: %v", err)
	}
	return NewTypeInferrer(cat, scope)
}

func TestInferTypeMemoizes(t *testing.T) {
	ti := usersInferrer(t)
	expr := &ast.Binary{Op: ast.OpAdd, Left: &ast.ColumnRef{Column: "age"}, Right: ast.NewIntLiteral(1)}

	first, err := ti.InferType(expr)
	if err != nil {
		t.Fatalf("InferType failed: %v", err)
	}
	if ti.computed != 3 {
		t.Fatalf("expected 3 computations, got %d", ti.computed)
	}

	second, err := ti.InferType(expr)
	if err != nil {
		t.Fatalf("InferType failed: %v", err)
	}
	if ti.computed != 3 {
		t.Errorf("expected cached result, got %d computations", ti.computed)
	}
	if !first.Equal(second) {
		t.Errorf("expected %v, got %v", first, second)
	}

	ti.ClearTypeCache(expr)
	if _, ok := expr.Left.CachedType(); ok {
		t.Errorf("expected child cache to be cleared")
	}
	if _, err := ti.InferType(expr); err != nil {
		t.Fatalf("InferType failed: %v", err)
	}
	if ti.computed != 6 {
		t.Errorf("expected recomputation after clear, got %d computations", ti.computed)
	}
}

func TestInferTypeFailureIsNotCached(t *testing.T) {
	ti := usersInferrer(t)
	ref := &ast.ColumnRef{Column: "missing"}

	if _, err := ti.InferType(ref); !dberror.HasCode(err, dberror.CodeUnknownColumn) {
		t.Fatalf("expected %s, got %v", dberror.CodeUnknownColumn, err)
	}
	if _, ok := ref.CachedType(); ok {
		t.Errorf("expected failed inference to leave the cache empty")
	}
}

func TestInferScalarTypes(t *testing.T) {
	ti := usersInferrer(t)

	tests := []struct {
		name string
		expr ast.Expression
		want types.ExpressionType
	}{
		{"int literal", ast.NewIntLiteral(5), types.Scalar(types.IntType, false)},
		{"null literal", ast.NewNullLiteral(), types.Unknown()},
		{"not null column", &ast.ColumnRef{Column: "name"}, types.Scalar(types.StringType, false)},
		{"primary key column", &ast.ColumnRef{Table: "users", Column: "id"}, types.Scalar(types.IntType, false)},
		{"nullable column", &ast.ColumnRef{Column: "age"}, types.Scalar(types.IntType, true)},
		{
			"int plus float promotes",
			&ast.Binary{Op: ast.OpMul, Left: &ast.ColumnRef{Column: "id"}, Right: ast.NewFloatLiteral(1.5)},
			types.Scalar(types.FloatType, false),
		},
		{
			"comparison is bool",
			&ast.Binary{Op: ast.OpGreater, Left: &ast.ColumnRef{Column: "id"}, Right: ast.NewIntLiteral(1)},
			types.Scalar(types.BoolType, false),
		},
		{
			"comparison inherits nullability",
			&ast.Binary{Op: ast.OpEqual, Left: &ast.ColumnRef{Column: "age"}, Right: ast.NewIntLiteral(1)},
			types.Scalar(types.BoolType, true),
		},
		{
			"negation keeps type",
			&ast.Unary{Op: ast.OpNegate, Operand: &ast.ColumnRef{Column: "score"}},
			types.Scalar(types.FloatType, true),
		},
		{
			"between is bool",
			&ast.Between{Expr: &ast.ColumnRef{Column: "id"}, Lower: ast.NewIntLiteral(1), Upper: ast.NewIntLiteral(2)},
			types.Scalar(types.BoolType, false),
		},
		{
			"count star",
			&ast.FunctionCall{Name: "count", Args: []ast.Expression{&ast.Star{}}},
			types.Scalar(types.IntType, false),
		},
		{
			"avg is float",
			&ast.FunctionCall{Name: "AVG", Args: []ast.Expression{&ast.ColumnRef{Column: "id"}}},
			types.Scalar(types.FloatType, false),
		},
		{
			"max follows argument",
			&ast.FunctionCall{Name: "MAX", Args: []ast.Expression{&ast.ColumnRef{Column: "name"}}},
			types.Scalar(types.StringType, false),
		},
		{
			"min of nullable column",
			&ast.FunctionCall{Name: "MIN", Args: []ast.Expression{&ast.ColumnRef{Column: "score"}}},
			types.Scalar(types.FloatType, true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ti.InferType(tt.expr)
			if err != nil {
				t.Fatalf("InferType failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestInferTypeErrors(t *testing.T) {
	ti := usersInferrer(t)

	tests := []struct {
		name string
		expr ast.Expression
		code string
	}{
		{"unknown table qualifier", &ast.ColumnRef{Table: "o", Column: "id"}, dberror.CodeUnknownTable},
		{"unknown qualified column", &ast.ColumnRef{Table: "users", Column: "email"}, dberror.CodeUnknownColumn},
		{"unknown function", &ast.FunctionCall{Name: "UPPER", Args: []ast.Expression{&ast.ColumnRef{Column: "name"}}}, dberror.CodeUnknownFunction},
		{"max star", &ast.FunctionCall{Name: "MAX", Args: []ast.Expression{&ast.Star{}}}, dberror.CodeStarArgument},
		{"bare star", &ast.Star{}, dberror.CodeStarArgument},
		{
			"string arithmetic",
			&ast.Binary{Op: ast.OpAdd, Left: &ast.ColumnRef{Column: "name"}, Right: ast.NewIntLiteral(1)},
			dberror.CodeTypeMismatch,
		},
		{"not on int", &ast.Unary{Op: ast.OpNot, Operand: &ast.ColumnRef{Column: "age"}}, dberror.CodeTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ti.InferType(tt.expr); !dberror.HasCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestResolveUnqualifiedColumn(t *testing.T) {
	cat := newTestCatalog(t)
	scope, err := buildScope(cat, []ast.TableRef{{Name: "users", Alias: "u"}, {Name: "orders", Alias: "o"}})
	if err != nil {
		t.Fatalf("buildScope failed: %v", err)
	}
	ti := NewTypeInferrer(cat, scope)

	got, err := ti.InferType(&ast.ColumnRef{Column: "amount"})
	if err != nil || !got.Equal(types.Scalar(types.FloatType, true)) {
		t.Errorf("expected amount to resolve to FLOAT NULL, got %v (err=%v)", got, err)
	}

	got, err = ti.InferType(&ast.ColumnRef{Table: "O", Column: "user_id"})
	if err != nil || !got.Equal(types.Scalar(types.IntType, false)) {
		t.Errorf("expected o.user_id to resolve to INT, got %v (err=%v)", got, err)
	}
}

func TestResolveColumnSharedByTables(t *testing.T) {
	cat := newTestCatalog(t)
	tags := schema.NewSchemaBuilder("tags").
		AddVarchar("id", 20).
		AddColumn("user_id", types.IntType).
		MustBuild()
	if err := cat.CreateTable(tags); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	// users.id and orders.id are both INT: the first table in FROM order wins.
	scope, err := buildScope(cat, []ast.TableRef{{Name: "users"}, {Name: "orders"}})
	if err != nil {
		t.Fatalf("buildScope failed: %v", err)
	}
	ti := NewTypeInferrer(cat, scope)
	got, err := ti.InferType(&ast.ColumnRef{Column: "id"})
	if err != nil || !got.Equal(types.Scalar(types.IntType, false)) {
		t.Errorf("expected id to resolve to INT, got %v (err=%v)", got, err)
	}

	// orders.user_id is NOT NULL, tags.user_id is not; the base type still matches.
	scope, err = buildScope(cat, []ast.TableRef{{Name: "tags"}, {Name: "orders"}})
	if err != nil {
		t.Fatalf("buildScope failed: %v", err)
	}
	ti = NewTypeInferrer(cat, scope)
	got, err = ti.InferType(&ast.ColumnRef{Column: "user_id"})
	if err != nil || !got.Equal(types.Scalar(types.IntType, true)) {
		t.Errorf("expected user_id to resolve to tags.user_id INT NULL, got %v (err=%v)", got, err)
	}

	if _, err := ti.InferType(&ast.ColumnRef{Column: "id"}); !dberror.HasCode(err, dberror.CodeAmbiguousColumn) {
		t.Errorf("expected %s for VARCHAR tags.id vs INT orders.id, got %v", dberror.CodeAmbiguousColumn, err)
	}
}

func TestInferSubqueryRowSet(t *testing.T) {
	cat := newTestCatalog(t)
	ti := NewTypeInferrer(cat, nil)

	sel := mustParseSelect(t, "SELECT * FROM users WHERE id IN (SELECT o.user_id FROM orders o);")
	in := sel.Where.(*ast.In)

	got, err := ti.InferType(in.Query)
	if err != nil {
		t.Fatalf("InferType failed: %v", err)
	}
	if !got.Equal(types.RowSet(types.Scalar(types.IntType, false))) {
		t.Errorf("expected ROWSET(INT), got %v", got)
	}

	star := &ast.Subquery{Select: mustParseSelect(t, "SELECT * FROM orders;")}
	got, err = ti.InferType(star)
	if err != nil {
		t.Fatalf("InferType failed: %v", err)
	}
	want := types.RowSet(
		types.Scalar(types.IntType, false),
		types.Scalar(types.IntType, false),
		types.Scalar(types.FloatType, true),
	)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if ti.Scope() != nil {
		t.Errorf("expected the outer scope to be restored after a subquery")
	}
}
