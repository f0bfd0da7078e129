package semantic

import (
	"testing"

	"litedb/pkg/catalog"
	"litedb/pkg/catalog/schema"
	"litedb/pkg/logging"
	"litedb/pkg/parser/ast"
	"litedb/pkg/parser/parser"
	"litedb/pkg/types"
)

// newTestCatalog returns a catalog with users(id, name, age, score, active)
// and orders(id, user_id, amount). Both id columns are INT.
func newTestCatalog(t *testing.T) *catalog.CatalogManager {
	t.Helper()

	cm := catalog.NewCatalogManager(logging.Discard())
	users := schema.NewSchemaBuilder("users").
		AddPrimaryKey("id", types.IntType).
		AddVarchar("name", 50, schema.Constraint{Kind: schema.NotNull}).
		AddColumn("age", types.IntType).
		AddColumn("score", types.FloatType).
		AddColumn("active", types.BoolType).
		MustBuild()
	orders := schema.NewSchemaBuilder("orders").
		AddPrimaryKey("id", types.IntType).
		AddNotNull("user_id", types.IntType).
		AddColumn("amount", types.FloatType).
		MustBuild()

	for _, sch := range []*schema.Schema{users, orders} {
		if err := cm.CreateTable(sch); err != nil {
			t.Fatalf("seeding catalog: %v", err)
		}
	}
	return cm
}

func mustParse(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmt, err := parser.ParseStatement(sql, logging.Discard())
	if err != nil {
		t.Fatalf("parsing %q: %v", sql, err)
	}
	return stmt
}

func mustParseSelect(t *testing.T, sql string) *ast.Select {
	t.Helper()
	sel, ok := mustParse(t, sql).(*ast.Select)
	if !ok {
		t.Fatalf("expected SELECT for %q", sql)
	}
	return sel
}
