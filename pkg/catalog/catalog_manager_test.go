package catalog

import (
	"sync"
	"testing"

	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
	"litedb/pkg/logging"
	"litedb/pkg/types"
)

func usersSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sch, err := schema.NewSchemaBuilder("Users").
		AddPrimaryKey("id", types.IntType).
		AddVarchar("name", 50).
		Build()
	if err != nil {
		t.Fatalf("building schema: %v", err)
	}
	return sch
}

func TestCreateAndDropTable(t *testing.T) {
	cm := NewCatalogManager(logging.Discard())

	if err := cm.CreateTable(usersSchema(t)); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if !cm.TableExists("users") || !cm.TableExists("USERS") {
		t.Errorf("expected case-insensitive table lookup")
	}

	err := cm.CreateTable(usersSchema(t))
	if !dberror.HasCode(err, dberror.CodeTableExists) {
		t.Errorf("expected %s, got %v", dberror.CodeTableExists, err)
	}

	sch, err := cm.GetTableColumns("users")
	if err != nil || sch.NumFields() != 2 {
		t.Fatalf("expected 2 columns, got %v (err=%v)", sch, err)
	}

	if err := cm.DropTable("uSeRs"); err != nil {
		t.Fatalf("DropTable failed: %v", err)
	}
	if _, err := cm.GetTableColumns("users"); !dberror.HasCode(err, dberror.CodeUnknownTable) {
		t.Errorf("expected %s after drop, got %v", dberror.CodeUnknownTable, err)
	}
	if err := cm.DropTable("users"); !dberror.HasCode(err, dberror.CodeUnknownTable) {
		t.Errorf("expected %s on second drop, got %v", dberror.CodeUnknownTable, err)
	}

	hits, misses := cm.CacheStats()
	if hits == 0 || misses == 0 {
		t.Errorf("expected both hits and misses to be counted, got %d/%d", hits, misses)
	}
}

func TestBuiltinFunctions(t *testing.T) {
	cm := NewCatalogManager(logging.Discard())

	tests := []struct {
		name      string
		star      bool
		aggregate bool
		required  int
		max       int
		ret       types.Type
	}{
		{"count", true, true, 0, 1, types.IntType},
		{"SUM", false, true, 1, 1, types.IntType},
		{"Avg", false, true, 1, 1, types.FloatType},
		{"min", false, true, 1, 1, types.IntType},
		{"MAX", false, true, 1, 1, types.IntType},
	}

	for _, tt := range tests {
		fn := cm.GetFunction(tt.name)
		if fn == nil {
			t.Errorf("expected builtin %s", tt.name)
			continue
		}
		if fn.AcceptsStar != tt.star || fn.IsAggregate != tt.aggregate {
			t.Errorf("%s: unexpected flags star=%v aggregate=%v", tt.name, fn.AcceptsStar, fn.IsAggregate)
		}
		if fn.RequiredParams() != tt.required || fn.MaxParams() != tt.max {
			t.Errorf("%s: expected arity [%d,%d], got [%d,%d]", tt.name, tt.required, tt.max, fn.RequiredParams(), fn.MaxParams())
		}
		if fn.ReturnType != tt.ret {
			t.Errorf("%s: expected return %s, got %s", tt.name, tt.ret, fn.ReturnType)
		}
	}

	if cm.FunctionExists("median") {
		t.Errorf("did not expect MEDIAN to exist")
	}
	if !cm.GetFunction("max").ReturnsArgumentType() || cm.GetFunction("sum").ReturnsArgumentType() {
		t.Errorf("only MIN/MAX should return the argument type")
	}
	if cm.GetFunction("sum").Parameters[0].AcceptsType(types.StringType) {
		t.Errorf("SUM should not accept strings")
	}
}

func TestRegisterFunction(t *testing.T) {
	cm := NewCatalogManager(logging.Discard())
	err := cm.RegisterFunction(&FunctionDefinition{
		Name:       "upper",
		Parameters: []FunctionParameter{{Name: "s", Accepts: []types.Type{types.StringType}}},
		ReturnType: types.StringType,
	})
	if err != nil {
		t.Fatalf("RegisterFunction failed: %v", err)
	}
	if !cm.FunctionExists("UPPER") {
		t.Errorf("expected UPPER to be registered")
	}
	if err := cm.RegisterFunction(&FunctionDefinition{}); err == nil {
		t.Errorf("expected error for unnamed function")
	}
}

func TestConcurrentReaders(t *testing.T) {
	cm := NewCatalogManager(logging.Discard())
	if err := cm.CreateTable(usersSchema(t)); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !cm.TableExists("users") {
					t.Errorf("expected users to exist")
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := cm.TableNames(); len(got) != 1 || got[0] != "Users" {
		t.Errorf("expected [Users], got %v", got)
	}
}
