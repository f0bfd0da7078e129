package semantic

import (
	"testing"

	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
)

func TestScopeLookupIsCaseInsensitive(t *testing.T) {
	cat := newTestCatalog(t)
	scope, err := buildScope(cat, []ast.TableRef{{Name: "users", Alias: "U"}, {Name: "ORDERS"}})
	if err != nil {
		t.Fatalf("buildScope failed: %v", err)
	}

	if scope.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", scope.Len())
	}
	if _, ok := scope.Lookup("u"); !ok {
		t.Errorf("expected alias u to resolve")
	}
	if _, ok := scope.Lookup("users"); ok {
		t.Errorf("expected aliased table name to be hidden by its alias")
	}
	if sch, ok := scope.Lookup("orders"); !ok || sch.TableName != "orders" {
		t.Errorf("expected orders to resolve by name")
	}

	entries := scope.Entries()
	if entries[0].Name != "U" || entries[1].Name != "ORDERS" {
		t.Errorf("expected FROM order to be preserved, got %q, %q", entries[0].Name, entries[1].Name)
	}
}

func TestScopeRejectsDuplicates(t *testing.T) {
	cat := newTestCatalog(t)
	_, err := buildScope(cat, []ast.TableRef{{Name: "users", Alias: "t"}, {Name: "orders", Alias: "T"}})
	if !dberror.HasCode(err, dberror.CodeDuplicateAlias) {
		t.Fatalf("expected %s, got %v", dberror.CodeDuplicateAlias, err)
	}

	_, err = buildScope(cat, []ast.TableRef{{Name: "users"}, {Name: "missing"}})
	if !dberror.HasCode(err, dberror.CodeUnknownTable) {
		t.Errorf("expected %s, got %v", dberror.CodeUnknownTable, err)
	}
}

func TestNilScope(t *testing.T) {
	var s *Scope
	if _, ok := s.Lookup("users"); ok {
		t.Errorf("expected nil scope lookup to fail")
	}
	if s.Len() != 0 || s.Entries() != nil {
		t.Errorf("expected nil scope to be empty")
	}
}
