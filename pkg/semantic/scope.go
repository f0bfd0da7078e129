package semantic

import (
	"strings"

	"litedb/pkg/catalog"
	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
)

// ScopeEntry is one table visible in a statement.
type ScopeEntry struct {
	Name   string // alias, or table name when there is no alias
	Schema *schema.Schema
}

// Scope maps table names or aliases to schemas for one statement.
// Keys are case-insensitive; iteration follows insertion order.
type Scope struct {
	entries []ScopeEntry
	index   map[string]int
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{index: make(map[string]int)}
}

// Add registers name. A name may only appear once per scope.
func (s *Scope) Add(name string, sch *schema.Schema) error {
	key := strings.ToLower(name)
	if _, dup := s.index[key]; dup {
		return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeDuplicateAlias,
			"Duplicate table alias '%s'", name).
			WithHint("give each table in FROM a distinct alias").
			In("Analyzer", "BuildScope")
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, ScopeEntry{Name: name, Schema: sch})
	return nil
}

// Lookup returns the schema registered under name.
func (s *Scope) Lookup(name string) (*schema.Schema, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return s.entries[i].Schema, true
}

// Entries returns the scope's tables in FROM order.
func (s *Scope) Entries() []ScopeEntry {
	if s == nil {
		return nil
	}
	return s.entries
}

func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// buildScope resolves a FROM list against the catalog. Each table is keyed
// by its alias when it has one, otherwise by its name.
func buildScope(cat catalog.Catalog, from []ast.TableRef) (*Scope, error) {
	scope := NewScope()
	for _, ref := range from {
		sch, err := lookupTable(cat, ref.Name)
		if err != nil {
			return nil, err
		}
		if err := scope.Add(ref.ScopeName(), sch); err != nil {
			return nil, err
		}
	}
	return scope, nil
}

// tableScope is the scope of a single-table statement.
func tableScope(cat catalog.Catalog, table string) (*Scope, *schema.Schema, error) {
	sch, err := lookupTable(cat, table)
	if err != nil {
		return nil, nil, err
	}
	scope := NewScope()
	if err := scope.Add(table, sch); err != nil {
		return nil, nil, err
	}
	return scope, sch, nil
}

func lookupTable(cat catalog.Catalog, name string) (*schema.Schema, error) {
	if !cat.TableExists(name) {
		return nil, unknownTable(name)
	}
	return cat.GetTableColumns(name)
}

func unknownTable(name string) *dberror.DBError {
	return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownTable,
		"table '%s' does not exist", name).In("Analyzer", "ResolveTable")
}
