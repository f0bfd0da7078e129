// Package catalog holds table schemas and function signatures.
//
// The semantic analyzer only reads the catalog through the Catalog interface;
// CatalogManager is the in-memory implementation used by the database session,
// which applies validated CREATE TABLE and DROP TABLE statements to it.
package catalog

import "litedb/pkg/catalog/schema"

// Catalog is the read-only view the analyzer resolves names against.
// All lookups are case-insensitive.
type Catalog interface {
	TableExists(name string) bool
	// GetTableColumns returns the table's schema, or an error if it does not exist.
	GetTableColumns(name string) (*schema.Schema, error)
	FunctionExists(name string) bool
	// GetFunction returns nil if the function is not registered.
	GetFunction(name string) *FunctionDefinition
}
