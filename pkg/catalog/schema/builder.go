package schema

import (
	"fmt"

	"litedb/pkg/types"
)

// SchemaBuilder helps construct table schemas with less boilerplate,
// mostly for catalog seeding and tests.
type SchemaBuilder struct {
	tableName string
	columns   []ColumnDefinition
}

// NewSchemaBuilder creates a new schema builder
func NewSchemaBuilder(tableName string) *SchemaBuilder {
	return &SchemaBuilder{
		tableName: tableName,
		columns:   make([]ColumnDefinition, 0),
	}
}

// AddColumn adds a nullable column with optional constraints
func (sb *SchemaBuilder) AddColumn(name string, fieldType types.Type, constraints ...Constraint) *SchemaBuilder {
	sb.columns = append(sb.columns, ColumnDefinition{
		Name:        name,
		Type:        fieldType,
		Constraints: constraints,
	})
	return sb
}

// AddPrimaryKey adds a primary key column
func (sb *SchemaBuilder) AddPrimaryKey(name string, fieldType types.Type) *SchemaBuilder {
	return sb.AddColumn(name, fieldType, Constraint{Kind: PrimaryKey})
}

// AddNotNull adds a NOT NULL column
func (sb *SchemaBuilder) AddNotNull(name string, fieldType types.Type) *SchemaBuilder {
	return sb.AddColumn(name, fieldType, Constraint{Kind: NotNull})
}

// AddVarchar adds a VARCHAR column with a declared length
func (sb *SchemaBuilder) AddVarchar(name string, length int, constraints ...Constraint) *SchemaBuilder {
	sb.columns = append(sb.columns, ColumnDefinition{
		Name:        name,
		Type:        types.StringType,
		Length:      &length,
		Constraints: constraints,
	})
	return sb
}

// Build constructs the schema
func (sb *SchemaBuilder) Build() (*Schema, error) {
	sch, err := NewSchema(sb.tableName, sb.columns)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return sch, nil
}

// MustBuild is Build for schemas known to be valid at compile time.
func (sb *SchemaBuilder) MustBuild() *Schema {
	sch, err := sb.Build()
	if err != nil {
		panic(err)
	}
	return sch
}
