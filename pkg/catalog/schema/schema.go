package schema

import (
	"fmt"
	"strings"
)

// Schema is the ordered column list of one table. Column lookups are
// case-insensitive; column order is declaration order.
type Schema struct {
	TableName string
	Columns   []ColumnDefinition

	// Fast lookup index keyed by lower-cased column name
	fieldNameToIndex map[string]int
}

// NewSchema creates a new Schema from column definitions.
// Column names must be unique ignoring case.
func NewSchema(tableName string, columns []ColumnDefinition) (*Schema, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema must have at least one column")
	}

	fieldNameToIndex := make(map[string]int, len(columns))
	for i, col := range columns {
		key := strings.ToLower(col.Name)
		if _, dup := fieldNameToIndex[key]; dup {
			return nil, fmt.Errorf("duplicate column name '%s' in table '%s'", col.Name, tableName)
		}
		fieldNameToIndex[key] = i
	}

	return &Schema{
		TableName:        tableName,
		Columns:          append([]ColumnDefinition(nil), columns...),
		fieldNameToIndex: fieldNameToIndex,
	}, nil
}

// GetFieldIndex returns the field index for a given field name.
// Returns -1 if the field doesn't exist.
func (s *Schema) GetFieldIndex(fieldName string) int {
	if idx, ok := s.fieldNameToIndex[strings.ToLower(fieldName)]; ok {
		return idx
	}
	return -1
}

// HasColumn returns true if the schema contains a column with the given name.
func (s *Schema) HasColumn(fieldName string) bool {
	return s.GetFieldIndex(fieldName) >= 0
}

// Column returns the definition for a column by name.
func (s *Schema) Column(fieldName string) (ColumnDefinition, bool) {
	idx := s.GetFieldIndex(fieldName)
	if idx < 0 {
		return ColumnDefinition{}, false
	}
	return s.Columns[idx], true
}

// NumFields returns the number of fields in the schema.
func (s *Schema) NumFields() int {
	return len(s.Columns)
}

// FieldNames returns a slice of all field names in order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// PrimaryKey returns the name of the first PRIMARY KEY column, or "".
func (s *Schema) PrimaryKey() string {
	for _, col := range s.Columns {
		if col.Has(PrimaryKey) {
			return col.Name
		}
	}
	return ""
}
