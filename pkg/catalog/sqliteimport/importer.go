// Package sqliteimport seeds a catalog with the table definitions of an
// existing SQLite database file. Only schemas are read; rows are ignored.
package sqliteimport

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"litedb/pkg/catalog"
	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
	"litedb/pkg/types"
	"litedb/pkg/utils/functools"
)

// Import reads every user table of the SQLite database at path and registers
// it with cm. It returns the imported table names in file order. Import is
// all-or-nothing: if any schema cannot be read or any table cannot be
// created, no table from the file is left registered. Failures reading the
// file carry SCHEMA_IMPORT; a name clash carries TABLE_EXISTS.
func Import(ctx context.Context, path string, cm *catalog.CatalogManager) ([]string, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, importError(errors.Wrapf(err, "opening %s", path))
	}
	defer db.Close()

	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, importError(errors.Wrapf(err, "listing tables in %s", path))
	}

	schemas, err := functools.MapWithError(names, func(name string) (*schema.Schema, error) {
		sch, err := readSchema(ctx, db, name)
		return sch, errors.Wrapf(err, "reading table %s", name)
	})
	if err != nil {
		return nil, importError(err)
	}

	if clash := functools.Filter(names, cm.TableExists); len(clash) > 0 {
		return nil, dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeTableExists,
			"table '%s' already exists", clash[0]).
			WithDetail("conflicting tables: %s", strings.Join(clash, ", ")).
			In("SQLiteImport", "Import")
	}

	created := make([]string, 0, len(schemas))
	for _, sch := range schemas {
		if err := cm.CreateTable(sch); err != nil {
			rollback(cm, created)
			return nil, errors.Wrapf(err, "importing table %s", sch.TableName)
		}
		created = append(created, sch.TableName)
	}
	return names, nil
}

// rollback drops tables registered by a failed import, newest first.
func rollback(cm *catalog.CatalogManager, created []string) {
	for i := len(created) - 1; i >= 0; i-- {
		_ = cm.DropTable(created[i])
	}
}

func importError(err error) error {
	return dberror.Wrap(err, dberror.CodeSchemaImport, "Import", "SQLiteImport")
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readSchema(ctx context.Context, db *sql.DB, table string) (*schema.Schema, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	for rows.Next() {
		var (
			cid      int
			name     string
			declType string
			notNull  int
			dflt     sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}

		col := schema.ColumnDefinition{Name: name, Type: affinity(declType)}
		if pk > 0 {
			col.Constraints = append(col.Constraints, schema.Constraint{Kind: schema.PrimaryKey})
		}
		if notNull != 0 {
			col.Constraints = append(col.Constraints, schema.Constraint{Kind: schema.NotNull})
		}
		if dflt.Valid {
			col.Constraints = append(col.Constraints, schema.Constraint{Kind: schema.Default, Value: dflt.String})
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schema.NewSchema(table, columns)
}

// affinity maps a declared SQLite column type to a base type following
// SQLite's affinity rules. BOOL is recognised before the numeric fallback;
// BLOB and untyped columns become VARCHAR.
func affinity(declared string) types.Type {
	t := strings.ToUpper(declared)
	switch {
	case strings.Contains(t, "INT"):
		return types.IntType
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		return types.StringType
	case strings.Contains(t, "BOOL"):
		return types.BoolType
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"),
		strings.Contains(t, "NUM"), strings.Contains(t, "DEC"):
		return types.FloatType
	default:
		return types.StringType
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
