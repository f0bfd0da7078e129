package semantic

import (
	"log/slog"
	"strings"

	"litedb/pkg/catalog"
	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
	"litedb/pkg/types"
)

// Analyzer validates statements against a catalog. It is not safe for
// concurrent use; create one per session.
type Analyzer struct {
	catalog  catalog.Catalog
	inferrer *TypeInferrer
	logger   *slog.Logger
}

// NewAnalyzer returns an analyzer over cat. The catalog is only read.
func NewAnalyzer(cat catalog.Catalog, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		catalog:  cat,
		inferrer: NewTypeInferrer(cat, nil),
		logger:   logger.With("component", "analyzer"),
	}
}

// Inferrer returns the analyzer's type inferrer.
func (a *Analyzer) Inferrer() *TypeInferrer {
	return a.inferrer
}

// Analyze validates stmt and returns the first violation found.
func (a *Analyzer) Analyze(stmt ast.Statement) error {
	var err error

	switch s := stmt.(type) {
	case *ast.CreateTable:
		err = a.analyzeCreateTable(s)
	case *ast.DropTable:
		err = a.analyzeDropTable(s)
	case *ast.Insert:
		err = a.analyzeInsert(s)
	case *ast.Update:
		err = a.analyzeUpdate(s)
	case *ast.Delete:
		err = a.analyzeDelete(s)
	case *ast.Select:
		err = a.analyzeSelect(s)
	default:
		err = dberror.Newf(dberror.ErrCategorySyntax, dberror.CodeUnsupportedStatement,
			"unsupported statement %T", stmt).In("Analyzer", "Analyze")
	}

	if err != nil {
		a.logger.Debug("statement rejected", "type", stmt.GetType().String(), "error", err)
		return err
	}
	a.logger.Debug("statement validated", "type", stmt.GetType().String())
	return nil
}

// Describe returns the output columns of an analyzed SELECT. Subqueries in
// the select list are reported with their single column's type.
func (a *Analyzer) Describe(sel *ast.Select) ([]ResultColumn, error) {
	var cols []ResultColumn
	err := a.inferrer.inSelectScope(sel, func() error {
		var err error
		cols, err = a.inferrer.projection(sel)
		return err
	})
	if err != nil {
		return nil, err
	}
	for i, c := range cols {
		if narrowed, ok := c.Type.Narrow(); ok && c.Type.IsRowSet() {
			cols[i].Type = narrowed
		}
	}
	return cols, nil
}

func (a *Analyzer) analyzeCreateTable(s *ast.CreateTable) error {
	if a.catalog.TableExists(s.Table) {
		return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeTableExists,
			"table '%s' already exists", s.Table).In("Analyzer", "AnalyzeCreateTable")
	}

	seen := make(map[string]struct{}, len(s.Columns))
	for _, col := range s.Columns {
		key := strings.ToLower(col.Name)
		if _, dup := seen[key]; dup {
			return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeDuplicateColumn,
				"duplicate column name '%s' in table '%s'", col.Name, s.Table).
				In("Analyzer", "AnalyzeCreateTable")
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (a *Analyzer) analyzeDropTable(s *ast.DropTable) error {
	for _, name := range s.Tables {
		if !a.catalog.TableExists(name) {
			return unknownTable(name)
		}
	}
	return nil
}

func (a *Analyzer) analyzeInsert(s *ast.Insert) error {
	scope, sch, err := tableScope(a.catalog, s.Table)
	if err != nil {
		return err
	}

	columns, err := insertColumns(s, sch)
	if err != nil {
		return err
	}

	return a.inferrer.withScope(scope, func() error {
		for i, row := range s.Rows {
			if len(row) != len(columns) {
				return dberror.Newf(dberror.ErrCategoryType, dberror.CodeColumnCountMismatch,
					"row %d has %d values but %d columns were specified", i+1, len(row), len(columns)).
					In("Analyzer", "AnalyzeInsert")
			}
			for j, value := range row {
				if _, err := a.inferrer.InferType(value); err != nil {
					return err
				}
				col := columns[j]
				if !types.IsCompatible(value.Kind, col.Type) {
					return typeMismatch("Type mismatch for column '%s': cannot insert %s value %s into %s column",
						col.Name, value.Kind, value, col.Type)
				}
			}
		}
		return nil
	})
}

// insertColumns resolves the explicit column list of an INSERT, or every
// column of the table when there is none.
func insertColumns(s *ast.Insert, sch *schema.Schema) ([]schema.ColumnDefinition, error) {
	if len(s.Columns) == 0 {
		return sch.Columns, nil
	}

	columns := make([]schema.ColumnDefinition, 0, len(s.Columns))
	seen := make(map[string]struct{}, len(s.Columns))
	for _, name := range s.Columns {
		col, ok := sch.Column(name)
		if !ok {
			return nil, dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownColumn,
				"column '%s' does not exist in table '%s'", name, s.Table).In("Analyzer", "AnalyzeInsert")
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeDuplicateColumn,
				"column '%s' specified more than once", name).In("Analyzer", "AnalyzeInsert")
		}
		seen[key] = struct{}{}
		columns = append(columns, col)
	}
	return columns, nil
}

func (a *Analyzer) analyzeUpdate(s *ast.Update) error {
	scope, sch, err := tableScope(a.catalog, s.Table)
	if err != nil {
		return err
	}

	return a.inferrer.withScope(scope, func() error {
		for _, asg := range s.Assignments {
			col, ok := sch.Column(asg.Column)
			if !ok {
				return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownColumn,
					"column '%s' does not exist in table '%s'", asg.Column, s.Table).
					In("Analyzer", "AnalyzeUpdate")
			}

			t, err := a.checkScalar(asg.Value)
			if err != nil {
				return err
			}
			if t.IsUnknown() {
				continue
			}
			if t.Base != col.Type && !(t.Base == types.IntType && col.Type == types.FloatType) {
				return typeMismatch("Type mismatch for column '%s': cannot assign %s to %s column",
					col.Name, t.Base, col.Type)
			}
		}
		return a.checkWhere(s.Where)
	})
}

func (a *Analyzer) analyzeDelete(s *ast.Delete) error {
	scope, _, err := tableScope(a.catalog, s.Table)
	if err != nil {
		return err
	}
	return a.inferrer.withScope(scope, func() error {
		return a.checkWhere(s.Where)
	})
}

// analyzeSelect validates a SELECT in a fresh scope built from its FROM list.
// The enclosing scope, if any, is restored afterwards.
func (a *Analyzer) analyzeSelect(s *ast.Select) error {
	return a.inferrer.inSelectScope(s, func() error {
		for _, item := range s.Items {
			if err := a.checkSelectItem(item); err != nil {
				return err
			}
		}

		if err := a.checkWhere(s.Where); err != nil {
			return err
		}

		for _, ref := range s.GroupBy {
			if _, err := a.checkExpression(ref); err != nil {
				return err
			}
		}
		for _, o := range s.OrderBy {
			if _, err := a.checkExpression(o.Column); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *Analyzer) checkSelectItem(item ast.SelectItem) error {
	if star, ok := item.Expr.(*ast.Star); ok {
		if star.Table != "" {
			if _, ok := a.inferrer.Scope().Lookup(star.Table); !ok {
				return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownTable,
					"unknown table or alias '%s' in %s", star.Table, star).In("Analyzer", "AnalyzeSelect")
			}
		}
		return nil
	}

	t, err := a.checkScalar(item.Expr)
	if err != nil {
		return err
	}
	if t.IsUnknown() {
		return dberror.Newf(dberror.ErrCategoryType, dberror.CodeUnknownType,
			"cannot determine the type of select item %s", item.Expr).
			In("Analyzer", "AnalyzeSelect")
	}
	return nil
}

func (a *Analyzer) checkWhere(where ast.Expression) error {
	if where == nil {
		return nil
	}
	t, err := a.checkScalar(where)
	if err != nil {
		return err
	}
	if !t.IsBool() {
		return dberror.Newf(dberror.ErrCategoryType, dberror.CodeNonBooleanWhere,
			"WHERE clause must be a boolean expression, got %s", t).In("Analyzer", "CheckWhere")
	}
	return nil
}
