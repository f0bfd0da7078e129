package database

import (
	"fmt"
	"strings"

	"litedb/pkg/catalog/schema"
	"litedb/pkg/parser/ast"
	"litedb/pkg/semantic"
	"litedb/pkg/utils/functools"
)

// ResultFormatter turns a validated statement into a QueryResult.
type ResultFormatter struct{}

// NewResultFormatter creates a new instance of ResultFormatter
func NewResultFormatter() *ResultFormatter {
	return &ResultFormatter{}
}

// Format describes stmt, which must already have been analyzed by analyzer.
func (f *ResultFormatter) Format(stmt ast.Statement, analyzer *semantic.Analyzer) (QueryResult, error) {
	var res QueryResult

	switch s := stmt.(type) {
	case *ast.Select:
		cols, err := analyzer.Describe(s)
		if err != nil {
			return QueryResult{}, err
		}
		res = f.FormatSelect(cols)
	case *ast.Insert:
		res = f.FormatDML(stmt.GetType(), s.Table, len(s.Rows))
	case *ast.Update:
		res = f.FormatDML(stmt.GetType(), s.Table, 0)
	case *ast.Delete:
		res = f.FormatDML(stmt.GetType(), s.Table, 0)
	case *ast.CreateTable:
		res = f.FormatCreate(s)
	case *ast.DropTable:
		res = QueryResult{
			Success: true,
			Message: fmt.Sprintf("Dropped %s", strings.Join(s.Tables, ", ")),
		}
	default:
		res = QueryResult{Success: true, Message: "Statement validated"}
	}

	res.Statement = stmt
	return res, nil
}

// FormatSelect lists the output columns of a SELECT with their types.
func (f *ResultFormatter) FormatSelect(cols []semantic.ResultColumn) QueryResult {
	rows := make([][]string, len(cols))
	for i, c := range cols {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		rows[i] = []string{name, c.Type.String()}
	}

	return QueryResult{
		Success: true,
		Columns: []string{"column", "type"},
		Rows:    rows,
		Message: fmt.Sprintf("SELECT validated: %d output column(s)", len(cols)),
	}
}

// FormatDML reports a validated INSERT, UPDATE or DELETE. rows is the number
// of VALUES tuples for INSERT and zero otherwise.
func (f *ResultFormatter) FormatDML(stmtType ast.StatementType, table string, rows int) QueryResult {
	msg := fmt.Sprintf("%s on %s validated", stmtType, table)
	if stmtType == ast.InsertStmt {
		msg = fmt.Sprintf("%d row(s) validated for %s", rows, table)
	}
	return QueryResult{
		Success:      true,
		RowsAffected: rows,
		Message:      msg,
	}
}

// FormatCreate lists the columns of a created table.
func (f *ResultFormatter) FormatCreate(s *ast.CreateTable) QueryResult {
	rows := functools.Map(s.Columns, func(col schema.ColumnDefinition) []string {
		return []string{col.Name, col.String()}
	})
	return QueryResult{
		Success: true,
		Columns: []string{"column", "definition"},
		Rows:    rows,
		Message: fmt.Sprintf("Table %s created", s.Table),
	}
}
