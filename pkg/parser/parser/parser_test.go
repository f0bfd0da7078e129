package parser

import (
	"testing"

	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
	"litedb/pkg/logging"
	"litedb/pkg/parser/ast"
	"litedb/pkg/types"
)

func mustParse(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmt, err := ParseStatement(sql, logging.Discard())
	if err != nil {
		t.Fatalf("ParseStatement(%q) failed: %v", sql, err)
	}
	return stmt
}

func mustParseSelect(t *testing.T, sql string) *ast.Select {
	t.Helper()
	sel, ok := mustParse(t, sql).(*ast.Select)
	if !ok {
		t.Fatalf("expected *ast.Select for %q", sql)
	}
	return sel
}

func TestParseCreateTable(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50) NOT NULL, age INT);")
	ct, ok := stmt.(*ast.CreateTable)
	if !ok {
		t.Fatalf("expected *ast.CreateTable, got %T", stmt)
	}
	if ct.Table != "users" || len(ct.Columns) != 3 {
		t.Fatalf("expected users with 3 columns, got %s with %d", ct.Table, len(ct.Columns))
	}

	tests := []struct {
		name        string
		typ         types.Type
		length      int
		constraints []schema.ConstraintKind
	}{
		{"id", types.IntType, 0, []schema.ConstraintKind{schema.PrimaryKey}},
		{"name", types.StringType, 50, []schema.ConstraintKind{schema.NotNull}},
		{"age", types.IntType, 0, nil},
	}
	for i, tt := range tests {
		col := ct.Columns[i]
		if col.Name != tt.name || col.Type != tt.typ {
			t.Errorf("column %d: expected %s %s, got %s %s", i, tt.name, tt.typ, col.Name, col.Type)
		}
		if tt.length == 0 && col.Length != nil {
			t.Errorf("column %s: expected no length, got %d", col.Name, *col.Length)
		}
		if tt.length != 0 && (col.Length == nil || *col.Length != tt.length) {
			t.Errorf("column %s: expected length %d", col.Name, tt.length)
		}
		if len(col.Constraints) != len(tt.constraints) {
			t.Errorf("column %s: expected %d constraints, got %d", col.Name, len(tt.constraints), len(col.Constraints))
			continue
		}
		for j, k := range tt.constraints {
			if col.Constraints[j].Kind != k {
				t.Errorf("column %s: expected constraint %s, got %s", col.Name, k, col.Constraints[j].Kind)
			}
		}
	}
}

func TestParseColumnConstraints(t *testing.T) {
	ct := mustParse(t, "create table t (a text unique default 'x', b float default -1.5 not null, c bool default true);").(*ast.CreateTable)

	a := ct.Columns[0]
	if a.Type != types.StringType || !a.Has(schema.Unique) {
		t.Errorf("expected unique string column, got %s", a)
	}
	if v, _ := a.DefaultValue(); v != "x" {
		t.Errorf("expected DEFAULT x, got %q", v)
	}
	if v, _ := ct.Columns[1].DefaultValue(); v != "-1.5" || !ct.Columns[1].Has(schema.NotNull) {
		t.Errorf("expected DEFAULT -1.5 NOT NULL, got %s", ct.Columns[1])
	}
	if v, _ := ct.Columns[2].DefaultValue(); v != "true" {
		t.Errorf("expected DEFAULT true, got %q", v)
	}
}

func TestParseDropTableDeduplicates(t *testing.T) {
	dt := mustParse(t, "DROP TABLE users, orders, USERS, items, orders;").(*ast.DropTable)
	want := []string{"users", "orders", "items"}
	if len(dt.Tables) != len(want) {
		t.Fatalf("expected %v, got %v", want, dt.Tables)
	}
	for i := range want {
		if dt.Tables[i] != want[i] {
			t.Errorf("expected %v, got %v", want, dt.Tables)
		}
	}
}

func TestParseSelectClauses(t *testing.T) {
	sel := mustParseSelect(t, "SELECT u.*, name AS n, COUNT(*) FROM users u, orders WHERE u.id = orders.user_id GROUP BY name ORDER BY name DESC, u.id LIMIT 10;")

	if len(sel.Items) != 3 {
		t.Fatalf("expected 3 select items, got %d", len(sel.Items))
	}
	if star, ok := sel.Items[0].Expr.(*ast.Star); !ok || star.Table != "u" {
		t.Errorf("expected u.*, got %s", sel.Items[0].Expr)
	}
	if sel.Items[1].Alias != "n" {
		t.Errorf("expected alias n, got %q", sel.Items[1].Alias)
	}
	fn, ok := sel.Items[2].Expr.(*ast.FunctionCall)
	if !ok || !fn.HasStarArg() {
		t.Errorf("expected COUNT(*), got %s", sel.Items[2].Expr)
	}

	if len(sel.From) != 2 || sel.From[0].Alias != "u" || sel.From[1].Alias != "" {
		t.Errorf("unexpected FROM list %v", sel.From)
	}
	if sel.From[0].ScopeName() != "u" || sel.From[1].ScopeName() != "orders" {
		t.Errorf("unexpected scope names")
	}

	where, ok := sel.Where.(*ast.Binary)
	if !ok || where.Op != ast.OpEqual {
		t.Errorf("expected equality WHERE, got %v", sel.Where)
	}
	if len(sel.GroupBy) != 1 || sel.GroupBy[0].Column != "name" {
		t.Errorf("unexpected GROUP BY %v", sel.GroupBy)
	}
	if len(sel.OrderBy) != 2 || !sel.OrderBy[0].Desc || sel.OrderBy[1].Desc || sel.OrderBy[1].Column.Table != "u" {
		t.Errorf("unexpected ORDER BY %v", sel.OrderBy)
	}
	if sel.Limit == nil || *sel.Limit != 10 {
		t.Errorf("expected LIMIT 10")
	}
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		where string
		want  string
	}{
		{"a = 1 OR b = 2 AND c = 3", "((a = 1) OR ((b = 2) AND (c = 3)))"},
		{"a + b * c - d", "((a + (b * c)) - d)"},
		{"a * b % c / d", "(((a * b) % c) / d)"},
		{"-a + 2", "((-a) + 2)"},
		{"NOT a AND b", "((NOT a) AND b)"},
		{"NOT NOT a", "(NOT (NOT a))"},
		{"(a + b) * c", "((a + b) * c)"},
		{"a < b = c", "((a < b) = c)"},
		{"a != b OR a <> c", "((a <> b) OR (a <> c))"},
		{"age BETWEEN 18 AND 65 AND active = TRUE", "((age BETWEEN 18 AND 65) AND (active = TRUE))"},
		{"age BETWEEN 1 + 1 AND 2 * 3", "(age BETWEEN (1 + 1) AND (2 * 3))"},
		{"(a = b) BETWEEN 1 AND 2", "((a = b) BETWEEN 1 AND 2)"},
		{"a + 1 IN (2)", "((a + 1) IN (2))"},
		{"id IN (1, 2, 3) OR id IN (SELECT x FROM t)", "((id IN (1, 2, 3)) OR (id IN (SELECT x FROM t)))"},
		{"score >= -1.25", "(score >= (-1.25))"},
		{"f(a, 'x') > 0", "(F(a, 'x') > 0)"},
		{"x = NULL", "(x = NULL)"},
	}

	for _, tt := range tests {
		sel := mustParseSelect(t, "SELECT a FROM t WHERE "+tt.where+";")
		if got := sel.Where.String(); got != tt.want {
			t.Errorf("%s:\n  expected %s\n  got      %s", tt.where, tt.want, got)
		}
	}
}

func TestBetweenDoesNotChain(t *testing.T) {
	_, err := ParseStatement("SELECT a FROM t WHERE a BETWEEN 1 AND 2 = TRUE;", logging.Discard())
	if err == nil {
		t.Fatal("expected BETWEEN result not to be compared further")
	}
}

func TestParseSubqueries(t *testing.T) {
	sel := mustParseSelect(t, "SELECT name, (SELECT MAX(amount) FROM orders) FROM users WHERE age > (SELECT AVG(age) FROM users LIMIT 1);")

	sub, ok := sel.Items[1].Expr.(*ast.Subquery)
	if !ok {
		t.Fatalf("expected subquery select item, got %T", sel.Items[1].Expr)
	}
	if sub.Select.From[0].Name != "orders" {
		t.Errorf("expected subquery over orders")
	}

	cmp := sel.Where.(*ast.Binary)
	right, ok := cmp.Right.(*ast.Subquery)
	if !ok || right.Select.Limit == nil || *right.Select.Limit != 1 {
		t.Errorf("expected LIMIT 1 subquery on the right, got %s", cmp.Right)
	}
}

func TestParseInsert(t *testing.T) {
	ins := mustParse(t, "INSERT INTO users (name, age) VALUES ('John', 25), ('Jane', -3), (NULL, 1.5), ('x', TRUE);").(*ast.Insert)

	if ins.Table != "users" || len(ins.Columns) != 2 || len(ins.Rows) != 4 {
		t.Fatalf("unexpected insert %s", ins)
	}

	tests := []struct {
		row, col int
		kind     types.ValueKind
		value    any
	}{
		{0, 0, types.StringValue, "John"},
		{0, 1, types.IntValue, int64(25)},
		{1, 1, types.IntValue, int64(-3)},
		{2, 0, types.NullValue, nil},
		{2, 1, types.FloatValue, 1.5},
		{3, 1, types.BoolValue, true},
	}
	for _, tt := range tests {
		lit := ins.Rows[tt.row][tt.col]
		if lit.Kind != tt.kind || lit.Value != tt.value {
			t.Errorf("row %d col %d: expected %s %v, got %s %v", tt.row, tt.col, tt.kind, tt.value, lit.Kind, lit.Value)
		}
	}

	noCols := mustParse(t, "INSERT INTO t VALUES (1);").(*ast.Insert)
	if len(noCols.Columns) != 0 || len(noCols.Rows) != 1 {
		t.Errorf("expected implicit column list with one row, got %s", noCols)
	}
}

func TestParseUpdateAndDelete(t *testing.T) {
	upd := mustParse(t, "UPDATE users SET age = age + 1, name = 'x' WHERE id = 3;").(*ast.Update)
	if upd.Table != "users" || len(upd.Assignments) != 2 || upd.Where == nil {
		t.Fatalf("unexpected update %s", upd)
	}
	if upd.Assignments[0].Column != "age" || upd.Assignments[0].Value.String() != "(age + 1)" {
		t.Errorf("unexpected first assignment %v", upd.Assignments[0])
	}

	del := mustParse(t, "DELETE FROM users;").(*ast.Delete)
	if del.Table != "users" || del.Where != nil {
		t.Errorf("unexpected delete %s", del)
	}
	del = mustParse(t, "delete from users where age < 18;").(*ast.Delete)
	if del.Where == nil {
		t.Errorf("expected WHERE on delete")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		code string
	}{
		{"missing terminator", "SELECT a FROM t", dberror.CodeMissingTerminator},
		{"trailing input", "SELECT a FROM t; SELECT b FROM t;", dberror.CodeTrailingInput},
		{"dangling AS", "SELECT a AS FROM t;", dberror.CodeUnexpectedToken},
		{"AS with keyword", "SELECT a AS select FROM t;", dberror.CodeUnexpectedToken},
		{"missing FROM", "SELECT a;", dberror.CodeUnexpectedToken},
		{"unknown statement", "ALTER TABLE t;", dberror.CodeUnsupportedStatement},
		{"empty", "   ", dberror.CodeUnsupportedStatement},
		{"illegal token", "SELECT a FROM t WHERE a @ 1;", dberror.CodeIllegalToken},
		{"length on int", "CREATE TABLE t (a INT(4));", dberror.CodeUnexpectedToken},
		{"bad type", "CREATE TABLE t (a BLOB);", dberror.CodeUnexpectedToken},
		{"empty columns", "CREATE TABLE t ();", dberror.CodeUnexpectedToken},
		{"insert expression", "INSERT INTO t VALUES (1 + 1);", dberror.CodeUnexpectedToken},
		{"insert column ref", "INSERT INTO t VALUES (a);", dberror.CodeUnexpectedToken},
		{"unclosed paren", "SELECT (a FROM t;", dberror.CodeUnexpectedToken},
		{"between without and", "SELECT a FROM t WHERE a BETWEEN 1 OR 2;", dberror.CodeUnexpectedToken},
		{"in without paren", "SELECT a FROM t WHERE a IN 1;", dberror.CodeUnexpectedToken},
		{"between after comparison", "SELECT a FROM t WHERE a = b BETWEEN 1 AND 2;", dberror.CodeUnexpectedToken},
		{"in after comparison", "SELECT a FROM t WHERE a < b IN (1, 2);", dberror.CodeUnexpectedToken},
		{"count without paren", "SELECT COUNT FROM t;", dberror.CodeUnexpectedToken},
		{"star alias", "SELECT * AS x FROM t;", dberror.CodeUnexpectedToken},
		{"limit not int", "SELECT a FROM t LIMIT x;", dberror.CodeUnexpectedToken},
		{"update without set", "UPDATE t a = 1;", dberror.CodeUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := ParseStatement(tt.sql, logging.Discard())
			if err == nil {
				t.Fatalf("expected error, got %s", stmt)
			}
			if !dberror.HasCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestMissingTerminatorMessage(t *testing.T) {
	_, err := ParseStatement("DELETE FROM t", logging.Discard())
	dbErr, ok := err.(*dberror.DBError)
	if !ok {
		t.Fatalf("expected *DBError, got %T", err)
	}
	if dbErr.Message != "SQL statement must end with a semicolon" {
		t.Errorf("unexpected message %q", dbErr.Message)
	}
	if dbErr.Category != dberror.ErrCategorySyntax {
		t.Errorf("expected syntax category, got %s", dbErr.Category)
	}
}

func TestDanglingASMessage(t *testing.T) {
	_, err := ParseStatement("SELECT a AS FROM t;", logging.Discard())
	dbErr := err.(*dberror.DBError)
	if dbErr.Message != "AS must be followed by an identifier, got FROM 'FROM'" {
		t.Errorf("unexpected message %q", dbErr.Message)
	}
}
