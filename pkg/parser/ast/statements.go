package ast

import (
	"fmt"
	"strings"

	"litedb/pkg/catalog/schema"
)

type CreateTable struct {
	Table   string
	Columns []schema.ColumnDefinition
}

func (s *CreateTable) GetType() StatementType { return CreateTableStmt }

func (s *CreateTable) String() string {
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c.String()
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", s.Table, strings.Join(cols, ", "))
}

type DropTable struct {
	Tables []string
}

func (s *DropTable) GetType() StatementType { return DropTableStmt }

func (s *DropTable) String() string {
	return "DROP TABLE " + strings.Join(s.Tables, ", ") + ";"
}

// SelectItem is one entry of a select list.
type SelectItem struct {
	Expr  Expression
	Alias string
}

func (i SelectItem) String() string {
	if i.Alias != "" {
		return i.Expr.String() + " AS " + i.Alias
	}
	return i.Expr.String()
}

// TableRef is one entry of a FROM list.
type TableRef struct {
	Name  string
	Alias string
}

// ScopeName is the name the table is visible under: its alias if it has one.
func (t TableRef) ScopeName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

func (t TableRef) String() string {
	if t.Alias != "" {
		return t.Name + " " + t.Alias
	}
	return t.Name
}

type OrderItem struct {
	Column *ColumnRef
	Desc   bool
}

func (o OrderItem) String() string {
	if o.Desc {
		return o.Column.String() + " DESC"
	}
	return o.Column.String() + " ASC"
}

type Select struct {
	Items   []SelectItem
	From    []TableRef
	Where   Expression
	GroupBy []*ColumnRef
	OrderBy []OrderItem
	Limit   *int64
}

func (s *Select) GetType() StatementType { return SelectStmt }

func (s *Select) String() string {
	return s.body() + ";"
}

func (s *Select) body() string {
	var b statementBuilder

	items := make([]string, len(s.Items))
	for i, it := range s.Items {
		items[i] = it.String()
	}
	from := make([]string, len(s.From))
	for i, t := range s.From {
		from[i] = t.String()
	}

	b.WriteString("SELECT " + strings.Join(items, ", "))
	b.WriteString(" FROM " + strings.Join(from, ", "))
	if s.Where != nil {
		b.writeClause("WHERE", s.Where.String())
	}
	b.writeClause("GROUP BY", joinNodes(s.GroupBy))
	if len(s.OrderBy) > 0 {
		order := make([]string, len(s.OrderBy))
		for i, o := range s.OrderBy {
			order[i] = o.String()
		}
		b.writeClause("ORDER BY", strings.Join(order, ", "))
	}
	b.writeIf(s.Limit != nil, fmt.Sprintf(" LIMIT %d", derefLimit(s.Limit)))
	return b.String()
}

func derefLimit(l *int64) int64 {
	if l == nil {
		return 0
	}
	return *l
}

type Insert struct {
	Table   string
	Columns []string
	Rows    [][]*Literal
}

func (s *Insert) GetType() StatementType { return InsertStmt }

func (s *Insert) String() string {
	var b statementBuilder
	b.WriteString("INSERT INTO " + s.Table)
	b.writeIf(len(s.Columns) > 0, " ("+strings.Join(s.Columns, ", ")+")")
	rows := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = "(" + joinNodes(r) + ")"
	}
	b.WriteString(" VALUES " + strings.Join(rows, ", ") + ";")
	return b.String()
}

type Assignment struct {
	Column string
	Value  Expression
}

type Update struct {
	Table       string
	Assignments []Assignment
	Where       Expression
}

func (s *Update) GetType() StatementType { return UpdateStmt }

func (s *Update) String() string {
	var b statementBuilder
	sets := make([]string, len(s.Assignments))
	for i, a := range s.Assignments {
		sets[i] = a.Column + " = " + a.Value.String()
	}
	b.WriteString("UPDATE " + s.Table + " SET " + strings.Join(sets, ", "))
	if s.Where != nil {
		b.writeClause("WHERE", s.Where.String())
	}
	b.WriteString(";")
	return b.String()
}

type Delete struct {
	Table string
	Where Expression
}

func (s *Delete) GetType() StatementType { return DeleteStmt }

func (s *Delete) String() string {
	var b statementBuilder
	b.WriteString("DELETE FROM " + s.Table)
	if s.Where != nil {
		b.writeClause("WHERE", s.Where.String())
	}
	b.WriteString(";")
	return b.String()
}

func (*CreateTable) node() {}
func (*DropTable) node()   {}
func (*Select) node()      {}
func (*Insert) node()      {}
func (*Update) node()      {}
func (*Delete) node()      {}

func (*CreateTable) statementNode() {}
func (*DropTable) statementNode()   {}
func (*Select) statementNode()      {}
func (*Insert) statementNode()      {}
func (*Update) statementNode()      {}
func (*Delete) statementNode()      {}
