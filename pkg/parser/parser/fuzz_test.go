package parser

import (
	"testing"

	"litedb/pkg/logging"
)

func FuzzParseStatement(f *testing.F) {
	seeds := []string{
		"SELECT * FROM users;",
		"SELECT u.id, COUNT(*) FROM users u WHERE u.age BETWEEN 1 AND 2 GROUP BY u.id;",
		"SELECT a FROM t WHERE a IN (SELECT b FROM s LIMIT 1);",
		"INSERT INTO t (a, b) VALUES (1, 'x'), (-2.5, NULL);",
		"CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(20) NOT NULL DEFAULT 'x');",
		"UPDATE t SET a = a * 2 WHERE NOT b;",
		"DELETE FROM t WHERE a <> 1;",
		"DROP TABLE a, b, a;",
		"SELECT ((((a)))) FROM t;",
		"SELECT",
		";",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	logger := logging.Discard()
	f.Fuzz(func(t *testing.T, sql string) {
		stmt, err := ParseStatement(sql, logger)
		if err == nil && stmt == nil {
			t.Fatalf("nil statement without error for %q", sql)
		}
		if err == nil {
			// Rendering must never panic.
			_ = stmt.String()
		}
	})
}
