package integration

import (
	"testing"

	"litedb/pkg/database"
	"litedb/pkg/logging"
)

// TestDatabase wraps a validation session with test helpers.
type TestDatabase struct {
	DB *database.Database
}

// SetupTestDB creates a session that is closed when the test ends.
func SetupTestDB(t *testing.T) *TestDatabase {
	t.Helper()
	db := database.NewDatabase("testdb", logging.Discard())
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close database: %v", err)
		}
	})
	return &TestDatabase{DB: db}
}

// MustExecute validates a statement and fails the test on error.
func (td *TestDatabase) MustExecute(t *testing.T, query string) database.QueryResult {
	t.Helper()
	result, err := td.DB.ExecuteQuery(query)
	if err != nil {
		t.Fatalf("query failed: %s\nError: %v", query, err)
	}
	if !result.Success {
		t.Fatalf("query unsuccessful: %s", query)
	}
	return result
}

// ExecuteSQLExpectError validates a statement expecting it to be rejected.
func (td *TestDatabase) ExecuteSQLExpectError(t *testing.T, query string) error {
	t.Helper()
	_, err := td.DB.ExecuteQuery(query)
	if err == nil {
		t.Fatalf("expected error for query: %s", query)
	}
	return err
}

// ExecuteSQLFile validates every statement of a SQL file.
func (td *TestDatabase) ExecuteSQLFile(t *testing.T, path string) []database.QueryResult {
	t.Helper()
	results, err := td.DB.ExecuteFile(path)
	if err != nil {
		t.Fatalf("failed to execute %s: %v", path, err)
	}
	return results
}

// VerifyTableExists checks if a table exists
func (td *TestDatabase) VerifyTableExists(t *testing.T, tableName string) {
	t.Helper()
	if !td.DB.Catalog().TableExists(tableName) {
		t.Fatalf("table %s does not exist. Available tables: %v", tableName, td.DB.GetTables())
	}
}

// VerifyOutput checks the described output columns of a SELECT, given as
// alternating name and type strings.
func (td *TestDatabase) VerifyOutput(t *testing.T, query string, nameTypes ...string) {
	t.Helper()
	result := td.MustExecute(t, query)
	if len(result.Rows)*2 != len(nameTypes) {
		t.Fatalf("expected %d output columns, got %d for query: %s", len(nameTypes)/2, len(result.Rows), query)
	}
	for i, row := range result.Rows {
		if row[0] != nameTypes[2*i] || row[1] != nameTypes[2*i+1] {
			t.Errorf("column %d: expected %s %s, got %s %s", i, nameTypes[2*i], nameTypes[2*i+1], row[0], row[1])
		}
	}
}
