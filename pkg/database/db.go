package database

import (
	"log/slog"
	"os"
	"sync"

	"github.com/pkg/errors"

	"litedb/pkg/catalog"
	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
	"litedb/pkg/parser/ast"
	"litedb/pkg/parser/parser"
	"litedb/pkg/semantic"
)

// Database is a validation session: statements are parsed and analyzed
// against its catalog, and validated CREATE/DROP statements update that
// catalog so later statements see them. Nothing is executed.
type Database struct {
	catalogMgr *catalog.CatalogManager
	analyzer   *semantic.Analyzer
	formatter  *ResultFormatter
	logger     *slog.Logger

	name string

	mutex sync.Mutex
	stats *DatabaseStats
}

// DatabaseStats tracks session counters.
type DatabaseStats struct {
	QueriesExecuted int64
	ErrorCount      int64
	mutex           sync.RWMutex
}

// QueryResult describes one validated statement.
type QueryResult struct {
	Success      bool
	Statement    ast.Statement
	Columns      []string
	Rows         [][]string
	RowsAffected int
	Message      string
}

// DatabaseInfo contains session metadata.
type DatabaseInfo struct {
	Name            string
	Tables          []string
	TableCount      int
	QueriesExecuted int64
	ErrorCount      int64
}

// NewDatabase creates a session over an empty catalog.
func NewDatabase(name string, logger *slog.Logger) *Database {
	return NewDatabaseWithCatalog(name, catalog.NewCatalogManager(logger), logger)
}

// NewDatabaseWithCatalog creates a session over an existing catalog, for
// example one seeded by sqliteimport.
func NewDatabaseWithCatalog(name string, cm *catalog.CatalogManager, logger *slog.Logger) *Database {
	logger = logger.With("database", name)
	return &Database{
		catalogMgr: cm,
		analyzer:   semantic.NewAnalyzer(cm, logger),
		formatter:  NewResultFormatter(),
		logger:     logger,
		name:       name,
		stats:      &DatabaseStats{},
	}
}

// Catalog returns the session catalog.
func (db *Database) Catalog() *catalog.CatalogManager {
	return db.catalogMgr
}

// ExecuteQuery parses and validates one statement. Errors are returned as
// *dberror.DBError.
func (db *Database) ExecuteQuery(query string) (QueryResult, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	stmt, err := parser.ParseStatement(query, db.logger)
	if err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	if err := db.analyzer.Analyze(stmt); err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	if err := db.apply(stmt); err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	result, err := db.formatter.Format(stmt, db.analyzer)
	if err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	db.recordSuccess()
	return result, nil
}

// apply records the effect of validated DDL in the catalog.
func (db *Database) apply(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.CreateTable:
		sch, err := schema.NewSchema(s.Table, s.Columns)
		if err != nil {
			return dberror.Wrap(err, dberror.CodeDuplicateColumn, "ApplyCreateTable", "Database")
		}
		return db.catalogMgr.CreateTable(sch)
	case *ast.DropTable:
		for _, name := range s.Tables {
			if err := db.catalogMgr.DropTable(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExecuteScript validates every statement of script in order and stops at
// the first failure. Results for the statements before it are returned.
func (db *Database) ExecuteScript(script string) ([]QueryResult, error) {
	statements := SplitStatements(script)
	results := make([]QueryResult, 0, len(statements))

	for i, sql := range statements {
		res, err := db.ExecuteQuery(sql)
		if err != nil {
			return results, errors.Wrapf(err, "statement %d", i+1)
		}
		results = append(results, res)
	}
	return results, nil
}

// ExecuteFile reads a SQL script from path and runs ExecuteScript on it.
func (db *Database) ExecuteFile(path string) ([]QueryResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(dberror.Wrap(err, dberror.CodeIO, "ExecuteFile", "Database"), "reading %s", path)
	}
	return db.ExecuteScript(string(data))
}

// recordError updates error statistics
func (db *Database) recordError() {
	db.stats.mutex.Lock()
	db.stats.ErrorCount++
	db.stats.mutex.Unlock()
}

// recordSuccess updates success statistics
func (db *Database) recordSuccess() {
	db.stats.mutex.Lock()
	db.stats.QueriesExecuted++
	db.stats.mutex.Unlock()
}

// GetTables returns a list of all tables in the catalog
func (db *Database) GetTables() []string {
	return db.catalogMgr.TableNames()
}

// GetStatistics returns current session statistics
func (db *Database) GetStatistics() DatabaseInfo {
	db.stats.mutex.RLock()
	defer db.stats.mutex.RUnlock()

	tables := db.GetTables()
	return DatabaseInfo{
		Name:            db.name,
		Tables:          tables,
		TableCount:      len(tables),
		QueriesExecuted: db.stats.QueriesExecuted,
		ErrorCount:      db.stats.ErrorCount,
	}
}

func (db *Database) Close() error {
	info := db.GetStatistics()
	hits, misses := db.catalogMgr.CacheStats()
	db.logger.Info("session closed",
		"queries", info.QueriesExecuted,
		"errors", info.ErrorCount,
		"catalog_hits", hits,
		"catalog_misses", misses,
	)
	return nil
}
