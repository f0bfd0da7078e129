package catalog

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"litedb/pkg/catalog/schema"
	dberror "litedb/pkg/error"
)

// CatalogManager is the in-memory catalog. It is safe for concurrent use:
// readers (analyzers) and the session applying DDL may run in parallel.
type CatalogManager struct {
	tables    *tableCache
	functions map[string]*FunctionDefinition
	funcMu    sync.RWMutex
	logger    *slog.Logger
}

// NewCatalogManager creates a catalog pre-populated with the builtin functions.
func NewCatalogManager(logger *slog.Logger) *CatalogManager {
	cm := &CatalogManager{
		tables:    newTableCache(),
		functions: make(map[string]*FunctionDefinition),
		logger:    logger.With("component", "catalog"),
	}
	for _, fn := range Builtins() {
		cm.functions[strings.ToUpper(fn.Name)] = fn
	}
	return cm
}

// CreateTable registers a new table schema.
func (cm *CatalogManager) CreateTable(sch *schema.Schema) error {
	if err := cm.tables.addTable(sch); err != nil {
		return dberror.New(dberror.ErrCategoryResolution, dberror.CodeTableExists, err.Error()).
			In("Catalog", "CreateTable")
	}
	cm.logger.Debug("table created", "table", sch.TableName, "columns", sch.NumFields())
	return nil
}

// DropTable removes a table.
func (cm *CatalogManager) DropTable(name string) error {
	if !cm.tables.removeTable(name) {
		return dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownTable,
			"table '%s' does not exist", name).In("Catalog", "DropTable")
	}
	cm.logger.Debug("table dropped", "table", name)
	return nil
}

// RegisterFunction adds or replaces a function definition.
func (cm *CatalogManager) RegisterFunction(fn *FunctionDefinition) error {
	if fn == nil || fn.Name == "" {
		return fmt.Errorf("function definition must have a name")
	}
	cm.funcMu.Lock()
	defer cm.funcMu.Unlock()
	cm.functions[strings.ToUpper(fn.Name)] = fn
	return nil
}

// TableNames returns all table names, sorted.
func (cm *CatalogManager) TableNames() []string {
	return cm.tables.tableNames()
}

// TableCount returns the number of registered tables.
func (cm *CatalogManager) TableCount() int {
	return cm.tables.size()
}

// CacheStats returns table lookup hits and misses since creation.
func (cm *CatalogManager) CacheStats() (hits, misses int64) {
	return cm.tables.metrics.hits.Load(), cm.tables.metrics.misses.Load()
}

func (cm *CatalogManager) TableExists(name string) bool {
	_, ok := cm.tables.getTable(name)
	return ok
}

func (cm *CatalogManager) GetTableColumns(name string) (*schema.Schema, error) {
	sch, ok := cm.tables.getTable(name)
	if !ok {
		return nil, dberror.Newf(dberror.ErrCategoryResolution, dberror.CodeUnknownTable,
			"table '%s' does not exist", name).In("Catalog", "GetTableColumns")
	}
	return sch, nil
}

func (cm *CatalogManager) FunctionExists(name string) bool {
	return cm.GetFunction(name) != nil
}

func (cm *CatalogManager) GetFunction(name string) *FunctionDefinition {
	cm.funcMu.RLock()
	defer cm.funcMu.RUnlock()
	return cm.functions[strings.ToUpper(name)]
}

var _ Catalog = (*CatalogManager)(nil)
