package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"litedb/pkg/catalog/schema"
)

// cacheMetrics tracks lookup counts for observability
type cacheMetrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// tableCache maps lower-cased table names to schemas.
// It is private to the catalog package and only accessed via CatalogManager.
type tableCache struct {
	nameToTable map[string]*schema.Schema
	metrics     cacheMetrics
	mutex       sync.RWMutex
}

func newTableCache() *tableCache {
	return &tableCache{
		nameToTable: make(map[string]*schema.Schema),
	}
}

// addTable registers a schema. It fails if a table with the same name exists.
func (tc *tableCache) addTable(sch *schema.Schema) error {
	if sch == nil {
		return fmt.Errorf("schema cannot be nil")
	}

	key := strings.ToLower(sch.TableName)

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if _, exists := tc.nameToTable[key]; exists {
		return fmt.Errorf("table '%s' already exists", sch.TableName)
	}
	tc.nameToTable[key] = sch
	return nil
}

func (tc *tableCache) removeTable(name string) bool {
	key := strings.ToLower(name)

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if _, exists := tc.nameToTable[key]; !exists {
		return false
	}
	delete(tc.nameToTable, key)
	return true
}

func (tc *tableCache) getTable(name string) (*schema.Schema, bool) {
	tc.mutex.RLock()
	sch, ok := tc.nameToTable[strings.ToLower(name)]
	tc.mutex.RUnlock()

	if ok {
		tc.metrics.hits.Add(1)
	} else {
		tc.metrics.misses.Add(1)
	}
	return sch, ok
}

// tableNames returns the declared names of all tables, sorted.
func (tc *tableCache) tableNames() []string {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()

	names := make([]string, 0, len(tc.nameToTable))
	for _, sch := range tc.nameToTable {
		names = append(names, sch.TableName)
	}
	slices.Sort(names)
	return names
}

func (tc *tableCache) size() int {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()
	return len(tc.nameToTable)
}
