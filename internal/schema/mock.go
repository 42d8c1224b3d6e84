package schema

import (
	"context"
	"fmt"
	"sync"

	"github.com/mlql/mlql/internal/mlqlerr"
)

// MockProvider is an in-memory Provider backed by a name->schema map. It
// stands in for a live engine connection in the translator tests, the
// SQL-string lowering tests, and the CLI's fixture-backed offline mode.
type MockProvider struct {
	mu     sync.RWMutex
	tables map[string]*TableSchema
}

// NewMockProvider returns an empty MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{tables: make(map[string]*TableSchema)}
}

// AddTable registers (or replaces) a table schema.
func (m *MockProvider) AddTable(name string, columns []ColumnSchema) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = &TableSchema{Name: name, Columns: columns}
}

// GetTableSchema implements Provider.
func (m *MockProvider) GetTableSchema(_ context.Context, name string) (*TableSchema, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	table, ok := m.tables[name]
	if !ok {
		return nil, &mlqlerr.TranslateError{
			Kind:    mlqlerr.Schema,
			Message: fmt.Sprintf("unknown table %q", name),
		}
	}
	return table, nil
}
