// Package schema defines the provider contract both lowerings consume to
// learn a table's column names, ordering, and nullability. The core never
// talks to a database directly; it talks to a Provider.
package schema

import "context"

// ColumnSchema is one ordered column of a table: its name, its type as the
// engine's SQL type string, and whether it is nullable.
type ColumnSchema struct {
	Name     string `json:"name"`
	SQLType  string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// TableSchema is the ordered column list of a named table.
type TableSchema struct {
	Name    string         `json:"name"`
	Columns []ColumnSchema `json:"columns"`
}

// ColumnNames returns the ordered column names.
func (t *TableSchema) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Provider resolves a table name to its schema. Implementations return
// *mlqlerr.TranslateError with Kind Schema for unknown tables so both
// lowerings surface the same diagnostic shape.
type Provider interface {
	GetTableSchema(ctx context.Context, name string) (*TableSchema, error)
}
