package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlql/mlql/internal/mlqlerr"
)

// LiveProvider resolves table schemas against an embedded engine's catalog
// over a shared *sql.DB handle. It issues a single read-only catalog query
// per GetTableSchema call; serializing access to a non-thread-safe handle
// is the caller's responsibility.
type LiveProvider struct {
	db *sql.DB
}

// NewLiveProvider wraps an already-open connection handle. The provider
// does not own the handle and never closes it.
func NewLiveProvider(db *sql.DB) *LiveProvider {
	return &LiveProvider{db: db}
}

// GetTableSchema implements Provider by reading the engine's table_info
// catalog, preserving the catalog's declared column order.
func (p *LiveProvider) GetTableSchema(ctx context.Context, name string) (*TableSchema, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT name, type, "notnull"
		FROM pragma_table_info(?)
		ORDER BY cid
	`, name)
	if err != nil {
		return nil, &mlqlerr.ExecutionError{
			Kind:    mlqlerr.Database,
			Message: fmt.Sprintf("reading catalog for table %q", name),
			Cause:   err,
		}
	}
	defer rows.Close()

	table := &TableSchema{Name: name}
	for rows.Next() {
		var colName, colType string
		var notNull int
		if err := rows.Scan(&colName, &colType, &notNull); err != nil {
			return nil, &mlqlerr.ExecutionError{
				Kind:    mlqlerr.Database,
				Message: fmt.Sprintf("scanning catalog row for table %q", name),
				Cause:   err,
			}
		}
		table.Columns = append(table.Columns, ColumnSchema{
			Name:     colName,
			SQLType:  colType,
			Nullable: notNull == 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &mlqlerr.ExecutionError{
			Kind:    mlqlerr.Database,
			Message: fmt.Sprintf("reading catalog for table %q", name),
			Cause:   err,
		}
	}

	if len(table.Columns) == 0 {
		return nil, &mlqlerr.TranslateError{
			Kind:    mlqlerr.Schema,
			Message: fmt.Sprintf("unknown table %q", name),
		}
	}
	return table, nil
}
