package config

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFullDocument(t *testing.T) {
	doc := `
[database]
path = "analytics.db"

[pragma]
budget_rows = 5000
strict = true

[[tables]]
name = "users"
columns = [
  { name = "id", type = "INTEGER" },
  { name = "name", type = "VARCHAR", nullable = true },
]
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.Equal(t, "analytics.db", cfg.DatabasePath)
	require.Equal(t, int64(5000), cfg.Pragma["budget_rows"])
	require.Equal(t, true, cfg.Pragma["strict"])

	require.Len(t, cfg.Tables, 1)
	require.Equal(t, "users", cfg.Tables[0].Name)
	require.Len(t, cfg.Tables[0].Columns, 2)
	require.False(t, cfg.Tables[0].Columns[0].Nullable)
	require.True(t, cfg.Tables[0].Columns[1].Nullable)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, cfg.DatabasePath)
	require.Empty(t, cfg.Tables)
}

func TestParseRejectsUnnamedTable(t *testing.T) {
	doc := `
[[tables]]
columns = [ { name = "id", type = "INTEGER" } ]
`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing its name")
}

func TestMockProviderFromFixtures(t *testing.T) {
	doc := `
[[tables]]
name = "orders"
columns = [
  { name = "id", type = "INTEGER" },
  { name = "city", type = "VARCHAR", nullable = true },
]
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	p := cfg.MockProvider()
	table, err := p.GetTableSchema(context.Background(), "orders")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "city"}, table.ColumnNames())
}
