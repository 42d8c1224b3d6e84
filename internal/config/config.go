// Package config loads the mlql CLI configuration: database location,
// default pragma options, and schema fixtures for offline use. The file is
// TOML; every key is optional.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mlql/mlql/internal/schema"
)

// configFile is the top-level TOML document.
type configFile struct {
	Database tomlDatabase   `toml:"database"`
	Pragma   map[string]any `toml:"pragma"`
	Tables   []tomlTable    `toml:"tables"`
}

// tomlDatabase maps [database].
type tomlDatabase struct {
	Path string `toml:"path"`
}

// tomlTable maps one [[tables]] entry, a schema fixture used when no live
// database is configured.
type tomlTable struct {
	Name    string       `toml:"name"`
	Columns []tomlColumn `toml:"columns"`
}

type tomlColumn struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	Nullable bool   `toml:"nullable"`
}

// Config is the loaded CLI configuration.
type Config struct {
	// DatabasePath is the embedded engine's database file; empty means no
	// live connection, in which case Tables supplies the schema.
	DatabasePath string
	// Pragma holds the default program options decoded from the file. Nothing
	// in this package or the CLI merges them into a program's own pragma block.
	Pragma map[string]any
	// Tables are schema fixtures for offline lowering.
	Tables []schema.TableSchema
}

// Load reads and decodes the TOML configuration at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open file %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a TOML configuration document from r.
func Parse(r io.Reader) (*Config, error) {
	var cf configFile
	if _, err := toml.NewDecoder(r).Decode(&cf); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg := &Config{
		DatabasePath: cf.Database.Path,
		Pragma:       cf.Pragma,
	}
	for _, t := range cf.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("config: a [[tables]] entry is missing its name")
		}
		table := schema.TableSchema{Name: t.Name}
		for _, c := range t.Columns {
			if c.Name == "" {
				return nil, fmt.Errorf("config: table %q has a column without a name", t.Name)
			}
			table.Columns = append(table.Columns, schema.ColumnSchema{
				Name:     c.Name,
				SQLType:  c.Type,
				Nullable: c.Nullable,
			})
		}
		cfg.Tables = append(cfg.Tables, table)
	}
	return cfg, nil
}

// MockProvider builds a schema provider from the configured table fixtures.
func (c *Config) MockProvider() *schema.MockProvider {
	p := schema.NewMockProvider()
	for _, t := range c.Tables {
		p.AddTable(t.Name, t.Columns)
	}
	return p
}
