// Package sqlgen generates the agenda schema registry from a declarative
// table configuration (tables.yml).
package sqlgen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration for a SQL generator run.
type Config struct {
	TablesFile  string // Path to tables.yml
	OutputDir   string // Output directory for generated files
	PackageName string // Go package name
}

// Run executes the full SQL generation pipeline.
func Run(cfg Config) error {
	// 1. Load table configuration.
	tablesConfig, err := LoadConfig(cfg.TablesFile)
	if err != nil {
		return fmt.Errorf("loading tables config: %w", err)
	}

	// 2. Resolve columns and references.
	tableDefs := make(map[string]*TableDef, len(tablesConfig.Tables))
	for _, tc := range tablesConfig.Tables {
		tableDefs[tc.Name] = NewTableDef(tc)
	}

	// 3. Topological sort by FK dependencies.
	sortedNames, err := SortTables(tableDefs)
	if err != nil {
		return fmt.Errorf("ordering tables: %w", err)
	}
	sortedTables := make([]*TableDef, 0, len(sortedNames))
	for _, name := range sortedNames {
		sortedTables = append(sortedTables, tableDefs[name])
	}

	// 4. Create output directory.
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// 5. Generate schema.sql.
	schemaSQL := SchemaSQL(sortedTables)
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, "schema.sql"), []byte(schemaSQL), 0o644); err != nil {
		return fmt.Errorf("writing schema.sql: %w", err)
	}

	// 6. Generate tables.go.
	pkgName := cfg.PackageName
	if pkgName == "" {
		pkgName = "agendasql"
	}
	var buf bytes.Buffer
	if err := EmitTablesGo(&buf, pkgName, sortedTables); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, "tables.go"), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing tables.go: %w", err)
	}

	return nil
}
