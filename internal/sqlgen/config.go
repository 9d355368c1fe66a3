package sqlgen

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// TablesConfig holds the full table configuration loaded from tables.yml.
type TablesConfig struct {
	Tables []*TableConfig `yaml:"tables"`
}

// TableConfig declares one SQL table.
type TableConfig struct {
	// Name is the SQL table name (e.g. "sessions_speakers").
	Name string `yaml:"name"`

	// Comment describes the table. It becomes the doc comment of the
	// generated schema variable and a comment line in schema.sql.
	Comment string `yaml:"comment"`

	// Columns in declaration order.
	Columns []ColumnConfig `yaml:"columns"`

	// Constraints are raw table constraint clauses such as
	// "PRIMARY KEY (a_id, b_id)". Foreign keys are declared per column.
	Constraints []string `yaml:"constraints"`
}

// ColumnConfig declares one column and its raw SQL type clause.
type ColumnConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	FK   string `yaml:"fk"` // referenced table (e.g. "sessions"); the key is its id column
}

// LoadConfig reads and parses the tables.yml configuration file.
func LoadConfig(path string) (*TablesConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a table configuration. Unknown keys are rejected.
func ParseConfig(r io.Reader) (*TablesConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg TablesConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no tables defined")
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *TablesConfig) validate() error {
	if len(c.Tables) == 0 {
		return errors.New("no tables defined")
	}

	var errs []error
	tables := make(map[string]bool, len(c.Tables))
	for i, tc := range c.Tables {
		if tc.Name == "" {
			errs = append(errs, fmt.Errorf("table %d has no name", i))
			continue
		}
		if tables[tc.Name] {
			errs = append(errs, fmt.Errorf("table %s is defined twice", tc.Name))
		}
		tables[tc.Name] = true

		if len(tc.Columns) == 0 {
			errs = append(errs, fmt.Errorf("table %s has no columns", tc.Name))
		}
		columns := make(map[string]bool, len(tc.Columns))
		for _, col := range tc.Columns {
			if col.Name == "" {
				errs = append(errs, fmt.Errorf("table %s has a column without a name", tc.Name))
				continue
			}
			if columns[col.Name] {
				errs = append(errs, fmt.Errorf("table %s declares column %s twice", tc.Name, col.Name))
			}
			columns[col.Name] = true
		}
	}
	return errors.Join(errs...)
}
