package agendasql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	_ "modernc.org/sqlite"
)

// DefaultPath is the store file shared by every table handle unless
// configured otherwise.
const DefaultPath = "interview_test.db"

var (
	// ErrInvalidTableName is returned by Open when the table name is empty.
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrInvalidSchema is returned by Open when the schema has no columns.
	ErrInvalidSchema = errors.New("invalid database schema")
)

// Option configures a Table.
type Option func(*tableConfig)

type tableConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to trace executed statements at debug
// level. Without this option slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *tableConfig) {
		c.logger = l
	}
}

// Table is a handle on one table of the store. Each handle owns its own
// connection; handles on the same file rely on SQLite file locking. A
// Table is not safe for concurrent use.
type Table struct {
	name   string
	schema Schema
	db     *sql.DB
	stmts  *stmtCache
	log    *slog.Logger
}

// Open validates the table definition, connects to the store at path and
// creates the table if it does not exist yet. An existing table is never
// altered to match a changed schema.
func Open(ctx context.Context, path, name string, schema Schema, opts ...Option) (*Table, error) {
	if name == "" {
		return nil, ErrInvalidTableName
	}
	if len(schema.Columns) == 0 {
		return nil, ErrInvalidSchema
	}

	cfg := &tableConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	t := &Table{
		name:   name,
		schema: schema,
		db:     db,
		stmts:  newStmtCache(db),
		log:    cfg.logger.With("table", name),
	}

	if err := t.create(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

// dsn builds the modernc.org/sqlite data source name. Foreign keys are
// enforced so that broken references surface as errors.
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + q.Encode()
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Schema returns the table definition.
func (t *Table) Schema() Schema { return t.schema }

func (t *Table) create(ctx context.Context) error {
	query := CreateTableSQL(t.name, t.schema)
	t.log.Debug("exec", "sql", query)
	if _, err := t.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table %s: %w", t.name, err)
	}
	return nil
}

// Select returns the rows matching q in the store's natural order. Each
// record holds the requested columns with decoded values.
func (t *Table) Select(ctx context.Context, q Query) ([]Record, error) {
	columns := q.Columns
	if len(columns) == 0 {
		columns = t.schema.ColumnNames()
	}

	stmt := selectStatement(t.name, columns, q)
	t.log.Debug("query", "sql", stmt.String())

	rows, err := t.stmts.QueryContext(ctx, stmt.SQL, stmt.Args()...)
	if err != nil {
		return nil, fmt.Errorf("selecting from %s: %w", t.name, err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", t.name, err)
		}

		rec := make(Record, len(columns))
		for i, c := range columns {
			v, err := FromDriver(raw[i])
			if err != nil {
				return nil, fmt.Errorf("column %s.%s: %w", t.name, c, err)
			}
			rec[c] = Decode(v)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("selecting from %s: %w", t.name, err)
	}
	return result, nil
}

// Insert adds item to the table and returns the id assigned to the new row.
// Constraint violations (UNIQUE, FOREIGN KEY) are returned as errors.
func (t *Table) Insert(ctx context.Context, item Record) (int64, error) {
	stmt, err := insertStatement(t.name, t.schema, item)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", t.name, err)
	}
	t.log.Debug("exec", "sql", stmt.String())

	res, err := t.stmts.ExecContext(ctx, stmt.SQL, stmt.Args()...)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", t.name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", t.name, err)
	}
	return id, nil
}

// Update sets values on every row matching all the equality conditions in
// where and returns the number of rows changed.
func (t *Table) Update(ctx context.Context, values, where Record) (int64, error) {
	stmt, err := updateStatement(t.name, t.schema, values, where)
	if err != nil {
		return 0, fmt.Errorf("updating %s: %w", t.name, err)
	}
	t.log.Debug("exec", "sql", stmt.String())

	res, err := t.stmts.ExecContext(ctx, stmt.SQL, stmt.Args()...)
	if err != nil {
		return 0, fmt.Errorf("updating %s: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("updating %s: %w", t.name, err)
	}
	return n, nil
}

// Close releases the table's prepared statements and connection.
func (t *Table) Close() error {
	return errors.Join(t.stmts.close(), t.db.Close())
}
