package agendasql

import (
	"context"
	"database/sql"
)

// stmtCache prepares each distinct statement once per table handle. An
// import issues the same INSERT and SELECT shapes for every row, so only
// the arguments change between calls.
type stmtCache struct {
	db    *sql.DB
	cache map[string]*sql.Stmt
}

func newStmtCache(db *sql.DB) *stmtCache {
	return &stmtCache{db: db, cache: make(map[string]*sql.Stmt)}
}

func (c *stmtCache) stmt(ctx context.Context, query string) (*sql.Stmt, error) {
	if s, ok := c.cache[query]; ok {
		return s, nil
	}
	s, err := c.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache[query] = s
	return s, nil
}

func (c *stmtCache) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	s, err := c.stmt(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.ExecContext(ctx, args...)
}

func (c *stmtCache) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	s, err := c.stmt(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.QueryContext(ctx, args...)
}

// Len reports the number of prepared statements held.
func (c *stmtCache) Len() int { return len(c.cache) }

func (c *stmtCache) close() error {
	var first error
	for q, s := range c.cache {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
		delete(c.cache, q)
	}
	return first
}
