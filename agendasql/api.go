package agendasql

import (
	"context"
	"errors"
	"fmt"
)

// Tables holds one handle per agenda table, all opened on the same store
// file.
type Tables struct {
	Sessions         *Table
	Speakers         *Table
	SessionsSpeakers *Table
}

// OpenTables opens (and creates if needed) the three agenda tables in
// dependency order. If any table fails to open, the handles already opened
// are closed.
func OpenTables(ctx context.Context, path string, opts ...Option) (*Tables, error) {
	handles := make(map[string]*Table, 3)
	for _, ts := range TableSchemas() {
		t, err := Open(ctx, path, ts.Name, ts.Schema, opts...)
		if err != nil {
			for _, h := range handles {
				h.Close()
			}
			return nil, fmt.Errorf("opening table %s: %w", ts.Name, err)
		}
		handles[ts.Name] = t
	}

	return &Tables{
		Sessions:         handles[SessionsTable],
		Speakers:         handles[SpeakersTable],
		SessionsSpeakers: handles[SessionsSpeakersTable],
	}, nil
}

// Close closes every handle and returns the combined error.
func (t *Tables) Close() error {
	return errors.Join(
		t.Sessions.Close(),
		t.Speakers.Close(),
		t.SessionsSpeakers.Close(),
	)
}
