package agenda

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/andrewkroh/go-agenda/agendasql"
	"github.com/andrewkroh/go-agenda/internal/logging"
)

// SpeakerColumn is the query column that matches sessions by speaker name.
const SpeakerColumn = "speaker"

// QueryColumns lists the columns a lookup may filter on.
var QueryColumns = []string{
	"date",
	"time_start",
	"time_end",
	"title",
	"location",
	"description",
	SpeakerColumn,
}

var (
	// ErrInvalidColumn is returned for a query column outside QueryColumns.
	ErrInvalidColumn = errors.New("Invalid query column")

	// ErrNoMatches is returned when no session matches a lookup.
	ErrNoMatches = errors.New("No matches found for the given query.")
)

// ValidateColumn reports whether column may be used in a lookup.
func ValidateColumn(column string) error {
	if !slices.Contains(QueryColumns, column) {
		return ErrInvalidColumn
	}
	return nil
}

// DisplayRecord is a matched session with the names of its speakers in
// store order.
type DisplayRecord struct {
	Session  agendasql.Record
	Speakers []string
}

// Lookup finds the sessions where column equals value, followed by their
// direct subsessions, and attaches each session's speaker names.
func Lookup(ctx context.Context, tables *agendasql.Tables, column, value string) ([]DisplayRecord, error) {
	sessions, err := FindSessions(ctx, tables, column, value)
	if err != nil {
		return nil, err
	}

	records := make([]DisplayRecord, 0, len(sessions))
	for _, s := range sessions {
		id, ok := s.Get("id").Int64()
		if !ok {
			return nil, fmt.Errorf("session without id: %v", s)
		}
		names, err := SpeakerNames(ctx, tables, id)
		if err != nil {
			return nil, err
		}
		records = append(records, DisplayRecord{Session: s, Speakers: names})
	}

	logging.WithFields(ctx, "column", column, "value", value).
		Info("lookup finished", "matches", len(records))
	return records, nil
}

// FindSessions returns the sessions where column equals value, followed by
// the sessions whose supersession is one of them. Subsessions are expanded
// one level only. ErrNoMatches is returned when the primary filter matches
// nothing.
func FindSessions(ctx context.Context, tables *agendasql.Tables, column, value string) ([]agendasql.Record, error) {
	if err := ValidateColumn(column); err != nil {
		return nil, err
	}

	q := agendasql.Query{Columns: tables.Sessions.Schema().ColumnNames()}
	if column == SpeakerColumn {
		q.Joins = []agendasql.Join{
			agendasql.On(tables.Sessions, tables.SessionsSpeakers, "id", "session_id"),
			agendasql.On(tables.SessionsSpeakers, tables.Speakers, "speaker_id", "id"),
		}
		q.Where = []agendasql.Cond{agendasql.Eq("name", agendasql.Text(value))}
	} else {
		q.Where = []agendasql.Cond{agendasql.Eq(tables.Sessions.Name()+"."+column, agendasql.Text(value))}
	}

	matches, err := tables.Sessions.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("finding sessions by %s: %w", column, err)
	}
	if len(matches) == 0 {
		return nil, ErrNoMatches
	}

	ids := make([]agendasql.Value, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Get("id"))
	}

	subs, err := tables.Sessions.Select(ctx, agendasql.Query{
		Where: []agendasql.Cond{
			agendasql.In("supersession_id", ids...),
			agendasql.NotIn("id", ids...),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("finding subsessions: %w", err)
	}
	return append(matches, subs...), nil
}

// SpeakerNames returns the names of the speakers linked to the session
// with the given id, in store order.
func SpeakerNames(ctx context.Context, tables *agendasql.Tables, sessionID int64) ([]string, error) {
	rows, err := tables.Speakers.Select(ctx, agendasql.Query{
		Columns: []string{"name"},
		Joins: []agendasql.Join{
			agendasql.On(tables.Speakers, tables.SessionsSpeakers, "id", "speaker_id"),
		},
		Where: []agendasql.Cond{agendasql.Eq("session_id", agendasql.Int(sessionID))},
	})
	if err != nil {
		return nil, fmt.Errorf("finding speakers of session %d: %w", sessionID, err)
	}

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, text(r.Get("name")))
	}
	return names, nil
}
