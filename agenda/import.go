// Package agenda imports conference agenda rows into the store and answers
// lookups against it.
//
// Import links every "Sub" row to the most recent "Session" row above it
// and deduplicates speakers by exact (trimmed) name. Lookup returns the
// matching sessions followed by their direct subsessions, each with its
// speaker names.
package agenda

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrewkroh/go-agenda/agendasql"
	"github.com/andrewkroh/go-agenda/internal/logging"
)

// Session types recognized in the session_type column.
const (
	TypeSession = "Session"
	TypeSub     = "Sub"
)

// speakerSeparator splits the speakers cell into names.
const speakerSeparator = ";"

// sessionColumns are the row fields copied into a sessions insert.
var sessionColumns = []string{
	"date",
	"time_start",
	"time_end",
	"title",
	"location",
	"description",
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Sessions        int // session rows inserted
	SpeakersCreated int // speaker rows inserted
	SpeakersReused  int // names resolved to a speaker already in the store
	Links           int // association rows inserted
}

// sessionLink is the id of the most recently inserted "Session" row.
type sessionLink struct {
	id  int64
	set bool
}

func (l sessionLink) value() agendasql.Value {
	if !l.set {
		return agendasql.Null()
	}
	return agendasql.Int(l.id)
}

// next returns the link to use for the rows following one of the given
// type that was inserted with id.
func (l sessionLink) next(sessionType string, id int64) sessionLink {
	if sessionType == TypeSession {
		return sessionLink{id: id, set: true}
	}
	return l
}

// Import writes rows into tables: sessions first, then speakers and the
// session/speaker associations. It stops at the first error; rows written
// before the failure stay in the store.
func Import(ctx context.Context, tables *agendasql.Tables, rows []agendasql.Record) (ImportResult, error) {
	log := logging.WithFields(ctx, "rows", len(rows))

	ids, err := ImportSessions(ctx, tables.Sessions, rows)
	if err != nil {
		return ImportResult{}, err
	}
	log.Info("imported sessions", "count", len(ids))

	res, err := ImportSpeakers(ctx, tables.Speakers, tables.SessionsSpeakers, rows, ids)
	res.Sessions = len(ids)
	if err != nil {
		return res, err
	}
	log.Info("imported speakers",
		"created", res.SpeakersCreated,
		"reused", res.SpeakersReused,
		"links", res.Links)
	return res, nil
}

// ImportSessions inserts one sessions row per input row and returns the new
// ids aligned with rows.
func ImportSessions(ctx context.Context, sessions *agendasql.Table, rows []agendasql.Record) ([]int64, error) {
	ids := make([]int64, 0, len(rows))

	var link sessionLink
	for i, row := range rows {
		item := make(agendasql.Record, len(sessionColumns)+1)
		for _, c := range sessionColumns {
			if v := row.Get(c); !v.IsNull() {
				item[c] = v
			}
		}

		sessionType := text(row.Get("session_type"))
		if sessionType == TypeSub {
			item["supersession_id"] = link.value()
		}

		id, err := sessions.Insert(ctx, item)
		if err != nil {
			return ids, fmt.Errorf("importing row %d: %w", i+1, err)
		}
		ids = append(ids, id)
		link = link.next(sessionType, id)
	}
	return ids, nil
}

type pendingLink struct {
	sessionID int64
	name      string
}

// ImportSpeakers resolves the speaker names of every row to speaker ids,
// creating speakers not yet in the store, and then links them to the
// sessions in sessionIDs, which must be aligned with rows.
func ImportSpeakers(ctx context.Context, speakers, links *agendasql.Table, rows []agendasql.Record, sessionIDs []int64) (ImportResult, error) {
	var res ImportResult
	if len(sessionIDs) != len(rows) {
		return res, fmt.Errorf("have %d session ids for %d rows", len(sessionIDs), len(rows))
	}

	cache := make(map[string]int64)
	var pending []pendingLink

	for i, row := range rows {
		v := row.Get("speakers")
		if v.IsNull() {
			continue
		}

		for _, name := range SplitSpeakers(text(v)) {
			pending = append(pending, pendingLink{sessionID: sessionIDs[i], name: name})
			if _, ok := cache[name]; ok {
				continue
			}

			id, created, err := resolveSpeaker(ctx, speakers, name)
			if err != nil {
				return res, err
			}
			cache[name] = id
			if created {
				res.SpeakersCreated++
			} else {
				res.SpeakersReused++
			}
		}
	}

	for _, p := range pending {
		_, err := links.Insert(ctx, agendasql.Record{
			"session_id": agendasql.Int(p.sessionID),
			"speaker_id": agendasql.Int(cache[p.name]),
		})
		if err != nil {
			return res, fmt.Errorf("linking speaker %q to session %d: %w", p.name, p.sessionID, err)
		}
		res.Links++
	}
	return res, nil
}

// resolveSpeaker returns the id of the speaker called name, inserting it
// when the store has none.
func resolveSpeaker(ctx context.Context, speakers *agendasql.Table, name string) (id int64, created bool, err error) {
	found, err := speakers.Select(ctx, agendasql.Query{
		Columns: []string{"id"},
		Where:   []agendasql.Cond{agendasql.Eq("name", agendasql.Text(name))},
	})
	if err != nil {
		return 0, false, fmt.Errorf("looking up speaker %q: %w", name, err)
	}
	if len(found) > 0 {
		if id, ok := found[0].Get("id").Int64(); ok {
			return id, false, nil
		}
	}

	id, err = speakers.Insert(ctx, agendasql.Record{"name": agendasql.Text(name)})
	if err != nil {
		return 0, false, fmt.Errorf("adding speaker %q: %w", name, err)
	}
	return id, true, nil
}

// SplitSpeakers splits a speakers cell on ";" and trims each name. Empty
// names are dropped.
func SplitSpeakers(s string) []string {
	var names []string
	for _, part := range strings.Split(s, speakerSeparator) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// text returns the display text of v, or "" when v is null.
func text(v agendasql.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}
