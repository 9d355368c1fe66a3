package agendasql

import (
	"reflect"
	"strings"
	"testing"
)

func TestCreateTableSQL(t *testing.T) {
	got := CreateTableSQL(SessionsSpeakersTable, SessionsSpeakersSchema)
	want := "CREATE TABLE IF NOT EXISTS sessions_speakers (session_id INTEGER, speaker_id INTEGER, " +
		"PRIMARY KEY (session_id, speaker_id), " +
		"FOREIGN KEY (session_id) REFERENCES sessions(id), " +
		"FOREIGN KEY (speaker_id) REFERENCES speakers(id))"
	if got != want {
		t.Errorf("CreateTableSQL:\n got: %s\nwant: %s", got, want)
	}
}

func TestSelectStatement(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		columns  []string
		query    Query
		wantSQL  string
		wantText string
		wantArgs []any
	}{
		{
			name:     "all_columns",
			table:    "speakers",
			columns:  SpeakersSchema.ColumnNames(),
			wantSQL:  "SELECT speakers.id, speakers.name FROM speakers",
			wantText: "SELECT speakers.id, speakers.name FROM speakers",
			wantArgs: []any{},
		},
		{
			name:    "equality",
			table:   "speakers",
			columns: []string{"id"},
			query: Query{
				Where: []Cond{Eq("name", Text(" Ada O'Neil "))},
			},
			wantSQL:  "SELECT speakers.id FROM speakers WHERE name = ?",
			wantText: "SELECT speakers.id FROM speakers WHERE name = 'Ada O''Neil'",
			wantArgs: []any{"Ada O'Neil"},
		},
		{
			name:    "in_and_not_in",
			table:   "sessions",
			columns: []string{"id", "title"},
			query: Query{
				Where: []Cond{
					In("supersession_id", Int(1), Int(2)),
					NotIn("id", Int(1), Int(2)),
				},
			},
			wantSQL:  "SELECT sessions.id, sessions.title FROM sessions WHERE supersession_id IN (?, ?) AND id NOT IN (?, ?)",
			wantText: "SELECT sessions.id, sessions.title FROM sessions WHERE supersession_id IN (1, 2) AND id NOT IN (1, 2)",
			wantArgs: []any{int64(1), int64(2), int64(1), int64(2)},
		},
		{
			name:    "chained_joins",
			table:   "sessions",
			columns: []string{"id"},
			query: Query{
				Joins: []Join{
					{Left: "sessions", Right: "sessions_speakers", LeftColumn: "id", RightColumn: "session_id"},
					{Left: "sessions_speakers", Right: "speakers", LeftColumn: "speaker_id", RightColumn: "id"},
				},
				Where: []Cond{Eq("name", Text("Ada"))},
			},
			wantSQL: "SELECT sessions.id FROM sessions" +
				" JOIN sessions_speakers ON sessions.id = sessions_speakers.session_id" +
				" JOIN speakers ON sessions_speakers.speaker_id = speakers.id" +
				" WHERE name = ?",
			wantText: "SELECT sessions.id FROM sessions" +
				" JOIN sessions_speakers ON sessions.id = sessions_speakers.session_id" +
				" JOIN speakers ON sessions_speakers.speaker_id = speakers.id" +
				" WHERE name = 'Ada'",
			wantArgs: []any{"Ada"},
		},
		{
			name:     "qualified_column_kept",
			table:    "speakers",
			columns:  []string{"speakers.name"},
			wantSQL:  "SELECT speakers.name FROM speakers",
			wantText: "SELECT speakers.name FROM speakers",
			wantArgs: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := selectStatement(tt.table, tt.columns, tt.query)
			if stmt.SQL != tt.wantSQL {
				t.Errorf("SQL:\n got: %s\nwant: %s", stmt.SQL, tt.wantSQL)
			}
			if stmt.String() != tt.wantText {
				t.Errorf("String():\n got: %s\nwant: %s", stmt.String(), tt.wantText)
			}
			if got := stmt.Args(); !reflect.DeepEqual(got, tt.wantArgs) {
				t.Errorf("Args() = %#v, want %#v", got, tt.wantArgs)
			}
		})
	}
}

func TestInsertStatement(t *testing.T) {
	stmt, err := insertStatement("sessions", SessionsSchema, Record{
		"title":           Text("Achilles' Heel "),
		"date":            Text("06/16/2018"),
		"supersession_id": Null(),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Columns follow schema order, not map order.
	wantSQL := "INSERT INTO sessions (date, title, supersession_id) VALUES (?, ?, ?)"
	if stmt.SQL != wantSQL {
		t.Errorf("SQL:\n got: %s\nwant: %s", stmt.SQL, wantSQL)
	}
	wantText := "INSERT INTO sessions (date, title, supersession_id) VALUES ('06/16/2018', 'Achilles'' Heel', NULL)"
	if stmt.String() != wantText {
		t.Errorf("String():\n got: %s\nwant: %s", stmt.String(), wantText)
	}
	wantArgs := []any{"06/16/2018", "Achilles' Heel", nil}
	if got := stmt.Args(); !reflect.DeepEqual(got, wantArgs) {
		t.Errorf("Args() = %#v, want %#v", got, wantArgs)
	}
}

func TestInsertStatementEmpty(t *testing.T) {
	stmt, err := insertStatement("sessions", SessionsSchema, Record{})
	if err != nil {
		t.Fatal(err)
	}
	if stmt.SQL != "INSERT INTO sessions DEFAULT VALUES" {
		t.Errorf("SQL = %s", stmt.SQL)
	}
}

func TestInsertStatementUnknownColumn(t *testing.T) {
	_, err := insertStatement("speakers", SpeakersSchema, Record{"name": Text("a"), "session_type": Text("Sub"), "bogus": Int(1)})
	if err == nil {
		t.Fatal("expected error for unknown columns")
	}
	if !strings.Contains(err.Error(), "bogus, session_type") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpdateStatement(t *testing.T) {
	stmt, err := updateStatement("sessions", SessionsSchema,
		Record{"title": Text("Simon's talk"), "location": Text("Hall B")},
		Record{"id": Int(42), "date": Text("06/16/2018")},
	)
	if err != nil {
		t.Fatal(err)
	}

	wantSQL := "UPDATE sessions SET title = ?, location = ? WHERE id = ? AND date = ?"
	if stmt.SQL != wantSQL {
		t.Errorf("SQL:\n got: %s\nwant: %s", stmt.SQL, wantSQL)
	}
	wantText := "UPDATE sessions SET title = 'Simon''s talk', location = 'Hall B' WHERE id = 42 AND date = '06/16/2018'"
	if stmt.String() != wantText {
		t.Errorf("String():\n got: %s\nwant: %s", stmt.String(), wantText)
	}
}

func TestUpdateStatementRequiresValuesAndConditions(t *testing.T) {
	if _, err := updateStatement("speakers", SpeakersSchema, Record{}, Record{"id": Int(1)}); err == nil {
		t.Error("expected error for empty SET list")
	}
	if _, err := updateStatement("speakers", SpeakersSchema, Record{"name": Text("x")}, Record{}); err == nil {
		t.Error("expected error for empty WHERE")
	}
}
