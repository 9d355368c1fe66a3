package agendareader

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/andrewkroh/go-agenda/agendasql"
)

const fixture = "testdata/agenda.xls"

func preamble(n int) [][]string {
	grid := make([][]string, n)
	for i := range grid {
		grid[i] = []string{"Conference preamble"}
	}
	return grid
}

func TestReadRecords(t *testing.T) {
	grid := append(preamble(DefaultSkipRows),
		[]string{"Date", "Time Start", "Time End", "Session or Sub-session(Sub)", "Session Title", "Room/Location", "Description", "Speakers"},
		[]string{"06/16/2018", "09:00 AM", "10:00 AM", "Session", "Keynote", "Hall A", "", "Ada Lovelace; Grace Hopper"},
		[]string{"06/16/2018", "09:00 AM", "09:30 AM", "Sub", "Opening"},
		[]string{"", "", "", "", "", "", "", ""},
		nil,
		[]string{"06/16/2018", "", "", "Session", "Lunch", "Patio", "  ", "", "extra column"},
	)

	records := ReadRecords(grid)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d: %v", len(records), records)
	}

	first := records[0]
	if got := first.Get("title"); got != agendasql.Text("Keynote") {
		t.Errorf("title = %v", got)
	}
	if got := first.Get("speakers"); got != agendasql.Text("Ada Lovelace; Grace Hopper") {
		t.Errorf("speakers = %v", got)
	}
	if !first.Get("description").IsNull() {
		t.Errorf("empty description should be absent, got %v", first.Get("description"))
	}

	second := records[1]
	if got := second.Get("session_type"); got != agendasql.Text("Sub") {
		t.Errorf("session_type = %v", got)
	}
	if _, ok := second["speakers"]; ok {
		t.Error("short row should not have speakers")
	}

	// Whitespace-only cells are kept; the codec trims them on insert.
	if got := records[2].Get("description"); got != agendasql.Text("  ") {
		t.Errorf("description = %q", got)
	}
}

func TestReadRecordsSkipRows(t *testing.T) {
	grid := [][]string{
		{"header"},
		{"06/17/2018", "", "", "Session", "Closing"},
	}

	records := ReadRecords(grid, WithSkipRows(0))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0].Get("title"); got != agendasql.Text("Closing") {
		t.Errorf("title = %v", got)
	}

	if got := ReadRecords(grid); got != nil {
		t.Errorf("grid shorter than preamble should yield no records, got %v", got)
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "agenda.xls")
	wrongExt := filepath.Join(dir, "agenda.xlsx")
	for _, p := range []string{good, wrongExt} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "valid", path: good, want: nil},
		{name: "missing", path: filepath.Join(dir, "missing.xls"), want: ErrInvalidPath},
		{name: "directory", path: dir, want: ErrInvalidPath},
		{name: "wrong_extension", path: wrongExt, want: ErrInvalidFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePath(tt.path); !errors.Is(err, tt.want) {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, err, tt.want)
			}
		})
	}
}

func TestValidatePathFS(t *testing.T) {
	fsys := fstest.MapFS{
		"agenda.xls": {Data: []byte("x")},
		"notes.txt":  {Data: []byte("x")},
	}

	if err := ValidatePath("agenda.xls", WithFS(fsys)); err != nil {
		t.Errorf("agenda.xls: %v", err)
	}
	if err := ValidatePath("notes.txt", WithFS(fsys)); !errors.Is(err, ErrInvalidFileName) {
		t.Errorf("notes.txt: got %v, want ErrInvalidFileName", err)
	}
	if err := ValidatePath("absent.xls", WithFS(fsys)); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("absent.xls: got %v, want ErrInvalidPath", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read("missing.xls", WithFS(fstest.MapFS{})); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}

func TestReadMalformedWorkbook(t *testing.T) {
	fsys := fstest.MapFS{
		"agenda.xls": {Data: []byte("plain text, not an OLE2 compound file")},
	}
	_, err := Read("agenda.xls", WithFS(fsys))
	if err == nil {
		t.Fatal("expected error for a malformed workbook")
	}
}

func TestRead(t *testing.T) {
	records, err := Read(fixture)
	if err != nil {
		t.Fatal(err)
	}

	// The blank row between "Q and A" and "Lunch" is skipped.
	var titles []string
	for _, r := range records {
		titles = append(titles, r.Get("title").String())
	}
	want := []string{"Opening Keynote", "Q and A", "Lunch", "Compilers", "Turing's Machines"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("titles = %q, want %q", titles, want)
	}

	keynote := records[0]
	for col, want := range map[string]string{
		"date":         "06/16/2018",
		"time_start":   "09:00 AM",
		"time_end":     "10:00 AM",
		"session_type": "Session",
		"location":     "Hall A",
		"description":  "Welcome to the conference.",
		"speakers":     "Ada Lovelace; Grace Hopper",
	} {
		if got := keynote.Get(col); got != agendasql.Text(want) {
			t.Errorf("%s = %q, want %q", col, got, want)
		}
	}

	if got := records[1].Get("session_type"); got != agendasql.Text("Sub") {
		t.Errorf("Q and A session_type = %v", got)
	}
	if !records[1].Get("description").IsNull() {
		t.Errorf("Q and A description should be absent, got %v", records[1].Get("description"))
	}

	// Lunch has an explicit blank description cell and no speakers cell.
	lunch := records[2]
	if !lunch.Get("description").IsNull() || !lunch.Get("speakers").IsNull() {
		t.Errorf("Lunch should have no description or speakers: %v", lunch)
	}

	if got := records[3].Get("description"); got != agendasql.Text("Grace's talk") {
		t.Errorf("Compilers description = %q", got)
	}
}

func TestReadFS(t *testing.T) {
	fsys := os.DirFS("testdata")
	if err := ValidatePath("agenda.xls", WithFS(fsys)); err != nil {
		t.Fatal(err)
	}
	records, err := Read("agenda.xls", WithFS(fsys))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 5 {
		t.Errorf("expected 5 records, got %d", len(records))
	}
}

func TestReadGrid(t *testing.T) {
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatal(err)
	}

	grid, err := readGrid(data, newConfig(nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 21 {
		t.Fatalf("expected rows 0 through 20, got %d rows", len(grid))
	}

	if got := grid[0][0]; got != "Conference Agenda" {
		t.Errorf("grid[0][0] = %q", got)
	}
	// Rows with no cells in the sheet come back as nil.
	for _, i := range []int{1, 13, 17} {
		if grid[i] != nil {
			t.Errorf("grid[%d] = %q, want nil", i, grid[i])
		}
	}
	if got := grid[DefaultSkipRows]; len(got) != len(ExcelColumns) || got[7] != "Speakers" {
		t.Errorf("header row = %q", got)
	}
	if got := grid[18][6]; got != "" {
		t.Errorf("blank cell = %q, want empty", got)
	}
}

func TestReadSheetOutOfRange(t *testing.T) {
	for _, sheet := range []int{1, -1} {
		_, err := Read(fixture, WithSheet(sheet))
		if err == nil {
			t.Fatalf("WithSheet(%d): expected error", sheet)
		}
		if !strings.Contains(err.Error(), "workbook has 1") {
			t.Errorf("WithSheet(%d): unexpected error %v", sheet, err)
		}
	}
}
