// Package agendareader loads conference agenda spreadsheets into records
// ready for import.
//
// The primary entry point is [Read], which accepts the path of a legacy
// Excel workbook (.xls) and returns one [agendasql.Record] per agenda row.
// The workbook layout is fixed: a preamble of [DefaultSkipRows] rows, a
// header row, then one row per session whose cells map positionally onto
// [ExcelColumns]. [ReadRecords] applies the same mapping to an in-memory grid.
//
// The reader uses [io/fs.FS] for filesystem abstraction. By default it
// reads from the operating system.
package agendareader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/extrame/xls"

	"github.com/andrewkroh/go-agenda/agendasql"
)

// Extension is the only spreadsheet file extension accepted by Read.
const Extension = ".xls"

// DefaultSkipRows is the number of preamble rows above the header row.
const DefaultSkipRows = 14

// ExcelColumns names the spreadsheet columns in positional order.
var ExcelColumns = []string{
	"date",
	"time_start",
	"time_end",
	"session_type",
	"title",
	"location",
	"description",
	"speakers",
}

var (
	// ErrInvalidPath is returned when the input is not a regular file.
	ErrInvalidPath = errors.New("Provided an invalid path")

	// ErrInvalidFileName is returned when the input does not have the
	// .xls extension.
	ErrInvalidFileName = errors.New("Invalid xls file name")
)

// Option configures the behavior of Read and ReadRecords.
type Option func(*config)

type config struct {
	fsys     fs.FS
	skipRows int
	sheet    int
	charset  string
}

// WithFS provides a custom filesystem for reading the workbook. When set,
// the path argument to Read is interpreted relative to this filesystem.
func WithFS(fsys fs.FS) Option {
	return func(c *config) {
		c.fsys = fsys
	}
}

// WithSkipRows overrides the number of preamble rows skipped before the
// header row.
func WithSkipRows(n int) Option {
	return func(c *config) {
		c.skipRows = n
	}
}

// WithSheet selects the worksheet to read by index. The first sheet is
// read by default.
func WithSheet(i int) Option {
	return func(c *config) {
		c.sheet = i
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		skipRows: DefaultSkipRows,
		charset:  "utf-8",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ValidatePath checks that path names an existing regular file with the
// .xls extension.
func ValidatePath(path string, opts ...Option) error {
	cfg := newConfig(opts)

	var info fs.FileInfo
	var err error
	if cfg.fsys != nil {
		info, err = fs.Stat(cfg.fsys, path)
	} else {
		info, err = os.Stat(path)
	}
	if err != nil || !info.Mode().IsRegular() {
		return ErrInvalidPath
	}

	if filepath.Ext(path) != Extension {
		return ErrInvalidFileName
	}
	return nil
}

// Read loads the agenda rows from the workbook at path.
func Read(path string, opts ...Option) ([]agendasql.Record, error) {
	cfg := newConfig(opts)

	var data []byte
	var err error
	if cfg.fsys != nil {
		data, err = fs.ReadFile(cfg.fsys, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	grid, err := readGrid(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return ReadRecords(grid, opts...), nil
}

// readGrid parses an .xls workbook and returns the cells of the configured
// sheet, one slice per row. The parser panics on some malformed inputs;
// those panics are returned as errors.
func readGrid(data []byte, cfg *config) (grid [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, fmt.Errorf("malformed workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), cfg.charset)
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("no workbook stream found")
	}

	if cfg.sheet < 0 || cfg.sheet >= wb.NumSheets() {
		return nil, fmt.Errorf("no sheet %d (workbook has %d)", cfg.sheet, wb.NumSheets())
	}
	sheet := wb.GetSheet(cfg.sheet)

	grid = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		grid = append(grid, rowCells(sheet, i))
	}
	return grid, nil
}

// rowCells returns the first len(ExcelColumns) cells of row i, or nil when
// the sheet has no record for that row. WorkSheet.Row dereferences the row
// without checking, so a missing row surfaces as a panic.
func rowCells(sheet *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()

	row := sheet.Row(i)
	cells = make([]string, len(ExcelColumns))
	for j := range cells {
		cells[j] = row.Col(j)
	}
	return cells
}
