package agendareader

import "github.com/andrewkroh/go-agenda/agendasql"

// ReadRecords converts a grid of cell text into agenda records. The first
// skip rows (see WithSkipRows) and the header row below them are dropped.
// Cells map positionally onto ExcelColumns; empty cells and cells past the end
// of a short row are absent. Rows with no cells at all are skipped.
func ReadRecords(grid [][]string, opts ...Option) []agendasql.Record {
	cfg := newConfig(opts)

	start := cfg.skipRows + 1
	if start < 0 || start >= len(grid) {
		return nil
	}

	var records []agendasql.Record
	for _, cells := range grid[start:] {
		rec := make(agendasql.Record, len(ExcelColumns))
		for i, name := range ExcelColumns {
			if i < len(cells) && cells[i] != "" {
				rec[name] = agendasql.Text(cells[i])
			}
		}
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records
}
