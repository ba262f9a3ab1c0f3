package gateway

import (
	"errors"
	"fmt"
	"strings"

	"practice-reconciliation/internal/domain"
)

// ErrNoHeader is returned for documents without a header row.
var ErrNoHeader = errors.New("missing header row")

// newTable turns a header and raw rows into a domain table. Rows with only
// blank cells are dropped and short rows are padded with domain.Empty.
func newTable(header []string, rows [][]domain.Value) (*domain.Table, error) {
	if len(header) == 0 {
		return nil, ErrNoHeader
	}

	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	table := domain.NewTable(columnNames(header, width), rows...)
	kept := table.Rows[:0]
	for _, row := range table.Rows {
		if !row.IsBlank() {
			kept = append(kept, row)
		}
	}
	table.Rows = kept
	return table, nil
}

// columnNames names every column up to width. Blank headers become
// "Unnamed: <index>" and repeated headers get a ".1", ".2", ... suffix.
func columnNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[name] {
			base := name
			for n := 1; seen[name]; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
			}
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func textRecord(fields []string) []domain.Value {
	rec := make([]domain.Value, len(fields))
	for i, f := range fields {
		rec[i] = domain.Text(f)
	}
	return rec
}
