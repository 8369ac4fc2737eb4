package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Table is a decoded tabular dataset: ordered headers plus one string map
// per row. Header order is preserved so downstream column-role heuristics
// stay deterministic.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ReadTable picks a parser by file extension and decodes the rows.
// headerRow is 1-based.
func ReadTable(r io.Reader, filename string, headerRow int) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

// pickHeader takes the header row and substitutes "Column N" for blanks.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToTable converts the raw grid into a Table, skipping rows that are
// entirely blank.
func rowsToTable(rows [][]string, headers []string, headerRow int) *Table {
	t := &Table{Headers: headers}
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			m[headers[c]] = v
			if strings.TrimSpace(v) != "" {
				empty = false
			}
		}
		if !empty {
			t.Rows = append(t.Rows, m)
		}
	}
	return t
}

// normalizeCell trims cell text and strips non-breaking spaces.
func normalizeCell(s string) string {
	s = strings.NewReplacer(" ", " ", " ", " ").Replace(s)
	return strings.TrimSpace(s)
}
