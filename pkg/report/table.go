// Package report renders a tabular result set into the three export
// encodings served as downloads: delimited text (CSV), a spreadsheet
// (XLSX) and a Markdown-style narrative document.
package report

// Table is a column-ordered result set. Cells are nil, string, integer,
// float64 or time.Time values; nil marks a missing value (for example a
// state that has no statistics in the comprehensive left join).
type Table struct {
	Columns []string
	Rows    [][]any
}

// IsEmpty reports whether the table holds no rows.
func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

// hasColumn reports whether the named column is present.
func (t Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// columnIndex returns the position of the named column, or -1.
func (t Table) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
