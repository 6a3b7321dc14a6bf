package domain

import "strings"

// Missing is the cell value used wherever a source cell could not be
// interpreted (suppressed values, failed numeric coercion). It is written
// to persisted CSV as an empty field.
const Missing = ""

// Table is a rectangular view over parsed tabular text: an ordered list of
// column names and the data rows beneath them. Rows shorter than the header
// are padded with Missing at parse time so every accessor below is safe.
// A Table is never mutated after construction; pipeline stages derive new
// tables instead.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NumRows returns the number of data rows (the header is not a data row).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the number of columns in the header.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// ColumnIndex returns the position of the named column, or false when the
// table has no such column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the value at the given 0-based row and column, or Missing
// when the row is shorter than the header.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return Missing
	}
	r := t.Rows[row]
	if col >= len(r) {
		return Missing
	}
	return r[col]
}

// Column returns the full contents of the named column in row order.
// The second return is false when the column does not exist.
func (t *Table) Column(name string) ([]string, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	vals := make([]string, len(t.Rows))
	for i := range t.Rows {
		vals[i] = t.Cell(i, idx)
	}
	return vals, true
}

// Reslice discards the current header and the first skip-1 data rows, then
// promotes data row skip-1 to be the new header. skip counts rows of the
// original raw text, where the old header was row zero. Reslice(0) returns
// the receiver unchanged. Promoted header cells are trimmed, matching what
// parsing the raw text with the skip applied would produce.
func (t *Table) Reslice(skip int) *Table {
	if skip <= 0 {
		return t
	}
	if skip > len(t.Rows) {
		return &Table{}
	}
	header := t.Rows[skip-1]
	cols := make([]string, len(header))
	for i, c := range header {
		cols[i] = strings.TrimSpace(c)
	}
	return &Table{Columns: cols, Rows: t.Rows[skip:]}
}

// RowBounds identifies the inclusive range of data rows, 1-based and
// relative to the table header, that hold real observations.
type RowBounds struct {
	First int `json:"first"`
	Last  int `json:"last"`
}
