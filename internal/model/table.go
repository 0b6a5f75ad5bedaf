package model

import "fmt"

// ColumnKind is the inferred type of a whole column
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
	KindFloat
)

func (k ColumnKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "text"
	}
}

// Numeric reports whether values of this kind can be summed
func (k ColumnKind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// Column describes a named, typed table column
type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Shape is a (rows, columns) pair
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Columns)
}

// Table is an in-memory tabular dataset. Every row holds one raw cell per column.
type Table struct {
	Columns []Column
	Rows    [][]string

	index map[string]int
}

// NewTable builds an empty table with the given columns
func NewTable(columns []Column) *Table {
	t := &Table{Columns: columns}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c.Name] = i
	}
}

// ColumnIndex returns the position of a column, or -1 if absent
func (t *Table) ColumnIndex(name string) int {
	if t.index == nil || len(t.index) != len(t.Columns) {
		t.reindex()
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the table contains the named column
func (t *Table) Has(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns the named column and whether it exists
func (t *Table) Column(name string) (Column, bool) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

// Names returns the column names in table order
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Shape returns the current row and column count
func (t *Table) Shape() Shape {
	return Shape{Rows: len(t.Rows), Columns: len(t.Columns)}
}

// Value returns the raw cell of row r in the named column
func (t *Table) Value(r int, name string) (string, bool) {
	i := t.ColumnIndex(name)
	if i < 0 || r < 0 || r >= len(t.Rows) {
		return "", false
	}
	return t.Rows[r][i], true
}

// SetColumn replaces the named column with the given values, appending it
// when it does not exist yet. len(values) must equal the row count.
func (t *Table) SetColumn(col Column, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %s: got %d values for %d rows", col.Name, len(values), len(t.Rows))
	}

	if i := t.ColumnIndex(col.Name); i >= 0 {
		t.Columns[i] = col
		for r := range t.Rows {
			t.Rows[r][i] = values[r]
		}
		return nil
	}

	t.Columns = append(t.Columns, col)
	t.index[col.Name] = len(t.Columns) - 1
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], values[r])
	}
	return nil
}

// Select returns a new table holding only the named columns, in the given
// order. Missing names are reported by the returned slice.
func (t *Table) Select(names []string) (*Table, []string) {
	var missing []string
	cols := make([]Column, 0, len(names))
	idx := make([]int, 0, len(names))
	for _, n := range names {
		i := t.ColumnIndex(n)
		if i < 0 {
			missing = append(missing, n)
			continue
		}
		cols = append(cols, t.Columns[i])
		idx = append(idx, i)
	}

	out := NewTable(cols)
	out.Rows = make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		sel := make([]string, len(idx))
		for j, i := range idx {
			sel[j] = row[i]
		}
		out.Rows[r] = sel
	}
	return out, missing
}

// Head returns a copy of the table restricted to the first n rows
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	out := NewTable(cols)
	out.Rows = make([][]string, n)
	for r := 0; r < n; r++ {
		out.Rows[r] = append([]string(nil), t.Rows[r]...)
	}
	return out
}
