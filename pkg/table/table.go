package table

// Table is an in-memory tabular structure with named, ordered columns.
// Rows are slices of cells aligned with Columns; short rows read as null.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// New creates an empty table with the given columns
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		Columns: cols,
		Rows:    make([][]Cell, 0),
	}
}

// NumRows returns the number of rows
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the number of columns
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// ColumnIndex returns the index of a column, or -1 if absent.
// Duplicate column names resolve to the first occurrence.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column exists
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AppendRow appends a row. Rows longer than the column set are truncated;
// shorter rows are padded with null cells.
func (t *Table) AppendRow(cells ...Cell) {
	row := make([]Cell, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = Null()
		}
	}
	t.Rows = append(t.Rows, row)
}

// Cell returns the cell at (row, named column). Out-of-range access and
// unknown columns read as null.
func (t *Table) Cell(row int, column string) Cell {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return Null()
	}
	if idx >= len(t.Rows[row]) {
		return Null()
	}
	return t.Rows[row][idx]
}

// SetCell sets the cell at (row, named column). Unknown columns are a no-op.
func (t *Table) SetCell(row int, column string, c Cell) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return
	}
	t.Rows[row][idx] = c
}

// RenameColumns renames columns according to the alias map (old -> new).
// Columns not present in the map keep their names.
func (t *Table) RenameColumns(aliases map[string]string) {
	for i, c := range t.Columns {
		if canonical, ok := aliases[c]; ok {
			t.Columns[i] = canonical
		}
	}
}

// AddColumn appends a column, filling existing rows with the given cell
func (t *Table) AddColumn(name string, fill Cell) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], fill)
	}
}

// Clone creates a deep copy of the table
func (t *Table) Clone() *Table {
	clone := New(t.Columns...)
	clone.Rows = make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		clone.Rows[i] = make([]Cell, len(row))
		copy(clone.Rows[i], row)
	}
	return clone
}

// Row returns the cells of a row padded to the column count
func (t *Table) Row(i int) []Cell {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	row := make([]Cell, len(t.Columns))
	for j := range row {
		if j < len(t.Rows[i]) {
			row[j] = t.Rows[i][j]
		} else {
			row[j] = Null()
		}
	}
	return row
}
