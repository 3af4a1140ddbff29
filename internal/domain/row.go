package domain

// Row is one record of an imported inventory: an ordered mapping from column
// name (exactly as it appeared in the source, after trimming) to a raw cell
// value. Column order is preserved because identity extraction honors the
// row's own column order, not the alias list order.
type Row struct {
	Columns []string         `json:"columns"`
	Cells   map[string]Value `json:"cells"`
}

// NewRow creates an empty row
func NewRow() Row {
	return Row{Cells: make(map[string]Value)}
}

// Set stores a cell, tracking first-seen column order
func (r *Row) Set(column string, v Value) {
	if r.Cells == nil {
		r.Cells = make(map[string]Value)
	}
	if _, exists := r.Cells[column]; !exists {
		r.Columns = append(r.Columns, column)
	}
	r.Cells[column] = v
}

// Get returns the cell for a column, or the absent value
func (r Row) Get(column string) Value {
	if r.Cells == nil {
		return Absent()
	}
	v, ok := r.Cells[column]
	if !ok {
		return Absent()
	}
	return v
}

// IsEmpty reports whether every cell in the row is blank.
// Header-only and padding rows are discarded before resolution.
func (r Row) IsEmpty() bool {
	for _, v := range r.Cells {
		if !v.IsBlank() {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the row for provenance records
func (r Row) Clone() Row {
	out := Row{
		Columns: make([]string, len(r.Columns)),
		Cells:   make(map[string]Value, len(r.Cells)),
	}
	copy(out.Columns, r.Columns)
	for k, v := range r.Cells {
		out.Cells[k] = v
	}
	return out
}
