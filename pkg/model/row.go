// pkg/model/row.go
package model

// Row is a single CSV record: an ordered mapping from column name to
// string value. Column order is the order in which columns were first
// set, which for rows read from disk is the file's header order.
type Row struct {
	columns []string
	values  map[string]string
}

// NewRow creates an empty row
func NewRow() *Row {
	return &Row{
		columns: make([]string, 0),
		values:  make(map[string]string),
	}
}

// Set assigns a value to a column, appending the column to the row's
// column order on first use
func (r *Row) Set(column, value string) {
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the value for a column, or the empty string if the column
// is not present
func (r *Row) Get(column string) string {
	return r.values[column]
}

// Has reports whether the row contains a column
func (r *Row) Has(column string) bool {
	_, exists := r.values[column]
	return exists
}

// Columns returns the row's columns in insertion order
func (r *Row) Columns() []string {
	return r.columns
}

// Values returns the row's values in column order
func (r *Row) Values() []string {
	values := make([]string, len(r.columns))
	for i, col := range r.columns {
		values[i] = r.values[col]
	}
	return values
}

// Len returns the number of columns in the row
func (r *Row) Len() int {
	return len(r.columns)
}

// Clone returns a deep copy of the row
func (r *Row) Clone() *Row {
	clone := &Row{
		columns: make([]string, len(r.columns)),
		values:  make(map[string]string, len(r.values)),
	}
	copy(clone.columns, r.columns)
	for col, val := range r.values {
		clone.values[col] = val
	}
	return clone
}
