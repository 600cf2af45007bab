package data

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMisaligned is returned when sample and label identifiers do not match one-to-one.
	ErrMisaligned = errors.New("sample and label identifiers are misaligned")
	// ErrDuplicateID is returned for repeated row identifiers or column names.
	ErrDuplicateID = errors.New("duplicate identifier")
	// ErrMalformed is returned for ragged rows, missing or non-numeric values.
	ErrMalformed = errors.New("malformed table")
)

// Table is an immutable sample table: rows are samples keyed by a unique
// identifier, columns are named real-valued features. Values are stored
// row-major.
type Table struct {
	idName  string
	index   []string
	columns []string
	r, c    int
	data    []float64
}

// NewTable copies rows into a new Table. Every row must have len(columns)
// values and no value may be NaN.
func NewTable(idName string, index, columns []string, rows [][]float64) (*Table, error) {
	if len(rows) != len(index) {
		return nil, fmt.Errorf("%w: %d identifiers for %d rows", ErrMalformed, len(index), len(rows))
	}
	if err := checkUnique("row", index); err != nil {
		return nil, err
	}
	if err := checkUnique("column", columns); err != nil {
		return nil, err
	}

	t := &Table{
		idName:  idName,
		index:   append([]string(nil), index...),
		columns: append([]string(nil), columns...),
		r:       len(index),
		c:       len(columns),
		data:    make([]float64, len(index)*len(columns)),
	}
	for i, row := range rows {
		if len(row) != t.c {
			return nil, fmt.Errorf("%w: row %q has %d values, want %d", ErrMalformed, index[i], len(row), t.c)
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: missing value at row %q column %q", ErrMalformed, index[i], columns[j])
			}
		}
		copy(t.data[i*t.c:(i+1)*t.c], row)
	}
	return t, nil
}

func checkUnique(kind string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// IDName is the header of the identifier column.
func (t *Table) IDName() string { return t.idName }

// Rows returns the number of samples.
func (t *Table) Rows() int { return t.r }

// Cols returns the number of features.
func (t *Table) Cols() int { return t.c }

// Index returns a copy of the row identifiers.
func (t *Table) Index() []string { return append([]string(nil), t.index...) }

// Columns returns a copy of the feature names.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// At returns element (i, j).
func (t *Table) At(i, j int) float64 { return t.data[i*t.c+j] }

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	out := make([]float64, t.c)
	copy(out, t.data[i*t.c:(i+1)*t.c])
	return out
}

// Col returns a copy of column j.
func (t *Table) Col(j int) []float64 {
	out := make([]float64, t.r)
	for i := 0; i < t.r; i++ {
		out[i] = t.data[i*t.c+j]
	}
	return out
}

// Values returns the table as a nested slice (copied).
func (t *Table) Values() [][]float64 {
	out := make([][]float64, t.r)
	for i := range out {
		out[i] = t.Row(i)
	}
	return out
}

// DropColumns returns a new Table without the named columns. Names that are
// not present are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	keep := make([]int, 0, t.c)
	for j, c := range t.columns {
		if _, ok := drop[c]; !ok {
			keep = append(keep, j)
		}
	}
	return t.selectColumns(keep)
}

func (t *Table) selectColumns(keep []int) *Table {
	out := &Table{
		idName:  t.idName,
		index:   t.Index(),
		columns: make([]string, len(keep)),
		r:       t.r,
		c:       len(keep),
		data:    make([]float64, t.r*len(keep)),
	}
	for k, j := range keep {
		out.columns[k] = t.columns[j]
	}
	for i := 0; i < t.r; i++ {
		for k, j := range keep {
			out.data[i*out.c+k] = t.data[i*t.c+j]
		}
	}
	return out
}
