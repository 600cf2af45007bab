package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DefaultLabelColumn is the class column read when none is named.
const DefaultLabelColumn = "Class"

// DefaultIDName names an identifier column whose header is blank, as in a
// CSV written with an unnamed index.
const DefaultIDName = "id"

// frame is a string-typed CSV with its header exactly as written. gota
// renames blank and repeated headers, so columns are addressed by position
// through names and reported to callers through header.
type frame struct {
	df     dataframe.DataFrame
	names  []string
	header []string
}

// col returns the cells of column j.
func (f frame) col(j int) []string { return f.df.Col(f.names[j]).Records() }

// readFrame loads a CSV with a header row, keeping every cell as a string so
// identifiers and values are parsed by us, not guessed.
func readFrame(r io.Reader) (frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return frame{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return frame{}, fmt.Errorf("%w: no header row", ErrMalformed)
	}
	header := append([]string(nil), records[0]...)
	if len(header) < 2 {
		return frame{}, fmt.Errorf("%w: need an identifier column and at least one value column", ErrMalformed)
	}
	if strings.TrimSpace(header[0]) == "" {
		header[0] = DefaultIDName
	}
	for j, name := range header[1:] {
		if strings.TrimSpace(name) == "" {
			return frame{}, fmt.Errorf("%w: column %d has no name", ErrMalformed, j+2)
		}
	}
	if err := checkUnique("column", header); err != nil {
		return frame{}, err
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return frame{}, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}
	f := frame{df: df, names: df.Names(), header: header}
	for i, id := range f.col(0) {
		if strings.TrimSpace(id) == "" {
			return frame{}, fmt.Errorf("%w: row %d has no identifier", ErrMalformed, i+1)
		}
	}
	return f, nil
}

// ReadTable parses a sample table. The first column holds the sample
// identifiers and the remaining columns are numeric features.
func ReadTable(r io.Reader) (*Table, error) {
	f, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	idName, columns := f.header[0], f.header[1:]
	index := f.col(0)

	rows := make([][]float64, len(index))
	for i := range rows {
		rows[i] = make([]float64, len(columns))
	}
	for j, name := range columns {
		for i, s := range f.col(j + 1) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %q column %q: %q is not a number", ErrMalformed, index[i], name, s)
			}
			rows[i][j] = v
		}
	}
	return NewTable(idName, index, columns, rows)
}

// ReadLabels parses a label table. The first column holds the sample
// identifiers; column names the class column. An empty column selects the
// only value column, which must then be unique. Every sample needs a
// non-blank class.
func ReadLabels(r io.Reader, column string) (*Labels, error) {
	f, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	names := f.header
	if column == "" {
		if len(names) != 2 {
			return nil, fmt.Errorf("%w: %d label columns, name one of %v", ErrMalformed, len(names)-1, names[1:])
		}
		column = names[1]
	}
	pos := -1
	for j, n := range names[1:] {
		if n == column {
			pos = j + 1
			break
		}
	}
	if pos < 0 {
		return nil, fmt.Errorf("%w: label column %q not found in %v", ErrMalformed, column, names[1:])
	}

	index, values := f.col(0), f.col(pos)
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%w: sample %q has no %s", ErrMalformed, index[i], column)
		}
	}
	return NewLabels(names[0], column, index, values)
}

// LoadTable reads a sample table from a CSV file.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// LoadLabels reads a label table from a CSV file.
func LoadLabels(path, column string) (*Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := ReadLabels(f, column)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l, nil
}

// WriteTable writes t as CSV, identifier column first. Values are written
// with the shortest representation that round-trips.
func WriteTable(w io.Writer, t *Table) error {
	idName := t.idName
	if idName == "" {
		idName = DefaultIDName
	}
	cols := make([]series.Series, 0, t.c+1)
	cols = append(cols, series.New(t.Index(), series.String, idName))
	for j, name := range t.columns {
		vals := make([]string, t.r)
		for i := 0; i < t.r; i++ {
			vals[i] = strconv.FormatFloat(t.At(i, j), 'g', -1, 64)
		}
		cols = append(cols, series.New(vals, series.String, name))
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}
