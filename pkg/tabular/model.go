package tabular

import (
	"iter"

	"github.com/astralkit/strata/pkg/infer"
	"github.com/astralkit/strata/pkg/straerrors"
)

// ModelOptions configures an in-memory Model.
type ModelOptions struct {
	// HeaderRows is the number of leading rows merged into column names.
	HeaderRows int
	// SkipEmptyRows discards rows whose fields are all empty.
	SkipEmptyRows bool
}

// DefaultModelOptions returns one header row and empty-row skipping enabled.
func DefaultModelOptions() ModelOptions {
	return ModelOptions{HeaderRows: 1, SkipEmptyRows: true}
}

// Model is the fully materialized tabular model. It shares the Table
// contract with StreamingTable and additionally supports random access by
// row index and per-column value extraction.
type Model struct {
	names []string
	index map[string]int
	data  [][]string
}

// NewModel materializes rows into a Model, resolving headers, normalizing
// every row to a uniform width, and optionally discarding empty rows.
//
// Returns a parameter error when rows is empty or HeaderRows is negative.
func NewModel(rows [][]string, opts ModelOptions) (*Model, error) {
	if len(rows) == 0 {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "data is required").
			WithDetail("parameter", "rows")
	}
	if opts.HeaderRows < 0 {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "header rows must be >= 0").
			WithDetail("parameter", "header_rows").
			WithDetail("value", opts.HeaderRows)
	}
	if opts.HeaderRows > len(rows) {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "header rows exceed available rows").
			WithDetail("header_rows", opts.HeaderRows).
			WithDetail("rows", len(rows))
	}

	headerData := rows[:opts.HeaderRows]
	data := normalize(rows[opts.HeaderRows:], opts.SkipEmptyRows)

	width := 0
	if len(data) > 0 {
		width = len(data[0])
	}

	var names []string
	if opts.HeaderRows > 0 {
		names = MergeHeaders(headerData)
	}
	// Synthetic names fill out to the data width.
	for len(names) < width {
		names = append(names, syntheticName(len(names)))
	}

	// A header wider than every data row still defines the table width;
	// rows pad out so emitted widths match the column count.
	if len(names) > width {
		for i, row := range data {
			data[i] = padTo(row, len(names))
		}
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	return &Model{names: names, index: index, data: data}, nil
}

// normalize pads every row to the widest observed row and optionally drops
// rows whose fields are all empty.
func normalize(rows [][]string, skipEmpty bool) [][]string {
	maxWidth := 0
	for _, row := range rows {
		if len(row) > maxWidth {
			maxWidth = len(row)
		}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if skipEmpty && isEmptyRow(row) {
			continue
		}
		out = append(out, padTo(row, maxWidth))
	}
	return out
}

// ColumnNames returns the resolved column names.
func (m *Model) ColumnNames() []string {
	return m.names
}

// ColumnCount returns the number of columns.
func (m *Model) ColumnCount() int {
	return len(m.names)
}

// RowCount returns the number of data rows.
func (m *Model) RowCount() int {
	return len(m.data)
}

// ColumnIndex returns the index of a named column.
func (m *Model) ColumnIndex(name string) (int, error) {
	idx, ok := m.index[name]
	if !ok {
		return 0, straerrors.New(straerrors.ErrorTypeParameter, "column name not found").
			WithDetail("name", name)
	}
	return idx, nil
}

// Row returns the row at index as a copy. Returns a range error when the
// index is out of bounds.
func (m *Model) Row(index int) ([]string, error) {
	if index < 0 || index >= len(m.data) {
		return nil, straerrors.New(straerrors.ErrorTypeRange, "row index out of bounds").
			WithDetail("index", index).
			WithDetail("row_count", len(m.data))
	}
	return padTo(m.data[index], len(m.names)), nil
}

// RowMap returns the row at index as a column-name-to-value map.
func (m *Model) RowMap(index int) (map[string]string, error) {
	row, err := m.Row(index)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(row))
	for i, cell := range row {
		out[m.names[i]] = cell
	}
	return out, nil
}

// Column returns every value of a named column in row order.
func (m *Model) Column(name string) ([]string, error) {
	idx, err := m.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(m.data))
	for _, row := range m.data {
		if idx < len(row) {
			values = append(values, row[idx])
		} else {
			values = append(values, "")
		}
	}
	return values, nil
}

// ColumnType profiles a named column and returns its aggregate datatype.
func (m *Model) ColumnType(name string) (infer.DataType, error) {
	values, err := m.Column(name)
	if err != nil {
		return "", err
	}
	return infer.ProfileValues(values, infer.DefaultProfileOptions()), nil
}

// Rows iterates the data rows in order.
func (m *Model) Rows() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for _, row := range m.data {
			if !yield(row) {
				return
			}
		}
	}
}

// RowMaps iterates rows as column-name-to-value maps.
func (m *Model) RowMaps() iter.Seq[map[string]string] {
	return func(yield func(map[string]string) bool) {
		for _, row := range m.data {
			out := make(map[string]string, len(row))
			for i, cell := range row {
				out[m.names[i]] = cell
			}
			if !yield(out) {
				return
			}
		}
	}
}

// RowTuples iterates rows as fixed-width copies safe to retain.
func (m *Model) RowTuples() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for _, row := range m.data {
			tup := make([]string, len(row))
			copy(tup, row)
			if !yield(tup) {
				return
			}
		}
	}
}
