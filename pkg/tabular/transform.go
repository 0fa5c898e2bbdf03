package tabular

import (
	"sort"
	"strings"

	"github.com/astralkit/strata/pkg/straerrors"
)

// AggFunc reduces the values collected for one group to a single value.
type AggFunc func(values []string) string

// Aggregation pairs an output column with the function reducing its grouped
// values. GroupBy emits the aggregated columns in the order given.
type Aggregation struct {
	Column string
	Func   AggFunc
}

// groupKeySep joins composite group key parts. A field value containing the
// unit separator would alias two keys; DSV fields do not carry control
// characters in practice.
const groupKeySep = "\x1f"

// Pivot cross-tabulates the model: one output row per distinct combination
// of the index columns, one output column per distinct value of columnsCol,
// filled with the matching valuesCol values. Index combinations appear in
// first-seen row order; the pivoted columns are sorted.
//
// When an index combination holds more than one value for the same pivoted
// column, agg reduces them; with a nil agg that case is a parameter error.
// A nil agg leaves cells with no matching value empty; a non-nil agg is
// applied to every cell, including empty groups.
func (m *Model) Pivot(indexCols []string, columnsCol, valuesCol string, agg AggFunc) (*Model, error) {
	indexIdx, err := m.columnIndexes(indexCols)
	if err != nil {
		return nil, err
	}
	colIdx, err := m.ColumnIndex(columnsCol)
	if err != nil {
		return nil, err
	}
	valIdx, err := m.ColumnIndex(valuesCol)
	if err != nil {
		return nil, err
	}

	type cell struct {
		col string
		val string
	}

	keyOrder := make([]string, 0)
	keyParts := make(map[string][]string)
	groups := make(map[string][]cell)
	hasDuplicates := false

	for _, row := range m.data {
		parts := make([]string, len(indexIdx))
		for i, j := range indexIdx {
			parts[i] = row[j]
		}
		key := strings.Join(parts, groupKeySep)
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
			keyParts[key] = parts
		}
		for _, c := range groups[key] {
			if c.col == row[colIdx] {
				hasDuplicates = true
				break
			}
		}
		groups[key] = append(groups[key], cell{col: row[colIdx], val: row[valIdx]})
	}

	if hasDuplicates && agg == nil {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "duplicate values for pivot key; aggregation function required").
			WithDetail("columns_column", columnsCol).
			WithDetail("values_column", valuesCol)
	}

	colSet := make(map[string]struct{})
	for _, group := range groups {
		for _, c := range group {
			colSet[c.col] = struct{}{}
		}
	}
	pivoted := make([]string, 0, len(colSet))
	for col := range colSet {
		pivoted = append(pivoted, col)
	}
	sort.Strings(pivoted)

	header := make([]string, 0, len(indexCols)+len(pivoted))
	header = append(header, indexCols...)
	header = append(header, pivoted...)

	rows := make([][]string, 0, len(keyOrder)+1)
	rows = append(rows, header)
	for _, key := range keyOrder {
		out := append([]string(nil), keyParts[key]...)
		for _, col := range pivoted {
			var vals []string
			for _, c := range groups[key] {
				if c.col == col {
					vals = append(vals, c.val)
				}
			}
			switch {
			case agg != nil:
				out = append(out, agg(vals))
			case len(vals) > 0:
				out = append(out, vals[0])
			default:
				out = append(out, "")
			}
		}
		rows = append(rows, out)
	}

	return NewModel(rows, ModelOptions{HeaderRows: 1})
}

// Melt unpivots columns into rows (wide to long): each input row yields one
// output row per value variable, carrying the identifier columns plus the
// variable's name and value. Empty varName and valueName default to
// "variable" and "value".
func (m *Model) Melt(idVars, valueVars []string, varName, valueName string) (*Model, error) {
	idIdx, err := m.columnIndexes(idVars)
	if err != nil {
		return nil, err
	}
	valueIdx, err := m.columnIndexes(valueVars)
	if err != nil {
		return nil, err
	}
	if varName == "" {
		varName = "variable"
	}
	if valueName == "" {
		valueName = "value"
	}

	header := make([]string, 0, len(idVars)+2)
	header = append(header, idVars...)
	header = append(header, varName, valueName)

	rows := make([][]string, 0, len(m.data)*len(valueVars)+1)
	rows = append(rows, header)
	for _, row := range m.data {
		for i, j := range valueIdx {
			out := make([]string, 0, len(header))
			for _, k := range idIdx {
				out = append(out, row[k])
			}
			out = append(out, valueVars[i], row[j])
			rows = append(rows, out)
		}
	}

	return NewModel(rows, ModelOptions{HeaderRows: 1})
}

// GroupBy groups rows by the given columns and reduces each aggregation's
// values per group. Groups appear in first-seen row order; the output
// columns are the group columns followed by the aggregations in given order.
func (m *Model) GroupBy(groupCols []string, aggs []Aggregation) (*Model, error) {
	groupIdx, err := m.columnIndexes(groupCols)
	if err != nil {
		return nil, err
	}
	if len(aggs) == 0 {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "at least one aggregation is required").
			WithDetail("parameter", "aggs")
	}
	aggIdx := make([]int, len(aggs))
	for i, agg := range aggs {
		if agg.Func == nil {
			return nil, straerrors.New(straerrors.ErrorTypeParameter, "aggregation function is required").
				WithDetail("column", agg.Column)
		}
		j, err := m.ColumnIndex(agg.Column)
		if err != nil {
			return nil, err
		}
		aggIdx[i] = j
	}

	keyOrder := make([]string, 0)
	keyParts := make(map[string][]string)
	collected := make(map[string][][]string)

	for _, row := range m.data {
		parts := make([]string, len(groupIdx))
		for i, j := range groupIdx {
			parts[i] = row[j]
		}
		key := strings.Join(parts, groupKeySep)
		if _, seen := collected[key]; !seen {
			keyOrder = append(keyOrder, key)
			keyParts[key] = parts
			collected[key] = make([][]string, len(aggs))
		}
		for i, j := range aggIdx {
			collected[key][i] = append(collected[key][i], row[j])
		}
	}

	header := make([]string, 0, len(groupCols)+len(aggs))
	header = append(header, groupCols...)
	for _, agg := range aggs {
		header = append(header, agg.Column)
	}

	rows := make([][]string, 0, len(keyOrder)+1)
	rows = append(rows, header)
	for _, key := range keyOrder {
		out := append([]string(nil), keyParts[key]...)
		for i, agg := range aggs {
			out = append(out, agg.Func(collected[key][i]))
		}
		rows = append(rows, out)
	}

	return NewModel(rows, ModelOptions{HeaderRows: 1})
}

// TransformColumn returns a new model with fn applied to every value of the
// named column. The receiver is not modified.
func (m *Model) TransformColumn(name string, fn func(string) string) (*Model, error) {
	if fn == nil {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "transform function is required").
			WithDetail("parameter", "fn")
	}
	idx, err := m.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(m.data)+1)
	rows = append(rows, append([]string(nil), m.names...))
	for _, row := range m.data {
		out := append([]string(nil), row...)
		out[idx] = fn(out[idx])
		rows = append(rows, out)
	}

	return NewModel(rows, ModelOptions{HeaderRows: 1})
}

// columnIndexes resolves a list of column names, failing on the first
// unknown name.
func (m *Model) columnIndexes(names []string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		j, err := m.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		idx[i] = j
	}
	return idx, nil
}
