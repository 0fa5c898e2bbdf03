package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralkit/strata/pkg/infer"
	"github.com/astralkit/strata/pkg/straerrors"
)

func sampleRows() [][]string {
	return [][]string{
		{"Name", "Age"},
		{"Alice", "25"},
		{"Bob", "30"},
	}
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(sampleRows(), DefaultModelOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age"}, m.ColumnNames())
	assert.Equal(t, 2, m.ColumnCount())
	assert.Equal(t, 2, m.RowCount())

	row, err := m.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "25"}, row)

	rm, err := m.RowMap(1)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Name": "Bob", "Age": "30"}, rm)
}

func TestNewModelValidation(t *testing.T) {
	_, err := NewModel(nil, DefaultModelOptions())
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))

	_, err = NewModel(sampleRows(), ModelOptions{HeaderRows: -1})
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))

	_, err = NewModel(sampleRows(), ModelOptions{HeaderRows: 4})
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))
}

func TestModelRowOutOfBounds(t *testing.T) {
	m, err := NewModel(sampleRows(), DefaultModelOptions())
	require.NoError(t, err)

	_, err = m.Row(5)
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeRange))

	_, err = m.Row(-1)
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeRange))
}

func TestModelColumn(t *testing.T) {
	m, err := NewModel(sampleRows(), DefaultModelOptions())
	require.NoError(t, err)

	ages, err := m.Column("Age")
	require.NoError(t, err)
	assert.Equal(t, []string{"25", "30"}, ages)

	_, err = m.Column("Missing")
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))
}

func TestModelColumnType(t *testing.T) {
	m, err := NewModel(sampleRows(), DefaultModelOptions())
	require.NoError(t, err)

	dt, err := m.ColumnType("Age")
	require.NoError(t, err)
	assert.Equal(t, infer.TypeInteger, dt)

	dt, err = m.ColumnType("Name")
	require.NoError(t, err)
	assert.Equal(t, infer.TypeString, dt)
}

func TestModelNormalization(t *testing.T) {
	rows := [][]string{
		{"A", "B", "C"},
		{"1"},
		{"", "", ""},
		{"2", "3", "4"},
	}
	m, err := NewModel(rows, DefaultModelOptions())
	require.NoError(t, err)

	// Short rows pad; the all-empty row is skipped.
	assert.Equal(t, 2, m.RowCount())
	row, err := m.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "", ""}, row)
}

func TestModelHeaderWiderThanData(t *testing.T) {
	rows := [][]string{
		{"A", "B", "C"},
		{"x", "y"},
	}
	m, err := NewModel(rows, DefaultModelOptions())
	require.NoError(t, err)

	require.Equal(t, 3, m.ColumnCount())

	// Every view pads to the column count, not just random access.
	for row := range m.Rows() {
		assert.Len(t, row, 3)
	}
	for tup := range m.RowTuples() {
		assert.Len(t, tup, 3)
	}

	rm, err := m.RowMap(0)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "x", "B": "y", "C": ""}, rm)

	for rm := range m.RowMaps() {
		assert.Contains(t, rm, "C")
	}
}

func TestModelSyntheticHeaders(t *testing.T) {
	rows := [][]string{
		{"x", "y"},
		{"z", "w"},
	}
	m, err := NewModel(rows, ModelOptions{HeaderRows: 0, SkipEmptyRows: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"column_0", "column_1"}, m.ColumnNames())
	assert.Equal(t, 2, m.RowCount())
}

func TestModelIteration(t *testing.T) {
	m, err := NewModel(sampleRows(), DefaultModelOptions())
	require.NoError(t, err)

	var rows [][]string
	for row := range m.Rows() {
		rows = append(rows, row)
	}
	assert.Equal(t, [][]string{{"Alice", "25"}, {"Bob", "30"}}, rows)

	var maps []map[string]string
	for rm := range m.RowMaps() {
		maps = append(maps, rm)
	}
	require.Len(t, maps, 2)
	assert.Equal(t, "Alice", maps[0]["Name"])

	var tuples [][]string
	for tup := range m.RowTuples() {
		tuples = append(tuples, tup)
	}
	require.Len(t, tuples, 2)
	// Tuples are copies; mutating one leaves the model intact.
	tuples[0][0] = "mutated"
	row, err := m.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "Alice", row[0])
}

func TestTypedView(t *testing.T) {
	rows := [][]string{
		{"Name", "Age", "Score", "Active", "Joined"},
		{"Alice", "25", "91.5", "true", "2023-01-15"},
		{"Bob", "bad", "88", "nope", "not a date"},
	}
	m, err := NewModel(rows, DefaultModelOptions())
	require.NoError(t, err)

	joined := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	view := m.Typed(map[string]infer.DataType{
		"Age":    infer.TypeInteger,
		"Score":  infer.TypeFloat,
		"Active": infer.TypeBoolean,
		"Joined": infer.TypeDate,
		"Name":   infer.TypeString,
	}, Defaults{Int: -1, Float: -1, Bool: false, Date: joined})

	row, err := view.Row(0)
	require.NoError(t, err)
	assert.Equal(t, int64(25), row["Age"])
	assert.Equal(t, 91.5, row["Score"])
	assert.Equal(t, true, row["Active"])
	assert.Equal(t, "Alice", row["Name"])

	// Unconvertible cells take the fallback defaults.
	row, err = view.Row(1)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), row["Age"])
	assert.Equal(t, 88.0, row["Score"])
	assert.Equal(t, false, row["Active"])
	assert.Equal(t, joined, row["Joined"])

	ages, err := view.Column("Age")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(25), int64(-1)}, ages)

	_, err = view.Column("Name2")
	require.Error(t, err)
}
