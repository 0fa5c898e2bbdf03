package tabular

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralkit/strata/pkg/straerrors"
)

func salesModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel([][]string{
		{"Region", "Quarter", "Sales"},
		{"North", "Q1", "100"},
		{"North", "Q2", "150"},
		{"South", "Q1", "80"},
		{"South", "Q2", "120"},
	}, DefaultModelOptions())
	require.NoError(t, err)
	return m
}

func sumAgg(values []string) string {
	total := 0
	for _, v := range values {
		n, _ := strconv.Atoi(v)
		total += n
	}
	return strconv.Itoa(total)
}

func TestPivot(t *testing.T) {
	m := salesModel(t)

	p, err := m.Pivot([]string{"Region"}, "Quarter", "Sales", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Q1", "Q2"}, p.ColumnNames())
	assert.Equal(t, 2, p.RowCount())

	row, err := p.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "100", "150"}, row)

	row, err = p.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"South", "80", "120"}, row)
}

func TestPivotMissingCell(t *testing.T) {
	m, err := NewModel([][]string{
		{"Region", "Quarter", "Sales"},
		{"North", "Q1", "100"},
		{"South", "Q2", "120"},
	}, DefaultModelOptions())
	require.NoError(t, err)

	p, err := m.Pivot([]string{"Region"}, "Quarter", "Sales", nil)
	require.NoError(t, err)

	row, err := p.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "100", ""}, row)
}

func TestPivotDuplicatesRequireAgg(t *testing.T) {
	m, err := NewModel([][]string{
		{"Region", "Quarter", "Sales"},
		{"North", "Q1", "100"},
		{"North", "Q1", "50"},
	}, DefaultModelOptions())
	require.NoError(t, err)

	_, err = m.Pivot([]string{"Region"}, "Quarter", "Sales", nil)
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))

	p, err := m.Pivot([]string{"Region"}, "Quarter", "Sales", sumAgg)
	require.NoError(t, err)
	row, err := p.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "150"}, row)
}

func TestPivotUnknownColumn(t *testing.T) {
	m := salesModel(t)

	_, err := m.Pivot([]string{"Nope"}, "Quarter", "Sales", nil)
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))

	_, err = m.Pivot([]string{"Region"}, "Quarter", "Nope", nil)
	require.Error(t, err)
}

func TestMelt(t *testing.T) {
	m, err := NewModel([][]string{
		{"Name", "Height", "Weight"},
		{"Alice", "170", "60"},
		{"Bob", "180", "80"},
	}, DefaultModelOptions())
	require.NoError(t, err)

	long, err := m.Melt([]string{"Name"}, []string{"Height", "Weight"}, "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "variable", "value"}, long.ColumnNames())
	assert.Equal(t, 4, long.RowCount())

	row, err := long.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Height", "170"}, row)

	row, err = long.Row(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Weight", "80"}, row)
}

func TestMeltCustomNames(t *testing.T) {
	m := salesModel(t)

	long, err := m.Melt([]string{"Region"}, []string{"Sales"}, "measure", "amount")
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "measure", "amount"}, long.ColumnNames())
}

func TestMeltUnknownColumn(t *testing.T) {
	m := salesModel(t)

	_, err := m.Melt([]string{"Region"}, []string{"Nope"}, "", "")
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))
}

func TestGroupBy(t *testing.T) {
	m := salesModel(t)

	g, err := m.GroupBy([]string{"Region"}, []Aggregation{
		{Column: "Sales", Func: sumAgg},
		{Column: "Quarter", Func: func(values []string) string { return strings.Join(values, "+") }},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Sales", "Quarter"}, g.ColumnNames())
	assert.Equal(t, 2, g.RowCount())

	// Groups keep first-seen row order.
	row, err := g.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "250", "Q1+Q2"}, row)

	row, err = g.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"South", "200", "Q1+Q2"}, row)
}

func TestGroupByValidation(t *testing.T) {
	m := salesModel(t)

	_, err := m.GroupBy([]string{"Region"}, nil)
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))

	_, err = m.GroupBy([]string{"Region"}, []Aggregation{{Column: "Sales"}})
	require.Error(t, err)

	_, err = m.GroupBy([]string{"Nope"}, []Aggregation{{Column: "Sales", Func: sumAgg}})
	require.Error(t, err)
}

func TestTransformColumn(t *testing.T) {
	m := salesModel(t)

	upper, err := m.TransformColumn("Region", strings.ToUpper)
	require.NoError(t, err)

	col, err := upper.Column("Region")
	require.NoError(t, err)
	assert.Equal(t, []string{"NORTH", "NORTH", "SOUTH", "SOUTH"}, col)

	// The receiver is untouched.
	col, err = m.Column("Region")
	require.NoError(t, err)
	assert.Equal(t, "North", col[0])
}

func TestTransformColumnValidation(t *testing.T) {
	m := salesModel(t)

	_, err := m.TransformColumn("Region", nil)
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))

	_, err = m.TransformColumn("Nope", strings.ToUpper)
	require.Error(t, err)
}
