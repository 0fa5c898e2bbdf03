package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeHeaders(t *testing.T) {
	tests := []struct {
		name       string
		candidates [][]string
		want       []string
	}{
		{
			"single row",
			[][]string{{"Name", "Age"}},
			[]string{"Name", "Age"},
		},
		{
			"empty cell gets synthetic name",
			[][]string{{"Name", "", "City"}},
			[]string{"Name", "column_1", "City"},
		},
		{
			"two rows concatenate per column",
			[][]string{{"Region", ""}, {"Name", "Age"}},
			[]string{"RegionName", "Age"},
		},
		{
			"ragged candidate rows",
			[][]string{{"A"}, {"", "B", "C"}},
			[]string{"A", "B", "C"},
		},
		{
			"whitespace runs collapse",
			[][]string{{"First   Name", "  Last\tName  "}},
			[]string{"First Name", "Last Name"},
		},
		{
			"all empty column",
			[][]string{{"", ""}, {"", "x"}},
			[]string{"column_0", "x"},
		},
		{
			"collisions kept",
			[][]string{{"id", "id"}},
			[]string{"id", "id"},
		},
		{
			"no candidates",
			nil,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeHeaders(tt.candidates))
		})
	}
}

func TestSyntheticNames(t *testing.T) {
	assert.Equal(t, []string{"column_0", "column_1", "column_2"}, syntheticNames(3))
	assert.Empty(t, syntheticNames(0))
}

func TestIsEmptyRow(t *testing.T) {
	assert.True(t, isEmptyRow([]string{"", "  ", "\t"}))
	assert.True(t, isEmptyRow(nil))
	assert.False(t, isEmptyRow([]string{"", "x"}))
}
