package dsv

import (
	"github.com/astralkit/strata/pkg/infer"
	"github.com/astralkit/strata/pkg/tabular"
)

// ColumnProfile describes one column of a profiled row set.
type ColumnProfile struct {
	// Type is the aggregate datatype of the column's values.
	Type infer.DataType `json:"datatype" yaml:"datatype"`
	// Count is the number of data rows contributing to the profile.
	Count int `json:"count" yaml:"count"`
}

// ProfileColumns resolves headers over a materialized row set and
// classifies each column's values, keyed by resolved column name.
func ProfileColumns(rows [][]string, headerRows int) (map[string]ColumnProfile, error) {
	model, err := tabular.NewModel(rows, tabular.ModelOptions{
		HeaderRows:    headerRows,
		SkipEmptyRows: true,
	})
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]ColumnProfile, model.ColumnCount())
	for _, name := range model.ColumnNames() {
		values, err := model.Column(name)
		if err != nil {
			return nil, err
		}
		profiles[name] = ColumnProfile{
			Type:  infer.ProfileValues(values, infer.DefaultProfileOptions()),
			Count: len(values),
		}
	}

	return profiles, nil
}
