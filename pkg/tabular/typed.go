package tabular

import (
	"time"

	"github.com/astralkit/strata/pkg/infer"
	"github.com/astralkit/strata/pkg/straerrors"
)

// Defaults supplies the fallback values used by a TypedView when a cell
// cannot be converted to its declared type. Conversion failures never
// propagate from a typed view; the fallback is substituted instead.
type Defaults struct {
	Bool     bool
	Int      int64
	Float    float64
	Date     time.Time
	Time     time.Time
	Datetime time.Time
	String   string
}

// TypedView is a read-only typed projection of a Model. Each declared
// column converts through the type inference engine; undeclared columns
// pass through as strings.
type TypedView struct {
	model    *Model
	types    map[string]infer.DataType
	defaults Defaults
}

// Typed builds a typed projection of the model against a caller-supplied
// column-to-type map.
func (m *Model) Typed(types map[string]infer.DataType, defaults Defaults) *TypedView {
	return &TypedView{model: m, types: types, defaults: defaults}
}

// ColumnNames returns the underlying column names.
func (v *TypedView) ColumnNames() []string {
	return v.model.ColumnNames()
}

// RowCount returns the number of data rows.
func (v *TypedView) RowCount() int {
	return v.model.RowCount()
}

// Row returns the row at index with every cell converted to its declared
// type. A cell that fails conversion takes the fallback default for that
// type rather than failing the row.
func (v *TypedView) Row(index int) (map[string]interface{}, error) {
	raw, err := v.model.Row(index)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{}, len(raw))
	for i, cell := range raw {
		name := v.model.names[i]
		out[name] = v.convert(cell, v.types[name])
	}
	return out, nil
}

// Column returns every value of a named column converted to its declared
// type.
func (v *TypedView) Column(name string) ([]interface{}, error) {
	raw, err := v.model.Column(name)
	if err != nil {
		return nil, err
	}
	declared, ok := v.types[name]
	if !ok {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "column has no declared type").
			WithDetail("name", name)
	}

	out := make([]interface{}, len(raw))
	for i, cell := range raw {
		out[i] = v.convert(cell, declared)
	}
	return out, nil
}

// convert applies the declared type with the view's fallback defaults.
func (v *TypedView) convert(value string, declared infer.DataType) interface{} {
	switch declared {
	case infer.TypeBoolean:
		b, _ := infer.ToBool(value, v.defaults.Bool)
		return b
	case infer.TypeInteger:
		n, _ := infer.ToInt(value, v.defaults.Int)
		return n
	case infer.TypeFloat:
		f, _ := infer.ToFloat(value, v.defaults.Float)
		return f
	case infer.TypeDate:
		d, _ := infer.ToDate(value, v.defaults.Date)
		return d
	case infer.TypeTime:
		t, _ := infer.ToTime(value, v.defaults.Time)
		return t
	case infer.TypeDatetime:
		dt, _ := infer.ToDatetime(value, v.defaults.Datetime)
		return dt
	case infer.TypeString:
		if value == "" {
			return v.defaults.String
		}
		return value
	default:
		return value
	}
}
