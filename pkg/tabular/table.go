// Package tabular exposes delimiter-separated rows as tabular data, either
// fully materialized with random access or as a forward-only stream with
// bounded memory.
//
// Both models share one contract: uniform row width, unique non-empty column
// names, and row iteration with map and tuple views. The streaming model
// additionally merges multi-row headers, reconciles rows of varying width,
// skips empty rows, and trims trailing footer rows using a fixed-size window.
package tabular

import "iter"

// Table is the shared contract between the in-memory and streaming models.
// Both implement it independently rather than sharing an implementation.
type Table interface {
	// ColumnNames returns the resolved column names, unique and non-empty.
	ColumnNames() []string
	// ColumnCount returns the current number of columns. It never
	// decreases once observed; it only grows to accommodate wider rows.
	ColumnCount() int
	// Rows iterates rows in source order. Every yielded row has length
	// equal to ColumnCount at the time of emission.
	Rows() iter.Seq[[]string]
	// RowMaps iterates rows as column-name-to-value maps.
	RowMaps() iter.Seq[map[string]string]
	// RowTuples iterates rows as fixed-width copies safe to retain.
	RowTuples() iter.Seq[[]string]
}

// RowSource is a forward-only position over a row producer. It follows the
// scanner idiom: Next advances and reports whether a row is available, Row
// returns the current row, and Err reports the first error encountered.
type RowSource interface {
	Next() bool
	Row() []string
	Err() error
}

// Restarter is implemented by row sources that can be replayed from the
// beginning, such as file-backed readers that reopen their input.
type Restarter interface {
	Restart() error
}

// SliceRowSource adapts a materialized row set to the RowSource contract.
// It is restartable.
type SliceRowSource struct {
	rows [][]string
	pos  int
}

// NewSliceRowSource wraps rows in a restartable RowSource.
func NewSliceRowSource(rows [][]string) *SliceRowSource {
	return &SliceRowSource{rows: rows}
}

// Next advances to the next row.
func (s *SliceRowSource) Next() bool {
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

// Row returns the current row.
func (s *SliceRowSource) Row() []string {
	return s.rows[s.pos-1]
}

// Err always returns nil; a slice source cannot fail.
func (s *SliceRowSource) Err() error {
	return nil
}

// Restart rewinds to the first row.
func (s *SliceRowSource) Restart() error {
	s.pos = 0
	return nil
}

// isEmptyRow reports whether every field is empty after trimming.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if trimmed(cell) != "" {
			return false
		}
	}
	return true
}

func trimmed(s string) string {
	start := 0
	end := len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
