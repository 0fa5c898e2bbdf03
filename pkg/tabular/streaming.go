package tabular

import (
	"iter"

	"go.uber.org/zap"

	"github.com/astralkit/strata/pkg/straerrors"
)

// StreamOptions configures a StreamingTable.
type StreamOptions struct {
	// HeaderRows is the number of leading rows merged into column names.
	HeaderRows int
	// SkipFooterRows is the number of trailing rows excluded from the
	// stream. The exclusion uses a fixed-size window; the whole stream is
	// never buffered.
	SkipFooterRows int
	// SkipEmptyRows discards rows whose fields are all empty.
	SkipEmptyRows bool
	// Logger receives structured diagnostics. Nil defaults to a no-op.
	Logger *zap.Logger
}

// DefaultStreamOptions returns one header row, no footer trimming, and
// empty-row skipping enabled.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{HeaderRows: 1, SkipEmptyRows: true}
}

// StreamingTable exposes a row source as tabular data in exactly one
// forward pass. Header rows are consumed at construction; data rows flow
// through a footer window of fixed depth so that the final SkipFooterRows
// rows are never emitted. Rows narrower than the current column count are
// padded on the right; wider rows expand the column set with synthetic
// names, retroactively padding rows still held in the window.
//
// A StreamingTable is not safe for concurrent use.
type StreamingTable struct {
	src    RowSource
	opts   StreamOptions
	logger *zap.Logger

	names  []string
	index  map[string]int
	window [][]string

	// pending holds data rows pulled while resolving headers; they are
	// emitted ahead of the remaining stream.
	pending   [][]string
	exhausted bool
	err       error
}

// NewStreamingTable wraps src, consuming opts.HeaderRows rows to resolve
// column names before any data row is exposed.
//
// Returns a parameter error when src is nil, a count is negative, or the
// source is exhausted before the header rows are satisfied.
func NewStreamingTable(src RowSource, opts StreamOptions) (*StreamingTable, error) {
	if src == nil {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "row source is required").
			WithDetail("parameter", "src")
	}
	if opts.HeaderRows < 0 {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "header rows must be >= 0").
			WithDetail("parameter", "header_rows").
			WithDetail("value", opts.HeaderRows)
	}
	if opts.SkipFooterRows < 0 {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "skip footer rows must be >= 0").
			WithDetail("parameter", "skip_footer_rows").
			WithDetail("value", opts.SkipFooterRows)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &StreamingTable{
		src:    src,
		opts:   opts,
		logger: logger.With(zap.String("component", "streaming_table")),
	}

	if err := t.resolveHeaders(); err != nil {
		return nil, err
	}

	return t, nil
}

// resolveHeaders consumes header rows from the source and establishes the
// column names. With zero header rows, the first data row is pulled to size
// the synthetic names and held for emission.
func (t *StreamingTable) resolveHeaders() error {
	headerData := make([][]string, 0, t.opts.HeaderRows)
	for len(headerData) < t.opts.HeaderRows {
		if !t.src.Next() {
			if err := t.src.Err(); err != nil {
				return straerrors.Wrap(err, straerrors.ErrorTypeParameter, "row source failed while reading headers")
			}
			return straerrors.New(straerrors.ErrorTypeParameter, "row source exhausted before header rows were satisfied").
				WithDetail("header_rows", t.opts.HeaderRows).
				WithDetail("rows_read", len(headerData))
		}
		headerData = append(headerData, t.src.Row())
	}

	if t.opts.HeaderRows > 0 {
		t.names = MergeHeaders(headerData)
	} else {
		// Synthetic names sized from the first observed data row.
		for t.src.Next() {
			row := t.src.Row()
			if t.opts.SkipEmptyRows && isEmptyRow(row) {
				continue
			}
			t.names = syntheticNames(len(row))
			t.pending = append(t.pending, row)
			break
		}
		if err := t.src.Err(); err != nil {
			return straerrors.Wrap(err, straerrors.ErrorTypeParameter, "row source failed while sizing columns")
		}
	}

	t.index = make(map[string]int, len(t.names))
	for i, name := range t.names {
		t.index[name] = i
	}

	t.logger.Debug("headers resolved",
		zap.Int("header_rows", t.opts.HeaderRows),
		zap.Int("column_count", len(t.names)))

	return nil
}

// ColumnNames returns the resolved column names. The slice grows if wider
// rows are observed during iteration.
func (t *StreamingTable) ColumnNames() []string {
	return t.names
}

// ColumnCount returns the current column count.
func (t *StreamingTable) ColumnCount() int {
	return len(t.names)
}

// ColumnIndex returns the index of a named column.
func (t *StreamingTable) ColumnIndex(name string) (int, error) {
	idx, ok := t.index[name]
	if !ok {
		return 0, straerrors.New(straerrors.ErrorTypeParameter, "column name not found").
			WithDetail("name", name)
	}
	return idx, nil
}

// Err returns the first error encountered while streaming, if any. Check it
// after iteration completes.
func (t *StreamingTable) Err() error {
	return t.err
}

// Rows iterates the data rows in source order, honoring footer trimming,
// empty-row skipping, and width reconciliation. Exactly one pass is
// supported; iterating an exhausted table records a state error.
func (t *StreamingTable) Rows() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		if t.exhausted {
			t.err = straerrors.New(straerrors.ErrorTypeState, "stream already consumed; reset before iterating again")
			return
		}
		t.exhausted = true

		stopped := false
		process := func(row []string) bool {
			if t.opts.SkipEmptyRows && isEmptyRow(row) {
				return true
			}
			out := t.reconcile(row)
			t.window = append(t.window, out)
			if len(t.window) <= t.opts.SkipFooterRows {
				return true
			}
			head := t.window[0]
			t.window = t.window[1:]
			return yield(head)
		}

		for _, row := range t.pending {
			if !process(row) {
				stopped = true
				break
			}
		}
		t.pending = nil

		if !stopped {
			for t.src.Next() {
				if !process(t.src.Row()) {
					break
				}
			}
			if err := t.src.Err(); err != nil {
				t.err = straerrors.Wrap(err, straerrors.ErrorTypeFormat, "row source failed")
			}
		}

		// Whatever remains in the window is the trimmed footer.
		t.window = nil
	}
}

// RowMaps iterates rows as column-name-to-value maps.
func (t *StreamingTable) RowMaps() iter.Seq[map[string]string] {
	return func(yield func(map[string]string) bool) {
		for row := range t.Rows() {
			m := make(map[string]string, len(row))
			for i, cell := range row {
				m[t.names[i]] = cell
			}
			if !yield(m) {
				return
			}
		}
	}
}

// RowTuples iterates rows as fixed-width copies safe to retain.
func (t *StreamingTable) RowTuples() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for row := range t.Rows() {
			tup := make([]string, len(row))
			copy(tup, row)
			if !yield(tup) {
				return
			}
		}
	}
}

// Reset restarts the stream from the beginning. It succeeds only when the
// underlying source is restartable; otherwise it returns a state error.
func (t *StreamingTable) Reset() error {
	restarter, ok := t.src.(Restarter)
	if !ok {
		return straerrors.New(straerrors.ErrorTypeState, "row source cannot be replayed")
	}
	if err := restarter.Restart(); err != nil {
		return straerrors.Wrap(err, straerrors.ErrorTypeState, "row source restart failed")
	}

	t.names = nil
	t.index = nil
	t.window = nil
	t.pending = nil
	t.exhausted = false
	t.err = nil

	return t.resolveHeaders()
}

// reconcile returns a copy of row matching the current column count,
// padding short rows and expanding the column set for wide rows. Expansion
// retroactively pads rows still held in the footer window.
func (t *StreamingTable) reconcile(row []string) []string {
	if len(row) > len(t.names) {
		for len(t.names) < len(row) {
			name := syntheticName(len(t.names))
			t.index[name] = len(t.names)
			t.names = append(t.names, name)
		}
		for i, buffered := range t.window {
			t.window[i] = padTo(buffered, len(t.names))
		}
		t.logger.Debug("column count expanded", zap.Int("column_count", len(t.names)))
	}

	return padTo(row, len(t.names))
}

// padTo returns a copy of row right-padded with empty fields to width.
func padTo(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
