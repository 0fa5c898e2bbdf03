package dsv

import (
	"github.com/astralkit/strata/pkg/straerrors"
	"github.com/astralkit/strata/pkg/tokenizer"
)

// MinChunkSize is the floor on the streaming read-ahead, bounding per-chunk
// overhead.
const MinChunkSize = 100

// LineSource is a forward-only producer of logical text lines, following
// the scanner idiom. Implementations may additionally implement Restart()
// to support replay.
type LineSource interface {
	Next() bool
	Line() string
	Err() error
}

// StreamOptions configures a RowReader.
type StreamOptions struct {
	Options
	// ChunkSize is the number of lines tokenized per read-ahead batch.
	// Minimum MinChunkSize.
	ChunkSize int
}

// DefaultStreamOptions returns the default tokenizer options with the
// minimum chunk size.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{Options: DefaultOptions(), ChunkSize: MinChunkSize}
}

// RowReader lazily tokenizes a line source into rows, one chunk at a time.
// It never buffers more than ChunkSize rows ahead and consumes the source
// in a single pass. RowReader satisfies the row source contract expected by
// the streaming tabular model.
type RowReader struct {
	src   LineSource
	opts  StreamOptions
	chunk [][]string
	pos   int
	line  int
	row   []string
	err   error
	done  bool
}

// NewRowReader validates the options eagerly and wraps src. Returns a
// parameter error when the delimiter is empty or ChunkSize is below
// MinChunkSize.
func NewRowReader(src LineSource, opts StreamOptions) (*RowReader, error) {
	if src == nil {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "line source is required").
			WithDetail("parameter", "src")
	}
	if opts.Delimiter == "" {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "delimiter must not be empty").
			WithDetail("parameter", "delimiter")
	}
	if opts.ChunkSize < MinChunkSize {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "chunk size below minimum").
			WithDetail("parameter", "chunk_size").
			WithDetail("value", opts.ChunkSize).
			WithDetail("minimum", MinChunkSize)
	}

	return &RowReader{src: src, opts: opts}, nil
}

// Next advances to the next row, refilling the chunk from the line source
// as needed. It returns false at source exhaustion or on the first error.
func (r *RowReader) Next() bool {
	if r.err != nil || r.done {
		return false
	}

	if r.pos >= len(r.chunk) {
		if !r.fill() {
			return false
		}
	}

	r.row = r.chunk[r.pos]
	r.pos++
	return true
}

// Row returns the current row.
func (r *RowReader) Row() []string {
	return r.row
}

// Err returns the first error encountered, if any.
func (r *RowReader) Err() error {
	return r.err
}

// fill tokenizes up to ChunkSize lines into the chunk buffer.
func (r *RowReader) fill() bool {
	lines := make([]string, 0, r.opts.ChunkSize)
	for len(lines) < r.opts.ChunkSize && r.src.Next() {
		lines = append(lines, r.src.Line())
	}
	if err := r.src.Err(); err != nil {
		r.err = straerrors.Wrap(err, straerrors.ErrorTypeFile, "line source failed").
			WithDetail("line", r.line+len(lines))
		return false
	}
	if len(lines) == 0 {
		r.done = true
		return false
	}

	chunk := make([][]string, 0, len(lines))
	for i, line := range lines {
		fields, err := tokenizer.Tokenize(line, r.opts.Options)
		if err != nil {
			r.err = straerrors.Wrap(err, straerrors.ErrorTypeFormat, "malformed line").
				WithDetail("line", r.line+i)
			return false
		}
		chunk = append(chunk, fields)
	}

	r.line += len(lines)
	r.chunk = chunk
	r.pos = 0
	return true
}

// Restart rewinds the reader when the underlying line source supports it.
func (r *RowReader) Restart() error {
	restarter, ok := r.src.(interface{ Restart() error })
	if !ok {
		return straerrors.New(straerrors.ErrorTypeState, "line source cannot be replayed")
	}
	if err := restarter.Restart(); err != nil {
		return straerrors.Wrap(err, straerrors.ErrorTypeState, "line source restart failed")
	}

	r.chunk = nil
	r.pos = 0
	r.line = 0
	r.row = nil
	r.err = nil
	r.done = false
	return nil
}

// SliceLineSource adapts an in-memory line slice to the LineSource
// contract. It is restartable.
type SliceLineSource struct {
	lines []string
	pos   int
}

// NewSliceLineSource wraps lines in a restartable LineSource.
func NewSliceLineSource(lines []string) *SliceLineSource {
	return &SliceLineSource{lines: lines}
}

// Next advances to the next line.
func (s *SliceLineSource) Next() bool {
	if s.pos >= len(s.lines) {
		return false
	}
	s.pos++
	return true
}

// Line returns the current line.
func (s *SliceLineSource) Line() string {
	return s.lines[s.pos-1]
}

// Err always returns nil.
func (s *SliceLineSource) Err() error {
	return nil
}

// Restart rewinds to the first line.
func (s *SliceLineSource) Restart() error {
	s.pos = 0
	return nil
}
