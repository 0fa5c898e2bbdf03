// Package textfile provides line-oriented file sources for the DSV parsing
// layer: scoped reading with header/footer skipping at the line level, BOM
// stripping, and transparent gzip decompression. File sources are
// restartable, which makes file-backed streams replayable.
package textfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/astralkit/strata/pkg/straerrors"
)

const utf8BOM = "\uFEFF"

// maxLineSize bounds a single logical line at 16 MiB.
const maxLineSize = 16 * 1024 * 1024

// Options configures a FileSource.
type Options struct {
	// SkipHeaderRows is the number of leading lines discarded before any
	// line is exposed.
	SkipHeaderRows int
	// SkipFooterRows is the number of trailing lines withheld. The skip
	// uses a bounded window; the file is never fully buffered.
	SkipFooterRows int
}

// FileSource reads a text file line by line, following the scanner idiom.
// Files ending in .gz are decompressed transparently. The source owns its
// file handle; Close releases it.
type FileSource struct {
	path string
	opts Options

	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner

	// window withholds the trailing SkipFooterRows lines.
	window []string
	// bomPending is set until the physically first line has been read.
	bomPending bool
	line       string
	err        error
	closed     bool
}

// Open opens path as a line source, discarding the configured header lines
// immediately.
func Open(path string, opts Options) (*FileSource, error) {
	if opts.SkipHeaderRows < 0 || opts.SkipFooterRows < 0 {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "skip rows must be >= 0").
			WithDetail("skip_header_rows", opts.SkipHeaderRows).
			WithDetail("skip_footer_rows", opts.SkipFooterRows)
	}

	s := &FileSource{path: path, opts: opts}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileSource) open() error {
	file, err := os.Open(s.path)
	if err != nil {
		return straerrors.Wrap(err, straerrors.ErrorTypeFile, "failed to open file").
			WithDetail("path", s.path)
	}

	var reader io.Reader = file
	if strings.HasSuffix(s.path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return straerrors.Wrap(err, straerrors.ErrorTypeFile, "failed to open gzip stream").
				WithDetail("path", s.path)
		}
		s.gz = gz
		reader = gz
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	s.file = file
	s.scanner = scanner
	s.window = nil
	s.bomPending = true
	s.line = ""
	s.err = nil
	s.closed = false

	// Discard header lines up front.
	for i := 0; i < s.opts.SkipHeaderRows; i++ {
		if _, ok := s.scanLine(); !ok {
			break
		}
	}

	// Prime the footer window so Next can emit the oldest line once a
	// newer one displaces it.
	for len(s.window) < s.opts.SkipFooterRows {
		line, ok := s.scanLine()
		if !ok {
			break
		}
		s.window = append(s.window, line)
	}

	return nil
}

// scanLine reads one physical line, stripping the BOM from the first.
func (s *FileSource) scanLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	line := s.scanner.Text()
	if s.bomPending {
		line = strings.TrimPrefix(line, utf8BOM)
		s.bomPending = false
	}
	return line, true
}

// Next advances to the next line, honoring the footer window.
func (s *FileSource) Next() bool {
	if s.err != nil || s.closed || s.scanner == nil {
		return false
	}

	incoming, ok := s.scanLine()
	if !ok {
		if err := s.scanner.Err(); err != nil {
			s.err = straerrors.Wrap(err, straerrors.ErrorTypeFile, "read failed").
				WithDetail("path", s.path)
		}
		return false
	}

	if s.opts.SkipFooterRows == 0 {
		s.line = incoming
		return true
	}

	s.window = append(s.window, incoming)
	s.line = s.window[0]
	s.window = s.window[1:]
	return true
}

// Line returns the current line.
func (s *FileSource) Line() string {
	return s.line
}

// Err returns the first error encountered, if any.
func (s *FileSource) Err() error {
	return s.err
}

// Close releases the underlying file handle.
func (s *FileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.gz != nil {
		_ = s.gz.Close()
		s.gz = nil
	}
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		if err != nil {
			return straerrors.Wrap(err, straerrors.ErrorTypeFile, "failed to close file").
				WithDetail("path", s.path)
		}
	}
	return nil
}

// Restart reopens the file from the beginning, making the source
// replayable.
func (s *FileSource) Restart() error {
	if err := s.Close(); err != nil {
		return err
	}
	return s.open()
}

// PreviewLines returns up to n lines from the start of the file.
func PreviewLines(path string, n int) ([]string, error) {
	if n < 0 {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "preview count must be >= 0").
			WithDetail("value", n)
	}

	src, err := Open(path, Options{})
	if err != nil {
		return nil, err
	}
	defer src.Close()

	lines := make([]string, 0, n)
	for len(lines) < n && src.Next() {
		lines = append(lines, src.Line())
	}
	return lines, src.Err()
}

// LineCount counts the lines of the file.
func LineCount(path string) (int, error) {
	src, err := Open(path, Options{})
	if err != nil {
		return 0, err
	}
	defer src.Close()

	count := 0
	for src.Next() {
		count++
	}
	return count, src.Err()
}
