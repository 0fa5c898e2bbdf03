// Package tokenizer splits single logical lines of delimiter-separated text
// into ordered field sequences, honoring an optional quoting ("bookend")
// character with doubled-bookend escaping.
package tokenizer

import (
	"strings"

	"github.com/astralkit/strata/pkg/straerrors"
)

// Options controls how a line is tokenized.
type Options struct {
	// Delimiter separates fields. Must not be empty.
	Delimiter string
	// Bookend is the quoting character wrapping a field to allow embedded
	// delimiters. Empty disables quote handling.
	Bookend string
	// Strip trims surrounding whitespace from unquoted fields and from the
	// text outside a bookended span.
	Strip bool
}

// DefaultOptions returns the conventional CSV settings: comma delimiter,
// double-quote bookend, whitespace stripping enabled.
func DefaultOptions() Options {
	return Options{Delimiter: ",", Bookend: `"`, Strip: true}
}

// Tokenize splits one logical line into an ordered sequence of fields.
//
// The line is split on opts.Delimiter outside bookend-quoted spans. A field
// bounded by the bookend on both ends has the outer bookends removed; a
// doubled bookend inside a quoted span decodes to a single literal bookend.
// Empty fields are preserved, never dropped. An empty input line yields a
// single empty field.
//
// Returns a format error when a quoted field is never closed before the end
// of the line, carrying the column at which the field was opened.
func Tokenize(line string, opts Options) ([]string, error) {
	if opts.Delimiter == "" {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "delimiter must not be empty").
			WithDetail("parameter", "delimiter")
	}

	fields := make([]string, 0, 8)
	i := 0
	n := len(line)

	for {
		field, next, err := scanField(line, i, opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		if next < 0 {
			break
		}
		i = next
		if i > n {
			break
		}
	}

	return fields, nil
}

// TokenizeAll applies Tokenize to each line in order.
func TokenizeAll(lines []string, opts Options) ([][]string, error) {
	rows := make([][]string, 0, len(lines))
	for idx, line := range lines {
		fields, err := Tokenize(line, opts)
		if err != nil {
			return nil, straerrors.Wrap(err, straerrors.ErrorTypeFormat, "malformed line").
				WithDetail("line", idx)
		}
		rows = append(rows, fields)
	}
	return rows, nil
}

// scanField consumes one field starting at position start. It returns the
// decoded field, and the position just past the delimiter that terminated
// it, or -1 when the field ran to the end of the line.
func scanField(line string, start int, opts Options) (string, int, error) {
	n := len(line)
	i := start

	if opts.Bookend != "" {
		j := i
		if opts.Strip {
			for j < n && isSpace(line[j]) {
				j++
			}
		}
		if strings.HasPrefix(line[j:], opts.Bookend) {
			return scanQuotedField(line, start, j+len(opts.Bookend), opts)
		}
	}

	// Unquoted field: run to the next delimiter.
	end, next := findDelimiter(line, i, opts.Delimiter)
	field := line[i:end]
	if opts.Strip {
		field = strings.TrimSpace(field)
	}
	return field, next, nil
}

// scanQuotedField consumes a bookended field whose opening bookend has
// already been consumed (content starts at pos).
func scanQuotedField(line string, fieldStart, pos int, opts Options) (string, int, error) {
	n := len(line)
	bk := opts.Bookend
	var sb strings.Builder
	closed := false
	i := pos

	for i < n {
		if strings.HasPrefix(line[i:], bk) {
			if strings.HasPrefix(line[i+len(bk):], bk) {
				// Doubled bookend decodes to one literal bookend.
				sb.WriteString(bk)
				i += 2 * len(bk)
				continue
			}
			i += len(bk)
			closed = true
			break
		}
		sb.WriteByte(line[i])
		i++
	}

	if !closed {
		return "", -1, straerrors.New(straerrors.ErrorTypeFormat, "quoted field not closed before end of line").
			WithDetail("column", fieldStart)
	}

	// Anything between the closing bookend and the delimiter is kept
	// literally, modulo whitespace stripping.
	end, next := findDelimiter(line, i, opts.Delimiter)
	trailer := line[i:end]
	if opts.Strip {
		trailer = strings.TrimSpace(trailer)
	}
	sb.WriteString(trailer)

	return sb.String(), next, nil
}

// findDelimiter locates the next delimiter at or after pos. It returns the
// index where the field content ends and the position just past the
// delimiter, or (len(line), -1) when no delimiter remains.
func findDelimiter(line string, pos int, delimiter string) (end int, next int) {
	idx := strings.Index(line[pos:], delimiter)
	if idx < 0 {
		return len(line), -1
	}
	return pos + idx, pos + idx + len(delimiter)
}

// RemoveBookends removes a matching bookend from both ends of a value. The
// bookends are removed only when the value starts and ends with the bookend
// and is longer than the two bookends combined; otherwise the value is
// returned unchanged. When strip is set, surrounding whitespace is trimmed
// first.
func RemoveBookends(value, bookend string, strip bool) string {
	if strip {
		value = strings.TrimSpace(value)
	}
	if bookend == "" {
		return value
	}
	if strings.HasPrefix(value, bookend) &&
		strings.HasSuffix(value, bookend) &&
		len(value) > 2*len(bookend)-1 {
		return value[len(bookend) : len(value)-len(bookend)]
	}
	return value
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
