// Package dsv parses delimiter-separated text into rows, either fully
// materialized or as a lazy forward-only reader suitable for inputs larger
// than available memory, and profiles columns of a materialized row set.
package dsv

import (
	"strings"

	"github.com/astralkit/strata/pkg/straerrors"
	"github.com/astralkit/strata/pkg/tokenizer"
)

// Options mirrors tokenizer.Options for the parsing entry points.
type Options = tokenizer.Options

// DefaultOptions returns comma delimiter, double-quote bookend, stripping
// enabled.
func DefaultOptions() Options {
	return tokenizer.DefaultOptions()
}

// Parse materializes every line of text into rows, in input order. Both \n
// and \r\n line terminators are accepted. A malformed line fails the whole
// call with a format error identifying the line index.
func Parse(text string, opts Options) ([][]string, error) {
	return ParseLines(splitLines(text), opts)
}

// ParseLines tokenizes each pre-split line into a row, in input order.
func ParseLines(lines []string, opts Options) ([][]string, error) {
	if opts.Delimiter == "" {
		return nil, straerrors.New(straerrors.ErrorTypeParameter, "delimiter must not be empty").
			WithDetail("parameter", "delimiter")
	}
	return tokenizer.TokenizeAll(lines, opts)
}

// splitLines splits text into logical lines, treating \r\n and \n alike.
// A trailing terminator does not produce a final empty line.
func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
