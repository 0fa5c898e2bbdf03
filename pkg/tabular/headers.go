package tabular

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// syntheticName returns the generated name for a column index.
func syntheticName(index int) string {
	return "column_" + strconv.Itoa(index)
}

// MergeHeaders merges the candidate header rows into canonical column names.
//
// With no candidate rows the result is empty; callers generate synthetic
// names from the width of the first data row instead. Otherwise, for each
// column index the non-empty cells of the candidate rows are concatenated in
// row order; an index whose cells are all empty gets the synthetic
// column_<index> name. Interior whitespace runs collapse to a single space.
//
// Colliding merged names are kept as-is; the merger does not deduplicate.
func MergeHeaders(candidates [][]string) []string {
	if len(candidates) == 0 {
		return nil
	}

	width := 0
	for _, row := range candidates {
		if len(row) > width {
			width = len(row)
		}
	}

	names := make([]string, width)
	for i := 0; i < width; i++ {
		var sb strings.Builder
		for _, row := range candidates {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(whitespaceRun.ReplaceAllString(row[i], " "))
			if cell == "" {
				continue
			}
			sb.WriteString(cell)
		}
		if sb.Len() == 0 {
			names[i] = syntheticName(i)
		} else {
			names[i] = sb.String()
		}
	}

	return names
}

// syntheticNames generates column_0..column_{n-1}.
func syntheticNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = syntheticName(i)
	}
	return names
}
