// Package infer classifies raw text values into semantic datatypes and
// converts them, individually and in aggregate over whole columns.
//
// Classification is an ordered decision procedure over precompiled patterns:
// empty, boolean, integer, float, date, time, datetime, string. Digits-only
// strings always classify as INTEGER even when they would also match a
// compact date or time layout. Aggregate profiling reduces a collection of
// values to a single datatype, with an incremental early-exit path for
// large collections.
package infer

import (
	"regexp"
	"strings"
	"time"
)

// DataType is the closed set of semantic datatypes recognized by the engine.
type DataType string

const (
	// TypeEmpty marks empty or whitespace-only values.
	TypeEmpty DataType = "EMPTY"
	// TypeBoolean marks whole-word true/false literals.
	TypeBoolean DataType = "BOOLEAN"
	// TypeInteger marks optionally signed digit strings.
	TypeInteger DataType = "INTEGER"
	// TypeFloat marks decimal numbers with an optional exponent.
	TypeFloat DataType = "FLOAT"
	// TypeDate marks calendar dates in a recognized layout.
	TypeDate DataType = "DATE"
	// TypeTime marks time-of-day values in a recognized layout.
	TypeTime DataType = "TIME"
	// TypeDatetime marks combined date and time values.
	TypeDatetime DataType = "DATETIME"
	// TypeString marks text that matches no more specific type.
	TypeString DataType = "STRING"
	// TypeMixed is the aggregate result for heterogeneous collections.
	TypeMixed DataType = "MIXED"
)

// String returns the type name.
func (d DataType) String() string {
	return string(d)
}

// Pattern constants are built once as process-wide immutable state.
var (
	integerRegex = regexp.MustCompile(`^[+-]?\d+$`)
	floatRegex   = regexp.MustCompile(`^[+-]?((\d+\.\d*|\.\d+)([eE][+-]?\d+)?|\d+[eE][+-]?\d+)$`)

	dateYMDRegex = regexp.MustCompile(`^\d{4}[-/.]?\d{2}[-/.]?\d{2}$`)
	dateMDYRegex = regexp.MustCompile(`^\d{2}[-/.]?\d{2}[-/.]?\d{4}$`)

	time24Regex      = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2}(\.\d+)?)?$`)
	time12Regex      = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2}(\.\d+)?)?\s*(AM|PM|am|pm)$`)
	timeCompactRegex = regexp.MustCompile(`^\d{4}(\d{2})?$`)

	datetimeYMDRegex = regexp.MustCompile(`^\d{4}[-/.]?\d{2}[-/.]?\d{2}[T ]?\d{2}:?\d{2}(:?\d{2}(\.?\d+)?)?$`)
	datetimeMDYRegex = regexp.MustCompile(`^\d{2}[-/.]?\d{2}[-/.]?\d{4}[T ]?\d{2}:?\d{2}(:?\d{2}(\.?\d+)?)?$`)
)

// Recognized layouts, gated by the regexes above before parsing.
var (
	dateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"2006.01.02",
		"20060102",
		"01-02-2006",
		"01/02/2006",
		"01.02.2006",
		"01022006",
	}

	timeLayouts = []string{
		"15:04:05",
		"15:04",
		"1504",
		"150405",
		"3:04:05 PM",
		"3:04 PM",
		"3:04:05PM",
		"3:04PM",
		"3:04:05 pm",
		"3:04 pm",
		"3:04:05pm",
		"3:04pm",
	}

	datetimeLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006/01/02T15:04:05",
		"2006.01.02T15:04:05",
		"20060102150405",
		"01-02-2006T15:04:05",
		"01/02/2006T15:04:05",
		"01.02.2006T15:04:05",
		"01022006150405",
	}
)

// Infer classifies a single string value. The decision is ordered and the
// first match wins: empty, boolean, integer, float, date, time, datetime,
// and finally string. Surrounding whitespace is ignored.
func Infer(value string) DataType {
	v := strings.TrimSpace(value)

	switch {
	case v == "":
		return TypeEmpty
	case IsBoolLike(v):
		return TypeBoolean
	case IsIntLike(v):
		return TypeInteger
	case IsFloatLike(v):
		return TypeFloat
	case IsDateLike(v):
		return TypeDate
	case IsTimeLike(v):
		return TypeTime
	case IsDatetimeLike(v):
		return TypeDatetime
	default:
		return TypeString
	}
}

// IsEmptyLike reports whether the value is empty or whitespace-only.
func IsEmptyLike(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsBoolLike reports whether the value is a whole-word boolean literal.
// The literal set is deliberately small (true/false only) so that plain
// integers such as "1" and "0" are never absorbed as booleans.
func IsBoolLike(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "true" || v == "false"
}

// IsIntLike reports whether the value is an optionally signed digit string.
func IsIntLike(value string) bool {
	return integerRegex.MatchString(strings.TrimSpace(value))
}

// IsFloatLike reports whether the value is a decimal number with a decimal
// point or exponent. Plain digit strings are not float-like.
func IsFloatLike(value string) bool {
	return floatRegex.MatchString(strings.TrimSpace(value))
}

// IsDateLike reports whether the value matches a recognized date layout.
func IsDateLike(value string) bool {
	v := strings.TrimSpace(value)
	if !dateYMDRegex.MatchString(v) && !dateMDYRegex.MatchString(v) {
		return false
	}
	return parsesAs(v, dateLayouts)
}

// IsTimeLike reports whether the value matches a recognized time layout.
func IsTimeLike(value string) bool {
	v := strings.TrimSpace(value)
	if !time24Regex.MatchString(v) && !time12Regex.MatchString(v) && !timeCompactRegex.MatchString(v) {
		return false
	}
	return parsesAs(v, timeLayouts)
}

// IsDatetimeLike reports whether the value matches a recognized datetime
// layout, optionally with fractional seconds.
func IsDatetimeLike(value string) bool {
	v := strings.TrimSpace(value)
	if !datetimeYMDRegex.MatchString(v) && !datetimeMDYRegex.MatchString(v) {
		return false
	}
	return parsesAs(v, datetimeLayouts)
}

// IsNumericLike reports whether the value is integer-like or float-like.
func IsNumericLike(value string) bool {
	return IsIntLike(value) || IsFloatLike(value)
}

func parsesAs(value string, layouts []string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
