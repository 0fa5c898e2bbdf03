package infer

import (
	"strconv"
	"strings"
	"time"

	"github.com/astralkit/strata/pkg/straerrors"
)

// Conversion functions attempt the corresponding parse and fall back to a
// caller-supplied default. When the parse fails and no default was given,
// they return a conversion error carrying the offending value.

// ToBool converts a value to a boolean. Only whole-word true/false literals
// convert; anything else yields the default or a conversion error.
func ToBool(value string, def ...bool) (bool, error) {
	if IsBoolLike(value) {
		return strings.EqualFold(strings.TrimSpace(value), "true"), nil
	}
	if len(def) > 0 {
		return def[0], nil
	}
	return false, conversionError(value, TypeBoolean)
}

// ToInt converts a value to an int64.
func ToInt(value string, def ...int64) (int64, error) {
	v := strings.TrimSpace(value)
	if IsIntLike(v) {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, nil
		}
	}
	if len(def) > 0 {
		return def[0], nil
	}
	return 0, conversionError(value, TypeInteger)
}

// ToFloat converts a value to a float64. Integer-like values convert too.
func ToFloat(value string, def ...float64) (float64, error) {
	v := strings.TrimSpace(value)
	if IsFloatLike(v) || IsIntLike(v) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
	}
	if len(def) > 0 {
		return def[0], nil
	}
	return 0, conversionError(value, TypeFloat)
}

// ToDate converts a value to a date (midnight UTC of the parsed day).
func ToDate(value string, def ...time.Time) (time.Time, error) {
	v := strings.TrimSpace(value)
	if IsDateLike(v) {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
	}
	if len(def) > 0 {
		return def[0], nil
	}
	return time.Time{}, conversionError(value, TypeDate)
}

// ToTime converts a value to a time of day, anchored on the zero date.
func ToTime(value string, def ...time.Time) (time.Time, error) {
	v := strings.TrimSpace(value)
	if IsTimeLike(v) {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
	}
	if len(def) > 0 {
		return def[0], nil
	}
	return time.Time{}, conversionError(value, TypeTime)
}

// ToDatetime converts a value to a combined date and time, honoring
// fractional seconds when present.
func ToDatetime(value string, def ...time.Time) (time.Time, error) {
	v := strings.TrimSpace(value)
	if IsDatetimeLike(v) {
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
	}
	if len(def) > 0 {
		return def[0], nil
	}
	return time.Time{}, conversionError(value, TypeDatetime)
}

func conversionError(value string, target DataType) *straerrors.Error {
	return straerrors.New(straerrors.ErrorTypeConversion, "value cannot be converted").
		WithDetail("value", value).
		WithDetail("target_type", target.String())
}
