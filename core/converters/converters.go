// Package converters provides string-to-value conversion functions
// used by table loading and manifest parsing.
package converters

import (
	"path/filepath"
	"strconv"

	"github.com/calperum/textkit/core/errors"
)

// Func converts one string field into a typed value.
type Func[T any] func(string) (T, error)

// Int converts a base-10 integer.
func Int(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &errors.ConversionError{Target: "int", Value: s}
	}
	return v, nil
}

// Int64 converts a base-10 64-bit integer.
func Int64(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &errors.ConversionError{Target: "int64", Value: s}
	}
	return v, nil
}

// Float32 converts a decimal floating-point number.
func Float32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, &errors.ConversionError{Target: "float32", Value: s}
	}
	return float32(v), nil
}

// Float64 converts a decimal floating-point number.
func Float64(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &errors.ConversionError{Target: "float64", Value: s}
	}
	return v, nil
}

// Bool converts a boolean in any form strconv.ParseBool accepts.
func Bool(s string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, &errors.ConversionError{Target: "bool", Value: s}
	}
	return v, nil
}

// Identity returns the input string unchanged.
func Identity(s string) (string, error) {
	return s, nil
}

// Path converts a path to the host separator conventions and cleans
// redundant elements. Empty paths fail.
func Path(s string) (string, error) {
	if s == "" {
		return "", &errors.ConversionError{Target: "path", Value: s}
	}
	return filepath.Clean(filepath.FromSlash(s)), nil
}
