// Package args converts the untyped arguments of a capability action.
//
// Arguments arrive either typed, from generated methods, or decoded from
// JSON in a worker process, where every number is a float64.
package args

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrMissing is returned when an action is called with too few arguments.
var ErrMissing = errors.New("missing argument")

// Get returns argument i.
func Get(args []any, i int, name string) (any, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	return args[i], nil
}

// String returns argument i as a string.
func String(args []any, i int, name string) (string, error) {
	v, err := Get(args, i, name)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", fmt.Errorf("argument %s must be a string, got %T", name, v)
	}
}

// Int returns argument i as an int. Integral floats and numeric strings
// are accepted.
func Int(args []any, i int, name string) (int, error) {
	v, err := Get(args, i, name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("argument %s must be an integer, got %v", name, n)
		}
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("argument %s must be an integer: %w", name, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("argument %s must be an integer, got %T", name, v)
	}
}
