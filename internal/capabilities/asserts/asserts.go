// Package asserts provides the Asserts capability: value comparisons.
package asserts

import (
	"context"
	"reflect"
	"strings"

	"github.com/felixgeelhaar/stepwise/internal/capabilities/args"
	"github.com/felixgeelhaar/stepwise/internal/domain/capability"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Name is the capability name.
const Name = "Asserts"

// Provider returns the Asserts capability. It is stateless.
func Provider() *capability.Provider {
	return &capability.Provider{
		Name: Name,
		Actions: map[string]ports.Action{
			"seeEquals":     seeEquals,
			"dontSeeEquals": dontSeeEquals,
			"seeContains":   seeContains,
		},
	}
}

func pair(a []any) (any, any, error) {
	expected, err := args.Get(a, 0, "expected")
	if err != nil {
		return nil, nil, err
	}
	actual, err := args.Get(a, 1, "actual")
	if err != nil {
		return nil, nil, err
	}
	return expected, actual, nil
}

func seeEquals(_ context.Context, a ...any) (any, error) {
	expected, actual, err := pair(a)
	if err != nil {
		return nil, err
	}
	if !Equal(expected, actual) {
		return nil, step.Mismatch("values are not equal", expected, actual)
	}
	return nil, nil
}

func dontSeeEquals(_ context.Context, a ...any) (any, error) {
	expected, actual, err := pair(a)
	if err != nil {
		return nil, err
	}
	if Equal(expected, actual) {
		return nil, step.Failf("values are equal: %#v", actual)
	}
	return nil, nil
}

func seeContains(_ context.Context, a ...any) (any, error) {
	haystack, err := args.String(a, 0, "haystack")
	if err != nil {
		return nil, err
	}
	needle, err := args.String(a, 1, "needle")
	if err != nil {
		return nil, err
	}
	if !strings.Contains(haystack, needle) {
		return nil, step.Failf("%q does not contain %q", haystack, needle)
	}
	return nil, nil
}

// Equal compares deeply, treating numbers of any type as equal when their
// values are, since arguments decoded from JSON are always float64.
func Equal(expected, actual any) bool {
	if x, ok := number(expected); ok {
		if y, ok := number(actual); ok {
			return x == y
		}
	}
	return reflect.DeepEqual(expected, actual)
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
