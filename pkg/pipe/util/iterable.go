package util

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/0101/pipetools/pkg/pipe/ops"
)

var ErrNotIterable = errors.New("not iterable")

// items lists the elements of an iterable input.
func items(v any) ([]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrNotIterable)
	case []any:
		return t, nil
	case string:
		out := make([]any, 0, len(t))
		for _, r := range t {
			out = append(out, string(r))
		}
		return out, nil
	case iter.Seq[any]:
		return slices.Collect(t), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		out := make([]any, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			out = append(out, k.Interface())
		}
		slices.SortFunc(out, compareLoose)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotIterable, v)
}

// isSequence reports whether Flatten descends into v.
func isSequence(v any) bool {
	if _, ok := v.(iter.Seq[any]); ok {
		return true
	}
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// compareLoose orders values ops.Compare can order and falls back to their
// representation otherwise.
func compareLoose(a, b any) int {
	if c, err := ops.Compare(a, b); err == nil {
		return c
	}
	return strings.Compare(naming.Repr(a), naming.Repr(b))
}
