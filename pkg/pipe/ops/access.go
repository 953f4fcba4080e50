package ops

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/0101/pipetools/pkg/pipe/callable"
)

var (
	ErrNoAttribute        = errors.New("no such attribute")
	ErrKeyNotFound        = errors.New("key not found")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrNotIndexable       = errors.New("not indexable")
	ErrUnsupportedOperand = errors.New("unsupported operand")
	ErrDivisionByZero     = errors.New("division by zero")
)

// GetAttr returns the method or exported field called name. Methods win
// over fields; pointer-receiver methods are reachable from plain values.
// A method is returned as a bound Go function value.
func GetAttr(v any, name string) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil has no attribute %q", ErrNoAttribute, name)
	}

	rv := reflect.ValueOf(v)
	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}
	if rv.Kind() != reflect.Ptr && rv.Kind() != reflect.Interface {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		if m := p.MethodByName(name); m.IsValid() {
			return m.Interface(), nil
		}
	}

	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T has no attribute %q", ErrNoAttribute, v, name)
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}

	return nil, fmt.Errorf("%w: %T has no attribute %q", ErrNoAttribute, v, name)
}

// GetItem indexes maps by key and slices, arrays and strings by position.
// Negative positions count from the end; strings are indexed by rune.
func GetItem(v any, key any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil", ErrNotIndexable)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrNotIndexable, v)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		k, ok := convert(key, rv.Type().Key())
		if !ok {
			return nil, fmt.Errorf("%w: %#v (%T) in %T", ErrKeyNotFound, key, key, v)
		}
		if !k.Comparable() {
			return nil, fmt.Errorf("%w: unhashable key %T", ErrUnsupportedOperand, key)
		}
		item := rv.MapIndex(k)
		if !item.IsValid() {
			return nil, fmt.Errorf("%w: %#v in %T", ErrKeyNotFound, key, v)
		}
		return item.Interface(), nil

	case reflect.Slice, reflect.Array:
		i, err := position(key, rv.Len())
		if err != nil {
			return nil, err
		}
		return rv.Index(i).Interface(), nil

	case reflect.String:
		runes := []rune(rv.String())
		i, err := position(key, len(runes))
		if err != nil {
			return nil, err
		}
		return string(runes[i]), nil
	}

	return nil, fmt.Errorf("%w: %T", ErrNotIndexable, v)
}

func position(key any, length int) (int, error) {
	k := reflect.ValueOf(key)
	if key == nil || !isIntKind(k.Kind()) {
		return 0, fmt.Errorf("%w: index must be an integer, got %T", ErrNotIndexable, key)
	}
	i := int(toInt64(k))
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, fmt.Errorf("%w: %d with length %d", ErrIndexOutOfRange, toInt64(k), length)
	}
	return i, nil
}

func convert(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}
	return callable.Convert(rv, t)
}
