package template

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/0101/pipetools/pkg/pipe"
	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/format"
	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/0101/pipetools/pkg/pipe/x"
)

var ErrUnhashableKey = errors.New("unhashable map key")

type resolver func(v any) (any, error)

var (
	anySlice = reflect.TypeFor[[]any]()
	anyMap   = reflect.TypeFor[map[any]any]()
)

// Build returns a unary Callable producing def with every element
// resolved against its argument. Only sequences and mappings can be built;
// any other def yields a *pipe.NoBuilderError.
func Build(def any) (callable.Callable, error) {
	r, err := build(def)
	if err != nil {
		return callable.Callable{}, err
	}
	return callable.Unary(func() string { return naming.Repr(def) }, r), nil
}

func build(def any) (resolver, error) {
	if def == nil {
		return nil, &pipe.NoBuilderError{Type: "nil"}
	}
	rv := reflect.ValueOf(def)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return buildSequence(rv)
	case reflect.Map:
		return buildMapping(rv)
	}
	return nil, &pipe.NoBuilderError{Type: fmt.Sprintf("%T", def)}
}

func buildSequence(rv reflect.Value) (resolver, error) {
	items := make([]resolver, rv.Len())
	for i := range items {
		r, err := element(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		items[i] = r
	}

	typ := rv.Type()
	return func(v any) (any, error) {
		values := make([]any, len(items))
		for i, r := range items {
			out, err := r(v)
			if err != nil {
				return nil, err
			}
			values[i] = out
		}

		var seq reflect.Value
		if typ.Kind() == reflect.Array {
			seq = reflect.New(typ).Elem()
		} else {
			seq = reflect.MakeSlice(typ, len(values), len(values))
		}
		for i, out := range values {
			val, ok := fit(out, typ.Elem())
			if !ok {
				return values, nil
			}
			seq.Index(i).Set(val)
		}
		return seq.Interface(), nil
	}, nil
}

type entry struct {
	key, value resolver
}

func buildMapping(rv reflect.Value) (resolver, error) {
	entries := make([]entry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		k, err := element(it.Key().Interface())
		if err != nil {
			return nil, err
		}
		val, err := element(it.Value().Interface())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: k, value: val})
	}

	typ := rv.Type()
	return func(v any) (any, error) {
		keys := make([]any, len(entries))
		values := make([]any, len(entries))
		for i, e := range entries {
			k, err := e.key(v)
			if err != nil {
				return nil, err
			}
			val, err := e.value(v)
			if err != nil {
				return nil, err
			}
			keys[i], values[i] = k, val
		}

		if m, ok := rebuildMap(typ, keys, values); ok {
			return m, nil
		}
		if m, ok := rebuildMap(anyMap, keys, values); ok {
			return m, nil
		}
		return nil, fmt.Errorf("%w in %s", ErrUnhashableKey, naming.ReprArgs(keys, nil))
	}, nil
}

func rebuildMap(typ reflect.Type, keys, values []any) (any, bool) {
	m := reflect.MakeMapWithSize(typ, len(keys))
	for i := range keys {
		k, ok := fit(keys[i], typ.Key())
		if !ok || !k.Comparable() {
			return nil, false
		}
		val, ok := fit(values[i], typ.Elem())
		if !ok {
			return nil, false
		}
		m.SetMapIndex(k, val)
	}
	return m.Interface(), true
}

// element picks how a nested template value is resolved.
func element(item any) (resolver, error) {
	if e, ok := item.(*x.Expr); ok {
		return e.ToFunc().Apply, nil
	}
	if s, ok := item.(string); ok {
		return format.New(s).Apply, nil
	}
	if callable.IsCallable(item) {
		fn, err := callable.Of(item)
		if err != nil {
			return nil, err
		}
		return fn.Apply, nil
	}

	r, err := build(item)
	if errors.Is(err, pipe.ErrNoBuilder) {
		return func(any) (any, error) { return item, nil }, nil
	}
	return r, err
}

// fit converts v to a value assignable to t.
func fit(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
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
