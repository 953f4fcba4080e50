package naming

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// Thunk produces a name on demand.
type Thunk func() string

// Named is implemented by everything that knows its own name.
type Named interface {
	Name() string
}

// Literal returns a thunk for a fixed name.
func Literal(s string) Thunk {
	return func() string { return s }
}

// Of turns a string, a func() string, a Thunk or a fmt.Stringer into a Thunk.
// Any other value is named with NameOf.
func Of(v any) Thunk {
	switch n := v.(type) {
	case Thunk:
		return n
	case func() string:
		return n
	case string:
		return Literal(n)
	case fmt.Stringer:
		return n.String
	}
	return func() string { return NameOf(v) }
}

func (t Thunk) String() string {
	if t == nil {
		return ""
	}
	return t()
}

// NameOf returns the name of v: its own name when it is Named, the
// package-qualified function name for plain Go functions, and its Repr
// otherwise.
func NameOf(v any) string {
	if v == nil {
		return "nil"
	}
	if n, ok := v.(Named); ok {
		return n.Name()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		return funcName(rv)
	}
	return Repr(v)
}

func funcName(rv reflect.Value) string {
	if rv.IsNil() {
		return "nil"
	}
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return rv.Type().String()
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

// Repr renders v the way it would be written in Go source, with named
// values replaced by their names.
func Repr(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case Named:
		return t.Name()
	case string:
		return strconv.Quote(t)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		return funcName(rv)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "nil"
		}
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = Repr(rv.Index(i).Interface())
		}
		return "[" + strings.Join(items, ", ") + "]"
	case reflect.Map:
		if rv.IsNil() {
			return "nil"
		}
		entries := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, Repr(iter.Key().Interface())+": "+Repr(iter.Value().Interface()))
		}
		sort.Strings(entries)
		return "{" + strings.Join(entries, ", ") + "}"
	}
	return fmt.Sprintf("%v", v)
}

// ReprArgs renders a call's arguments: positional ones first, then
// keywords sorted by name as key=value.
func ReprArgs(args []any, kwargs map[string]any) string {
	parts := make([]string, 0, len(args)+len(kwargs))
	for _, a := range args {
		parts = append(parts, Repr(a))
	}

	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+Repr(kwargs[k]))
	}

	return strings.Join(parts, ", ")
}

// Join joins non-empty names with sep.
func Join(sep string, names ...string) string {
	kept := names[:0:0]
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, sep)
}
