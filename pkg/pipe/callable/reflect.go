package callable

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/0101/pipetools/pkg/pipe/naming"
)

var (
	kwargsType = reflect.TypeOf(Kwargs(nil))
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

func reflectFunc(rv reflect.Value) Func {
	t := rv.Type()
	numIn := t.NumIn()
	fixed := numIn
	if t.IsVariadic() {
		fixed--
	}

	kwIndex := -1
	if fixed > 0 && t.In(fixed-1) == kwargsType {
		kwIndex = fixed - 1
	}
	positional := fixed
	if kwIndex >= 0 {
		positional--
	}

	return func(args []any, kwargs Kwargs) (any, error) {
		name := func() string { return naming.NameOf(rv.Interface()) }
		if kwIndex < 0 && len(kwargs) > 0 {
			return nil, fmt.Errorf("%w: %s got %s", ErrUnexpectedKeywords, name(), kwargNames(kwargs))
		}
		if len(args) < positional || (!t.IsVariadic() && len(args) > positional) {
			return nil, fmt.Errorf("%w: %s takes %s, got %d", ErrArgumentCount, name(), arity(positional, t.IsVariadic()), len(args))
		}

		in := make([]reflect.Value, 0, numIn+len(args))
		for i := 0; i < positional; i++ {
			v, err := convertArg(args[i], t.In(i))
			if err != nil {
				return nil, fmt.Errorf("%w in argument %d to %s", err, i, name())
			}
			in = append(in, v)
		}
		if kwIndex >= 0 {
			if kwargs == nil {
				kwargs = Kwargs{}
			}
			in = append(in, reflect.ValueOf(kwargs))
		}
		if t.IsVariadic() {
			elem := t.In(numIn - 1).Elem()
			for i, a := range args[positional:] {
				v, err := convertArg(a, elem)
				if err != nil {
					return nil, fmt.Errorf("%w in argument %d to %s", err, positional+i, name())
				}
				in = append(in, v)
			}
		}

		return results(rv.Call(in))
	}
}

func convertArg(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: cannot use nil as %s", ErrArgumentType, t)
	}

	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if Widens(v.Type(), t) {
		if !InRange(v, t) {
			return reflect.Value{}, fmt.Errorf("%w: %v overflows %s", ErrArgumentType, a, t)
		}
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrArgumentType, a, t)
}

// Convert converts v to t when Widens allows it and the value fits.
func Convert(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !Widens(v.Type(), t) || !InRange(v, t) {
		return reflect.Value{}, false
	}
	return v.Convert(t), true
}

// InRange reports whether the number held by v is representable in t.
// Negative values never fit an unsigned type. Integers always fit floats,
// possibly losing precision.
func InRange(v reflect.Value, t reflect.Type) bool {
	target := reflect.New(t).Elem()
	switch {
	case isSigned(v.Type()) && isSigned(t):
		return !target.OverflowInt(v.Int())
	case isSigned(v.Type()) && isUnsigned(t):
		return v.Int() >= 0 && !target.OverflowUint(uint64(v.Int()))
	case isUnsigned(v.Type()) && isSigned(t):
		return v.Uint() <= math.MaxInt64 && !target.OverflowInt(int64(v.Uint()))
	case isUnsigned(v.Type()) && isUnsigned(t):
		return !target.OverflowUint(v.Uint())
	case isFloat(v.Type()) && isFloat(t):
		return !target.OverflowFloat(v.Float())
	}
	return true
}

// Widens reports whether a value of type from converts to type to without
// surprising the caller: between integer kinds, from integers to floats,
// between float kinds, and between named and unnamed forms of the same
// underlying slice or map type. Whether a particular value fits is checked
// separately by InRange.
func Widens(from, to reflect.Type) bool {
	switch {
	case isInt(from) && (isInt(to) || isFloat(to)):
		return true
	case isFloat(from) && isFloat(to):
		return true
	case from.Kind() == to.Kind() && (from.Kind() == reflect.Slice || from.Kind() == reflect.Map):
		return from.ConvertibleTo(to)
	case from.Kind() == reflect.String && to.Kind() == reflect.String:
		return true
	}
	return false
}

func isInt(t reflect.Type) bool {
	return isSigned(t) || isUnsigned(t)
}

func isSigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(t reflect.Type) bool {
	return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
}

func results(out []reflect.Value) (any, error) {
	if len(out) == 0 {
		return nil, nil
	}

	last := out[len(out)-1]
	if last.Type() == errorType {
		var err error
		if !last.IsNil() {
			err = last.Interface().(error)
		}
		out = out[:len(out)-1]
		if err != nil {
			return nil, err
		}
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}
	return values, nil
}

func arity(n int, variadic bool) string {
	switch {
	case variadic:
		return fmt.Sprintf("at least %d arguments", n)
	case n == 1:
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}

func kwargNames(kw Kwargs) string {
	names := make([]string, 0, len(kw))
	for k := range kw {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
