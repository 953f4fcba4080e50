package pipe

import (
	"reflect"
)

type nothing struct{}

func (nothing) String() string { return "Nothing" }

// Nothing is the value a maybe pipe propagates instead of calling further
// stages.
var Nothing any = nothing{}

// IsNothing reports whether v stops a maybe pipe: the Nothing sentinel,
// an untyped nil, or a nil pointer or func. Nil slices, maps and channels
// are empty values and flow on.
func IsNothing(v any) bool {
	if v == nil || v == Nothing {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	switch v := reflect.ValueOf(i); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}
