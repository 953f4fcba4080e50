package ops

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/0101/pipetools/pkg/pipe"
)

// Operator is a binary operator.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	// In tests membership: a In b holds when a is contained in b.
	In
)

var operatorSymbols = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Pow: "**",
	Eq: "==", Ne: "!=", Lt: "<", Le: "<=", Gt: ">", Ge: ">=",
	In: "in",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorSymbols) {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorSymbols[o]
}

// UnaryOperator is a prefix operator.
type UnaryOperator int

const (
	Neg UnaryOperator = iota
	Pos
	Not
)

func (o UnaryOperator) String() string {
	switch o {
	case Neg:
		return "-"
	case Pos:
		return "+"
	case Not:
		return "not "
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(o))
}

// Binary evaluates a op b.
func Binary(op Operator, a, b any) (any, error) {
	switch op {
	case Eq:
		return Equal(a, b), nil
	case Ne:
		return !Equal(a, b), nil
	case In:
		return Contains(b, a)
	case Lt, Le, Gt, Ge:
		c, err := Compare(a, b)
		if err != nil {
			return nil, err
		}
		switch op {
		case Lt:
			return c < 0, nil
		case Le:
			return c <= 0, nil
		case Gt:
			return c > 0, nil
		}
		return c >= 0, nil
	case Add:
		if s, ok := concat(a, b); ok {
			return s, nil
		}
	case Mul:
		if s, ok := repeat(a, b); ok {
			return s, nil
		}
		if s, ok := repeat(b, a); ok {
			return s, nil
		}
	}

	if isNumber(a) && isNumber(b) {
		return arithmetic(op, a, b)
	}
	return nil, fmt.Errorf("%w: %T %s %T", ErrUnsupportedOperand, a, op, b)
}

// Unary evaluates op v.
func Unary(op UnaryOperator, v any) (any, error) {
	if op == Not {
		return !Truthy(v), nil
	}
	if !isNumber(v) {
		return nil, fmt.Errorf("%w: %s%T", ErrUnsupportedOperand, op, v)
	}
	if op == Pos {
		return v, nil
	}

	rv := reflect.ValueOf(v)
	switch {
	case isIntKind(rv.Kind()):
		return reflect.ValueOf(-toInt64(rv)).Convert(rv.Type()).Interface(), nil
	}
	return reflect.ValueOf(-rv.Float()).Convert(rv.Type()).Interface(), nil
}

// Equal compares numbers by value, whatever their types, and everything
// else with reflect.DeepEqual.
func Equal(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
		if isIntKind(ra.Kind()) && isIntKind(rb.Kind()) {
			return toInt64(ra) == toInt64(rb)
		}
		return toFloat64(ra) == toFloat64(rb)
	}
	return reflect.DeepEqual(a, b)
}

// Compare orders two numbers or two strings.
func Compare(a, b any) (int, error) {
	switch {
	case isNumber(a) && isNumber(b):
		ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
		if isIntKind(ra.Kind()) && isIntKind(rb.Kind()) {
			x, y := toInt64(ra), toInt64(rb)
			switch {
			case x < y:
				return -1, nil
			case x > y:
				return 1, nil
			}
			return 0, nil
		}
		x, y := toFloat64(ra), toFloat64(rb)
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	case isString(a) && isString(b):
		return strings.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String()), nil
	}
	return 0, fmt.Errorf("%w: cannot order %T and %T", ErrUnsupportedOperand, a, b)
}

// Contains reports whether item is in container: a substring of a string,
// an element of a slice or array, or a key of a map.
func Contains(container, item any) (bool, error) {
	rv := reflect.ValueOf(container)
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			break
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		if !isString(item) {
			return false, fmt.Errorf("%w: %T in string", ErrUnsupportedOperand, item)
		}
		return strings.Contains(rv.String(), reflect.ValueOf(item).String()), nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if Equal(rv.Index(i).Interface(), item) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		k, ok := convert(item, rv.Type().Key())
		if !ok {
			return false, nil
		}
		if !k.Comparable() {
			return false, fmt.Errorf("%w: unhashable key %T", ErrUnsupportedOperand, item)
		}
		return rv.MapIndex(k).IsValid(), nil
	}
	return false, fmt.Errorf("%w: %T in %T", ErrUnsupportedOperand, item, container)
}

// Truthy follows the usual dynamic language rules: false, nil, Nothing,
// zero numbers and empty strings, slices and maps are false.
func Truthy(v any) bool {
	if pipe.IsNothing(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	}
	if isNumber(v) {
		return toFloat64(rv) != 0
	}
	return true
}

func concat(a, b any) (any, bool) {
	if isString(a) && isString(b) {
		ra := reflect.ValueOf(a)
		s := ra.String() + reflect.ValueOf(b).String()
		return reflect.ValueOf(s).Convert(ra.Type()).Interface(), true
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if a == nil || b == nil || ra.Kind() != reflect.Slice || ra.Type() != rb.Type() {
		return nil, false
	}
	out := reflect.MakeSlice(ra.Type(), 0, ra.Len()+rb.Len())
	out = reflect.AppendSlice(out, ra)
	out = reflect.AppendSlice(out, rb)
	return out.Interface(), true
}

func repeat(seq, times any) (any, bool) {
	if seq == nil || times == nil {
		return nil, false
	}
	rt := reflect.ValueOf(times)
	if !isIntKind(rt.Kind()) {
		return nil, false
	}
	n := int(toInt64(rt))
	if n < 0 {
		n = 0
	}

	rs := reflect.ValueOf(seq)
	switch rs.Kind() {
	case reflect.String:
		return reflect.ValueOf(strings.Repeat(rs.String(), n)).Convert(rs.Type()).Interface(), true
	case reflect.Slice:
		out := reflect.MakeSlice(rs.Type(), 0, rs.Len()*n)
		for i := 0; i < n; i++ {
			out = reflect.AppendSlice(out, rs)
		}
		return out.Interface(), true
	}
	return nil, false
}

func arithmetic(op Operator, a, b any) (any, error) {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	sameType := ra.Type() == rb.Type()

	if isIntKind(ra.Kind()) && isIntKind(rb.Kind()) {
		x, y := toInt64(ra), toInt64(rb)
		var r int64
		switch op {
		case Add:
			r = x + y
		case Sub:
			r = x - y
		case Mul:
			r = x * y
		case Div, Mod:
			if y == 0 {
				return nil, fmt.Errorf("%w: %v %s %v", ErrDivisionByZero, a, op, b)
			}
			if op == Div {
				r = x / y
			} else {
				r = x % y
			}
		case Pow:
			if y < 0 {
				return math.Pow(float64(x), float64(y)), nil
			}
			r = 1
			for i := int64(0); i < y; i++ {
				r *= x
			}
		default:
			return nil, fmt.Errorf("%w: %s on numbers", ErrUnsupportedOperand, op)
		}
		if sameType {
			return reflect.ValueOf(r).Convert(ra.Type()).Interface(), nil
		}
		return r, nil
	}

	x, y := toFloat64(ra), toFloat64(rb)
	var r float64
	switch op {
	case Add:
		r = x + y
	case Sub:
		r = x - y
	case Mul:
		r = x * y
	case Div, Mod:
		if y == 0 {
			return nil, fmt.Errorf("%w: %v %s %v", ErrDivisionByZero, a, op, b)
		}
		if op == Div {
			r = x / y
		} else {
			r = math.Mod(x, y)
		}
	case Pow:
		r = math.Pow(x, y)
	default:
		return nil, fmt.Errorf("%w: %s on numbers", ErrUnsupportedOperand, op)
	}
	if sameType {
		return reflect.ValueOf(r).Convert(ra.Type()).Interface(), nil
	}
	return r, nil
}

func isNumber(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return isIntKind(k) || k == reflect.Float32 || k == reflect.Float64
}

func isString(v any) bool {
	return v != nil && reflect.ValueOf(v).Kind() == reflect.String
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func toInt64(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(v.Uint())
	}
	return v.Int()
}

func toFloat64(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint())
	}
	return float64(v.Int())
}
