package callable

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/google/uuid"
)

var (
	ErrNotCallable        = errors.New("not callable")
	ErrArgumentCount      = errors.New("wrong number of arguments")
	ErrArgumentType       = errors.New("wrong argument type")
	ErrUnexpectedKeywords = errors.New("unexpected keyword arguments")
)

// Kwargs are keyword arguments. In variadic argument lists trailing Kwargs
// values are keywords, never positional arguments.
type Kwargs map[string]any

// Func is the uniform shape every stage is reduced to.
type Func func(args []any, kwargs Kwargs) (any, error)

// Caller is implemented by values that can be invoked like a Callable,
// such as pipes and stages.
type Caller interface {
	CallKw(args []any, kwargs Kwargs) (any, error)
}

// Funcer is implemented by values that materialize into a Callable,
// such as placeholder expressions.
type Funcer interface {
	ToFunc() Callable
}

type Callable struct {
	id   uuid.UUID
	fn   Func
	name naming.Thunk
}

// New wraps fn under name, which may be anything naming.Of accepts.
func New(name any, fn Func) Callable {
	return Callable{
		id:   uuid.New(),
		fn:   fn,
		name: naming.Of(name),
	}
}

// Unary wraps a function of exactly one argument. Keywords are rejected.
func Unary(name any, fn func(any) (any, error)) Callable {
	c := Callable{id: uuid.New(), name: naming.Of(name)}
	c.fn = func(args []any, kwargs Kwargs) (any, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%w: %s got %s", ErrUnexpectedKeywords, c.Name(), naming.ReprArgs(nil, kwargs))
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArgumentCount, c.Name(), len(args))
		}
		return fn(args[0])
	}
	return c
}

// Identity returns its single argument.
func Identity(name any) Callable {
	return Unary(name, func(v any) (any, error) { return v, nil })
}

func (c Callable) Call(args ...any) (any, error) {
	pos, kw := SplitKwargs(args)
	return c.CallKw(pos, kw)
}

func (c Callable) CallKw(args []any, kwargs Kwargs) (any, error) {
	if c.fn == nil {
		return nil, fmt.Errorf("%w: zero Callable", ErrNotCallable)
	}
	return c.fn(args, kwargs)
}

// Apply calls c with v as the only argument.
func (c Callable) Apply(v any) (any, error) {
	return c.CallKw([]any{v}, nil)
}

func (c Callable) Name() string {
	return c.name.String()
}

func (c Callable) String() string {
	return c.Name()
}

func (c Callable) ID() uuid.UUID {
	return c.id
}

func (c Callable) IsZero() bool {
	return c.fn == nil
}

// Func exposes the wrapped function.
func (c Callable) Func() Func {
	return c.fn
}

// SetName returns a Callable invoking v under a new name. v itself is left
// untouched.
func SetName(name any, v any) (Callable, error) {
	c, err := Of(v)
	if err != nil {
		return Callable{}, err
	}
	return New(name, c.fn), nil
}

// Of adapts v into a Callable.
func Of(v any) (Callable, error) {
	switch f := v.(type) {
	case nil:
		return Callable{}, fmt.Errorf("%w: nil", ErrNotCallable)
	case Callable:
		if f.IsZero() {
			return Callable{}, fmt.Errorf("%w: zero Callable", ErrNotCallable)
		}
		return f, nil
	case *Callable:
		if f == nil || f.IsZero() {
			return Callable{}, fmt.Errorf("%w: nil Callable", ErrNotCallable)
		}
		return *f, nil
	case Func:
		if f == nil {
			return Callable{}, fmt.Errorf("%w: nil Func", ErrNotCallable)
		}
		return New(func() string { return naming.NameOf(f) }, f), nil
	case Caller:
		return New(func() string { return naming.NameOf(f) }, f.CallKw), nil
	case func(any) any:
		return Unary(func() string { return naming.NameOf(f) }, func(x any) (any, error) { return f(x), nil }), nil
	case func(any) (any, error):
		return Unary(func() string { return naming.NameOf(f) }, f), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		return Callable{}, fmt.Errorf("%w: %T", ErrNotCallable, v)
	}
	if rv.IsNil() {
		return Callable{}, fmt.Errorf("%w: nil %s", ErrNotCallable, rv.Type())
	}
	return New(func() string { return naming.NameOf(v) }, reflectFunc(rv)), nil
}

// IsCallable reports whether Of would accept v.
func IsCallable(v any) bool {
	switch f := v.(type) {
	case nil:
		return false
	case Callable:
		return !f.IsZero()
	case *Callable:
		return f != nil && !f.IsZero()
	case Caller:
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// SplitKwargs separates trailing Kwargs values from positional arguments.
// Several trailing Kwargs are merged left to right.
func SplitKwargs(args []any) ([]any, Kwargs) {
	end := len(args)
	for end > 0 {
		if _, ok := args[end-1].(Kwargs); !ok {
			break
		}
		end--
	}
	if end == len(args) {
		return args, nil
	}

	kw := Kwargs{}
	for _, a := range args[end:] {
		for k, v := range a.(Kwargs) {
			kw[k] = v
		}
	}
	return args[:end], kw
}

// Merge returns a new Kwargs with the entries of every argument, later
// ones winning.
func Merge(kws ...Kwargs) Kwargs {
	out := Kwargs{}
	for _, kw := range kws {
		for k, v := range kw {
			out[k] = v
		}
	}
	return out
}
