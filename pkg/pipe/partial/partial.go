package partial

import (
	"errors"
	"fmt"
	"slices"

	"github.com/0101/pipetools/pkg/pipe"
	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/0101/pipetools/pkg/pipe/x"
)

var ErrEmptyTuple = errors.New("empty tuple")

// Tuple is a target followed by its fixed arguments. Offered to a pipe it
// becomes Bind(t[0], t[1:]...).
type Tuple []any

// Bind returns the partial application.
func (t Tuple) Bind() (callable.Callable, error) {
	if len(t) == 0 {
		return callable.Callable{}, fmt.Errorf("%w: nothing to call", ErrEmptyTuple)
	}
	return Bind(t[0], t[1:]...)
}

type binder struct {
	target         callable.Callable
	args           []any
	kwargs         callable.Kwargs
	anyPlaceholder bool
}

// Bind fixes args (trailing callable.Kwargs are fixed keywords) in front
// of the arguments target will be called with.
//
// Without placeholders this is ordinary partial application and call-time
// keywords override fixed ones. With at least one placeholder the call
// needs a positional argument: every placeholder is evaluated against it,
// the remaining call arguments follow the fixed ones, and call-time
// keywords again win.
func Bind(target any, args ...any) (callable.Callable, error) {
	fn, err := callable.Of(target)
	if err != nil {
		return callable.Callable{}, err
	}

	pos, kw := callable.SplitKwargs(args)
	b := &binder{
		target: fn,
		args:   slices.Clone(pos),
		kwargs: callable.Merge(kw),
	}
	for _, a := range b.args {
		b.anyPlaceholder = b.anyPlaceholder || x.Is(a)
	}
	for _, a := range b.kwargs {
		b.anyPlaceholder = b.anyPlaceholder || x.Is(a)
	}

	return callable.New(b.name, b.call), nil
}

func (b *binder) name() string {
	return fmt.Sprintf("%s(%s)", b.target.Name(), naming.ReprArgs(b.args, b.kwargs))
}

func (b *binder) call(args []any, kwargs callable.Kwargs) (any, error) {
	if !b.anyPlaceholder {
		all := make([]any, 0, len(b.args)+len(args))
		all = append(all, b.args...)
		all = append(all, args...)
		return b.target.CallKw(all, callable.Merge(b.kwargs, kwargs))
	}

	if len(args) == 0 {
		return nil, &pipe.MissingSubstitutionArgumentError{Target: b.target.Name()}
	}
	first, rest := args[0], args[1:]

	all := make([]any, 0, len(b.args)+len(rest))
	for _, a := range b.args {
		v, err := substitute(a, first)
		if err != nil {
			return nil, err
		}
		all = append(all, v)
	}
	all = append(all, rest...)

	kw := make(callable.Kwargs, len(b.kwargs)+len(kwargs))
	for k, a := range b.kwargs {
		v, err := substitute(a, first)
		if err != nil {
			return nil, err
		}
		kw[k] = v
	}
	for k, v := range kwargs {
		kw[k] = v
	}

	return b.target.CallKw(all, kw)
}

func substitute(a, first any) (any, error) {
	if e, ok := a.(*x.Expr); ok {
		return e.Eval(first)
	}
	return a, nil
}
