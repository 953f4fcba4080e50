package chain

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/0101/pipetools/pkg/pipe"
	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/format"
	"github.com/0101/pipetools/pkg/pipe/partial"
)

var ErrResultType = errors.New("unexpected pipe result type")

type Kind int

const (
	KindPlain Kind = iota
	KindMaybe
)

func (k Kind) String() string {
	if k == KindMaybe {
		return "maybe"
	}
	return "pipe"
}

func (k Kind) separator() string {
	if k == KindMaybe {
		return " ?| "
	}
	return " | "
}

// Piper is implemented by values that embed a Pipe, such as stages.
type Piper interface {
	AsPipe() Pipe
}

type Pipe struct {
	kind      Kind
	fn        *callable.Callable
	err       error
	logger    *slog.Logger
	annotated bool
}

var (
	Plain = Pipe{kind: KindPlain}
	Maybe = Pipe{kind: KindMaybe}
)

// New appends stages to Plain. A leading Maybe makes a maybe pipe.
func New(stages ...any) (Pipe, error) {
	p := Plain
	for _, s := range stages {
		p = p.Or(s)
	}
	return p, p.err
}

// Failed returns a plain pipe holding err as its build error.
func Failed(err error) Pipe {
	return Pipe{kind: KindPlain, err: err}
}

// Bind composes first and second under kind. A nil side yields the other.
func Bind(kind Kind, first, second *callable.Callable) *callable.Callable {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}

	a, b := *first, *second
	name := func() string { return a.Name() + kind.separator() + b.Name() }
	composed := callable.New(name, func(args []any, kwargs callable.Kwargs) (any, error) {
		v, err := a.CallKw(args, kwargs)
		if err != nil {
			return nil, err
		}
		if kind == KindMaybe && pipe.IsNothing(v) {
			return pipe.Nothing, nil
		}
		return b.Apply(v)
	})
	return &composed
}

// Prepare turns a stage into a Callable.
func Prepare(v any) (callable.Callable, error) {
	switch s := v.(type) {
	case Piper:
		return s.AsPipe().Func()
	case callable.Funcer:
		return s.ToFunc(), nil
	case partial.Tuple:
		return s.Bind()
	case string:
		return format.New(s), nil
	}
	if callable.IsCallable(v) {
		return callable.Of(v)
	}
	return callable.Callable{}, &pipe.InvalidStageError{Value: v}
}

func (p Pipe) AsPipe() Pipe {
	return p
}

func (p Pipe) Kind() Kind {
	return p.kind
}

func (p Pipe) IsEmpty() bool {
	return p.fn == nil
}

// Err returns the error recorded while building the pipe, if any.
func (p Pipe) Err() error {
	return p.err
}

// Or appends next. An empty pipe switches the kind instead.
func (p Pipe) Or(next any) Pipe {
	if p.err != nil {
		return p
	}
	if n, ok := next.(Piper); ok {
		other := n.AsPipe()
		if other.err != nil {
			p.err = other.err
			return p
		}
		if other.fn == nil {
			p.kind = other.kind
			return p
		}
	}

	fn, err := Prepare(next)
	if err != nil {
		p.err = err
		return p
	}
	p.fn = Bind(p.kind, p.fn, &fn)
	return p
}

// OrReversed puts prev in front of the pipe.
func (p Pipe) OrReversed(prev any) Pipe {
	if p.err != nil {
		return p
	}
	fn, err := Prepare(prev)
	if err != nil {
		p.err = err
		return p
	}
	p.fn = Bind(p.kind, &fn, p.fn)
	return p
}

// Annotated returns a pipe wrapping its errors in *pipe.PipeError.
func (p Pipe) Annotated() Pipe {
	p.annotated = true
	return p
}

// WithLogger returns a pipe tracing its calls to l.
func (p Pipe) WithLogger(l *slog.Logger) Pipe {
	p.logger = l
	return p
}

func (p Pipe) Name() string {
	if p.fn == nil {
		return p.kind.String()
	}
	return p.fn.Name()
}

func (p Pipe) String() string {
	return p.Name()
}

// Func returns the pipe as a Callable.
func (p Pipe) Func() (callable.Callable, error) {
	if p.err != nil {
		return callable.Callable{}, p.err
	}
	return callable.New(p.Name, p.CallKw), nil
}

func (p Pipe) Call(args ...any) (any, error) {
	pos, kw := callable.SplitKwargs(args)
	return p.CallKw(pos, kw)
}

// ApplyTo pipes v into p. An empty pipe returns v.
func (p Pipe) ApplyTo(v any) (any, error) {
	return p.CallKw([]any{v}, nil)
}

func (p Pipe) CallKw(args []any, kwargs callable.Kwargs) (any, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.kind == KindMaybe && len(args) == 1 && len(kwargs) == 0 && pipe.IsNothing(args[0]) {
		return pipe.Nothing, nil
	}
	if p.fn == nil {
		if len(args) != 1 || len(kwargs) != 0 {
			return nil, fmt.Errorf("%w: empty %s takes 1 argument, got %d", callable.ErrArgumentCount, p.kind, len(args)+len(kwargs))
		}
		return args[0], nil
	}

	start := time.Now()
	out, err := p.fn.CallKw(args, kwargs)
	if p.logger != nil {
		p.log(start, err)
	}
	if err != nil && p.annotated {
		err = &pipe.PipeError{Name: p.Name(), StageID: p.fn.ID(), Err: err}
	}
	return out, err
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func (p Pipe) log(start time.Time, err error) {
	attrs := []any{
		slog.String("pipe", p.Name()),
		slog.String("stage_id", p.fn.ID().String()),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		p.logger.Error("pipe failed", append(attrs, slog.Any("error", err))...)
		return
	}
	p.logger.Debug("pipe call", attrs...)
}

// Run calls p and reports the outcome as a typed result: a failure for an
// error or a value of another type, an empty result for pipe.Nothing.
// A plain pipe's nil result is the zero value of a nilable T.
func Run[T any](p Pipe, args ...any) pipe.Result[T] {
	out, err := p.Call(args...)
	if err != nil {
		return pipe.Fail[T](err)
	}
	if out == pipe.Nothing || (p.kind == KindMaybe && pipe.IsNothing(out)) {
		return pipe.Empty[T]()
	}
	if out == nil && nilable(reflect.TypeFor[T]()) {
		return pipe.Success(*new(T))
	}
	v, ok := out.(T)
	if !ok {
		return pipe.Fail[T](fmt.Errorf("%w: got %T, want %T", ErrResultType, out, *new(T)))
	}
	return pipe.Success(v)
}
