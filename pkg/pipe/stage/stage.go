package stage

import (
	"errors"
	"fmt"

	"github.com/0101/pipetools/pkg/pipe"
	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/chain"
	"github.com/0101/pipetools/pkg/pipe/format"
	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/0101/pipetools/pkg/pipe/partial"
	"github.com/0101/pipetools/pkg/pipe/template"
	"github.com/0101/pipetools/pkg/pipe/x"
)

var ErrNoAttr = errors.New("stage has no such attribute")

// Made is what a Maker produces: the stage function (anything callable.Of
// accepts) and optional alternate stages reachable through Stage.Attr.
type Made struct {
	Func  any
	Attrs map[string]chain.Piper
}

type Maker func(fn callable.Callable) Made

// Factory builds a stage from a transformer and extra arguments bound to
// it. Trailing callable.Kwargs in extra are keywords.
type Factory func(transformer any, extra ...any) Stage

// Stage is a single-stage plain pipe with named attributes.
type Stage struct {
	chain.Pipe
	attrs map[string]chain.Piper
}

// New returns the Factory for maker. Stages it builds are named
// name(transformer, extra...).
func New(name string, maker Maker) Factory {
	return func(transformer any, extra ...any) Stage {
		fn, err := prepare(transformer, extra)
		if err != nil {
			return Failed(err)
		}

		made := maker(fn)
		stageName := func() string {
			label := naming.NameOf(transformer)
			if s, ok := transformer.(string); ok {
				label = format.New(s).Name()
			}
			pos, kw := callable.SplitKwargs(extra)
			return fmt.Sprintf("%s(%s)", name, naming.Join(", ", label, naming.ReprArgs(pos, kw)))
		}
		named, err := callable.SetName(naming.Thunk(stageName), made.Func)
		if err != nil {
			return Failed(err)
		}
		return Stage{Pipe: chain.Plain.Or(named), attrs: made.Attrs}
	}
}

// Failed returns a stage whose pipe reports err.
func Failed(err error) Stage {
	return Stage{Pipe: chain.Failed(err)}
}

// Attr returns the alternate stage registered under name.
func (s Stage) Attr(name string) chain.Pipe {
	if s.Err() != nil {
		return s.Pipe
	}
	a, ok := s.attrs[name]
	if !ok {
		return chain.Failed(fmt.Errorf("%w: %s.%s", ErrNoAttr, s.Name(), name))
	}
	return a.AsPipe()
}

// Rename returns the stage under a new name.
func (s Stage) Rename(name any) Stage {
	fn, err := s.Func()
	if err != nil {
		return s
	}
	renamed, err := callable.SetName(name, fn)
	if err != nil {
		return Failed(err)
	}
	s.Pipe = chain.Plain.Or(renamed)
	return s
}

// prepare reduces a transformer to a Callable: placeholders are evaluated,
// strings format, slices and maps are built as templates, and everything
// else must be callable. Extra arguments are bound last.
func prepare(transformer any, extra []any) (callable.Callable, error) {
	var (
		fn  callable.Callable
		err error
	)
	switch t := transformer.(type) {
	case *x.Expr:
		fn = t.ToFunc()
	case string:
		fn = format.New(t)
	default:
		fn, err = template.Build(transformer)
		if errors.Is(err, pipe.ErrNoBuilder) {
			fn, err = callable.Of(transformer)
		}
	}
	if err != nil {
		return callable.Callable{}, err
	}

	if len(extra) > 0 {
		return partial.Bind(fn, extra...)
	}
	return fn, nil
}
