package util

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/0101/pipetools/pkg/pipe"
	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/0101/pipetools/pkg/pipe/stage"
)

var (
	ErrNotText         = errors.New("not a string")
	ErrNotMapping      = errors.New("not a string-keyed map")
	ErrNotErrorMatcher = errors.New("not an error or func(error) bool")
)

var logger atomic.Pointer[slog.Logger]

// Logger returns the logger DebugPrint writes to, slog.Default() unless
// SetLogger was called.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// DebugPrint logs fn applied to the input at info level and returns the
// input.
var DebugPrint = stage.New("DebugPrint", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		out, err := fn.Apply(v)
		if err != nil {
			return nil, err
		}
		Logger().Info("debug print", slog.Any("value", out))
		return v, nil
	}}
})

// Unless calls fn and turns an error matching match into a nil result.
// match is an error compared with errors.Is or a func(error) bool, which
// is also offered each error of a joined error.
func Unless(match any, fn any, extra ...any) stage.Stage {
	matches, err := errorMatcher(match)
	if err != nil {
		return stage.Failed(err)
	}

	unless := stage.New("Unless", func(f callable.Callable) stage.Made {
		return stage.Made{Func: callable.Func(func(args []any, kwargs callable.Kwargs) (any, error) {
			out, err := f.CallKw(args, kwargs)
			if err != nil && matches(err) {
				return nil, nil
			}
			return out, err
		})}
	})

	name := func() string {
		pos, kw := callable.SplitKwargs(extra)
		return fmt.Sprintf("Unless(%s)", naming.Join(", ", naming.NameOf(match), naming.NameOf(fn), naming.ReprArgs(pos, kw)))
	}
	return unless(fn, extra...).Rename(naming.Thunk(name))
}

func errorMatcher(match any) (func(error) bool, error) {
	switch m := match.(type) {
	case func(error) bool:
		return func(err error) bool {
			if m(err) {
				return true
			}
			return slices.ContainsFunc(pipe.GetErrors(err), m)
		}, nil
	case error:
		return func(err error) bool { return errors.Is(err, m) }, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotErrorMatcher, match)
}

// regexCondition turns a string condition into a regular expression search.
func regexCondition(cond any) (any, error) {
	pattern, ok := cond.(string)
	if !ok {
		return cond, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return callable.Unary(strconv.Quote(pattern), func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: cannot search %T for %s", ErrNotText, v, strconv.Quote(pattern))
		}
		return re.MatchString(s), nil
	}), nil
}

func kwargsOf(v any) (callable.Kwargs, error) {
	if kw, ok := v.(callable.Kwargs); ok {
		return kw, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %T", ErrNotMapping, v)
	}
	kw := make(callable.Kwargs, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		kw[it.Key().String()] = it.Value().Interface()
	}
	return kw, nil
}
