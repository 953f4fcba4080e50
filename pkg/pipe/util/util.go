package util

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/chain"
	"github.com/0101/pipetools/pkg/pipe/ops"
	"github.com/0101/pipetools/pkg/pipe/stage"
	"github.com/0101/pipetools/pkg/pipe/x"
)

// Foreach calls fn on every item.
var Foreach = stage.New("Foreach", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(in))
		for i, item := range in {
			if out[i], err = fn.Apply(item); err != nil {
				return nil, err
			}
		}
		return out, nil
	}}
})

// ForeachDo calls fn on every item for its side effects and returns nil.
var ForeachDo = stage.New("ForeachDo", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		for _, item := range in {
			if _, err := fn.Apply(item); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}}
})

var (
	where = stage.New("Where", func(fn callable.Callable) stage.Made {
		return stage.Made{Func: filter(fn, true)}
	})
	whereNot = stage.New("WhereNot", func(fn callable.Callable) stage.Made {
		return stage.Made{Func: filter(fn, false)}
	})
)

// Where keeps the items cond holds for.
func Where(cond any, extra ...any) stage.Stage {
	c, err := regexCondition(cond)
	if err != nil {
		return stage.Failed(err)
	}
	return where(c, extra...)
}

// WhereNot drops the items cond holds for.
func WhereNot(cond any, extra ...any) stage.Stage {
	c, err := regexCondition(cond)
	if err != nil {
		return stage.Failed(err)
	}
	return whereNot(c, extra...)
}

func filter(cond callable.Callable, keep bool) func(any) (any, error) {
	return func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		out := []any{}
		for _, item := range in {
			ok, err := cond.Apply(item)
			if err != nil {
				return nil, err
			}
			if ops.Truthy(ok) == keep {
				out = append(out, item)
			}
		}
		return out, nil
	}
}

var (
	sortBy = stage.New("SortBy", func(fn callable.Callable) stage.Made {
		return stage.Made{
			Func:  sorter(fn, false),
			Attrs: map[string]chain.Piper{"descending": sortByDescending(fn)},
		}
	})
	sortByDescending = stage.New("SortByDescending", func(fn callable.Callable) stage.Made {
		return stage.Made{Func: sorter(fn, true)}
	})
)

// SortBy sorts items stably by key. Attr("descending") sorts the other
// way round.
func SortBy(key any, extra ...any) stage.Stage {
	return sortBy(key, extra...)
}

// Sort sorts items by themselves.
var Sort = SortBy(x.X)

func sorter(key callable.Callable, descending bool) func(any) (any, error) {
	return func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		type keyed struct {
			key, item any
		}
		ks := make([]keyed, len(in))
		for i, item := range in {
			k, err := key.Apply(item)
			if err != nil {
				return nil, err
			}
			ks[i] = keyed{key: k, item: item}
		}

		var cmpErr error
		slices.SortStableFunc(ks, func(a, b keyed) int {
			c, err := ops.Compare(a.key, b.key)
			if err != nil {
				cmpErr = cmp.Or(cmpErr, err)
				return 0
			}
			if descending {
				return -c
			}
			return c
		})
		if cmpErr != nil {
			return nil, cmpErr
		}

		out := make([]any, len(ks))
		for i, k := range ks {
			out[i] = k.item
		}
		return out, nil
	}
}

// Tee calls fn on the input and returns the input.
var Tee = stage.New("Tee", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		if _, err := fn.Apply(v); err != nil {
			return nil, err
		}
		return v, nil
	}}
})

// AsArgs calls fn with the items of the input as positional arguments.
var AsArgs = stage.New("AsArgs", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		return fn.CallKw(in, nil)
	}}
})

// AsKwargs calls fn with the entries of a string-keyed map as keywords.
var AsKwargs = stage.New("AsKwargs", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		kw, err := kwargsOf(v)
		if err != nil {
			return nil, err
		}
		return fn.CallKw(nil, kw)
	}}
})

// TakeFirst keeps the first n items, or fewer if there are not that many.
func TakeFirst(n int) chain.Pipe {
	return chain.Plain.Or(callable.Unary(fmt.Sprintf("TakeFirst(%d)", n), func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		return slices.Clone(in[:clamp(n, len(in))]), nil
	}))
}

// DropFirst drops the first n items.
func DropFirst(n int) chain.Pipe {
	return chain.Plain.Or(callable.Unary(fmt.Sprintf("DropFirst(%d)", n), func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		return slices.Clone(in[clamp(n, len(in)):]), nil
	}))
}

func clamp(n, length int) int {
	return max(0, min(n, length))
}

var takeUntil = stage.New("TakeUntil", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		out := []any{}
		for _, item := range in {
			stop, err := fn.Apply(item)
			if err != nil {
				return nil, err
			}
			if ops.Truthy(stop) {
				break
			}
			out = append(out, item)
		}
		return out, nil
	}}
})

// TakeUntil keeps items up to the first one cond holds for.
func TakeUntil(cond any, extra ...any) stage.Stage {
	c, err := regexCondition(cond)
	if err != nil {
		return stage.Failed(err)
	}
	return takeUntil(c, extra...)
}

var selectFirst = stage.New("SelectFirst", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		for _, item := range in {
			ok, err := fn.Apply(item)
			if err != nil {
				return nil, err
			}
			if ops.Truthy(ok) {
				return item, nil
			}
		}
		return nil, nil
	}}
})

// SelectFirst returns the first item cond holds for, or nil.
func SelectFirst(cond any, extra ...any) stage.Stage {
	c, err := regexCondition(cond)
	if err != nil {
		return stage.Failed(err)
	}
	return selectFirst(c, extra...)
}

// FirstOf returns the first truthy item, or nil.
var FirstOf = SelectFirst(x.X)

// Group is one group produced by GroupBy.
type Group struct {
	Key   any
	Items []any
}

// GroupBy groups items by key. Groups come in order of the first
// appearance of their key and keep the order of their items.
var GroupBy = stage.New("GroupBy", func(fn callable.Callable) stage.Made {
	return stage.Made{Func: func(v any) (any, error) {
		in, err := items(v)
		if err != nil {
			return nil, err
		}
		var groups []Group
	next:
		for _, item := range in {
			k, err := fn.Apply(item)
			if err != nil {
				return nil, err
			}
			for i := range groups {
				if ops.Equal(groups[i].Key, k) {
					groups[i].Items = append(groups[i].Items, item)
					continue next
				}
			}
			groups = append(groups, Group{Key: k, Items: []any{item}})
		}
		return groups, nil
	}}
})

// Flatten flattens arbitrarily nested slices, arrays and iter.Seq values.
// Strings and maps are left alone.
var Flatten = chain.Plain.Or(callable.Unary("Flatten", func(v any) (any, error) {
	out := []any{}
	if err := flatten(v, &out); err != nil {
		return nil, err
	}
	return out, nil
}))

func flatten(v any, out *[]any) error {
	if !isSequence(v) {
		*out = append(*out, v)
		return nil
	}
	in, err := items(v)
	if err != nil {
		return err
	}
	for _, item := range in {
		if err := flatten(item, out); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of items.
var Count = chain.Plain.Or(callable.Unary("Count", func(v any) (any, error) {
	in, err := items(v)
	if err != nil {
		return nil, err
	}
	return len(in), nil
}))
