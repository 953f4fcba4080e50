package partial

import (
	"strings"
	"testing"

	"github.com/0101/pipetools/pkg/pipe"
	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(args ...any) []any { return args }

func describe(args []any, kwargs callable.Kwargs) (any, error) {
	return map[string]any{"args": args, "kwargs": kwargs}, nil
}

func TestBindPrependsArguments(t *testing.T) {
	t.Parallel()
	fn, err := Bind(strings.Repeat, "ab")
	require.NoError(t, err)

	out, err := fn.Apply(3)
	require.NoError(t, err)
	assert.Equal(t, "ababab", out)
}

func TestBindSubstitutesPlaceholders(t *testing.T) {
	t.Parallel()
	fn, err := Bind(collect, x.X, 0, -1)
	require.NoError(t, err)

	out, err := fn.Apply(5)
	require.NoError(t, err)
	assert.Equal(t, []any{5, 0, -1}, out)
}

func TestBindPlaceholderExpressionsAndRest(t *testing.T) {
	t.Parallel()
	fn, err := Bind(collect, x.X.Mul(2), "fixed")
	require.NoError(t, err)

	out, err := fn.Call(3, "extra")
	require.NoError(t, err)
	assert.Equal(t, []any{6, "fixed", "extra"}, out)
}

func TestBindMissingSubstitutionArgument(t *testing.T) {
	t.Parallel()
	fn, err := Bind(collect, x.X)
	require.NoError(t, err)

	_, err = fn.Call()
	require.ErrorIs(t, err, pipe.ErrMissingSubstitutionArgument)
	var missing *pipe.MissingSubstitutionArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Target, "collect")
}

func TestBindKeywords(t *testing.T) {
	t.Parallel()
	fn, err := Bind(callable.Func(describe), 1, callable.Kwargs{"a": "fixed", "b": "fixed"})
	require.NoError(t, err)

	out, err := fn.Call(2, callable.Kwargs{"b": "call"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"args":   []any{1, 2},
		"kwargs": callable.Kwargs{"a": "fixed", "b": "call"},
	}, out)
}

func TestBindSubstitutesKeywordPlaceholders(t *testing.T) {
	t.Parallel()
	fn, err := Bind(callable.Func(describe), callable.Kwargs{"double": x.X.Mul(2), "keep": 1})
	require.NoError(t, err)

	out, err := fn.Call(4, "rest", callable.Kwargs{"keep": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"args":   []any{"rest"},
		"kwargs": callable.Kwargs{"double": 8, "keep": 2},
	}, out)
}

func TestBindName(t *testing.T) {
	t.Parallel()
	fn, err := Bind(strings.Repeat, x.X, 2, callable.Kwargs{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, `strings.Repeat(X, 2, k="v")`, fn.Name())
}

func TestBindPlaceholderErrorsSurface(t *testing.T) {
	t.Parallel()
	fn, err := Bind(collect, x.X.Attr("Missing"))
	require.NoError(t, err)

	_, err = fn.Apply(3)
	assert.Error(t, err)
}

func TestBindRejectsNonCallable(t *testing.T) {
	t.Parallel()
	_, err := Bind(42)
	assert.ErrorIs(t, err, callable.ErrNotCallable)
}

func TestTuple(t *testing.T) {
	t.Parallel()
	fn, err := Tuple{strings.Repeat, x.X, 3}.Bind()
	require.NoError(t, err)

	out, err := fn.Apply("z")
	require.NoError(t, err)
	assert.Equal(t, "zzz", out)

	_, err = Tuple{}.Bind()
	assert.ErrorIs(t, err, ErrEmptyTuple)
}
