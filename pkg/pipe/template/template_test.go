package template

import (
	"strings"
	"testing"

	"github.com/0101/pipetools/pkg/pipe"
	"github.com/0101/pipetools/pkg/pipe/ops"
	"github.com/0101/pipetools/pkg/pipe/partial"
	"github.com/0101/pipetools/pkg/pipe/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, def any, in any) any {
	t.Helper()
	fn, err := Build(def)
	require.NoError(t, err)
	out, err := fn.Apply(in)
	require.NoError(t, err)
	return out
}

func TestBuildMapping(t *testing.T) {
	t.Parallel()
	assert.Equal(t, map[string]any{"k": "ab"}, mustBuild(t, map[string]any{"k": x.X}, "ab"))
}

func TestBuildTuple(t *testing.T) {
	t.Parallel()
	assert.Equal(t, partial.Tuple{"ab", "abab"}, mustBuild(t, partial.Tuple{x.X, x.X.Mul(2)}, "ab"))
}

func TestBuildResolvesEveryKindOfLeaf(t *testing.T) {
	t.Parallel()
	def := []any{
		x.X.Add(1),
		"n={}",
		func(i int) int { return i * 10 },
		42,
		nil,
		[]any{x.X, "static"},
		map[string]any{"neg": x.X.Neg()},
	}

	assert.Equal(t, []any{
		3,
		"n=2",
		20,
		42,
		nil,
		[]any{2, "static"},
		map[string]any{"neg": -2},
	}, mustBuild(t, def, 2))
}

func TestBuildResolvesMapKeys(t *testing.T) {
	t.Parallel()
	out := mustBuild(t, map[any]any{x.X: x.X.Mul(2), "{}!": 0}, 3)
	assert.Equal(t, map[any]any{3: 6, "3!": 0}, out)
}

func TestBuildKeepsTypeWhenValuesFit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"AB", "ab"}, mustBuild(t, []string{"{}", "ab"}, "AB"))
	assert.Equal(t, [2]any{1, 2}, mustBuild(t, [2]any{x.X, x.X.Add(1)}, 1))
	assert.Equal(t, map[string]string{"v": "x!"}, mustBuild(t, map[string]string{"v": "{}!"}, "x"))

	fn, err := Build(map[string]int{"n": 1, "m": 2})
	require.NoError(t, err)
	out, err := fn.Apply("ignored")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"n": 1, "m": 2}, out)
}

func TestBuildFallsBack(t *testing.T) {
	t.Parallel()

	double := func(i int) int { return i * 2 }

	assert.Equal(t, []any{4}, mustBuild(t, []func(int) int{double}, 2))
	assert.Equal(t, []any{4, 6}, mustBuild(t, [2]func(int) int{double, func(i int) int { return i * 3 }}, 2))
	assert.Equal(t, map[any]any{"d": 4}, mustBuild(t, map[string]func(int) int{"d": double}, 2))
}

type person struct {
	Name string
	Age  int
}

func TestBuildNested(t *testing.T) {
	t.Parallel()
	def := map[string]any{
		"name": x.X.Attr("Name"),
		"more": []any{x.X.Attr("Name").Item(0), map[string]any{"age": x.X.Attr("Age")}},
	}

	assert.Equal(t, map[string]any{
		"name": "Ann",
		"more": []any{"A", map[string]any{"age": 3}},
	}, mustBuild(t, def, person{Name: "Ann", Age: 3}))
}

func TestBuildRejectsNonContainers(t *testing.T) {
	t.Parallel()

	for _, def := range []any{"string", 42, nil, x.X, strings.ToUpper} {
		_, err := Build(def)
		assert.ErrorIs(t, err, pipe.ErrNoBuilder, "%#v", def)
		var nb *pipe.NoBuilderError
		assert.ErrorAs(t, err, &nb)
	}
}

func TestBuildPropagatesErrors(t *testing.T) {
	t.Parallel()
	fn, err := Build([]any{x.X.Item(3)})
	require.NoError(t, err)

	_, err = fn.Apply([]int{1})
	assert.ErrorIs(t, err, ops.ErrIndexOutOfRange)
}

func TestBuildUnhashableKey(t *testing.T) {
	t.Parallel()
	fn, err := Build(map[any]any{x.X: 1})
	require.NoError(t, err)

	_, err = fn.Apply([]int{1})
	assert.ErrorIs(t, err, ErrUnhashableKey)
}

func TestBuildName(t *testing.T) {
	t.Parallel()
	fn, err := Build([]any{x.X.Attr("Name"), x.X.Mul(2), "lit"})
	require.NoError(t, err)
	assert.Equal(t, `[X.Name, X * 2, "lit"]`, fn.Name())
}
