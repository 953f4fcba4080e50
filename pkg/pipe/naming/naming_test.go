package naming

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct{ X, Y int }

type named struct{}

func (named) Name() string { return "custom" }

func TestNameOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nil", NameOf(nil))
	assert.Equal(t, "strconv.Itoa", NameOf(strconv.Itoa))
	assert.Equal(t, "custom", NameOf(named{}))
	assert.Equal(t, `"text"`, NameOf("text"))
	assert.Equal(t, "42", NameOf(42))
	assert.Contains(t, NameOf(TestNameOf), "TestNameOf")
}

func TestRepr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{nil, "nil"},
		{"a", `"a"`},
		{1.5, "1.5"},
		{[]any{1, "b", nil}, `[1, "b", nil]`},
		{[2]int{3, 4}, "[3, 4]"},
		{map[string]int{"b": 2, "a": 1}, `{"a": 1, "b": 2}`},
		{[]int(nil), "nil"},
		{point{1, 2}, "{1 2}"},
		{named{}, "custom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Repr(tt.in), "Repr(%#v)", tt.in)
	}
}

func TestReprArgs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ReprArgs(nil, nil))
	assert.Equal(t, `1, "x"`, ReprArgs([]any{1, "x"}, nil))
	assert.Equal(t, `1, a="A", b=2`, ReprArgs([]any{1}, map[string]any{"b": 2, "a": "A"}))
}

func TestThunkIsEvaluatedOnEveryRequest(t *testing.T) {
	t.Parallel()
	n := 0
	th := Of(func() string {
		n++
		return fmt.Sprintf("call %d", n)
	})

	assert.Equal(t, "call 1", th.String())
	assert.Equal(t, "call 2", th.String())
}

func TestOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lit", Of("lit").String())
	assert.Equal(t, "lit", Of(Literal("lit")).String())
	assert.Equal(t, "42", Of(42).String())
	assert.Equal(t, "", Thunk(nil).String())
}

func TestJoin(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a, c", Join(", ", "a", "", "c"))
	assert.Equal(t, "", Join(", "))
}
