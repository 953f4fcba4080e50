package ops

import (
	"strings"
	"testing"

	"github.com/0101/pipetools/pkg/pipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	Name  string
	Email string
	tags  []string
}

func (u user) Upper() string { return strings.ToUpper(u.Name) }

func (u *user) Rename(name string) { u.Name = name }

func TestGetAttrField(t *testing.T) {
	t.Parallel()
	u := user{Name: "ann"}

	v, err := GetAttr(u, "Name")
	require.NoError(t, err)
	assert.Equal(t, "ann", v)

	v, err = GetAttr(&u, "Name")
	require.NoError(t, err)
	assert.Equal(t, "ann", v)

	_, err = GetAttr(u, "tags")
	assert.ErrorIs(t, err, ErrNoAttribute)
	_, err = GetAttr(u, "Missing")
	assert.ErrorIs(t, err, ErrNoAttribute)
	_, err = GetAttr(nil, "Name")
	assert.ErrorIs(t, err, ErrNoAttribute)
}

func TestGetAttrMethod(t *testing.T) {
	t.Parallel()

	m, err := GetAttr(user{Name: "ann"}, "Upper")
	require.NoError(t, err)
	upper, ok := m.(func() string)
	require.True(t, ok)
	assert.Equal(t, "ANN", upper())

	m, err = GetAttr(user{}, "Rename")
	require.NoError(t, err)
	assert.IsType(t, func(string) {}, m)
}

func TestGetItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    any
		key  any
		want any
	}{
		{"map", map[string]int{"a": 1}, "a", 1},
		{"slice", []int{1, 2, 3}, 1, 2},
		{"negative", []int{1, 2, 3}, -1, 3},
		{"array", [2]string{"x", "y"}, 0, "x"},
		{"string by rune", "héllo", 1, "é"},
		{"map key widened", map[int64]string{5: "five"}, 5, "five"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetItem(tt.v, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetItemErrors(t *testing.T) {
	t.Parallel()

	_, err := GetItem(map[string]int{}, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = GetItem([]int{1}, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = GetItem([]int{1}, "0")
	assert.ErrorIs(t, err, ErrNotIndexable)
	_, err = GetItem(42, 0)
	assert.ErrorIs(t, err, ErrNotIndexable)
	_, err = GetItem(map[any]any{"a": 1}, []int{1})
	assert.ErrorIs(t, err, ErrUnsupportedOperand)
	_, err = GetItem(map[int8]string{1: "one"}, 300)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		container any
		item      any
		want      bool
	}{
		{"substring", "hello", "ell", true},
		{"slice element", []int{1, 2}, 2, true},
		{"missing element", []int{1, 2}, 3, false},
		{"map key", map[string]int{"a": 1}, "a", true},
		{"key of another type", map[string]int{"a": 1}, 1, false},
		{"key out of range", map[uint8]bool{1: true}, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Contains(tt.container, tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Contains(map[any]any{"a": 1}, []int{1})
	assert.ErrorIs(t, err, ErrUnsupportedOperand)
	_, err = Contains("abc", 1)
	assert.ErrorIs(t, err, ErrUnsupportedOperand)
}

func TestBinaryArithmetic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   Operator
		a, b any
		want any
	}{
		{Add, 2, 3, 5},
		{Sub, 2, 3, -1},
		{Mul, 4, 3, 12},
		{Div, 7, 2, 3},
		{Mod, 7, 2, 1},
		{Pow, 2, 10, 1024},
		{Div, 7.0, 2.0, 3.5},
		{Add, 1, 0.5, 1.5},
		{Add, int8(1), int8(2), int8(3)},
		{Add, "ab", "cd", "abcd"},
		{Mul, "ab", 2, "abab"},
		{Mul, 2, "ab", "abab"},
		{Add, []int{1}, []int{2}, []int{1, 2}},
		{Mul, []int{1}, 3, []int{1, 1, 1}},
		{Pow, 2, -1, 0.5},
	}
	for _, tt := range tests {
		got, err := Binary(tt.op, tt.a, tt.b)
		require.NoError(t, err, "%v %s %v", tt.a, tt.op, tt.b)
		assert.Equal(t, tt.want, got, "%v %s %v", tt.a, tt.op, tt.b)
	}
}

func TestBinaryErrors(t *testing.T) {
	t.Parallel()

	_, err := Binary(Div, 1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = Binary(Sub, "a", 1)
	assert.ErrorIs(t, err, ErrUnsupportedOperand)
	_, err = Binary(Lt, "a", 1)
	assert.ErrorIs(t, err, ErrUnsupportedOperand)
}

func TestComparisons(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		op   Operator
		a, b any
		want bool
	}{
		{Eq, 1, 1.0, true},
		{Ne, 1, 2, true},
		{Eq, []int{1}, []int{1}, true},
		{Lt, 1, 2, true},
		{Le, 2, 2, true},
		{Gt, "b", "a", true},
		{Ge, 1.5, 2, false},
		{In, "ell", "hello", true},
		{In, 2, []int{1, 2}, true},
		{In, "k", map[string]int{"k": 1}, true},
		{In, "z", map[string]int{"k": 1}, false},
	} {
		got, err := Binary(tt.op, tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v %s %v", tt.a, tt.op, tt.b)
	}
}

func TestUnary(t *testing.T) {
	t.Parallel()

	v, err := Unary(Neg, 3)
	require.NoError(t, err)
	assert.Equal(t, -3, v)

	v, err = Unary(Neg, 1.5)
	require.NoError(t, err)
	assert.Equal(t, -1.5, v)

	v, err = Unary(Not, "")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = Unary(Neg, "a")
	assert.ErrorIs(t, err, ErrUnsupportedOperand)
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, pipe.Nothing, false, 0, 0.0, "", []int{}, map[string]int{}} {
		assert.False(t, Truthy(v), "%#v", v)
	}
	for _, v := range []any{true, 1, -0.5, "x", []int{0}, user{}} {
		assert.True(t, Truthy(v), "%#v", v)
	}
}

func TestOperatorString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "**", Pow.String())
	assert.Equal(t, "in", In.String())
	assert.Equal(t, "not ", Not.String())
	assert.Equal(t, "Operator(99)", Operator(99).String())
}
