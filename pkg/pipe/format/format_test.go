package format

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movie struct {
	Title string
	Year  int
}

func TestFormatByInputShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tmpl string
		in   any
		want string
	}{
		{"single value", "{0}-{0}", "ab", "ab-ab"},
		{"auto index", "{} and {}", []int{1, 2}, "1 and 2"},
		{"explicit index", "{1}{0}", []string{"a", "b"}, "ba"},
		{"array", "{}", [1]string{"only"}, "only"},
		{"sequence", "{}+{}", slices.Values([]any{1, 2}), "1+2"},
		{"named", "{name} is {age}", map[string]any{"name": "ann", "age": 30}, "ann is 30"},
		{"named by interface keys", "{k}={v}", map[any]any{"k": "a", "v": 1}, "a=1"},
		{"mixed keys are one value", "{}", map[any]any{1: "a"}, "map[1:a]"},
		{"field", "{0.Title} ({0.Year})", movie{"Heat", 1995}, "Heat (1995)"},
		{"item", "{m[k]} {s[1]}", map[string]any{"m": map[string]int{"k": 7}, "s": []string{"a", "b"}}, "7 b"},
		{"precision", "{0:.2f}", 3.14159, "3.14"},
		{"width", "[{:4}]", 42, "[  42]"},
		{"verb", "{:x}", 255, "ff"},
		{"left aligned", "[{:<4}]", 42, "[42  ]"},
		{"right aligned", "[{:>4}]", "ab", "[  ab]"},
		{"sign and zero pad", "{:+05d}", 42, "+0042"},
		{"repr", "{!r}", "a", `"a"`},
		{"escapes", "{{{}}}", 1, "{1}"},
		{"no markers", "plain", 1, "plain"},
		{"nil", "{}", nil, "<nil>"},
		{"bytes are one value", "{}", []byte("hi"), "[104 105]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.tmpl).Apply(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	for _, tmpl := range []string{"{", "}", "{a{b}}", "{0!x}", "{0[1}", "{0.}", "{:^5}", "{:,}", "{:*>5}", "{:5.2f%}"} {
		_, err := New(tmpl).Apply(1)
		assert.ErrorIs(t, err, ErrBadTemplate, tmpl)
	}

	_, err := New("{1}").Apply("only")
	assert.ErrorIs(t, err, ErrMissingArgument)
	_, err = New("{name}").Apply(42)
	assert.ErrorIs(t, err, ErrMissingArgument)
	_, err = New("{0.Missing}").Apply(movie{})
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `format("{0}")`, New("{0}").Name())
	assert.Equal(t, `format("a long template stri")`, New("a long template string beyond twenty").Name())
}

func TestFormat(t *testing.T) {
	t.Parallel()
	s, err := Format("<{}>", 5)
	require.NoError(t, err)
	assert.Equal(t, "<5>", s)
}
