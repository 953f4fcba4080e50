package format

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/0101/pipetools/pkg/pipe/ops"
)

var (
	ErrBadTemplate     = errors.New("bad format template")
	ErrMissingArgument = errors.New("missing format argument")
)

// New compiles tmpl into a unary Callable formatting its input.
// A malformed template is reported when the Callable is invoked.
func New(tmpl string) callable.Callable {
	segments, perr := parse(tmpl)
	name := func() string {
		return fmt.Sprintf("format(%s)", strconv.Quote(truncate(tmpl, 20)))
	}
	return callable.Unary(name, func(v any) (any, error) {
		if perr != nil {
			return nil, perr
		}
		args, named := shape(v)
		return render(segments, args, named)
	})
}

// Format renders tmpl against v once.
func Format(tmpl string, v any) (string, error) {
	out, err := New(tmpl).Apply(v)
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

type step struct {
	attr string
	key  any
	item bool
}

type segment struct {
	literal string
	field   bool
	index   int
	name    string
	steps   []step
	conv    byte
	spec    string
}

func parse(tmpl string) ([]segment, error) {
	var (
		segments []segment
		lit      strings.Builder
		auto     int
	)
	runes := []rune(tmpl)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '{' && i+1 < len(runes) && runes[i+1] == '{':
			lit.WriteRune('{')
			i++
		case r == '}' && i+1 < len(runes) && runes[i+1] == '}':
			lit.WriteRune('}')
			i++
		case r == '}':
			return nil, fmt.Errorf("%w: single '}' at %d in %q", ErrBadTemplate, i, tmpl)
		case r == '{':
			end := i + 1
			for end < len(runes) && runes[end] != '}' {
				if runes[end] == '{' {
					return nil, fmt.Errorf("%w: nested '{' at %d in %q", ErrBadTemplate, end, tmpl)
				}
				end++
			}
			if end == len(runes) {
				return nil, fmt.Errorf("%w: unclosed '{' at %d in %q", ErrBadTemplate, i, tmpl)
			}
			if lit.Len() > 0 {
				segments = append(segments, segment{literal: lit.String()})
				lit.Reset()
			}
			seg, err := parseField(string(runes[i+1:end]), &auto)
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, tmpl)
			}
			segments = append(segments, seg)
			i = end
		default:
			lit.WriteRune(r)
		}
	}
	if lit.Len() > 0 {
		segments = append(segments, segment{literal: lit.String()})
	}
	return segments, nil
}

func parseField(field string, auto *int) (segment, error) {
	seg := segment{field: true}

	if i := strings.IndexByte(field, ':'); i >= 0 {
		verb, err := verbOf(field[i+1:])
		if err != nil {
			return seg, err
		}
		field, seg.spec = field[:i], verb
	}
	if i := strings.IndexByte(field, '!'); i >= 0 {
		conv := field[i+1:]
		if conv != "r" && conv != "s" {
			return seg, fmt.Errorf("%w: unknown conversion %q", ErrBadTemplate, conv)
		}
		field, seg.conv = field[:i], conv[0]
	}

	end := strings.IndexAny(field, ".[")
	if end < 0 {
		end = len(field)
	}
	head, rest := field[:end], field[end:]
	switch {
	case head == "":
		seg.index = *auto
		*auto++
	case isDigits(head):
		seg.index, _ = strconv.Atoi(head)
	default:
		seg.index = -1
		seg.name = head
	}

	for rest != "" {
		switch rest[0] {
		case '.':
			end := strings.IndexAny(rest[1:], ".[")
			if end < 0 {
				end = len(rest) - 1
			}
			attr := rest[1 : end+1]
			if attr == "" {
				return seg, fmt.Errorf("%w: empty attribute in %q", ErrBadTemplate, field)
			}
			seg.steps = append(seg.steps, step{attr: attr})
			rest = rest[end+1:]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return seg, fmt.Errorf("%w: missing ']' in %q", ErrBadTemplate, field)
			}
			var key any = rest[1:end]
			if isDigits(rest[1:end]) {
				key, _ = strconv.Atoi(rest[1:end])
			}
			seg.steps = append(seg.steps, step{key: key, item: true})
			rest = rest[end+1:]
		default:
			return seg, fmt.Errorf("%w: unexpected %q in %q", ErrBadTemplate, rest[0], field)
		}
	}
	return seg, nil
}

func render(segments []segment, args []any, named map[string]any) (string, error) {
	var b strings.Builder
	for _, seg := range segments {
		if !seg.field {
			b.WriteString(seg.literal)
			continue
		}

		var v any
		if seg.name != "" {
			val, ok := named[seg.name]
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrMissingArgument, seg.name)
			}
			v = val
		} else {
			if seg.index >= len(args) {
				return "", fmt.Errorf("%w: index %d with %d positional values", ErrMissingArgument, seg.index, len(args))
			}
			v = args[seg.index]
		}

		for _, s := range seg.steps {
			var err error
			if s.item {
				v, err = ops.GetItem(v, s.key)
			} else {
				v, err = ops.GetAttr(v, s.attr)
			}
			if err != nil {
				return "", err
			}
		}

		if seg.conv == 'r' {
			v = naming.Repr(v)
		}
		b.WriteString(apply(seg.spec, v))
	}
	return b.String(), nil
}

// specPattern is the subset of the format spec mini-language that maps
// onto fmt: [align][sign][#][0][width][.precision][verb].
var specPattern = regexp.MustCompile(`^([<>])?([-+ ])?(#)?(0)?([0-9]+)?(\.[0-9]+)?([a-zA-Z])?$`)

// verbOf translates a format spec into a fmt verb.
func verbOf(spec string) (string, error) {
	if spec == "" {
		return "", nil
	}
	m := specPattern.FindStringSubmatch(spec)
	if m == nil {
		return "", fmt.Errorf("%w: unsupported format spec %q", ErrBadTemplate, spec)
	}
	align, sign, alt, zero, width, prec, verb := m[1], m[2], m[3], m[4], m[5], m[6], m[7]

	var b strings.Builder
	b.WriteByte('%')
	if align == "<" {
		b.WriteByte('-')
	}
	if sign != "-" {
		b.WriteString(sign)
	}
	b.WriteString(alt + zero + width + prec)
	if verb == "" {
		verb = "v"
	}
	b.WriteString(verb)
	return b.String(), nil
}

func apply(verb string, v any) string {
	if verb == "" {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf(verb, v)
}

// shape splits an input into positional and named values.
func shape(v any) ([]any, map[string]any) {
	if v == nil {
		return []any{nil}, nil
	}
	if seq, ok := v.(iter.Seq[any]); ok {
		var args []any
		for item := range seq {
			args = append(args, item)
		}
		return args, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if named, ok := namedValues(rv); ok {
			return nil, named
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		args := make([]any, rv.Len())
		for i := range args {
			args[i] = rv.Index(i).Interface()
		}
		return args, nil
	}
	return []any{v}, nil
}

// namedValues reads a map whose keys are all strings, including a map
// keyed by interface values that happen to hold strings.
func namedValues(rv reflect.Value) (map[string]any, bool) {
	switch rv.Type().Key().Kind() {
	case reflect.String, reflect.Interface:
	default:
		return nil, false
	}
	named := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		k := it.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			return nil, false
		}
		named[k.String()] = it.Value().Interface()
	}
	return named, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
