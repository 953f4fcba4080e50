// Package callable wraps anything invocable into a Callable: a function of
// positional and keyword arguments that carries its own lazily computed
// name and a unique id.
//
// Plain Go functions are adapted through reflection:
//   - arguments are converted to the parameter types (numbers widen, nil
//     becomes the zero value of nillable types)
//   - a final parameter of type Kwargs receives the keyword arguments
//   - (T, error) results are split, a lone error result is returned as is,
//     and several non-error results are returned as a []any
//
// Naming a Callable never mutates the wrapped value: SetName returns a new
// wrapper.
package callable
