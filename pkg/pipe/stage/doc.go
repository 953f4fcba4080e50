// Package stage turns a transformer factory into a pipe utility.
//
// A Maker receives the transformer already reduced to a Callable and
// returns the function the stage runs. New wraps it into a Factory that
// accepts placeholder expressions, format strings, structural templates
// and plain callables as the transformer, binds extra arguments to it,
// and names the resulting stage after the call that built it, e.g.
// Foreach(strconv.Itoa) or Where(X > 3).
package stage
