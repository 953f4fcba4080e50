// Package template builds a function out of a data structure whose leaves
// describe how to compute each element from one input.
//
// A template is a slice, array or map. Each element (and each map key) is
// resolved against the input:
//   - a placeholder expression is evaluated
//   - a string is used as a format template
//   - a callable is called
//   - a nested slice, array or map is built recursively
//   - anything else is kept as a literal
//
// The result has the template's own type when the resolved values fit it.
package template
