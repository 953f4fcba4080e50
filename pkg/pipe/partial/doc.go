// Package partial fixes some arguments of a callable. Fixed arguments may
// be placeholder expressions: they are evaluated against the first
// argument of each call, which lets a pipe feed its value into any
// position or keyword.
//
//	countdown := partial.Bind(rangeDown, x.X, 0, -1) // countdown(5) == rangeDown(5, 0, -1)
package partial
