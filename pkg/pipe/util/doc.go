// Package util holds the everyday pipe utilities. Every one of them is a
// stage: it takes a placeholder, a format string, a structural template
// or a callable, accepts extra arguments to bind, and names itself after
// the call that built it.
//
// Utilities working on iterables accept slices, arrays, maps (their keys
// in sorted order), strings (one string per rune) and iter.Seq[any], and
// return []any.
//
// Where, WhereNot, TakeUntil and SelectFirst read a string condition as a
// regular expression searched in each item.
package util
