// Package pipe holds the values shared by every pipetools package: the
// Nothing sentinel that stops a maybe pipe, the Result[T] outcome returned
// by typed pipe runs, and the error taxonomy of the composition core.
//
// The engine itself lives in the subpackages:
// - naming: lazily computed, human readable names for stages
// - callable: the named wrapper every stage is turned into
// - ops: dynamic attribute, item and operator evaluation
// - x: placeholder expressions (X) recorded now, evaluated later
// - partial: partial application with placeholder substitution
// - format: string templates as stages
// - template: structural templates (slices, maps) as stages
// - chain: plain and maybe pipes
// - stage: the protocol turning a factory into a pipe utility
// - util: utilities built on that protocol (Foreach, Where, SortBy, ...)
package pipe
