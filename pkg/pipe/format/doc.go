// Package format turns a template string into a stage.
//
// Markers follow the brace syntax: {} takes the next positional value,
// {0} a given one, {name} a named one. A marker may drill into its value
// with .Field and [key] steps, convert it with !r (Go-syntax repr) or !s,
// and format it with :spec, which is translated to a fmt verb
// ({0:.2f} is %.2f, {0:5} is %5v, {0:<5} is %-5v). Specs fmt cannot
// express, such as centering, fill characters or digit grouping, are
// rejected as bad templates. Literal braces are written {{ and }}.
//
// What the markers refer to depends on the input: a map whose keys are all
// strings provides named values, a slice, array or iter.Seq[any] provides
// positional values, and anything else is the single positional value 0.
package format
