// Package chain links stages into pipes.
//
// A Pipe is an immutable value. Appending a stage with Or returns a new
// Pipe calling the stage on the result of everything before it;
// OrReversed puts a stage in front. Stages may be callables, placeholder
// expressions, partial.Tuple values, format strings or other pipes.
//
// Key operations:
// - Plain/Maybe: the empty pipes every chain starts from
// - New: build a pipe from stages, reporting the first bad one
// - Or/OrReversed: append or prepend a stage
// - Call/CallKw/ApplyTo: run the pipe
// - Run: run the pipe and get a typed pipe.Result
// - Annotated/WithLogger: opt into error annotation and slog tracing
//
// A maybe pipe stops at the first stage returning pipe.Nothing (or a nil
// value) and returns pipe.Nothing itself. Appending an empty pipe of the
// other kind switches the kind of everything appended after it.
package chain
