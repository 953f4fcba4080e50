// Package x provides placeholder expressions: X stands for "the argument
// this will eventually be called with", and every builder method records
// one more operation against it without evaluating anything.
//
//	isLong := x.X.Attr("Title").Call().Gt(10) // nothing runs yet
//	fn := isLong.ToFunc()                       // a unary Callable
//
// Expressions are immutable; every method returns a new node, so partial
// expressions can be shared and extended freely.
package x
