// Package ops evaluates the operations a placeholder expression can record
// against a dynamically typed value: member access, item access, binary
// and unary operators, containment and truthiness.
//
// Errors are returned as plain wrapped sentinels (ErrNoAttribute,
// ErrKeyNotFound, ...) so callers can match them with errors.Is.
package ops
