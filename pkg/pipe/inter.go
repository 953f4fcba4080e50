package pipe

import "time"

type ResultProvider[T any] interface {
	// Result returns the successful result value
	Result() T
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
}

// WithError defines an interface for types that can return a result or an error
type WithError[T any] interface {
	ResultProvider[T]
	// Err returns the error if operation failed
	Err() error
	// IsSuccess returns true if the operation was successful
	IsSuccess() bool
}

// Unwrap collapses any WithError into a plain (value, error) pair.
func Unwrap[T any](r WithError[T]) (T, error) {
	if r.IsSuccess() {
		return r.Result(), nil
	}
	var zero T
	return zero, r.Err()
}
