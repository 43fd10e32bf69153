package pooledhttp

import "fmt"

// InvalidArgumentError is returned by New when a constructor argument is rejected.
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Reason)
}

// DisposedError is returned when a body is used after its buffer went back to the pool.
type DisposedError struct{}

func (*DisposedError) Error() string {
	return "pooled body is disposed"
}

// ErrDisposed is the only DisposedError value returned by this package.
var ErrDisposed error = &DisposedError{}
