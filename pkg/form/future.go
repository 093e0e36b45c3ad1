package form

import (
	"context"
	"sync"
)

// Future is the eventual result of a validation pass.
// A synchronous pass yields a future that is already complete.
type Future struct {
	result ValidationResult
	once   sync.Once
	done   chan struct{}
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a completed future holding res.
func Resolved(res ValidationResult) *Future {
	f := newFuture()
	f.resolve(res)
	return f
}

func (f *Future) resolve(res ValidationResult) {
	f.once.Do(func() {
		f.result = res
		close(f.done)
	})
}

// Await blocks until the result is available or ctx is done.
// Cancelling ctx does not abort the underlying validation.
func (f *Future) Await(ctx context.Context) (ValidationResult, error) {
	select {
	case <-f.done:
		return f.result, nil
	default:
	}

	select {
	case <-f.done:
		return f.result, nil
	case <-ctx.Done():
		return ValidationResult{}, ctx.Err()
	}
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the result is available without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the result and true when the future is complete.
func (f *Future) Result() (ValidationResult, bool) {
	if !f.IsComplete() {
		return ValidationResult{}, false
	}
	return f.result, true
}
