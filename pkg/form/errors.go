package form

import "errors"

var (
	// ErrFieldNotFound is returned when a name was never passed to Decorate.
	ErrFieldNotFound = errors.New("form: field not found")

	// ErrFieldNotMounted is returned when an operation needs a live controller
	// and the field's widget has not been bound yet or was unmounted.
	ErrFieldNotMounted = errors.New("form: field is not mounted")

	// ErrInvalidTrigger is returned for an unknown validation trigger name.
	ErrInvalidTrigger = errors.New("form: invalid validation trigger")

	// ErrPredicatePanic wraps a panic raised inside a rule predicate.
	ErrPredicatePanic = errors.New("form: rule predicate panicked")

	// ErrNoStatusTransition is returned when the status table has no entry for an event.
	ErrNoStatusTransition = errors.New("form: no status transition")
)
