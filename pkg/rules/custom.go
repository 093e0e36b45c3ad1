package rules

import (
	"context"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Predicate wraps a synchronous check.
func Predicate(fn form.Predicate, message string) form.Rule {
	return form.Rule{Validate: fn, Message: message}
}

// Async wraps a check that may block, such as a remote lookup. The field stays
// in the validating state until fn returns.
func Async(fn form.AsyncPredicate, message string) form.Rule {
	return form.Rule{AsyncValidate: fn, Message: message}
}

// Typed adapts a check over a concrete value type. A value of another type fails.
func Typed[T any](fn func(T) bool, message string) form.Rule {
	return form.Rule{
		Validate: func(value any, _ form.Fields) bool {
			v, ok := value.(T)
			return ok && fn(v)
		},
		Message: message,
	}
}

// AsyncTyped is Typed for checks that may block.
func AsyncTyped[T any](fn func(context.Context, T) (bool, error), message string) form.Rule {
	return form.Rule{
		AsyncValidate: func(ctx context.Context, value any, _ form.Fields) (bool, error) {
			v, ok := value.(T)
			if !ok {
				return false, nil
			}
			return fn(ctx, v)
		},
		Message: message,
	}
}
