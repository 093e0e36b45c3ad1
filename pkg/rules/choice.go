package rules

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// OneOf fails unless the value is one of options. A value of another type fails.
func OneOf[T comparable](options []T, message string) form.Rule {
	return form.Rule{
		Validate: func(value any, _ form.Fields) bool {
			v, ok := value.(T)
			return ok && slices.Contains(options, v)
		},
		Message: message,
	}
}

// UUID fails unless the value is a UUID in canonical 36 character form.
func UUID(message string) form.Rule {
	return form.Rule{
		Validate: func(value any, _ form.Fields) bool {
			s := text(value)
			// uuid.Parse also accepts urn and braced forms
			if len(s) != 36 {
				return false
			}
			_, err := uuid.Parse(s)
			return err == nil
		},
		Message: message,
	}
}
