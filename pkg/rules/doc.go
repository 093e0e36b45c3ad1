// Package rules provides ready-made form.Rule constructors for common checks.
//
// Every constructor takes the failure message as its last argument. An empty
// message makes the field fall back to the localized "<label> is invalid" text.
//
//	r.Decorate("username", form.FieldOptions{
//	    Required: true,
//	    Rules: []form.Rule{
//	        rules.MinLength(3, "At least 3 characters"),
//	        rules.Pattern(`^[a-z0-9_]+$`, "Lowercase letters, digits and underscores only"),
//	        rules.Unique(takenUsernames, "This username is taken"),
//	    },
//	})
//
// Rules only see values that are not empty; empty values are handled by the
// field's Required option.
package rules
