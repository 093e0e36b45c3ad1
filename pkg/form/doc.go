// Package form is a headless form field validation engine.
//
// A Registry holds one logical form. Fields are declared with Decorate, which
// returns a Binder; binding a Widget (or nil, for a headless field) yields a
// FieldController that owns the field's runtime state and drives its
// validation passes. Rules are checked in declaration order by Evaluate and the
// first failing rule decides the result. Synchronous passes complete
// immediately; a pass that reaches an async rule returns a pending Future and
// leaves the field in the validating state until it settles.
//
// Basic usage:
//
//	r := form.New(form.WithLogger(log), form.WithLanguage("en"))
//
//	email := r.Decorate("email", form.FieldOptions{
//	    Label:    "Email",
//	    Required: true,
//	    Rules: []form.Rule{
//	        {Pattern: regexp.MustCompile(`^[^@]+@[^@]+$`), Message: "Enter a valid email"},
//	    },
//	})(form.WidgetFunc(func(p form.Props) {
//	    // render p.Value, p.Status and p.Message
//	}))
//
//	email.Controller().SetValue(ctx, "a@b.com")
//
//	report, err := r.ValidateFields(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	if report.Errors != nil {
//	    // show report.Errors
//	}
//
// Validation failures are values (ValidationResult), never Go errors. Errors
// returned by this package signal misuse, such as an unknown field name, or a
// context that ended while awaiting a pending pass.
//
// Aggregate operations visit fields strictly one at a time in registration
// order. When a field fails and either WithStopOnFirstError or the field's
// StopValidate is set, GetFieldsValue stops collecting values while
// ValidateFields stops validating but still returns every field's value.
//
// By default an async result that settles after a newer pass started on the
// same field is discarded. WithDiscardStaleResults(false) applies every result
// in settle order instead.
//
// Field state changes are published to subscribers returned by Subscribe. A
// subscriber that does not keep up misses events; publishing never blocks.
package form
