package main

import (
	"context"
	_ "embed"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

//go:embed signup.yaml
var signupCatalog []byte

var reservedUsernames = []string{"admin", "root", "support", "system"}

// newTranslator loads the built-in form messages together with the signup catalog.
func newTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.MergeAdapter{
		form.DefaultCatalog(),
		i18n.NewContentAdapter(i18n.NewYAMLParser(), signupCatalog),
	}, opts...)
}

// signupForm declares the signup fields on r, localized for lang, and returns
// their binders by name. taken may be nil.
func signupForm(r *form.Registry, tr *i18n.Translator, lang string, taken *rules.TakenSet) map[string]form.Binder {
	msg := func(key string) string { return tr.T(lang, "signup."+key) }

	username := []form.Rule{
		rules.MinLength(3, msg("username_length")),
		rules.MaxLength(32, msg("username_length")),
		rules.Pattern(`^[a-z0-9_]+$`, msg("username_format")),
		rules.Typed(func(s string) bool { return !slices.Contains(reservedUsernames, s) }, msg("username_reserved")),
	}
	if taken != nil {
		username = append(username, rules.Unique(taken, msg("username_taken")))
	}

	binders := make(map[string]form.Binder, 5)
	binders["username"] = r.Decorate("username", form.FieldOptions{
		Label:        msg("labels.username"),
		Required:     true,
		StopValidate: true,
		Rules:        username,
	})
	binders["email"] = r.Decorate("email", form.FieldOptions{
		Label:    msg("labels.email"),
		Required: true,
		Rules:    []form.Rule{rules.Email(msg("email_format"))},
	})
	binders["password"] = r.Decorate("password", form.FieldOptions{
		Label:    msg("labels.password"),
		Required: true,
		Rules:    []form.Rule{rules.MinLength(8, msg("password_length"))},
	})
	binders["plan"] = r.Decorate("plan", form.FieldOptions{
		Label:        msg("labels.plan"),
		InitialValue: "free",
		Rules:        []form.Rule{rules.OneOf([]string{"free", "pro"}, msg("plan_unknown"))},
	})
	binders["referral"] = r.Decorate("referral", form.FieldOptions{
		Label: msg("labels.referral"),
		Rules: []form.Rule{rules.UUID("")},
	})
	return binders
}
