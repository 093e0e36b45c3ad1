// Package i18n loads message catalogs and renders translated, parameterised
// messages.
//
// Catalogs are nested maps keyed by language code. Keys are dot-separated
// paths into the nested map ("form.required") and templates use named
// placeholders in the form "%{name}".
//
// # Usage
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewContentAdapter(i18n.NewYAMLParser(), catalog))
//	if err != nil {
//	    return err
//	}
//	msg := tr.T(tr.Match("zh-CN"), "form.required", "label", "Email")
//
// Language tags are matched with golang.org/x/text/language, so regional
// variants ("en-GB") resolve to the closest supported catalog ("en").
package i18n
