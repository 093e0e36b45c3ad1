package form

import (
	"context"
	_ "embed"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

//go:embed messages.yaml
var defaultCatalog []byte

const (
	msgRequired   = "form.required"
	msgInvalid    = "form.invalid"
	msgValidating = "form.validating"
)

// DefaultCatalog returns an adapter over the built-in message catalog (en, zh).
// Merge it with an application catalog to add languages or override messages.
func DefaultCatalog() i18n.TranslationAdapter {
	return i18n.NewContentAdapter(i18n.NewYAMLParser(), defaultCatalog)
}

// messages renders the default field messages in one language.
type messages struct {
	tr   *i18n.Translator
	lang string
}

var defaultTranslator = sync.OnceValue(func() *i18n.Translator {
	tr, err := i18n.NewTranslator(context.Background(), DefaultCatalog())
	if err != nil {
		// the catalog is embedded, a parse failure is a build defect
		panic(err)
	}
	return tr
})

func newMessages(tr *i18n.Translator, lang string) *messages {
	if tr == nil {
		tr = defaultTranslator()
	}
	if lang == "" {
		lang = tr.DefaultLanguage()
	} else {
		lang = tr.Match(lang)
	}
	return &messages{tr: tr, lang: lang}
}

func (m *messages) required(label string) string {
	return m.tr.T(m.lang, msgRequired, "label", label)
}

func (m *messages) invalid(label string) string {
	return m.tr.T(m.lang, msgInvalid, "label", label)
}

func (m *messages) validating() string {
	return m.tr.T(m.lang, msgValidating)
}
