package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language was configured.
const DefaultLanguage = "en"

// Translator renders messages from a loaded catalog. It is safe for concurrent use.
type Translator struct {
	mu            sync.RWMutex
	translations  map[string]map[string]any
	langs         []string
	ordered       []string
	matcher       language.Matcher
	defaultLang   string
	fallbackToKey bool
	logger        *slog.Logger
}

// NewTranslator loads the catalog from adapter and applies options.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, entries := range translations {
		if lang == "" {
			return nil, ErrEmptyLanguage
		}
		if entries == nil {
			return nil, fmt.Errorf("%w: nil entries for language %q", ErrInvalidCatalog, lang)
		}
	}

	t.translations = translations
	t.langs = sortedLanguages(translations)
	t.matcher, t.ordered = newMatcher(t.langs, t.defaultLang)
	t.logger.DebugContext(ctx, "translations loaded", "languages", t.langs)
	return t, nil
}

// SupportedLanguages returns the catalog languages in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.langs...)
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match returns the supported language closest to lang, or the default language.
func (t *Translator) Match(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return t.defaultLang
	}
	return t.matchTags(tag)
}

// MatchAcceptLanguage picks a supported language for an Accept-Language header.
func (t *Translator) MatchAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return t.defaultLang
	}
	return t.matchTags(tags...)
}

func (t *Translator) matchTags(tags ...language.Tag) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.langs) == 0 {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.ordered[idx]
}

// Has reports whether lang has a string entry for key.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entries, ok := t.translations[lang]
	if !ok {
		return false
	}
	_, ok = lookup(entries, key).(string)
	return ok
}

// T renders key for lang. args are key/value pairs substituted into "%{key}"
// placeholders. An unsupported lang falls back to the default language; a
// missing key renders as the key itself unless WithFallbackToKey(false).
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries, ok := t.translations[lang]
	if !ok {
		entries = t.translations[t.defaultLang]
	}

	if tmpl, ok := lookup(entries, key).(string); ok {
		return substitute(tmpl, args)
	}

	t.logger.Debug("translation not found", "lang", lang, "key", key)
	if t.fallbackToKey {
		return substitute(key, args)
	}
	return ""
}

// lookup walks a nested map with a dot-separated key.
func lookup(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	parts := strings.Split(key, ".")
	var current any = m
	for _, part := range parts {
		switch node := current.(type) {
		case map[string]any:
			current = node[part]
		case map[any]any:
			current = node[part]
		default:
			return nil
		}
		if current == nil {
			return nil
		}
	}
	return current
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

func sortedLanguages(translations map[string]map[string]any) []string {
	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// newMatcher returns a matcher over langs with defaultLang first, and the
// language order the matcher's indexes refer to.
func newMatcher(langs []string, defaultLang string) (language.Matcher, []string) {
	tags := make([]language.Tag, 0, len(langs))
	ordered := make([]string, 0, len(langs))
	for _, l := range langs {
		if l == defaultLang {
			ordered = append([]string{l}, ordered...)
			continue
		}
		ordered = append(ordered, l)
	}
	for _, l := range ordered {
		tags = append(tags, language.Make(l))
	}
	return language.NewMatcher(tags), ordered
}
