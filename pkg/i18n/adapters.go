package i18n

import (
	"context"
	"errors"
	"maps"
)

// TranslationAdapter loads a catalog keyed by language code.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves an in-memory catalog.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// ContentAdapter parses a catalog from raw bytes, typically an embedded file.
type ContentAdapter struct {
	parser  Parser
	content []byte
}

func NewContentAdapter(parser Parser, content []byte) *ContentAdapter {
	return &ContentAdapter{parser: parser, content: content}
}

func (a *ContentAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a.parser == nil {
		return nil, ErrNilParser
	}
	if len(a.content) == 0 {
		return nil, ErrEmptyContent
	}
	return a.parser.Parse(ctx, string(a.content))
}

// MergeAdapter loads several adapters in order. Later catalogs override keys
// of earlier ones per language at the top level.
type MergeAdapter []TranslationAdapter

func (m MergeAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any)
	for _, a := range m {
		if a == nil {
			return nil, ErrNilAdapter
		}
		data, err := a.Load(ctx)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		for lang, entries := range data {
			if out[lang] == nil {
				out[lang] = make(map[string]any, len(entries))
			}
			maps.Copy(out[lang], entries)
		}
	}
	return out, nil
}
