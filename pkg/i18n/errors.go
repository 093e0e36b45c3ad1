package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("i18n: adapter is nil")
	ErrNilParser            = errors.New("i18n: parser is nil")
	ErrEmptyContent         = errors.New("i18n: catalog content is empty")
	ErrEmptyLanguage        = errors.New("i18n: empty language code")
	ErrYAMLParsingCancelled = errors.New("i18n: yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("i18n: failed to parse YAML content")
	ErrInvalidCatalog       = errors.New("i18n: invalid catalog structure")
)
