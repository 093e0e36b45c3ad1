package form

import (
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Config holds registry settings loadable from the environment with pkg/config.
type Config struct {
	StopOnFirstError    bool   `env:"FORM_STOP_ON_FIRST_ERROR" envDefault:"false"`
	ValidateOn          string `env:"FORM_VALIDATE_ON" envDefault:"change"`
	DiscardStaleResults bool   `env:"FORM_DISCARD_STALE_RESULTS" envDefault:"true"`
	Language            string `env:"FORM_LANGUAGE" envDefault:"en"`
	EventBuffer         int    `env:"FORM_EVENT_BUFFER" envDefault:"16"`
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger           *slog.Logger
	stopOnFirstError bool
	trigger          Trigger
	discardStale     bool
	translator       *i18n.Translator
	language         string
	eventBuffer      int
	id               string
}

func defaultOptions() *options {
	return &options{
		logger:       logger.Nop(),
		trigger:      ValidateOnChange,
		discardStale: true,
		eventBuffer:  16,
	}
}

// WithLogger sets the registry logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStopOnFirstError makes aggregate operations stop at the first failing field.
func WithStopOnFirstError(stop bool) Option {
	return func(o *options) {
		o.stopOnFirstError = stop
	}
}

// WithTrigger sets when fields validate on their own.
func WithTrigger(t Trigger) Option {
	return func(o *options) {
		if t == ValidateOnChange || t == ValidateOnBlur {
			o.trigger = t
		}
	}
}

// WithDiscardStaleResults controls what happens when an async validation
// settles after a newer pass started on the same field. When true (default)
// the older result is dropped. When false it is applied unconditionally and may
// overwrite the status of a newer value.
func WithDiscardStaleResults(discard bool) Option {
	return func(o *options) {
		o.discardStale = discard
	}
}

// WithTranslator replaces the default message catalog.
func WithTranslator(tr *i18n.Translator) Option {
	return func(o *options) {
		if tr != nil {
			o.translator = tr
		}
	}
}

// WithLanguage selects the language of default messages.
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

// WithEventBuffer sets the per-subscriber event buffer size.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.eventBuffer = n
		}
	}
}

// WithID sets the registry id used in logs and events. Defaults to a random UUID.
func WithID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.id = id
		}
	}
}

// WithConfig applies a loaded Config. An invalid ValidateOn value keeps the default trigger.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.stopOnFirstError = cfg.StopOnFirstError
		o.discardStale = cfg.DiscardStaleResults
		if t, err := ParseTrigger(cfg.ValidateOn); err == nil {
			o.trigger = t
		}
		if cfg.Language != "" {
			o.language = cfg.Language
		}
		if cfg.EventBuffer > 0 {
			o.eventBuffer = cfg.EventBuffer
		}
	}
}
