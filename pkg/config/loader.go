package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option adjusts a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	prefix string
	files  []string
}

// WithPrefix prepends prefix to every env tag, e.g. "SIGNUP_" + "FORM_LANGUAGE".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given dotenv files before parsing. Unlike the default
// .env file, a missing file here is an error.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) {
		o.files = append(o.files, files...)
	}
}

// Load fills v from the environment.
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// the default .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.files) > 0 {
		if err := godotenv.Load(o.files...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure, for configuration a process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
