package main

import (
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/redis"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`
	// TakenKey is the redis set holding usernames already in use.
	TakenKey string `env:"FORMSERVER_TAKEN_USERNAMES_KEY" envDefault:"formserver:taken:usernames"`

	HTTP  httpserver.Config
	Redis redis.Config
	Form  form.Config
}
