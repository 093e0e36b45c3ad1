// Command formserver validates a signup form over HTTP.
//
//	POST /signup/validate                 whole form, {"errors": ..., "values": ...}
//	POST /signup/fields/{name}/validate   one field, as on change
//	GET  /healthz                         readiness, including redis when configured
//
// Messages follow the Accept-Language header (en, zh). Usernames are checked
// against a redis set when REDIS_URL is set.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "formserver:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "formserver"),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	log := logger.New(logOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, err := newTranslator(ctx, i18n.WithLogger(log))
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	h := &signupHandler{log: log, tr: tr, formCfg: cfg.Form}
	var checks []httpserver.Check
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		h.taken = rules.NewTakenSet(client, cfg.TakenKey)
		if err := h.taken.Add(ctx, reservedUsernames...); err != nil {
			return fmt.Errorf("seed reserved usernames: %w", err)
		}
		checks = append(checks, redis.Healthcheck(client, cfg.TakenKey))
	} else {
		log.WarnContext(ctx, "REDIS_URL is not set, username uniqueness is not checked")
	}

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, newRouter(h, checks...))
}
