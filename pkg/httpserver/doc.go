// Package httpserver runs an http.Handler with graceful shutdown driven by a
// context. It hosts the form validation endpoints of cmd/formserver.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// HealthHandler serves liveness and readiness probes.
package httpserver
