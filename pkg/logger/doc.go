// Package logger builds *slog.Logger values with functional options and a
// handler decorator that injects attributes pulled from context.Context.
//
// Helper constructors in attr.go keep attribute keys consistent across the
// module ("form_id", "field", "status", ...). Error and Errors return an empty
// attribute for nil errors, so they can be passed unconditionally:
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "formserver"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.InfoContext(ctx, "form validated", logger.Form(id), logger.Error(err))
package logger
