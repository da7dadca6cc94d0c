// Package logger builds the structured slog.Logger shared by the gateway's
// binaries and packages.
//
// New creates a JSON or text handler, masks sensitive attributes and wraps
// the result in LogHandlerDecorator, which appends attributes pulled from the
// logging context (the request id, for example) on every record.
//
// # Redaction
//
// Attributes whose key matches DefaultRedactedKeys (secret, salt, iv, code,
// key_part, plaintext, password) are replaced with Redacted regardless of
// nesting depth. WithRedactedKeys extends the list. Identities and origins
// are logged in clear through the Identity and Origin helpers.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Parse(cfg.Env), "totpgate"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "verification succeeded",
//	    logger.Identity(id),
//	    logger.Serial(rec.Serial),
//	)
//
// # Error Handling
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
