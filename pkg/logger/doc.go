// Package logger builds *slog.Logger instances from functional options and
// injects attributes pulled from context.Context at log time.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler according to the
// configured Format and wraps it with a handler that runs every
// registered ContextExtractor before delegating. Attribute helpers in attr.go
// (SessionID, URL, Error, ...) keep key names consistent across packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "incognitod"),
//	    logger.WithContextExtractors(requestid.LogExtractor),
//	)
//	log.InfoContext(ctx, "session started", logger.SessionID(id))
//
// Libraries that accept an optional logger default to NewNop.
package logger
