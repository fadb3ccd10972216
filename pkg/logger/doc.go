// Package logger builds the structured loggers used across the storefront
// client. It is a thin layer over log/slog that adds functional options,
// environment presets and attribute helpers with stable key names.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Environment, "storefront"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "cart item added",
//	    logger.Component("cart"),
//	    logger.ProductID(item.ProductID),
//	)
//
// # Context extraction
//
// ContextExtractor callbacks run on every Handle call, so request scoped values
// stored in a context.Context show up on the record without passing them
// around explicitly. WithContextValue covers the common single-key case.
//
// # Errors
//
// Error and Errors return an empty slog.Attr for nil errors, which slog drops,
// so callers can write log.Warn("persist failed", logger.Error(err)) without a
// nil check.
package logger
