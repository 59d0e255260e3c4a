package common

import (
	"context"

	"github.com/rs/zerolog"
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// LoggerFromContext extracts the logger from context, or returns a disabled logger if not found
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// LoggingMiddleware logs every request at debug level and failures at warn level.
func LoggingMiddleware() Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)

		logger.Debug().Str("request", name).Msg("handling request")
		response, err := next(ctx, request)
		if err != nil {
			logger.Warn().Err(err).Str("request", name).Msg("request failed")
		}
		return response, err
	}
}
