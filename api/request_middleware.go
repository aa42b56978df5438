package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const requestIDKey = "request_id"

// requestIDMiddleware keeps the client's X-Request-ID or generates a new one, and echoes it back.
func requestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		ctx.Set(requestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}

// loggerMiddleware attaches a request scoped zerolog logger to the request context
// and logs every finished request.
func loggerMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		logger := log.With().Str(requestIDKey, ctx.GetString(requestIDKey)).Logger()
		ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context()))

		ctx.Next()

		status := ctx.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}

		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Int("size", ctx.Writer.Size()).
			Dur("latency", time.Since(start)).
			Msg("request handled")
	}
}

// bodyLimitMiddleware caps the request body, reading past the limit fails the binding.
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
		ctx.Next()
	}
}

// requestLogger returns the logger attached by loggerMiddleware.
func requestLogger(ctx *gin.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx.Request.Context())
}
