package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// LoggingMiddleware attaches a request scoped logger to the request context and writes one
// access log line per request.
func LoggingMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		reqLogger := logger.With().Str("request_id", c.GetString("request_id")).Logger()
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			reqLogger = reqLogger.With().
				Str("trace_id", span.SpanContext().TraceID().String()).
				Str("span_id", span.SpanContext().SpanID().String()).
				Logger()
		}
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		statusCode := c.Writer.Status()
		logEvent := reqLogger.Info()
		if statusCode >= 500 {
			logEvent = reqLogger.Error()
		} else if statusCode >= 400 {
			logEvent = reqLogger.Warn()
		}

		if userID := c.GetString("user_id"); userID != "" {
			logEvent = logEvent.Str("user_id", userID)
		}

		logEvent.
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", raw).
			Int("status", statusCode).
			Dur("latency", time.Since(start)).
			Str("user_agent", c.Request.UserAgent()).
			Msg(c.Errors.ByType(gin.ErrorTypePrivate).String())
	}
}
