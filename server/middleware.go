package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"foodpath"
	"foodpath/store"
)

const (
	sessionHeader = "X-Session-ID"
	sessionKey    = "session"
)

// session resolves the caller's session id, issuing a new one when the
// header is absent. The id is echoed back so clients can keep it.
func session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id = uuid.NewString()
		} else if !store.ValidSession(id) {
			sendErrorResponse(c, http.StatusBadRequest, "Invalid session id")
			c.Abort()
			return
		}

		c.Set(sessionKey, id)
		c.Header(sessionHeader, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			slog.Error("HTTP: Request failed", attrs...)
			return
		}
		slog.Debug("HTTP: Request", attrs...)
	}
}

// telemetry opens a span per request and records request counts and latency.
func telemetry(t foodpath.Telemetry) gin.HandlerFunc {
	requests, _ := t.Meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests handled"))
	failures, _ := t.Meter.Int64Counter("http_requests_failed_total",
		metric.WithDescription("Total number of HTTP requests answered with a 5xx"))
	latency, _ := t.Meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("Time taken to handle an HTTP request in seconds"))

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := t.Tracer.Start(c.Request.Context(), c.Request.Method+" "+route)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := metric.WithAttributes(
			attribute.String("http.route", route),
			attribute.String("http.method", c.Request.Method),
			attribute.Int("http.status_code", status),
		)
		requests.Add(ctx, 1, attrs)
		latency.Record(ctx, time.Since(start).Seconds(), attrs)

		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			failures.Add(ctx, 1, attrs)
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
