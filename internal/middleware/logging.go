package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/metrics"
)

// RequestLogger logs every request and feeds the request counters. The
// route template is used as the path label to keep metric cardinality
// bounded.
func RequestLogger(log *logger.Logger, provider metrics.MetricsProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			duration := time.Since(start)

			statusLabel := strconv.Itoa(status)
			provider.IncrementHTTPRequests(method, path, statusLabel)
			provider.RecordHTTPRequestDuration(method, path, statusLabel, duration)

			log.Info("Handled request",
				slog.String("method", method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", duration))

			return err
		}
	}
}
