package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"primeproperties/metrics"
)

// MetricsMiddleware records the request counter and latency histogram for
// every route.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		duration := time.Since(start).Seconds()
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		if metrics.HTTPRequestsTotal != nil {
			metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		}

		return err
	}
}
