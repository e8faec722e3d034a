package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"primeproperties/logger"
)

// RequestIDMiddleware tags each request with an id and a request-scoped
// logger carrying it.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set("X-Request-ID", requestID)

			c.Set("logger", logger.Get().With(zap.String("request_id", requestID)))

			return next(c)
		}
	}
}
