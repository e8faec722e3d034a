package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"primeproperties/access"
	"primeproperties/utils"
)

// JWTMiddleware resolves the bearer credential into the acting user and
// stashes it in the echo context for the handlers behind it.
func JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Authorization header is required",
				})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Invalid authorization header format",
				})
			}

			claims, err := utils.ValidateJWT(tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Invalid token",
				})
			}

			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", access.ParseRole(claims.Role))

			return next(c)
		}
	}
}
