package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"primeproperties/access"
	"primeproperties/logger"
	"primeproperties/models"
	"primeproperties/store"
)

// respondError maps the error taxonomy onto the wire: validation failures
// carry their field list, missing records become 404 with the given
// message, and anything else is logged and hidden behind a generic 500.
func respondError(c echo.Context, err error, notFoundMessage string) error {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": vErr.Error(),
			"fields":  vErr.Fields,
		})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": notFoundMessage})
	default:
		logger.FromEcho(c).Error("request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"message": message})
}

// actor reads the authenticated caller out of the echo context set by the
// JWT middleware.
func actor(c echo.Context) (access.Actor, bool) {
	id, ok := c.Get("user_id").(primitive.ObjectID)
	if !ok {
		return access.Actor{}, false
	}
	role, ok := c.Get("user_role").(access.Role)
	if !ok {
		return access.Actor{}, false
	}
	return access.Actor{ID: id, Role: role}, true
}
