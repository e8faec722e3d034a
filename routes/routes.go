package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"primeproperties/handlers"
	"primeproperties/middleware"
)

type Controllers struct {
	Properties *handlers.PropertyController
	Users      *handlers.UserController
	Inquiries  *handlers.InquiryController
}

func RegisterRoutes(e *echo.Echo, ctrl Controllers) {
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := middleware.JWTMiddleware()

	properties := e.Group("/api/properties")
	properties.GET("", ctrl.Properties.ListProperties)
	properties.GET("/featured", ctrl.Properties.GetFeaturedProperties)
	properties.GET("/agent/:agentId", ctrl.Properties.GetAgentProperties)
	properties.GET("/:id", ctrl.Properties.GetProperty)
	properties.POST("", ctrl.Properties.CreateProperty, auth)
	properties.PUT("/:id", ctrl.Properties.UpdateProperty, auth)
	properties.DELETE("/:id", ctrl.Properties.DeleteProperty, auth)

	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", ctrl.Users.Register)
	authGroup.POST("/login", ctrl.Users.Login)
	authGroup.GET("/me", ctrl.Users.Me, auth)

	e.GET("/api/users/:id", ctrl.Users.GetProfile)

	inquiries := e.Group("/api/inquiries")
	inquiries.POST("", ctrl.Inquiries.CreateInquiry)
	inquiries.GET("", ctrl.Inquiries.ListInquiries, auth)
}
