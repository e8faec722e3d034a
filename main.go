package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"primeproperties/config"
	"primeproperties/handlers"
	"primeproperties/logger"
	"primeproperties/metrics"
	"primeproperties/middleware"
	"primeproperties/routes"
	"primeproperties/store"
	"primeproperties/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg.Log.Level, cfg.Server.Env); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	log := logger.Get()
	defer log.Sync()

	log.Info("Starting primeproperties",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port))

	if err := utils.InitJWT(cfg.JWT.Secret, cfg.JWT.ExpiryHours); err != nil {
		log.Fatal("JWT configuration", zap.Error(err))
	}

	metrics.Init(cfg.MetricsPrefix)

	db, err := config.ConnectDB(context.Background(), cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	log.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	properties, err := store.NewProperties(db, cfg.Mongo.Properties)
	if err != nil {
		log.Fatal("Property store", zap.Error(err))
	}
	users, err := store.NewUsers(db, cfg.Mongo.Users)
	if err != nil {
		log.Fatal("User store", zap.Error(err))
	}
	inquiries := store.NewInquiries(db, cfg.Mongo.Inquiries)

	cache := utils.NewCache(cfg.Redis.Addr, cfg.Redis.Password)
	if cache == nil {
		log.Info("Redis not configured, listing cache disabled")
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.MetricsMiddleware)

	routes.RegisterRoutes(e, routes.Controllers{
		Properties: handlers.NewPropertyController(properties, users, cache),
		Users:      handlers.NewUserController(users),
		Inquiries:  handlers.NewInquiryController(inquiries, properties),
	})

	// Serve the built frontend alongside the API in production.
	if cfg.Server.Env == "production" {
		if _, err := os.Stat("client/build"); err == nil {
			e.Static("/", "client/build")
		}
	}

	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
