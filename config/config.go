package config

import (
	"os"
	"strconv"
)

type MongoConfig struct {
	URI        string
	Database   string
	Properties string
	Users      string
	Inquiries  string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type ServerConfig struct {
	Port string
	Env  string
}

type Config struct {
	Mongo  MongoConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Server ServerConfig
	Log    struct {
		Level string
	}
	MetricsPrefix string
}

// Load reads configuration from environment variables with defaults; a
// .env file, if any, is loaded by main before this runs.
func Load() *Config {
	cfg := &Config{
		Mongo: MongoConfig{
			URI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGODB_DATABASE", "primeproperties"),
			Properties: getEnv("MONGODB_COLLECTION_PROPERTIES", "properties"),
			Users:      getEnv("MONGODB_COLLECTION_USERS", "users"),
			Inquiries:  getEnv("MONGODB_COLLECTION_INQUIRIES", "inquiries"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		MetricsPrefix: getEnv("METRICS_PREFIX", "primeproperties"),
	}
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
