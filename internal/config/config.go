package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	ImagePath   string // directory where property images are persisted
	UsersDSN    string // secondary store used by the auxiliary user service
	UsersPort   string
}

func Load() *Config {
	// Best effort: local development keeps credentials in a .env file.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=immo port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		ImagePath:   getEnv("PROPERTY_IMAGE_PATH", "./property-images"),
		UsersDSN:    getEnv("USERS_DATABASE_DSN", "host=localhost user=root password=root dbname=first-db port=5432 sslmode=disable"),
		UsersPort:   getEnv("USERS_HTTP_PORT", "3000"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}

	return cfg
}

// LoadUsers loads only what the auxiliary user service needs; it has no JWT
// surface so the secret checks in Load do not apply.
func LoadUsers() *Config {
	_ = godotenv.Load()

	return &Config{
		UsersDSN:  getEnv("USERS_DATABASE_DSN", "host=localhost user=root password=root dbname=first-db port=5432 sslmode=disable"),
		UsersPort: getEnv("USERS_HTTP_PORT", "3000"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
