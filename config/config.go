package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DataDir        string
	StaticDir      string
	CatalogBackend string // "local" or "postgres"
	DatabaseURL    string
	JWTSecret      []byte

	// bcrypt hashes of the two shared staff credentials
	AdminPasswordHash  string
	DriverPasswordHash string
}

func Load() (Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := Config{
		Port:               getenv("PORT", "8080"),
		DataDir:            getenv("DATA_DIR", "data"),
		StaticDir:          os.Getenv("STATIC_DIR"),
		CatalogBackend:     getenv("CATALOG_BACKEND", "local"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		DriverPasswordHash: os.Getenv("DRIVER_PASSWORD_HASH"),
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return Config{}, errors.New("JWT secret key not set")
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.CatalogBackend != "local" && cfg.CatalogBackend != "postgres" {
		return Config{}, errors.New("CATALOG_BACKEND must be local or postgres")
	}
	if cfg.CatalogBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required when CATALOG_BACKEND=postgres")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
