package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/storage"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Env          string
	Port         string
	DatabaseURL  string
	SQLitePath   string
	ModelDir     string
	ModelDefault string
	ModelPrefix  string
	WatchModels  bool
	JWTSecret    string
	CORSOrigins  []string
	R2           storage.R2Config
}

// Load reads .env outside production, then the environment.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return FromEnv()
}

// FromEnv reads the environment without touching .env files.
func FromEnv() (Config, error) {
	cfg := Config{
		Env:          getenv("APP_ENV", "development"),
		Port:         getenv("PORT", "8000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
		ModelDir:     os.Getenv("MODEL_DIR"),
		ModelDefault: getenv("MODEL_DEFAULT", scoremodel.BaselineName),
		ModelPrefix:  getenv("MODEL_PREFIX", "models/"),
		WatchModels:  os.Getenv("MODEL_WATCH") == "true",
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CORSOrigins:  splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		R2: storage.R2Config{
			Endpoint:  os.Getenv("R2_ENDPOINT"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
			Bucket:    os.Getenv("R2_BUCKET_NAME"),
		},
	}
	if cfg.WatchModels && cfg.ModelDir == "" {
		return cfg, errors.New("MODEL_WATCH requires MODEL_DIR")
	}
	return cfg, nil
}

// ValidateAPI checks what the HTTP API needs on top of FromEnv.
func (c Config) ValidateAPI() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Env == "production" && c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing env var: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
