package config

import (
	"log/slog"
	"os"
	"strconv"
)

const devSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string

	// AppSecret signs session tokens. Rotating it signs everyone out.
	AppSecret string

	// FrontendURL is the origin embedded in password-reset links.
	FrontendURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	StripeSecretKey string
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "4444"),
		Env:             getEnv("ENV", "development"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/storefront?parseTime=true"),
		AppSecret:       getEnv("APP_SECRET", devSecret),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:7777"),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USER", ""),
		SMTPPassword:    getEnv("SMTP_PASS", ""),
		SMTPFrom:        getEnv("SMTP_FROM", "noreply@sickfits.example"),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
	}

	if cfg.Env == "production" && cfg.AppSecret == devSecret {
		slog.Error("APP_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("ignoring non-numeric env value", "key", key, "value", v)
	}
	return fallback
}
