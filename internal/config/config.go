package config

import (
	"os"
	"strconv"
)

type Config struct {
	PORT string
	ENV  string

	DB_USERNAME string
	DB_PASSWORD string
	DB_HOST     string
	DB_PORT     string
	DB_NAME     string
	DISABLE_TLS string

	JWT_SECRET       string
	JWT_EXPIRES_DAYS int

	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
	ADMIN_NAME     string

	EMAIL_HOST    string
	EMAIL_PORT    int
	EMAIL_USER    string
	EMAIL_PASS    string
	EMAIL_FROM    string
	CONTACT_EMAIL string

	REDIS_ADDR     string
	REDIS_PASSWORD string

	UPLOAD_DIR string

	TRUST_PROXY_HEADER bool

	OTEL_EXPORTER_OTLP_ENDPOINT string
}

func ReadConfig() *Config {
	emailPort := 587
	if portStr := os.Getenv("EMAIL_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			emailPort = port
		}
	}

	// X-Forwarded-For is only honored when a trusted proxy sets it
	trustProxy := false
	if v := os.Getenv("TRUST_PROXY_HEADER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			trustProxy = b
		}
	}

	// Tokens default to a 7 day lifetime
	jwtExpiresDays := 7
	if daysStr := os.Getenv("JWT_EXPIRES_DAYS"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			jwtExpiresDays = days
		}
	}

	return &Config{
		PORT: GetEnvOrDefault("PORT", "5000"),
		ENV:  GetEnvOrDefault("ENV", "development"),

		DB_USERNAME: os.Getenv("DB_USERNAME"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),
		DISABLE_TLS: os.Getenv("DISABLE_TLS"),

		JWT_SECRET:       GetEnvOrDefault("JWT_SECRET", "dev_secret_change_me"),
		JWT_EXPIRES_DAYS: jwtExpiresDays,

		ADMIN_EMAIL:    GetEnvOrDefault("ADMIN_EMAIL", "admin@example.com"),
		ADMIN_PASSWORD: GetEnvOrDefault("ADMIN_PASSWORD", "ChangeMe123!"),
		ADMIN_NAME:     GetEnvOrDefault("ADMIN_NAME", "Administrator"),

		EMAIL_HOST:    os.Getenv("EMAIL_HOST"),
		EMAIL_PORT:    emailPort,
		EMAIL_USER:    os.Getenv("EMAIL_USER"),
		EMAIL_PASS:    os.Getenv("EMAIL_PASS"),
		EMAIL_FROM:    GetEnvOrDefault("EMAIL_FROM", os.Getenv("EMAIL_USER")),
		CONTACT_EMAIL: os.Getenv("CONTACT_EMAIL"),

		REDIS_ADDR:     os.Getenv("REDIS_ADDR"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),

		UPLOAD_DIR: GetEnvOrDefault("UPLOAD_DIR", "./uploads"),

		TRUST_PROXY_HEADER: trustProxy,

		OTEL_EXPORTER_OTLP_ENDPOINT: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

// IsProduction reports whether the server runs with production error redaction.
func (c *Config) IsProduction() bool {
	return c.ENV == "production"
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
