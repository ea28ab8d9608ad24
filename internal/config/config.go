package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	SecretKey    string
	DatabaseURL  string
	UploadDir    string
	BaseURL      string
	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults. A .env file is
// honored when present and silently skipped otherwise.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("PORT", "10000"),
		SecretKey:    getEnv("SECRET_KEY", "change-me"),
		DatabaseURL:  NormalizeDatabaseURL(os.Getenv("DATABASE_URL")),
		UploadDir:    getEnv("UPLOAD_DIR", "capturas"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:10000"),
		MailHost:     getEnv("MAIL_HOST", "smtp.gmail.com"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

// NormalizeDatabaseURL rewrites the legacy postgres:// scheme that some
// platforms hand out to the postgresql:// form the driver expects.
func NormalizeDatabaseURL(raw string) string {
	if strings.HasPrefix(raw, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(raw, "postgres://")
	}
	return raw
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
