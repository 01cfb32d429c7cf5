package config

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env  string
	Port int

	DBDriver          string
	DBURL             string
	DBMaxConns        int
	DBBootstrapSchema bool
	SQLitePath        string

	CORSOrigins     []string
	MaxBodyBytes    int64
	RateLimit       int
	RateLimitWindow time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OTelEndpoint    string
	OTelServiceName string

	AdminEmail       string
	AdminPassword    string
	AdminName        string
	AdminDisplayName string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBURL:             buildDBURL(),
		DBMaxConns:        getEnvInt("DB_MAX_CONNS", 5),
		DBBootstrapSchema: getEnvBool("DB_BOOTSTRAP_SCHEMA", true),
		SQLitePath:        getEnv("SQLITE_PATH", "data/usforever.db"),

		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		RateLimit:       getEnvInt("RATE_LIMIT", 60),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelServiceName: getEnv("OTEL_SERVICE_NAME", "usforever-api"),

		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		AdminName:        getEnv("ADMIN_NAME", "admin"),
		AdminDisplayName: getEnv("ADMIN_DISPLAY_NAME", "Admin"),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "usforever")
	pass := getEnv("DB_PASSWORD", "usforever")
	name := getEnv("DB_NAME", "usforever")
	ssl := getEnv("DB_SSLMODE", "disable")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     host + ":" + port,
		Path:     "/" + name,
		RawQuery: "sslmode=" + url.QueryEscape(ssl),
	}

	return u.String()
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("ignoring invalid integer setting", "key", key, "value", v)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err != nil {
			slog.Warn("ignoring invalid boolean setting", "key", key, "value", v)
			return fallback
		}

		return b
	}
	return fallback
}

func splitList(raw string) []string {
	out := []string{}

	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
