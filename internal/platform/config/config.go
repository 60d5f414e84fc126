package config

import (
	"errors"
	"fmt"
	"log/slog"
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
	Addr                 string
	Environment          string
	LogLevel             string
	DBDriver             string
	DatabaseURL          string
	JWTSecret            string
	TokenTTL             time.Duration
	DataEncryptionKey    string
	FrontendDir          string
	CORSAllowedOrigins   []string
	SeedAdminUsername    string
	SeedAdminPassword    string
	SeedDemoRoster       bool
	SeedEmployeePassword string
	RunMigrations        bool
	RunSeed              bool
	MaxBodyBytes         int64
	RateLimitPerMinute   int
	MetricsEnabled       bool
}

// Load reads the environment, after merging a .env file when one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "err", err)
	}

	return Config{
		Addr:                 getEnv("APP_ADDR", ":8080"),
		Environment:          getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DBDriver:             strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		TokenTTL:             getEnvDuration("TOKEN_TTL", 24*time.Hour),
		DataEncryptionKey:    getEnv("DATA_ENCRYPTION_KEY", ""),
		FrontendDir:          getEnv("FRONTEND_DIR", "frontend/dist"),
		CORSAllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		SeedAdminUsername:    getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword:    getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedDemoRoster:       getEnvBool("SEED_DEMO_ROSTER", false),
		SeedEmployeePassword: getEnv("SEED_EMPLOYEE_PASSWORD", ""),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:              getEnvBool("RUN_SEED", true),
		MaxBodyBytes:         int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
	}
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverSQLite)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.IsProduction() {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.DBDriver == DriverSQLite {
			return fmt.Errorf("DB_DRIVER sqlite is not supported in production")
		}
	}
	if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) != "" && strings.TrimSpace(c.SeedAdminUsername) == "" {
		return fmt.Errorf("SEED_ADMIN_USERNAME must be set when SEED_ADMIN_PASSWORD is set")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
