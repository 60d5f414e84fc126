package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		DBDriver:           DriverSQLite,
		DatabaseURL:        ":memory:",
		JWTSecret:          "test-secret",
		TokenTTL:           24 * time.Hour,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: "DB_DRIVER"},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = " " }, wantErr: "DATABASE_URL"},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "zero token ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: "TOKEN_TTL"},
		{name: "tiny body limit", mutate: func(c *Config) { c.MaxBodyBytes = 10 }, wantErr: "MAX_BODY_BYTES"},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimitPerMinute = 0 }, wantErr: "RATE_LIMIT_PER_MINUTE"},
		{
			name: "production needs encryption key",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.DBDriver = DriverPostgres
				c.JWTSecret = "0123456789abcdef0123456789abcdef"
			},
			wantErr: "DATA_ENCRYPTION_KEY",
		},
		{
			name: "production rejects sqlite",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.JWTSecret = "0123456789abcdef0123456789abcdef"
				c.DataEncryptionKey = "0123456789abcdef0123456789abcdef"
			},
			wantErr: "sqlite",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLITE")
	t.Setenv("DATABASE_URL", "ems.db")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SEED_DEMO_ROSTER", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg := Load()
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "ems.db", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.SeedDemoRoster)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.SlogLevel())
}
