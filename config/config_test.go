package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.False(t, cfg.BootstrapAdmin())
	assert.Nil(t, cfg.TrustedProxyList())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "host=db user=portal")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "secret123")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 192.168.0.0/16")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "host=db user=portal", cfg.DBDSN)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL())
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins())
	assert.Equal(t, time.UTC, cfg.Location())
	assert.True(t, cfg.BootstrapAdmin())
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxyList())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DBDriver:       "sqlite",
			DBDSN:          "x.db",
			JWTSecret:      "s",
			JWTExpiryHours: 1,
			RateLimitRPS:   1,
			RateLimitBurst: 1,
			Timezone:       "UTC",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mongo" }, true},
		{"empty dsn", func(c *Config) { c.DBDSN = "" }, true},
		{"zero expiry", func(c *Config) { c.JWTExpiryHours = 0 }, true},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, true},
		{"proxy cidr", func(c *Config) { c.TrustedProxies = "10.0.0.0/8" }, false},
		{"bad proxy", func(c *Config) { c.TrustedProxies = "10.0.0.1,proxy.local" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
