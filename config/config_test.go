package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test. An empty but set
// variable would bypass envconfig defaults.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestProcess_defaults(t *testing.T) {
	unsetEnv(t, "GO_ENV", "PORT", "JWT_EXPIRY", "BCRYPT_COST", "DEFAULT_PAGE_SIZE", "MAX_PAGE_SIZE",
		"MAX_UPLOAD_BYTES", "DB_CONN_MAX_LIFETIME", "AUTO_MIGRATE", "MEDIA_PROVIDER", "MEDIA_FOLDER",
		"MEDIA_DELETE_TIMEOUT")

	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "noop", cfg.Media.Provider)
	assert.Equal(t, "events", cfg.Media.Folder)
	assert.Equal(t, 10*time.Second, cfg.Media.DeleteTimeout)
}

func TestProcess_overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("MEDIA_PROVIDER", "s3")
	t.Setenv("MEDIA_BUCKET", "images")
	t.Setenv("MEDIA_USE_PATH_STYLE", "true")
	t.Setenv("MEDIA_DELETE_TIMEOUT", "3s")

	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "images", cfg.Media.Bucket)
	assert.True(t, cfg.Media.UsePathStyle)
	assert.Equal(t, 3*time.Second, cfg.Media.DeleteTimeout)
}

func validConfig() Config {
	return Config{
		Environment:     EnvProduction,
		JWTSecret:       "s3cret",
		JWTExpiry:       time.Hour,
		RequestTimeout:  10 * time.Second,
		DefaultPageSize: 5,
		MaxPageSize:     100,
		MaxUploadBytes:  1 << 20,
		Media:           MediaConfig{Provider: "noop"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "production requires secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET is required"},
		{name: "s3 requires bucket", mutate: func(c *Config) { c.Media.Provider = "s3" }, wantErr: "MEDIA_BUCKET is required"},
		{name: "page sizes", mutate: func(c *Config) { c.MaxPageSize = 2 }, wantErr: "DEFAULT_PAGE_SIZE"},
		{name: "expiry", mutate: func(c *Config) { c.JWTExpiry = 0 }, wantErr: "JWT_EXPIRY"},
		{name: "upload cap", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: "MAX_UPLOAD_BYTES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_generatesDevelopmentSecret(t *testing.T) {
	a := validConfig()
	a.Environment = EnvDevelopment
	a.JWTSecret = ""
	b := a

	require.NoError(t, a.Validate())
	require.NoError(t, b.Validate())

	assert.True(t, a.JWTSecretGenerated)
	assert.Len(t, a.JWTSecret, 64)
	assert.NotEqual(t, a.JWTSecret, b.JWTSecret, "secrets must not be a fixed value")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, EnvProduction, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])
	assert.Equal(t, slog.LevelWarn.String(), rec["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
