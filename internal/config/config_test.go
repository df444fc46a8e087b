package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultValues(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.LogLevel)
	assert.Equal(t, "http://localhost:3333", cfg.API.BaseURL)
	assert.Equal(t, "http://localhost:3333/avatar/", cfg.API.AvatarBaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "gymfit.db", cfg.Session.DBPath)
	assert.Equal(t, int64(3*1024*1024), cfg.Photo.MaxBytes)
	assert.Equal(t, false, cfg.Storage.Enabled)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "gymfit-access-key", cfg.Storage.AccessKey)
	assert.Equal(t, "gymfit-secret-key", cfg.Storage.SecretKey)
	assert.Equal(t, "gymfit-media", cfg.Storage.Bucket)
	assert.Equal(t, false, cfg.Storage.UseSSL)
	assert.Empty(t, cfg.Metrics.File)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "log level override",
			envVars: map[string]string{
				"LOG_LEVEL": "-4",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, -4, cfg.LogLevel)
			},
		},
		{
			name: "api config override",
			envVars: map[string]string{
				"API_BASE_URL":        "https://api.gymfit.app",
				"API_AVATAR_BASE_URL": "https://cdn.gymfit.app/avatar/",
				"API_TIMEOUT":         "5s",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "https://api.gymfit.app", cfg.API.BaseURL)
				assert.Equal(t, "https://cdn.gymfit.app/avatar/", cfg.API.AvatarBaseURL)
				assert.Equal(t, 5*time.Second, cfg.API.Timeout)
			},
		},
		{
			name: "session and photo override",
			envVars: map[string]string{
				"SESSION_DB_PATH": "/tmp/session.db",
				"PHOTO_MAX_BYTES": "1024",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "/tmp/session.db", cfg.Session.DBPath)
				assert.Equal(t, int64(1024), cfg.Photo.MaxBytes)
			},
		},
		{
			name: "storage config override",
			envVars: map[string]string{
				"MINIO_ENABLED":     "true",
				"MINIO_ENDPOINT":    "minio.example.com:9000",
				"MINIO_ACCESS_KEY":  "access123",
				"MINIO_SECRET_KEY":  "secret123",
				"MINIO_BUCKET_NAME": "custom-bucket",
				"MINIO_USE_SSL":     "true",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, true, cfg.Storage.Enabled)
				assert.Equal(t, "minio.example.com:9000", cfg.Storage.Endpoint)
				assert.Equal(t, "access123", cfg.Storage.AccessKey)
				assert.Equal(t, "secret123", cfg.Storage.SecretKey)
				assert.Equal(t, "custom-bucket", cfg.Storage.Bucket)
				assert.Equal(t, true, cfg.Storage.UseSSL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := NewConfig()
			require.NoError(t, err)

			tt.expected(cfg)
		})
	}
}

func TestNewConfig_RejectsNonPositivePhotoLimit(t *testing.T) {
	t.Setenv("PHOTO_MAX_BYTES", "0")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PHOTO_MAX_BYTES")
}

func TestNewConfig_InvalidDuration(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")

	_, err := NewConfig()
	require.Error(t, err)
}
