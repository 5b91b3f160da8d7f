package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "CORS_ORIGINS", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_ENABLE_FALLBACK", "REDIS_ENABLED",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL_SECONDS",
		"MODEL_TIMEOUT_SECONDS", "CIRCUIT_FAILURE_THRESHOLD", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 30*time.Second, cfg.Model.Timeout)
	assert.Equal(t, 3, cfg.CircuitBreaker.FailureThreshold)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.OpenAI.EnableFallback)
	assert.True(t, cfg.MockMode())
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://app.example.com")
	t.Setenv("MODEL_TIMEOUT_SECONDS", "12")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CACHE_TTL_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.MockMode())
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 12*time.Second, cfg.Model.Timeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
}

func TestGoogleAPIKeyIsAccepted(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.Gemini.APIKey)
	assert.False(t, cfg.MockMode())
}

func TestPlaceholderKeyMeansMockMode(t *testing.T) {
	cfg := &Config{Gemini: GeminiConfig{APIKey: PlaceholderAPIKey}}
	assert.True(t, cfg.MockMode())

	cfg.Gemini.APIKey = "   "
	assert.True(t, cfg.MockMode())
}

func TestValidateRejectsBadValues(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:         ServerConfig{Port: 5000},
			Model:          ModelConfig{Timeout: time.Second},
			CircuitBreaker: CircuitBreakerConfig{FailureThreshold: 3},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Server.Port = 70000
	assert.ErrorContains(t, cfg.Validate(), "PORT")

	cfg = valid()
	cfg.Model.Timeout = 0
	assert.ErrorContains(t, cfg.Validate(), "MODEL_TIMEOUT_SECONDS")

	cfg = valid()
	cfg.CircuitBreaker.FailureThreshold = 0
	assert.ErrorContains(t, cfg.Validate(), "CIRCUIT_FAILURE_THRESHOLD")

	cfg = valid()
	cfg.Redis.Enabled = true
	assert.ErrorContains(t, cfg.Validate(), "CACHE_TTL_SECONDS")
}
