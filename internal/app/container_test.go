package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kapu/marketpulse-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 5000, CORSOrigins: []string{"*"}},
		Gemini: config.GeminiConfig{Model: "gemini-2.5-flash"},
		OpenAI: config.OpenAIConfig{Model: "gpt-4o-mini", EnableFallback: true},
		Redis:  config.RedisConfig{Host: "127.0.0.1", Port: 1, TTL: time.Minute},
		Model:  config.ModelConfig{Timeout: time.Second},
		CircuitBreaker: config.CircuitBreakerConfig{
			FailureThreshold: 3,
		},
	}
}

func TestBuildMockMode(t *testing.T) {
	cfg := testConfig()
	cfg.Gemini.APIKey = config.PlaceholderAPIKey

	container, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer container.Close()

	assert.Nil(t, container.ModelManager)
	assert.False(t, container.CacheEnabled)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"productReviews": "works fine"}`))
	rec := httptest.NewRecorder()
	container.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fallback", body["source"])
}

func TestBuildProductionWithUnreachableRedis(t *testing.T) {
	cfg := testConfig()
	cfg.Gemini.APIKey = "test-key"
	cfg.Redis.Enabled = true

	container, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer container.Close()

	require.NotNil(t, container.ModelManager)
	assert.False(t, container.CacheEnabled)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	container.Handler().ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "production", body["mode"])
	assert.Equal(t, "CLOSED", body["circuit_state"])
	assert.Equal(t, false, body["openai_fallback"])
}

func TestBuildRejectsNilArguments(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), testConfig(), nil)
	assert.Error(t, err)
}
