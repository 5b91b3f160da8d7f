package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PlaceholderAPIKey is the value shipped in example env files; treated as unset.
const PlaceholderAPIKey = "your_api_key_here"

type Config struct {
	Server         ServerConfig
	Gemini         GeminiConfig
	OpenAI         OpenAIConfig
	Redis          RedisConfig
	Model          ModelConfig
	CircuitBreaker CircuitBreakerConfig
	Logging        LoggingConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type ModelConfig struct {
	Timeout time.Duration
}

type CircuitBreakerConfig struct {
	FailureThreshold int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("HOST", "0.0.0.0"),
			Port:        getEnvInt("PORT", 5000),
			CORSOrigins: parseCommaSeparated(getEnv("CORS_ORIGINS", "*")),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 600)) * time.Second,
		},
		Model: ModelConfig{
			Timeout: time.Duration(getEnvInt("MODEL_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		CircuitBreaker: CircuitBreakerConfig{
			FailureThreshold: getEnvInt("CIRCUIT_FAILURE_THRESHOLD", 3),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Model.Timeout <= 0 {
		return fmt.Errorf("MODEL_TIMEOUT_SECONDS must be positive")
	}
	if c.CircuitBreaker.FailureThreshold <= 0 {
		return fmt.Errorf("CIRCUIT_FAILURE_THRESHOLD must be positive")
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive when REDIS_ENABLED is set")
	}
	return nil
}

// MockMode reports whether no usable Gemini key is configured. The decision is
// made once at startup and holds for the process lifetime.
func (c *Config) MockMode() bool {
	key := strings.TrimSpace(c.Gemini.APIKey)
	return key == "" || key == PlaceholderAPIKey
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
