package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kapu/marketpulse-go/internal/config"
	"github.com/kapu/marketpulse-go/internal/constants"
	"github.com/kapu/marketpulse-go/internal/prompt"
	"github.com/kapu/marketpulse-go/internal/server"
	"github.com/kapu/marketpulse-go/internal/service/ai"
	"github.com/kapu/marketpulse-go/internal/service/cache"
	"github.com/kapu/marketpulse-go/internal/service/listing"
	"github.com/kapu/marketpulse-go/internal/service/prediction"
	"github.com/kapu/marketpulse-go/internal/service/review"
	"github.com/kapu/marketpulse-go/internal/service/sentiment"
	"go.uber.org/zap"
)

// Container bundles the assembled services behind the HTTP server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Server       *server.Server
	ModelManager *ai.ModelManager // nil in mock mode
	CacheEnabled bool

	closers []func()
}

// Handler returns the fully wired HTTP handler.
func (c *Container) Handler() http.Handler {
	return c.Server.Router()
}

// Close releases resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles the model stack, the optional result cache and the
// capability services. A missing Gemini key selects mock mode instead of
// failing; an unreachable Redis disables the cache instead of failing.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	container = &Container{
		Config: cfg,
		Logger: logger,
	}
	defer func() {
		if err != nil {
			container.Close()
			container = nil
		}
	}()

	// AI stack
	var generator ai.Generator
	if cfg.MockMode() {
		logger.Warn("Running in mock mode (no Gemini API key), using fallback data")
	} else {
		modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
			GeminiAPIKey:       cfg.Gemini.APIKey,
			OpenAIAPIKey:       cfg.OpenAI.APIKey,
			DefaultGeminiModel: cfg.Gemini.Model,
			DefaultOpenAIModel: cfg.OpenAI.Model,
			EnableFallback:     cfg.OpenAI.EnableFallback,
			Timeout:            cfg.Model.Timeout,
			FailureThreshold:   cfg.CircuitBreaker.FailureThreshold,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create model manager: %w", err)
		}
		container.ModelManager = modelManager
		generator = modelManager
		logger.Info("Gemini API key loaded", zap.String("model", cfg.Gemini.Model))

		// Result cache
		if cfg.Redis.Enabled {
			cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
				Host:     cfg.Redis.Host,
				Port:     cfg.Redis.Port,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			}, logger)
			if cacheErr != nil {
				logger.Warn("Redis unavailable, running without result cache", zap.Error(cacheErr))
			} else {
				container.closers = append(container.closers, func() {
					_ = cacheSvc.Close()
				})
				container.CacheEnabled = true
				generator = ai.NewCachedGenerator(modelManager, cacheSvc, cfg.Redis.TTL, constants.RedisConfig.KeyPrefix, logger)
			}
		}
	}

	// Capability services
	prompts := prompt.DefaultPromptBuilder()
	evaluator := sentiment.NewDefaultEvaluator(logger)

	info := server.Info{
		Port:             cfg.Server.Port,
		GeminiConfigured: container.ModelManager != nil,
		OpenAIFallback:   container.ModelManager != nil && container.ModelManager.Status().FallbackEnabled,
		CacheEnabled:     container.CacheEnabled,
		CORSOrigins:      cfg.Server.CORSOrigins,
	}
	if mm := container.ModelManager; mm != nil {
		info.CircuitState = func() string {
			return mm.Status().Circuit.State.String()
		}
	}

	container.Server = server.New(server.Services{
		Reviews:     review.NewAnalyzer(generator, evaluator, prompts, logger),
		Listings:    listing.NewGenerator(generator, prompts, logger),
		Predictions: prediction.NewExplainer(generator, prompts, logger),
	}, info, logger)

	return container, nil
}
