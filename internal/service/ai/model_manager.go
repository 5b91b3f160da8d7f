package ai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kapu/marketpulse-go/internal/constants"
	"github.com/kapu/marketpulse-go/internal/util"
	"github.com/kapu/marketpulse-go/pkg/errors"
	"github.com/openai/openai-go/v3"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrCircuitOpen is returned while the circuit breaker blocks model calls.
var ErrCircuitOpen = stderrors.New("AI service unavailable: circuit open")

var (
	statusCodePattern = regexp.MustCompile(`\b([45]\d{2})\b`)
	geminiCodePattern = regexp.MustCompile(`"code":\s*(\d{3})`)
)

// ModelManager sends prompts to Gemini, optionally retries once on OpenAI,
// and decodes the JSON answer. It guards both providers with a circuit
// breaker so a dead upstream fails fast into the caller's fallback.
type ModelManager struct {
	gemini         JSONProvider
	openai         JSONProvider
	primary        JSONProvider
	fallback       JSONProvider
	logger         *zap.Logger
	enableFallback bool
	timeout        time.Duration
	circuitBreaker *util.CircuitBreaker
}

type ModelManagerConfig struct {
	GeminiAPIKey       string
	OpenAIAPIKey       string
	DefaultGeminiModel string
	DefaultOpenAIModel string
	EnableFallback     bool
	Timeout            time.Duration
	FailureThreshold   int
}

// ManagerStatus is a snapshot for the health endpoint.
type ManagerStatus struct {
	Primary         string
	FallbackEnabled bool
	Circuit         util.CircuitBreakerStatus
}

// NewModelManager builds the Gemini client (and the OpenAI fallback when a
// key is present). It fails fast when no Gemini key is given.
func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, errors.NewServiceError("GEMINI_API_KEY is missing", "ai", "init", nil)
	}

	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	defaultGemini := cfg.DefaultGeminiModel
	if defaultGemini == "" {
		defaultGemini = "gemini-2.5-flash"
	}

	defaultOpenAI := cfg.DefaultOpenAIModel
	if defaultOpenAI == "" {
		defaultOpenAI = "gpt-4o-mini"
	}

	geminiProvider := NewGeminiProvider(geminiClient, defaultGemini, logger)

	var fallback JSONProvider
	if openaiProvider := NewOpenAIProvider(cfg.OpenAIAPIKey, defaultOpenAI, logger); openaiProvider != nil {
		logger.Info("OpenAI fallback available", zap.String("model", defaultOpenAI))
		fallback = openaiProvider
	} else {
		logger.Info("OpenAI fallback disabled (no API key)")
	}

	return newModelManager(geminiProvider, fallback, cfg, logger), nil
}

func newModelManager(primary, fallback JSONProvider, cfg ModelManagerConfig, logger *zap.Logger) *ModelManager {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	mm := &ModelManager{
		gemini:  primary,
		openai:  fallback,
		primary: primary,
		logger:  logger,
		timeout: timeout,
	}
	mm.enableFallback = cfg.EnableFallback && fallback != nil
	if mm.enableFallback {
		mm.fallback = fallback
	}

	mm.circuitBreaker = util.NewCircuitBreaker(util.CircuitBreakerOptions{
		Name:                "model",
		FailureThreshold:    cfg.FailureThreshold,
		ResetTimeout:        constants.CircuitBreakerConfig.ResetTimeout,
		HealthCheckInterval: constants.CircuitBreakerConfig.HealthCheckInterval,
		HealthCheck:         mm.healthCheckPing,
	}, logger)

	return mm
}

// GenerateJSON makes one best-effort attempt per configured provider; there
// are no retries. The whole call is bounded by the configured timeout.
func (mm *ModelManager) GenerateJSON(ctx context.Context, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	if !mm.circuitBreaker.CanExecute() {
		status := mm.circuitBreaker.GetStatus()
		fields := []zap.Field{
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
		}
		if status.NextRetryTime != nil {
			fields = append(fields, zap.Time("next_retry", *status.NextRetryTime))
		}
		mm.logger.Warn("AI service unavailable (circuit open)", fields...)
		return nil, ErrCircuitOpen
	}

	ctx, cancel := context.WithTimeout(ctx, mm.timeout)
	defer cancel()

	var options GenerateOptions
	if opts != nil {
		options = *opts
	}
	options.JSONMode = true

	primaryResult, primaryErr := mm.invokeProvider(ctx, mm.primary, prompt, preset, &options)
	if primaryErr == nil {
		mm.circuitBreaker.RecordSuccess()
		metadata := &GenerateMetadata{
			Provider: mm.primary.Name(),
			Model:    primaryResult.Model,
		}
		return mm.decodeJSON(primaryResult.Text, metadata, dest, options.Validate)
	}

	if mm.enableFallback && mm.fallback != nil {
		fallbackResult, fallbackErr := mm.invokeProvider(ctx, mm.fallback, prompt, preset, &options)
		if fallbackErr == nil {
			mm.circuitBreaker.RecordSuccess()
			metadata := &GenerateMetadata{
				Provider:     mm.fallback.Name(),
				Model:        fallbackResult.Model,
				UsedFallback: true,
			}
			return mm.decodeJSON(fallbackResult.Text, metadata, dest, options.Validate)
		}

		mm.recordFailure(primaryErr)
		mm.recordFailure(fallbackErr)
		return nil, errors.NewAPIError("all model providers failed", mm.fallback.Name(), statusOf(fallbackErr), stderrors.Join(primaryErr, fallbackErr))
	}

	mm.recordFailure(primaryErr)
	return nil, errors.NewAPIError("model provider failed", mm.primary.Name(), statusOf(primaryErr), primaryErr)
}

func (mm *ModelManager) invokeProvider(ctx context.Context, provider JSONProvider, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	if provider == nil {
		return ProviderResult{}, fmt.Errorf("model provider is not configured")
	}
	return provider.Generate(ctx, prompt, preset, opts)
}

func (mm *ModelManager) decodeJSON(text string, metadata *GenerateMetadata, dest any, validate func(any) error) (*GenerateMetadata, error) {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%s API returned empty response", metadata.Provider)
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		mm.logger.Error("Failed to unmarshal JSON response",
			zap.String("provider", metadata.Provider),
			zap.Error(err),
			zap.String("response_preview", util.TruncateString(cleaned, 200)),
		)
		return nil, fmt.Errorf("invalid JSON from %s: %w", metadata.Provider, err)
	}

	if validate != nil {
		if err := validate(dest); err != nil {
			mm.logger.Warn("Rejected model answer",
				zap.String("provider", metadata.Provider),
				zap.Error(err),
			)
			return nil, fmt.Errorf("unusable answer from %s: %w", metadata.Provider, err)
		}
	}

	return metadata, nil
}

// StripCodeFence removes an optional ```json / ``` wrapper around a model
// answer.
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}

func (mm *ModelManager) recordFailure(err error) {
	if !isServiceFailure(err) {
		return
	}

	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if isRateLimitError(err) {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}

	mm.circuitBreaker.RecordFailure(timeout)
}

func (mm *ModelManager) healthCheckPing() bool {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CircuitBreakerConfig.HealthCheckTimeout)
	defer cancel()

	var geminiOK, openaiOK bool
	var wg conc.WaitGroup
	if mm.gemini != nil {
		wg.Go(func() { geminiOK = mm.gemini.Ping(ctx) })
	}
	if mm.enableFallback && mm.openai != nil {
		wg.Go(func() { openaiOK = mm.openai.Ping(ctx) })
	}
	wg.Wait()

	healthy := geminiOK || openaiOK
	mm.logger.Info("Health Check: Result",
		zap.Bool("gemini", geminiOK),
		zap.Bool("openai", openaiOK),
		zap.Bool("healthy", healthy),
	)
	return healthy
}

func (mm *ModelManager) Status() ManagerStatus {
	status := ManagerStatus{
		FallbackEnabled: mm.enableFallback,
		Circuit:         mm.circuitBreaker.GetStatus(),
	}
	if mm.primary != nil {
		status.Primary = mm.primary.Name()
	}
	return status
}

// statusOf extracts an HTTP status from a provider error, or 0.
func statusOf(err error) int {
	if err == nil {
		return 0
	}

	var apiErr *openai.Error
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	msg := err.Error()
	if matches := geminiCodePattern.FindStringSubmatch(msg); len(matches) > 1 {
		if code, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return code
		}
	}
	if matches := statusCodePattern.FindStringSubmatch(msg); len(matches) > 1 {
		if code, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return code
		}
	}
	return 0
}

// isServiceFailure reports upstream outages (timeouts, 5xx, rate limits) as
// opposed to bad requests or undecodable answers.
func isServiceFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "ETIMEDOUT") {
		return true
	}
	if isRateLimitError(err) {
		return true
	}

	code := statusOf(err)
	return code >= 500 && code < 600
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	if strings.Contains(msg, "Rate limit") || strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "quota") {
		return true
	}
	return statusOf(err) == 429
}
