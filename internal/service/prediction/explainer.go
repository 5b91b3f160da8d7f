package prediction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kapu/marketpulse-go/internal/constants"
	"github.com/kapu/marketpulse-go/internal/domain"
	"github.com/kapu/marketpulse-go/internal/prompt"
	"github.com/kapu/marketpulse-go/internal/service/ai"
	"github.com/kapu/marketpulse-go/internal/util"
	"go.uber.org/zap"
)

// Explainer restates an ML prediction in business language.
type Explainer struct {
	generator ai.Generator
	prompts   *prompt.PromptBuilder
	logger    *zap.Logger
}

func NewExplainer(generator ai.Generator, prompts *prompt.PromptBuilder, logger *zap.Logger) *Explainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prompts == nil {
		prompts = prompt.DefaultPromptBuilder()
	}
	return &Explainer{
		generator: generator,
		prompts:   prompts,
		logger:    logger,
	}
}

func (e *Explainer) Explain(ctx context.Context, req domain.PredictionRequest) (*domain.PredictionResult, error) {
	e.logger.Info("Explaining prediction", zap.Bool("historical_context", req.HistoricalContext != ""))

	if e.generator == nil {
		return Fallback(), nil
	}

	promptText, err := e.prompts.PredictionExplanation(prompt.PredictionExplanationData{
		ModelOutput:       req.ModelOutput,
		InputFeatures:     req.InputFeatures,
		HistoricalContext: req.HistoricalContext,
		MinActions:        constants.PredictionShape.MinActions,
		MaxActions:        constants.PredictionShape.MaxActions,
	})
	if err != nil {
		return nil, fmt.Errorf("build prediction prompt: %w", err)
	}

	var result domain.PredictionResult
	metadata, err := e.generator.GenerateJSON(ctx, promptText, ai.PresetPrediction, &result, &ai.GenerateOptions{
		JSONMode: true,
		Validate: requireSummary,
	})
	if err != nil {
		e.logger.Warn("Prediction explanation failed, using fallback", zap.Error(err))
		return Fallback(), nil
	}

	for _, c := range result.Normalize() {
		e.logger.Warn("Coerced model value",
			zap.String("field", c.Field),
			zap.String("raw", c.Raw),
			zap.String("value", c.Value),
		)
	}
	result.RecommendedActions = conformActions(result.RecommendedActions, Fallback().RecommendedActions)

	result.Source = domain.SourceModel
	if metadata != nil && metadata.FromCache {
		result.Source = domain.SourceCache
	}

	return &result, nil
}

var errNoSummary = errors.New("prediction summary is empty")

// requireSummary rejects answers without a prediction summary.
func requireSummary(dest any) error {
	result, ok := dest.(*domain.PredictionResult)
	if !ok {
		return fmt.Errorf("unexpected answer type %T", dest)
	}
	if strings.TrimSpace(result.PredictionSummary) == "" {
		return errNoSummary
	}
	return nil
}

// conformActions keeps between MinActions and MaxActions actions, padding
// from fallback with actions not already present.
func conformActions(actions, fallback []string) []string {
	out := util.NonEmpty(actions)
	if len(out) > constants.PredictionShape.MaxActions {
		out = out[:constants.PredictionShape.MaxActions]
	}
	for _, action := range fallback {
		if len(out) >= constants.PredictionShape.MinActions {
			break
		}
		if !util.Contains(out, action) {
			out = append(out, action)
		}
	}
	return out
}
