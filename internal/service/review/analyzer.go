package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/kapu/marketpulse-go/internal/constants"
	"github.com/kapu/marketpulse-go/internal/domain"
	"github.com/kapu/marketpulse-go/internal/prompt"
	"github.com/kapu/marketpulse-go/internal/service/ai"
	"github.com/kapu/marketpulse-go/internal/service/sentiment"
	"github.com/kapu/marketpulse-go/internal/util"
	"go.uber.org/zap"
)

// Analyzer turns raw customer reviews into a ReviewAnalysisResult.
//
// Keyword rules run before any model call. A nil generator means mock mode:
// every request that no rule decides gets the static fallback.
type Analyzer struct {
	generator ai.Generator
	evaluator *sentiment.Evaluator
	prompts   *prompt.PromptBuilder
	logger    *zap.Logger
}

func NewAnalyzer(generator ai.Generator, evaluator *sentiment.Evaluator, prompts *prompt.PromptBuilder, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if evaluator == nil {
		evaluator = sentiment.NewDefaultEvaluator(logger)
	}
	if prompts == nil {
		prompts = prompt.DefaultPromptBuilder()
	}
	return &Analyzer{
		generator: generator,
		evaluator: evaluator,
		prompts:   prompts,
		logger:    logger,
	}
}

// MockMode reports whether the analyzer runs without a model.
func (a *Analyzer) MockMode() bool {
	return a.generator == nil
}

// Analyze decides the verdict with keyword rules on the raw review text and
// only then sends the markup-free text to the model.
func (a *Analyzer) Analyze(ctx context.Context, req domain.ReviewAnalysisRequest) (*domain.ReviewAnalysisResult, error) {
	rawText := util.Clip(strings.Join(req.ProductReviews, "\n"), constants.ReviewInputLimits.ProductRunes)
	productText := PrepareText(req.ProductReviews, constants.ReviewInputLimits.ProductRunes)
	competitorText := PrepareText(req.CompetitorReviews, constants.ReviewInputLimits.CompetitorRunes)

	a.logger.Info("Analyzing reviews",
		zap.Int("reviews", len(req.ProductReviews)),
		zap.Int("runes", len([]rune(productText))),
		zap.Bool("competitor", competitorText != ""),
	)

	if verdict, ok := a.evaluator.Evaluate(rawText); ok {
		return Forced(verdict, rawText), nil
	}

	if a.generator == nil {
		return Fallback(), nil
	}

	promptText, err := a.prompts.ReviewAnalysis(prompt.ReviewAnalysisData{
		ProductReviews:    productText,
		CompetitorReviews: competitorText,
	})
	if err != nil {
		return nil, fmt.Errorf("build review prompt: %w", err)
	}

	var result domain.ReviewAnalysisResult
	metadata, err := a.generator.GenerateJSON(ctx, promptText, ai.PresetReview, &result, &ai.GenerateOptions{JSONMode: true})
	if err != nil {
		a.logger.Warn("Review analysis failed, using fallback", zap.Error(err))
		return Fallback(), nil
	}

	for _, c := range result.Normalize() {
		a.logger.Warn("Coerced model value",
			zap.String("field", c.Field),
			zap.String("raw", c.Raw),
			zap.String("value", c.Value),
		)
	}

	result.Source = domain.SourceModel
	if metadata != nil && metadata.FromCache {
		result.Source = domain.SourceCache
	}

	return &result, nil
}

// PrepareText strips markup from each review, joins them with newlines and
// clips the result to maxRunes.
func PrepareText(reviews []string, maxRunes int) string {
	if len(reviews) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(reviews))
	for _, r := range reviews {
		cleaned = append(cleaned, util.PlainText(r))
	}
	return util.Clip(strings.Join(cleaned, "\n"), maxRunes)
}
