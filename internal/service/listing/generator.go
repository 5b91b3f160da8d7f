package listing

import (
	"context"
	"fmt"

	"github.com/kapu/marketpulse-go/internal/constants"
	"github.com/kapu/marketpulse-go/internal/domain"
	"github.com/kapu/marketpulse-go/internal/prompt"
	"github.com/kapu/marketpulse-go/internal/service/ai"
	"github.com/kapu/marketpulse-go/internal/util"
	"go.uber.org/zap"
)

// Generator writes A/B listing copy for a product.
type Generator struct {
	generator ai.Generator
	prompts   *prompt.PromptBuilder
	logger    *zap.Logger
}

func NewGenerator(generator ai.Generator, prompts *prompt.PromptBuilder, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prompts == nil {
		prompts = prompt.DefaultPromptBuilder()
	}
	return &Generator{
		generator: generator,
		prompts:   prompts,
		logger:    logger,
	}
}

func (g *Generator) Generate(ctx context.Context, req domain.ListingRequest) (*domain.ListingResult, error) {
	req = req.WithDefaults()

	g.logger.Info("Generating listing",
		zap.String("product", req.ProductName),
		zap.String("category", req.Category),
	)

	if g.generator == nil {
		return Fallback(req), nil
	}

	promptText, err := g.prompts.ListingGeneration(prompt.ListingGenerationData{
		ProductName:    req.ProductName,
		Category:       req.Category,
		Features:       req.Features,
		TargetAudience: req.TargetAudience,
		BrandTone:      req.BrandTone,
		Variants:       constants.ListingShape.Variants,
	})
	if err != nil {
		return nil, fmt.Errorf("build listing prompt: %w", err)
	}

	var result domain.ListingResult
	metadata, err := g.generator.GenerateJSON(ctx, promptText, ai.PresetListing, &result, &ai.GenerateOptions{JSONMode: true})
	if err != nil {
		g.logger.Warn("Listing generation failed, using fallback",
			zap.String("product", req.ProductName),
			zap.Error(err),
		)
		return Fallback(req), nil
	}

	if filled := Conform(&result, Fallback(req)); filled > 0 {
		g.logger.Warn("Listing incomplete, filled from fallback",
			zap.String("product", req.ProductName),
			zap.Int("slots", filled),
		)
	}

	result.Source = domain.SourceModel
	if metadata != nil && metadata.FromCache {
		result.Source = domain.SourceCache
	}

	return &result, nil
}

// Conform forces result into the fixed listing shape: exactly
// ListingShape.Variants titles, bullet groups and descriptions, and between
// the Min and Max number of bullets and keywords per list. Missing entries
// are copied from fallback and short lists are padded from the matching
// fallback list without repeating entries. It returns the number of titles,
// descriptions and lists it filled.
func Conform(result *domain.ListingResult, fallback *domain.ListingResult) int {
	shape := constants.ListingShape
	filled := 0

	titles, n := fillStrings(util.NonEmpty(result.ProductTitleVariants), fallback.ProductTitleVariants, shape.Variants)
	result.ProductTitleVariants = titles
	filled += n

	descriptions, n := fillStrings(util.NonEmpty(result.FullDescriptionVariants), fallback.FullDescriptionVariants, shape.Variants)
	result.FullDescriptionVariants = descriptions
	filled += n

	bullets := make([][]string, shape.Variants)
	for i := range bullets {
		var group []string
		if i < len(result.BulletPointVariants) {
			group = util.NonEmpty(result.BulletPointVariants[i])
		}
		bullets[i] = padStrings(group, fallback.BulletPointVariants[i], shape.MinBullets, shape.MaxBullets, &filled)
	}
	result.BulletPointVariants = bullets

	result.PrimaryKeywords = padStrings(util.NonEmpty(result.PrimaryKeywords), fallback.PrimaryKeywords, shape.MinKeywords, shape.MaxKeywords, &filled)
	result.SecondaryKeywords = padStrings(util.NonEmpty(result.SecondaryKeywords), fallback.SecondaryKeywords, shape.MinKeywords, shape.MaxKeywords, &filled)

	return filled
}

func fillStrings(items, fallback []string, size int) ([]string, int) {
	out := capStrings(items, size)
	filled := 0
	for i := len(out); i < size; i++ {
		out = append(out, fallback[i])
		filled++
	}
	return out, filled
}

// padStrings caps items at maxLen. An empty list is replaced by fallback; a
// list shorter than minLen gets fallback entries it does not already hold.
func padStrings(items, fallback []string, minLen, maxLen int, filled *int) []string {
	out := capStrings(items, maxLen)
	if len(out) == 0 {
		*filled++
		return capStrings(append([]string(nil), fallback...), maxLen)
	}
	if len(out) >= minLen {
		return out
	}

	out = append([]string(nil), out...)
	padded := false
	for _, item := range fallback {
		if len(out) >= minLen {
			break
		}
		if !util.Contains(out, item) {
			out = append(out, item)
			padded = true
		}
	}
	if padded {
		*filled++
	}
	return out
}

func capStrings(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
