package review

import (
	"github.com/kapu/marketpulse-go/internal/constants"
	"github.com/kapu/marketpulse-go/internal/domain"
	"github.com/kapu/marketpulse-go/internal/service/sentiment"
	"github.com/kapu/marketpulse-go/internal/util"
)

// Forced builds the canned result for a rule verdict.
func Forced(verdict sentiment.Verdict, text string) *domain.ReviewAnalysisResult {
	if verdict.Sentiment == domain.SentimentPositive {
		return ForcedPositive(text)
	}
	return ForcedNegative(text)
}

func ForcedNegative(text string) *domain.ReviewAnalysisResult {
	return &domain.ReviewAnalysisResult{
		OverallSentiment: domain.SentimentNegative,
		TopPainPoints: []domain.PainPoint{
			{
				Issue:             "Serious product/service issues detected",
				FrequencyEstimate: domain.LevelHigh,
				Excerpt:           util.Excerpt(text, constants.ReviewInputLimits.ExcerptRunes),
			},
			{
				Issue:             "Customer service/refund problems",
				FrequencyEstimate: domain.LevelMedium,
				Excerpt:           "Issues with refunds or customer support mentioned",
			},
		},
		TopPositiveFeatures: []domain.PositiveFeature{},
		CompetitiveGaps: []domain.CompetitiveGap{
			{
				Gap:                 "Product reliability",
				CompetitorAdvantage: "Competitors likely have more reliable products",
			},
		},
		ActionableRecommendations: []string{
			"IMMEDIATE ACTION REQUIRED: Investigate product quality issues",
			"Review customer service and refund policies",
			"Consider product recall or redesign if safety concerns exist",
			"Monitor for similar complaints across all sales channels",
		},
		Source: domain.SourceRule,
	}
}

func ForcedPositive(text string) *domain.ReviewAnalysisResult {
	return &domain.ReviewAnalysisResult{
		OverallSentiment: domain.SentimentPositive,
		TopPainPoints:    []domain.PainPoint{},
		TopPositiveFeatures: []domain.PositiveFeature{
			{
				Feature:           "Exceptional customer satisfaction",
				FrequencyEstimate: domain.LevelHigh,
				Excerpt:           util.Excerpt(text, constants.ReviewInputLimits.ExcerptRunes),
			},
			{
				Feature:           "Product quality and performance",
				FrequencyEstimate: domain.LevelHigh,
				Excerpt:           "Reviews indicate excellent quality",
			},
		},
		CompetitiveGaps: []domain.CompetitiveGap{},
		ActionableRecommendations: []string{
			"Leverage positive reviews in marketing materials",
			"Consider creating case studies or testimonials",
			"Explore upselling/cross-selling opportunities to satisfied customers",
			"Monitor for consistent positive feedback patterns",
		},
		Source: domain.SourceRule,
	}
}
