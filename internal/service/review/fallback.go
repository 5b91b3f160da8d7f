package review

import "github.com/kapu/marketpulse-go/internal/domain"

// Fallback is returned in mock mode and whenever the model call fails.
func Fallback() *domain.ReviewAnalysisResult {
	return &domain.ReviewAnalysisResult{
		OverallSentiment: domain.SentimentNeutral,
		TopPainPoints: []domain.PainPoint{
			{
				Issue:             "Analysis service temporarily unavailable",
				FrequencyEstimate: domain.LevelLow,
				Excerpt:           "Using fallback analysis",
			},
		},
		TopPositiveFeatures: []domain.PositiveFeature{
			{
				Feature:           "System resilience",
				FrequencyEstimate: domain.LevelHigh,
				Excerpt:           "Fallback system activated successfully",
			},
		},
		CompetitiveGaps: []domain.CompetitiveGap{},
		ActionableRecommendations: []string{
			"Check AI service connectivity",
			"Retry analysis in a few moments",
			"Contact support if issue persists",
		},
		Source: domain.SourceFallback,
	}
}
