package prediction

import "github.com/kapu/marketpulse-go/internal/domain"

func Fallback() *domain.PredictionResult {
	return &domain.PredictionResult{
		PredictionSummary: "The model predicts strong sales performance for this product category, with estimated revenue growth of 15-20% based on current market trends and customer sentiment.",
		KeyFactors: []domain.PredictionFactor{
			{Factor: "Positive customer reviews and high ratings", Impact: domain.LevelHigh},
			{Factor: "Growing market demand in this category", Impact: domain.LevelMedium},
			{Factor: "Competitive pricing strategy", Impact: domain.LevelMedium},
			{Factor: "Effective marketing campaigns", Impact: domain.LevelLow},
		},
		RecommendedActions: []string{
			"Increase inventory levels by 20% to meet projected demand",
			"Launch targeted social media campaign to capitalize on positive sentiment",
			"Monitor competitor pricing weekly and adjust if necessary",
			"Collect more customer feedback to refine product offerings",
		},
		ConfidenceLevel: domain.LevelMedium,
		Source:          domain.SourceFallback,
	}
}
