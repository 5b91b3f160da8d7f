package domain

import (
	"encoding/json"
	"fmt"
)

// TextList is a list of texts that also accepts a single JSON string on the
// wire, so {"productReviews": "..."} and {"productReviews": ["...", "..."]}
// decode the same way.
type TextList []string

func (t *TextList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*t = nil
		} else {
			*t = TextList{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or array of strings")
	}
	*t = many
	return nil
}

type ReviewAnalysisRequest struct {
	ProductReviews    TextList `json:"productReviews"`
	CompetitorReviews TextList `json:"competitorReviews,omitempty"`
}

type PainPoint struct {
	Issue             string `json:"issue"`
	FrequencyEstimate Level  `json:"frequency_estimate"`
	Excerpt           string `json:"example_review_excerpt"`
}

type PositiveFeature struct {
	Feature           string `json:"feature"`
	FrequencyEstimate Level  `json:"frequency_estimate"`
	Excerpt           string `json:"example_review_excerpt"`
}

type CompetitiveGap struct {
	Gap                 string `json:"gap"`
	CompetitorAdvantage string `json:"competitor_advantage"`
}

type ReviewAnalysisResult struct {
	OverallSentiment          Sentiment         `json:"overall_sentiment"`
	TopPainPoints             []PainPoint       `json:"top_pain_points"`
	TopPositiveFeatures       []PositiveFeature `json:"top_positive_features"`
	CompetitiveGaps           []CompetitiveGap  `json:"competitive_gaps"`
	ActionableRecommendations []string          `json:"actionable_recommendations"`
	Source                    Source            `json:"source"`
}

// Normalize coerces every enum field into its closed set and replaces nil
// slices with empty ones so they encode as []. It returns the coercions made.
func (r *ReviewAnalysisResult) Normalize() []Coercion {
	var coercions []Coercion

	sentiment, changed := r.OverallSentiment.Normalize()
	if changed {
		coercions = append(coercions, Coercion{Field: "overall_sentiment", Raw: string(r.OverallSentiment), Value: string(sentiment)})
	}
	r.OverallSentiment = sentiment

	for i := range r.TopPainPoints {
		level, changed := r.TopPainPoints[i].FrequencyEstimate.Normalize()
		if changed {
			coercions = append(coercions, Coercion{
				Field: fmt.Sprintf("top_pain_points[%d].frequency_estimate", i),
				Raw:   string(r.TopPainPoints[i].FrequencyEstimate),
				Value: string(level),
			})
		}
		r.TopPainPoints[i].FrequencyEstimate = level
	}

	for i := range r.TopPositiveFeatures {
		level, changed := r.TopPositiveFeatures[i].FrequencyEstimate.Normalize()
		if changed {
			coercions = append(coercions, Coercion{
				Field: fmt.Sprintf("top_positive_features[%d].frequency_estimate", i),
				Raw:   string(r.TopPositiveFeatures[i].FrequencyEstimate),
				Value: string(level),
			})
		}
		r.TopPositiveFeatures[i].FrequencyEstimate = level
	}

	if r.TopPainPoints == nil {
		r.TopPainPoints = []PainPoint{}
	}
	if r.TopPositiveFeatures == nil {
		r.TopPositiveFeatures = []PositiveFeature{}
	}
	if r.CompetitiveGaps == nil {
		r.CompetitiveGaps = []CompetitiveGap{}
	}
	if r.ActionableRecommendations == nil {
		r.ActionableRecommendations = []string{}
	}

	return coercions
}
