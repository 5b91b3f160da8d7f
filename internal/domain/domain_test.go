package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentNormalize(t *testing.T) {
	tests := []struct {
		raw     Sentiment
		want    Sentiment
		changed bool
	}{
		{"negative", SentimentNegative, false},
		{" Positive ", SentimentPositive, false},
		{"NEUTRAL", SentimentNeutral, false},
		{"mixed", SentimentNeutral, true},
		{"", SentimentNeutral, true},
	}

	for _, tt := range tests {
		got, changed := tt.raw.Normalize()
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
		assert.Equal(t, tt.changed, changed, "raw=%q", tt.raw)
	}
}

func TestLevelNormalize(t *testing.T) {
	got, changed := Level("HIGH").Normalize()
	assert.Equal(t, LevelHigh, got)
	assert.False(t, changed)

	got, changed = Level("very high").Normalize()
	assert.Equal(t, LevelMedium, got)
	assert.True(t, changed)

	assert.True(t, LevelLow.Valid())
	assert.False(t, Level("Low").Valid())
}

func TestTextListAcceptsStringOrArray(t *testing.T) {
	var req ReviewAnalysisRequest

	require.NoError(t, json.Unmarshal([]byte(`{"productReviews":"great blender"}`), &req))
	assert.Equal(t, TextList{"great blender"}, req.ProductReviews)
	assert.Nil(t, req.CompetitorReviews)

	req = ReviewAnalysisRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"productReviews":["a","b"],"competitorReviews":"c"}`), &req))
	assert.Equal(t, TextList{"a", "b"}, req.ProductReviews)
	assert.Equal(t, TextList{"c"}, req.CompetitorReviews)

	req = ReviewAnalysisRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"productReviews":"","competitorReviews":null}`), &req))
	assert.Empty(t, req.ProductReviews)

	err := json.Unmarshal([]byte(`{"productReviews":42}`), &req)
	assert.Error(t, err)
}

func TestReviewResultNormalize(t *testing.T) {
	result := &ReviewAnalysisResult{
		OverallSentiment: "Mixed",
		TopPainPoints: []PainPoint{
			{Issue: "battery", FrequencyEstimate: "HIGH"},
			{Issue: "noise", FrequencyEstimate: "often"},
		},
	}

	coercions := result.Normalize()

	assert.Equal(t, SentimentNeutral, result.OverallSentiment)
	assert.Equal(t, LevelHigh, result.TopPainPoints[0].FrequencyEstimate)
	assert.Equal(t, LevelMedium, result.TopPainPoints[1].FrequencyEstimate)
	assert.NotNil(t, result.TopPositiveFeatures)
	assert.NotNil(t, result.CompetitiveGaps)
	assert.NotNil(t, result.ActionableRecommendations)
	require.Len(t, coercions, 2)
	assert.Equal(t, "overall_sentiment", coercions[0].Field)
	assert.Equal(t, "top_pain_points[1].frequency_estimate", coercions[1].Field)
}

func TestPredictionResultNormalize(t *testing.T) {
	result := &PredictionResult{
		KeyFactors:      []PredictionFactor{{Factor: "seasonality", Impact: "Medium"}, {Factor: "price", Impact: "huge"}},
		ConfidenceLevel: "certain",
	}

	coercions := result.Normalize()

	assert.Equal(t, LevelMedium, result.KeyFactors[0].Impact)
	assert.Equal(t, LevelMedium, result.KeyFactors[1].Impact)
	assert.Equal(t, LevelMedium, result.ConfidenceLevel)
	assert.Len(t, coercions, 2)
	assert.NotNil(t, result.RecommendedActions)
}

func TestListingRequestDefaults(t *testing.T) {
	req := ListingRequest{ProductName: "Blender", Features: "fast"}.WithDefaults()
	assert.Equal(t, DefaultTargetAudience, req.TargetAudience)
	assert.Equal(t, DefaultBrandTone, req.BrandTone)

	req = ListingRequest{TargetAudience: "Chefs", BrandTone: "Playful"}.WithDefaults()
	assert.Equal(t, "Chefs", req.TargetAudience)
	assert.Equal(t, "Playful", req.BrandTone)
}
