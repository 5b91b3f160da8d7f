package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewAnalysisPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	text, err := pb.ReviewAnalysis(ReviewAnalysisData{ProductReviews: "It's okay, nothing special."})
	require.NoError(t, err)
	assert.Contains(t, text, "REVIEWS TO ANALYZE:\nIt's okay, nothing special.")
	assert.NotContains(t, text, "COMPETITOR COMPARISON")
	assert.Contains(t, text, `"overall_sentiment": "negative|neutral|positive"`)

	text, err = pb.ReviewAnalysis(ReviewAnalysisData{ProductReviews: "ok", CompetitorReviews: "theirs lasts longer"})
	require.NoError(t, err)
	assert.Contains(t, text, "COMPETITOR COMPARISON:\ntheirs lasts longer")
}

func TestListingGenerationPrompt(t *testing.T) {
	text, err := NewPromptBuilder().ListingGeneration(ListingGenerationData{
		ProductName:    "AeroBlend 3000",
		Features:       "1200W motor, glass jar",
		TargetAudience: "Home cooks",
		BrandTone:      "Friendly",
		Variants:       3,
	})
	require.NoError(t, err)

	assert.Contains(t, text, "- Name: AeroBlend 3000")
	assert.Contains(t, text, "- Category: General")
	assert.Contains(t, text, "- Features: 1200W motor, glass jar")
	assert.Contains(t, text, "- Target Audience: Home cooks")
	assert.Contains(t, text, "- Brand Tone: Friendly")
	assert.Contains(t, text, `"product_title_variants": array of 3 title strings`)
}

func TestPredictionExplanationPrompt(t *testing.T) {
	text, err := NewPromptBuilder().PredictionExplanation(PredictionExplanationData{
		ModelOutput:   "churn probability 0.82",
		InputFeatures: "tenure=2mo, tickets=5",
		MinActions:    3,
		MaxActions:    5,
	})
	require.NoError(t, err)

	assert.Contains(t, text, "- Model Output: churn probability 0.82")
	assert.Contains(t, text, "- Historical Context: No historical context")
	assert.Contains(t, text, "(3-5 actionable steps)")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := NewPromptBuilder().Render("missing.tmpl", nil)
	assert.ErrorContains(t, err, "load prompt template missing.tmpl")
}

func TestDefaultPromptBuilderIsShared(t *testing.T) {
	assert.Same(t, DefaultPromptBuilder(), DefaultPromptBuilder())
}
