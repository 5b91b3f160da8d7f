package listing

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/kapu/marketpulse-go/internal/domain"
	"github.com/kapu/marketpulse-go/internal/service/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
	presets []ai.ModelPreset
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, prompt string, preset ai.ModelPreset, dest any, _ *ai.GenerateOptions) (*ai.GenerateMetadata, error) {
	f.prompts = append(f.prompts, prompt)
	f.presets = append(f.presets, preset)
	if f.err != nil {
		return nil, f.err
	}
	return &ai.GenerateMetadata{Provider: "Gemini"}, json.Unmarshal([]byte(f.text), dest)
}

var blender = domain.ListingRequest{
	ProductName: "AquaBlend X",
	Category:    "Kitchen Appliances",
	Features:    "1200W motor, glass jar",
}

func assertShape(t *testing.T, result *domain.ListingResult) {
	t.Helper()
	assert.Len(t, result.ProductTitleVariants, 3)
	assert.Len(t, result.BulletPointVariants, 3)
	assert.Len(t, result.FullDescriptionVariants, 3)
	for _, group := range result.BulletPointVariants {
		assert.GreaterOrEqual(t, len(group), 5)
		assert.LessOrEqual(t, len(group), 7)
	}
	assert.GreaterOrEqual(t, len(result.PrimaryKeywords), 5)
	assert.LessOrEqual(t, len(result.PrimaryKeywords), 7)
	assert.GreaterOrEqual(t, len(result.SecondaryKeywords), 5)
	assert.LessOrEqual(t, len(result.SecondaryKeywords), 7)
}

func TestGenerateMockMode(t *testing.T) {
	result, err := NewGenerator(nil, nil, zap.NewNop()).Generate(context.Background(), blender)
	require.NoError(t, err)

	assertShape(t, result)
	assert.Equal(t, domain.SourceFallback, result.Source)
	assert.Equal(t, "AquaBlend X - Professional Grade | Highest Quality", result.ProductTitleVariants[0])
	assert.Equal(t, "Premium quality aquablend x built to last", result.BulletPointVariants[0][0])
	assert.Contains(t, result.FullDescriptionVariants[0], "Perfect for General consumers")
	assert.Equal(t, []string{"aquablend x", "kitchen appliances", "premium", "professional", "quality", "2024"}, result.PrimaryKeywords)
}

func TestFallbackWithoutCategory(t *testing.T) {
	result := Fallback(domain.ListingRequest{ProductName: "Lamp", Features: "warm light"})
	assert.Equal(t, []string{"lamp", "premium", "professional", "quality", "2024"}, result.PrimaryKeywords)
	assert.Contains(t, result.FullDescriptionVariants[0], "This product combines")
	assert.Contains(t, result.FullDescriptionVariants[2], "professional-grade solution")
	assert.Contains(t, result.FullDescriptionVariants[0], "Perfect for demanding users")
}

func TestGenerateUsesModel(t *testing.T) {
	gen := &fakeGenerator{text: `{
		"product_title_variants": ["A", "B", "C"],
		"bullet_point_variants": [["a1","a2","a3","a4","a5"],["b1","b2","b3","b4","b5"],["c1","c2","c3","c4","c5"]],
		"full_description_variants": ["da", "db", "dc"],
		"primary_keywords": ["blender", "kitchen", "smoothie", "glass", "motor"],
		"secondary_keywords": ["buy", "deal", "sale", "best", "cheap"]
	}`}
	result, err := NewGenerator(gen, nil, zap.NewNop()).Generate(context.Background(), blender)
	require.NoError(t, err)

	assertShape(t, result)
	assert.Equal(t, domain.SourceModel, result.Source)
	assert.Equal(t, []string{"A", "B", "C"}, result.ProductTitleVariants)
	assert.Equal(t, []ai.ModelPreset{ai.PresetListing}, gen.presets)
	assert.Contains(t, gen.prompts[0], "- Name: AquaBlend X")
	assert.Contains(t, gen.prompts[0], "- Target Audience: General consumers")
	assert.Contains(t, gen.prompts[0], "- Brand Tone: Professional")
}

func TestGenerateConformsModelShape(t *testing.T) {
	gen := &fakeGenerator{text: `{
		"product_title_variants": ["A", "B", "C", "D", "E"],
		"bullet_point_variants": [["1","2","3","4","5","6","7","8","9"]],
		"full_description_variants": ["only one"],
		"primary_keywords": ["k1","k2","k3","k4","k5","k6","k7","k8"]
	}`}
	result, err := NewGenerator(gen, nil, zap.NewNop()).Generate(context.Background(), blender)
	require.NoError(t, err)

	assertShape(t, result)
	fallback := Fallback(blender.WithDefaults())
	assert.Equal(t, []string{"A", "B", "C"}, result.ProductTitleVariants)
	assert.Len(t, result.BulletPointVariants[0], 7)
	assert.Equal(t, fallback.BulletPointVariants[1], result.BulletPointVariants[1])
	assert.Equal(t, "only one", result.FullDescriptionVariants[0])
	assert.Equal(t, fallback.FullDescriptionVariants[1:], result.FullDescriptionVariants[1:])
	assert.Len(t, result.PrimaryKeywords, 7)
	assert.Equal(t, fallback.SecondaryKeywords, result.SecondaryKeywords)
}

func TestGeneratePadsShortLists(t *testing.T) {
	gen := &fakeGenerator{text: `{
		"product_title_variants": ["A", "B", "C"],
		"bullet_point_variants": [["one"], ["one", "two"], ["x"]],
		"full_description_variants": ["da", "db", "dc"],
		"primary_keywords": ["blender"],
		"secondary_keywords": ["smoothie maker"]
	}`}
	result, err := NewGenerator(gen, nil, zap.NewNop()).Generate(context.Background(), blender)
	require.NoError(t, err)

	assertShape(t, result)
	fallback := Fallback(blender.WithDefaults())
	assert.Equal(t, append([]string{"one"}, fallback.BulletPointVariants[0][:4]...), result.BulletPointVariants[0])
	assert.Equal(t, append([]string{"one", "two"}, fallback.BulletPointVariants[1][:3]...), result.BulletPointVariants[1])
	assert.Equal(t, "x", result.BulletPointVariants[2][0])
	assert.Equal(t, append([]string{"blender"}, fallback.PrimaryKeywords[:4]...), result.PrimaryKeywords)
	assert.Equal(t, append([]string{"smoothie maker"}, fallback.SecondaryKeywords[:4]...), result.SecondaryKeywords)
}

func TestConformPadsWithoutDuplicates(t *testing.T) {
	fallback := Fallback(blender)
	result := &domain.ListingResult{
		ProductTitleVariants:    []string{"A", "B", "C"},
		FullDescriptionVariants: []string{"da", "db", "dc"},
		BulletPointVariants:     [][]string{{fallback.BulletPointVariants[0][1]}, {"b"}, {"c"}},
		PrimaryKeywords:         []string{fallback.PrimaryKeywords[0]},
		SecondaryKeywords:       []string{"s"},
	}

	filled := Conform(result, fallback)
	assert.Equal(t, 5, filled)
	group := fallback.BulletPointVariants[0]
	assert.Equal(t, []string{group[1], group[0], group[2], group[3], group[4]}, result.BulletPointVariants[0])
	assert.Equal(t, fallback.PrimaryKeywords[:5], result.PrimaryKeywords)
}

func TestGenerateModelFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: stderrors.New("circuit breaker is open")}
	result, err := NewGenerator(gen, nil, zap.NewNop()).Generate(context.Background(), blender)
	require.NoError(t, err)

	assertShape(t, result)
	assert.Equal(t, domain.SourceFallback, result.Source)
}

func TestConformCountsFilledSlots(t *testing.T) {
	result := &domain.ListingResult{}
	filled := Conform(result, Fallback(blender))
	// 3 titles, 3 descriptions, 3 bullet groups, 2 keyword lists
	assert.Equal(t, 11, filled)
}
