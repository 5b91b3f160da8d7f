package ai

import "context"

// ModelPreset names the sampling configuration of one capability.
type ModelPreset string

const (
	PresetReview     ModelPreset = "review"     // review analysis
	PresetListing    ModelPreset = "listing"    // listing copywriting
	PresetPrediction ModelPreset = "prediction" // prediction explanation
)

// ModelConfig holds the sampling configuration of one preset.
type ModelConfig struct {
	Temperature      float32
	MaxOutputTokens  int
	ResponseMimeType string // "application/json" or "text/plain"
}

// OpenAIConfig holds OpenAI-specific configuration
type OpenAIConfig struct {
	Temperature float32
	MaxTokens   int
}

// GenerateMetadata contains metadata about the generation
type GenerateMetadata struct {
	Provider     string
	Model        string
	UsedFallback bool
	FromCache    bool
}

// GenerateOptions holds options for AI generation
type GenerateOptions struct {
	JSONMode bool
	// Validate rejects a decoded answer; a rejected answer is returned as an
	// error and never cached.
	Validate func(dest any) error
}

// Generator produces a JSON answer for a prompt and decodes it into dest.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error)
}

// GetPresetConfig returns the configuration for a preset
func GetPresetConfig(preset ModelPreset) ModelConfig {
	switch preset {
	case PresetReview:
		return ModelConfig{
			Temperature:     0.3,
			MaxOutputTokens: 2000,
		}
	case PresetListing:
		return ModelConfig{
			Temperature:     0.7,
			MaxOutputTokens: 2500,
		}
	case PresetPrediction:
		return ModelConfig{
			Temperature:     0.2,
			MaxOutputTokens: 1500,
		}
	default:
		return ModelConfig{
			Temperature:     0.3,
			MaxOutputTokens: 2000,
		}
	}
}

// GetOpenAIPresetConfig returns OpenAI configuration for a preset
func GetOpenAIPresetConfig(preset ModelPreset) OpenAIConfig {
	cfg := GetPresetConfig(preset)
	return OpenAIConfig{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxOutputTokens,
	}
}
