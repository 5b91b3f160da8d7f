package domain

import "fmt"

type PredictionRequest struct {
	ModelOutput       string `json:"modelOutput"`
	InputFeatures     string `json:"inputFeatures"`
	HistoricalContext string `json:"historicalContext,omitempty"`
}

type PredictionFactor struct {
	Factor string `json:"factor"`
	Impact Level  `json:"impact"`
}

type PredictionResult struct {
	PredictionSummary  string             `json:"prediction_summary"`
	KeyFactors         []PredictionFactor `json:"key_factors"`
	RecommendedActions []string           `json:"recommended_actions"`
	ConfidenceLevel    Level              `json:"confidence_level"`
	Source             Source             `json:"source"`
}

// Normalize coerces impact and confidence levels into their closed set and
// returns the coercions made.
func (r *PredictionResult) Normalize() []Coercion {
	var coercions []Coercion

	for i := range r.KeyFactors {
		level, changed := r.KeyFactors[i].Impact.Normalize()
		if changed {
			coercions = append(coercions, Coercion{
				Field: fmt.Sprintf("key_factors[%d].impact", i),
				Raw:   string(r.KeyFactors[i].Impact),
				Value: string(level),
			})
		}
		r.KeyFactors[i].Impact = level
	}

	confidence, changed := r.ConfidenceLevel.Normalize()
	if changed {
		coercions = append(coercions, Coercion{Field: "confidence_level", Raw: string(r.ConfidenceLevel), Value: string(confidence)})
	}
	r.ConfidenceLevel = confidence

	if r.KeyFactors == nil {
		r.KeyFactors = []PredictionFactor{}
	}
	if r.RecommendedActions == nil {
		r.RecommendedActions = []string{}
	}

	return coercions
}
