package prompt

type ReviewAnalysisData struct {
	ProductReviews    string
	CompetitorReviews string
}

type ListingGenerationData struct {
	ProductName    string
	Category       string
	Features       string
	TargetAudience string
	BrandTone      string
	Variants       int
}

type PredictionExplanationData struct {
	ModelOutput       string
	InputFeatures     string
	HistoricalContext string
	MinActions        int
	MaxActions        int
}
