package domain

const (
	DefaultTargetAudience = "General consumers"
	DefaultBrandTone      = "Professional"
)

type ListingRequest struct {
	ProductName    string `json:"productName"`
	Category       string `json:"category,omitempty"`
	Features       string `json:"features"`
	TargetAudience string `json:"targetAudience,omitempty"`
	BrandTone      string `json:"brandTone,omitempty"`
}

// WithDefaults fills the optional audience and tone fields.
func (r ListingRequest) WithDefaults() ListingRequest {
	if r.TargetAudience == "" {
		r.TargetAudience = DefaultTargetAudience
	}
	if r.BrandTone == "" {
		r.BrandTone = DefaultBrandTone
	}
	return r
}

type ListingResult struct {
	ProductTitleVariants    []string   `json:"product_title_variants"`
	BulletPointVariants     [][]string `json:"bullet_point_variants"`
	FullDescriptionVariants []string   `json:"full_description_variants"`
	PrimaryKeywords         []string   `json:"primary_keywords"`
	SecondaryKeywords       []string   `json:"secondary_keywords"`
	Source                  Source     `json:"source"`
}
