package listing

import (
	"fmt"
	"strings"

	"github.com/kapu/marketpulse-go/internal/domain"
)

const defaultProductName = "Premium Product"

// Fallback returns template listing copy built from the request fields only.
func Fallback(req domain.ListingRequest) *domain.ListingResult {
	name := req.ProductName
	if name == "" {
		name = defaultProductName
	}
	lowerName := strings.ToLower(name)

	category := func(def string) string {
		if req.Category != "" {
			return req.Category
		}
		return def
	}
	features := func(def string) string {
		if req.Features != "" {
			return req.Features
		}
		return def
	}
	audience := func(def string) string {
		if req.TargetAudience != "" {
			return req.TargetAudience
		}
		return def
	}

	primary := []string{lowerName}
	if req.Category != "" {
		primary = append(primary, strings.ToLower(req.Category))
	}
	primary = append(primary, "premium", "professional", "quality", "2024")

	return &domain.ListingResult{
		ProductTitleVariants: []string{
			fmt.Sprintf("%s - Professional Grade | Highest Quality", name),
			fmt.Sprintf("Premium %s | Advanced Performance & Durability", name),
			fmt.Sprintf("%s Pro - Industry Leading Technology", name),
		},
		BulletPointVariants: [][]string{
			{
				fmt.Sprintf("Premium quality %s built to last", lowerName),
				"Engineered for maximum performance and reliability",
				"Easy to use with intuitive controls and setup",
				"Backed by 2-year manufacturer warranty",
				"Trusted by professionals worldwide",
			},
			{
				"Advanced technology for superior results",
				"Durable construction withstands heavy use",
				"Versatile design suitable for multiple applications",
				"Energy efficient operation saves costs",
				"Excellent customer support and service",
			},
			{
				"Cutting-edge innovation at an affordable price",
				"Ergonomic design for comfortable extended use",
				"Low maintenance requirements",
				"Compatible with industry-standard accessories",
				"Fast shipping and reliable delivery",
			},
		},
		FullDescriptionVariants: []string{
			fmt.Sprintf("Introducing our premium %s, designed for professionals who demand excellence. This %s combines breakthrough technology with robust construction to deliver unmatched performance. Perfect for %s, it features %s. Experience the difference that quality makes.",
				name, category("product"), audience("demanding users"), features("advanced functionality")),
			fmt.Sprintf("Elevate your experience with our %s, engineered to exceed expectations. This exceptional %s offers %s in a package designed for %s. Built with precision and tested for reliability, it represents the pinnacle of innovation in its category.",
				name, category("product"), features("superior features"), audience("discriminating customers")),
			fmt.Sprintf("Discover the %s - where advanced technology meets practical design. This professional-grade %s provides %s for %s. Crafted from premium materials and backed by comprehensive support, it's the smart choice for those who value quality and results.",
				name, category("solution"), features("outstanding performance"), audience("serious users")),
		},
		PrimaryKeywords:   primary,
		SecondaryKeywords: []string{"buy", "best", "review", "sale", "discount", "price", "deal"},
		Source:            domain.SourceFallback,
	}
}
