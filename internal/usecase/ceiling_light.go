package usecase

import (
	"strings"

	"github.com/decorlens/backend/internal/domain"
)

// CeilingLightClassifier decides whether a product is a ceiling-mounted fixture.
// A room result carries at most one of those.
type CeilingLightClassifier struct {
	rule domain.CeilingLightRule
}

// NewCeilingLightClassifier creates a classifier from the taxonomy rule
func NewCeilingLightClassifier(taxonomy *domain.Taxonomy) *CeilingLightClassifier {
	return &CeilingLightClassifier{rule: taxonomy.CeilingLight}
}

// IsCeilingLight is true when a positive term matches and no negative term does.
// Terms match as substrings so compounds like "천장등" still hit "천장".
func (c *CeilingLightClassifier) IsCeilingLight(product *domain.Product) bool {
	text := product.SearchText()
	return containsAny(text, c.rule.Positive) && !containsAny(text, c.rule.Negative)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
