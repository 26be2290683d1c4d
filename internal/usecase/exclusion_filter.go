package usecase

import (
	"strings"
	"unicode"

	"github.com/decorlens/backend/internal/domain"
)

// ExclusionFilter drops candidates that carry a negative keyword for their
// target category, e.g. a pet bed offered for a bed request
type ExclusionFilter struct {
	taxonomy *domain.Taxonomy
	resolver *KeywordResolver
}

// NewExclusionFilter creates a filter over the taxonomy's exclusion table
func NewExclusionFilter(taxonomy *domain.Taxonomy, resolver *KeywordResolver) *ExclusionFilter {
	return &ExclusionFilter{taxonomy: taxonomy, resolver: resolver}
}

// negativeTerms collects exclusions registered for the target and for each of its keywords
func (f *ExclusionFilter) negativeTerms(target string) []string {
	var terms []string
	terms = appendUnique(terms, f.taxonomy.Exclusions[normalizeCategory(target)]...)
	for _, keyword := range f.resolver.Resolve(target) {
		terms = appendUnique(terms, f.taxonomy.Exclusions[normalizeCategory(keyword)]...)
	}
	return terms
}

// Excluded reports whether product must not satisfy target. A negative term
// matches whole words, case-insensitive, inside the name, the category or one
// keyword, so "pet" rejects "Pet Bed" but not "Carpet" or "Petite".
func (f *ExclusionFilter) Excluded(product *domain.Product, target string) bool {
	return hasPhrase(product, phrases(f.negativeTerms(target)))
}

// Filter returns the products that survive the exclusion list for target
func (f *ExclusionFilter) Filter(products []domain.Product, target string) []domain.Product {
	terms := phrases(f.negativeTerms(target))
	if len(terms) == 0 {
		return products
	}

	kept := make([]domain.Product, 0, len(products))
	for i := range products {
		if !hasPhrase(&products[i], terms) {
			kept = append(kept, products[i])
		}
	}
	return kept
}

// words splits s into lowercase letter and digit runs
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func phrases(terms []string) [][]string {
	out := make([][]string, 0, len(terms))
	for _, term := range terms {
		if w := words(term); len(w) > 0 {
			out = append(out, w)
		}
	}
	return out
}

func hasPhrase(product *domain.Product, terms [][]string) bool {
	if len(terms) == 0 {
		return false
	}
	fields := make([]string, 0, len(product.Keywords)+2)
	fields = append(fields, product.Name, product.Category)
	fields = append(fields, product.Keywords...)

	for _, field := range fields {
		text := words(field)
		for _, term := range terms {
			if containsRun(text, term) {
				return true
			}
		}
	}
	return false
}

// containsRun reports whether want occurs as consecutive words of text
func containsRun(text, want []string) bool {
	for i := 0; i+len(want) <= len(text); i++ {
		match := true
		for j := range want {
			if text[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
