package usecase

import (
	"strings"

	"github.com/decorlens/backend/internal/domain"
)

// KeywordResolver maps a requested category, either a legacy short code or a
// free-form label, to catalog search terms
type KeywordResolver struct {
	taxonomy *domain.Taxonomy
}

// NewKeywordResolver creates a resolver over the given taxonomy
func NewKeywordResolver(taxonomy *domain.Taxonomy) *KeywordResolver {
	return &KeywordResolver{taxonomy: taxonomy}
}

// Resolve returns search keywords for category, most specific first.
// Legacy-code hits come before label hits. When neither table knows the
// category the literal input is the only keyword, so the result is never empty.
func (r *KeywordResolver) Resolve(category string) []string {
	key := normalizeCategory(category)

	var out []string
	out = appendUnique(out, r.taxonomy.LegacyCodes[key]...)
	out = appendUnique(out, r.taxonomy.Labels[key]...)

	if len(out) == 0 {
		literal := strings.TrimSpace(category)
		if literal == "" {
			literal = category
		}
		return []string{literal}
	}
	return out
}

// SearchTerms returns the target category itself followed by its resolved keywords
func (r *KeywordResolver) SearchTerms(category string) []string {
	return appendUnique([]string{strings.TrimSpace(category)}, r.Resolve(category)...)
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// appendUnique appends terms not already present (case-insensitive) and skips blanks
func appendUnique(out []string, terms ...string) []string {
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		dup := false
		for _, existing := range out {
			if strings.EqualFold(existing, term) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, term)
		}
	}
	return out
}
