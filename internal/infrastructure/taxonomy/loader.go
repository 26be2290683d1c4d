package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/decorlens/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTable []byte

// Load reads a taxonomy from a YAML file. An empty path selects the
// embedded default table.
func Load(path string) (*domain.Taxonomy, error) {
	if path == "" {
		return Parse(defaultTable)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrTaxonomyInvalid, path, err)
	}
	return Parse(data)
}

// Default returns the embedded taxonomy. It panics if the embedded table is broken.
func Default() *domain.Taxonomy {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes and normalizes a YAML taxonomy document
func Parse(data []byte) (*domain.Taxonomy, error) {
	var t domain.Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTaxonomyInvalid, err)
	}

	if len(t.LegacyCodes) == 0 && len(t.Labels) == 0 {
		return nil, fmt.Errorf("%w: no legacy codes or labels defined", domain.ErrTaxonomyInvalid)
	}

	t.LegacyCodes = normalizeTermMap(t.LegacyCodes)
	t.Labels = normalizeTermMap(t.Labels)
	t.Exclusions = normalizeTermMap(t.Exclusions)

	styles := make(map[domain.Style][]string, len(t.StyleKeywords))
	for style, words := range t.StyleKeywords {
		styles[domain.Style(normalizeKey(string(style)))] = normalizeTerms(words)
	}
	t.StyleKeywords = styles

	synonyms := make(map[string]string, len(t.DetectionSynonyms))
	for label, canonical := range t.DetectionSynonyms {
		canonical = normalizeKey(canonical)
		if canonical == "" {
			return nil, fmt.Errorf("%w: empty canonical category for %q", domain.ErrTaxonomyInvalid, label)
		}
		synonyms[normalizeKey(label)] = canonical
	}
	t.DetectionSynonyms = synonyms

	t.CeilingLight.Positive = normalizeTerms(t.CeilingLight.Positive)
	t.CeilingLight.Negative = normalizeTerms(t.CeilingLight.Negative)

	return &t, nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = normalizeKey(term); term != "" {
			out = append(out, term)
		}
	}
	return out
}

func normalizeTermMap(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for key, terms := range in {
		out[normalizeKey(key)] = normalizeTerms(terms)
	}
	return out
}
