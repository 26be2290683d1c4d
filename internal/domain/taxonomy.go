package domain

// Taxonomy holds the static category tables the engine matches against.
// It is loaded once at startup and read-only afterwards.
type Taxonomy struct {
	// LegacyCodes maps short legacy category codes to catalog search terms
	LegacyCodes map[string][]string `yaml:"legacy_codes" json:"legacyCodes"`
	// Labels maps free-form (bilingual) labels to catalog search terms
	Labels map[string][]string `yaml:"labels" json:"labels"`
	// Exclusions lists negative keywords per target category
	Exclusions map[string][]string `yaml:"exclusions" json:"exclusions"`
	// StyleKeywords lists affinity keywords per design style
	StyleKeywords map[Style][]string `yaml:"style_keywords" json:"styleKeywords"`
	// DetectionSynonyms maps detected labels to a canonical category
	DetectionSynonyms map[string]string `yaml:"detection_synonyms" json:"detectionSynonyms"`
	CeilingLight      CeilingLightRule  `yaml:"ceiling_light" json:"ceilingLight"`
}

// CeilingLightRule classifies a product as ceiling mounted: any positive
// term present and no negative term present
type CeilingLightRule struct {
	Positive []string `yaml:"positive" json:"positive"`
	Negative []string `yaml:"negative" json:"negative"`
}
