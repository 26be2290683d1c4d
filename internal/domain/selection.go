package domain

// DefaultMaxItems is the result size used when a request does not set one
const DefaultMaxItems = 4

// SelectionRequest is the input to the furniture selection engine
type SelectionRequest struct {
	Style      Style    `json:"style" binding:"required"`
	Categories []string `json:"categories" binding:"required"`
	ImagePath  string   `json:"imagePath,omitempty"`
	Image      []byte   `json:"-"`
	MaxItems   int      `json:"maxItems,omitempty"`
}

// MatchTier is the precision level a candidate was retrieved at
type MatchTier int

const (
	TierCategoryExact MatchTier = iota + 1 // category field equals target or a resolved keyword
	TierKeywordCross                       // keyword hit whose category overlaps the target
	TierKeywordOnly                        // keyword hit only
)

func (t MatchTier) String() string {
	switch t {
	case TierCategoryExact:
		return "category_exact"
	case TierKeywordCross:
		return "keyword_cross_check"
	case TierKeywordOnly:
		return "keyword_only"
	default:
		return "unknown"
	}
}

// Candidate wraps a catalog product with request-scoped scoring data.
// The product itself is never mutated.
type Candidate struct {
	Product        *Product
	TargetCategory string
	Tier           MatchTier
	CategoryMatch  bool
	StyleAffinity  int
	Score          int

	// Alternates holds the other target categories the same product was
	// found for, each with the tier and score it earned there
	Alternates []TargetMatch
}

// TargetMatch is how a product was retrieved and scored for one target category
type TargetMatch struct {
	Category      string
	Tier          MatchTier
	CategoryMatch bool
	Score         int
}

// Match returns the candidate's primary target match
func (c *Candidate) Match() TargetMatch {
	return TargetMatch{
		Category:      c.TargetCategory,
		Tier:          c.Tier,
		CategoryMatch: c.CategoryMatch,
		Score:         c.Score,
	}
}

// MatchFor returns the match recorded for target, primary or alternate
func (c *Candidate) MatchFor(target string) (TargetMatch, bool) {
	if c.TargetCategory == target {
		return c.Match(), true
	}
	for _, m := range c.Alternates {
		if m.Category == target {
			return m, true
		}
	}
	return TargetMatch{}, false
}

// RetrievedFor reports whether the candidate was found for target
func (c *Candidate) RetrievedFor(target string) bool {
	_, ok := c.MatchFor(target)
	return ok
}

// ForTarget returns a copy of c attributed to target, carrying the tier and
// score earned for that target. c is returned unchanged when it was never
// retrieved for target.
func (c Candidate) ForTarget(target string) Candidate {
	m, ok := c.MatchFor(target)
	if !ok || c.TargetCategory == target {
		return c
	}
	alternates := make([]TargetMatch, 0, len(c.Alternates))
	alternates = append(alternates, c.Match())
	for _, alt := range c.Alternates {
		if alt.Category != target {
			alternates = append(alternates, alt)
		}
	}
	c.TargetCategory = m.Category
	c.Tier = m.Tier
	c.CategoryMatch = m.CategoryMatch
	c.Score = m.Score
	c.Alternates = alternates
	return c
}

// Position is a normalized point in percentage coordinates, top-left origin
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DetectedItem is one furniture piece the vision model found in a generated image
type DetectedItem struct {
	Number      int      `json:"number"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color,omitempty"`
	Style       string   `json:"style,omitempty"`
	Position    Position `json:"position"`
}

// DetectionRequest asks the engine to bind detected items to catalog products
type DetectionRequest struct {
	Style     Style          `json:"style,omitempty"`
	Items     []DetectedItem `json:"items"`
	ImagePath string         `json:"imagePath,omitempty"`
}

// SelectedFurniture is one output unit of the engine
type SelectedFurniture struct {
	ProductID   string    `json:"productId"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PurchaseURL string    `json:"purchaseUrl,omitempty"`
	Price       float64   `json:"price"`
	Reason      string    `json:"reason"`
	ItemNumber  int       `json:"itemNumber,omitempty"`
	Position    *Position `json:"position,omitempty"`
}

// ExternalPick is one product chosen by the vision model in selection mode
type ExternalPick struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// UncoveredReason tells a caller why a requested category has no result entry
type UncoveredReason string

const (
	ReasonNoCatalogMatch      UncoveredReason = "no_catalog_match"
	ReasonBlockedByConstraint UncoveredReason = "blocked_by_constraint"
	ReasonMaxItemsReached     UncoveredReason = "max_items_reached"
)

// UncoveredCategory reports a requested category missing from a result
type UncoveredCategory struct {
	Category string          `json:"category"`
	Reason   UncoveredReason `json:"reason"`
}

// SelectionResult is the engine's answer to a SelectionRequest
type SelectionResult struct {
	Items     []SelectedFurniture `json:"items"`
	Uncovered []UncoveredCategory `json:"uncovered,omitempty"`
}

// VisionSelectionInput is what the vision model sees in selection mode
type VisionSelectionInput struct {
	Image              []byte
	Style              Style
	MaxItems           int
	RequiredCategories []string
	Candidates         []Candidate
}
