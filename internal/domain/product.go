package domain

import "strings"

// Style is one of the fixed design styles a product or request can carry
type Style string

const (
	StyleModern       Style = "modern"
	StyleNordic       Style = "nordic"
	StyleMinimal      Style = "minimal"
	StyleVintage      Style = "vintage"
	StyleIndustrial   Style = "industrial"
	StyleNatural      Style = "natural"
	StyleClassic      Style = "classic"
	StyleMidCentury   Style = "midcentury"
	StyleScandinavian Style = "scandinavian"
)

// ReviewStats holds the review summary reported by one sales channel
type ReviewStats struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// PurchaseLink is one channel a product can be bought from
type PurchaseLink struct {
	Source string       `json:"source"`
	URL    string       `json:"url"`
	Price  float64      `json:"price,omitempty"`
	Review *ReviewStats `json:"review,omitempty"`
}

// Product is a normalized catalog entry. Legacy flat documents and
// purchase-link documents both arrive here through the catalog adapter.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category"`
	Style       Style          `json:"style,omitempty"`
	Keywords    []string       `json:"keywords,omitempty"`
	ImageURLs   []string       `json:"imageUrls,omitempty"`
	Links       []PurchaseLink `json:"purchaseLinks,omitempty"`
}

// BestLink returns the purchase link with the highest review count.
// Ties keep the first listed link. Returns nil when the product has no links.
func (p *Product) BestLink() *PurchaseLink {
	var best *PurchaseLink
	bestCount := -1
	for i := range p.Links {
		count := 0
		if p.Links[i].Review != nil {
			count = p.Links[i].Review.Count
		}
		if count > bestCount {
			best = &p.Links[i]
			bestCount = count
		}
	}
	return best
}

// BestReview returns the review stats of the best link, zero valued when absent
func (p *Product) BestReview() ReviewStats {
	link := p.BestLink()
	if link == nil || link.Review == nil {
		return ReviewStats{}
	}
	return *link.Review
}

// PurchaseURL returns the best link's URL, falling back to any non-empty URL
func (p *Product) PurchaseURL() string {
	if link := p.BestLink(); link != nil && link.URL != "" {
		return link.URL
	}
	for _, link := range p.Links {
		if link.URL != "" {
			return link.URL
		}
	}
	return ""
}

// Price returns the best link's price, falling back to the first priced link
func (p *Product) Price() float64 {
	if link := p.BestLink(); link != nil && link.Price > 0 {
		return link.Price
	}
	for _, link := range p.Links {
		if link.Price > 0 {
			return link.Price
		}
	}
	return 0
}

// Images returns the product image URLs
func (p *Product) Images() []string {
	return p.ImageURLs
}

// PrimaryImage returns the first image URL or ""
func (p *Product) PrimaryImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

// SearchText is the lowercase name, category and keyword text that the
// ceiling-light classifier searches for substrings
func (p *Product) SearchText() string {
	parts := make([]string, 0, len(p.Keywords)+2)
	parts = append(parts, p.Name, p.Category)
	parts = append(parts, p.Keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}
