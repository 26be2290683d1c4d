package catalog

import (
	"strings"

	"github.com/decorlens/backend/internal/domain"
)

// Document is a raw catalog record. Legacy records carry flat price, review
// and link fields; newer ones carry purchaseLinks. Both normalize to domain.Product.
type Document struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	Style         string         `json:"style"`
	Status        string         `json:"status"`
	Keywords      []string       `json:"keywords"`
	Tags          []string       `json:"tags"`
	ImageURL      string         `json:"imageUrl"`
	Images        []string       `json:"images"`
	Source        string         `json:"source"`
	PurchaseURL   string         `json:"purchaseUrl"`
	Price         float64        `json:"price"`
	ReviewAverage float64        `json:"reviewAverage"`
	ReviewCount   float64        `json:"reviewCount"`
	PurchaseLinks []DocumentLink `json:"purchaseLinks"`
}

// DocumentLink is one nested purchase-link record
type DocumentLink struct {
	Source        string  `json:"source"`
	URL           string  `json:"url"`
	Price         float64 `json:"price"`
	ReviewAverage float64 `json:"reviewAverage"`
	ReviewCount   float64 `json:"reviewCount"`
}

const directSource = "direct"

// ToProduct normalizes the document. Flat link fields become a purchase link
// appended after any nested links, so nested links win review-count ties.
func (d *Document) ToProduct() domain.Product {
	links := make([]domain.PurchaseLink, 0, len(d.PurchaseLinks)+1)
	for _, l := range d.PurchaseLinks {
		if l.URL == "" && l.Price <= 0 && l.ReviewCount <= 0 {
			continue
		}
		links = append(links, domain.PurchaseLink{
			Source: l.Source,
			URL:    l.URL,
			Price:  nonNegative(l.Price),
			Review: reviewStats(l.ReviewAverage, l.ReviewCount),
		})
	}

	if d.hasFlatLink() && !containsURL(links, d.PurchaseURL) {
		source := d.Source
		if source == "" {
			source = directSource
		}
		links = append(links, domain.PurchaseLink{
			Source: source,
			URL:    d.PurchaseURL,
			Price:  nonNegative(d.Price),
			Review: reviewStats(d.ReviewAverage, d.ReviewCount),
		})
	}

	images := mergeStrings(nil, d.ImageURL)
	images = mergeStrings(images, d.Images...)

	keywords := mergeStrings(nil, d.Keywords...)
	keywords = mergeStrings(keywords, d.Tags...)

	return domain.Product{
		ID:          d.ID,
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Category:    strings.TrimSpace(d.Category),
		Style:       domain.Style(strings.ToLower(strings.TrimSpace(d.Style))),
		Keywords:    keywords,
		ImageURLs:   images,
		Links:       links,
	}
}

// HasKeyword reports whether the raw keyword or tag list contains value exactly
func (d *Document) HasKeyword(value string) bool {
	for _, k := range d.Keywords {
		if k == value {
			return true
		}
	}
	for _, t := range d.Tags {
		if t == value {
			return true
		}
	}
	return false
}

func (d *Document) hasFlatLink() bool {
	return d.PurchaseURL != "" || d.Price > 0 || d.ReviewCount > 0
}

func reviewStats(average, count float64) *domain.ReviewStats {
	if count <= 0 && average <= 0 {
		return nil
	}
	return &domain.ReviewStats{Average: nonNegative(average), Count: int(nonNegative(count))}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func containsURL(links []domain.PurchaseLink, url string) bool {
	if url == "" {
		return false
	}
	for _, l := range links {
		if l.URL == url {
			return true
		}
	}
	return false
}

func mergeStrings(out []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		dup := false
		for _, existing := range out {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}
