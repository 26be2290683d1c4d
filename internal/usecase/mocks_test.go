package usecase

import (
	"context"
	"sync"

	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/logger"
)

// mockCatalog matches categories and keywords exactly, like the document store
type mockCatalog struct {
	mu            sync.Mutex
	products      []domain.Product
	categoryErr   error
	keywordErr    error
	categoryCalls [][]string
	keywordCalls  [][]string
	limits        []int
}

func (m *mockCatalog) FindByCategories(ctx context.Context, categories []string, limit int) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categoryCalls = append(m.categoryCalls, categories)
	m.limits = append(m.limits, limit)
	if m.categoryErr != nil {
		return nil, m.categoryErr
	}

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	var out []domain.Product
	for _, p := range m.products {
		if limit > 0 && len(out) >= limit {
			break
		}
		if wanted[p.Category] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalog) FindByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keywordCalls = append(m.keywordCalls, keywords)
	m.limits = append(m.limits, limit)
	if m.keywordErr != nil {
		return nil, m.keywordErr
	}

	var out []domain.Product
	for _, p := range m.products {
		if limit > 0 && len(out) >= limit {
			break
		}
		if hasAnyKeyword(p.Keywords, keywords) {
			out = append(out, p)
		}
	}
	return out, nil
}

func hasAnyKeyword(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

type mockVisionClient struct {
	picks     []domain.ExternalPick
	detected  []domain.DetectedItem
	err       error
	lastInput domain.VisionSelectionInput
	calls     int
}

func (m *mockVisionClient) SelectProducts(ctx context.Context, input domain.VisionSelectionInput) ([]domain.ExternalPick, error) {
	m.calls++
	m.lastInput = input
	return m.picks, m.err
}

func (m *mockVisionClient) DetectItems(ctx context.Context, image []byte) ([]domain.DetectedItem, error) {
	m.calls++
	return m.detected, m.err
}

type mockImageStore struct {
	images map[string][]byte
}

func (m *mockImageStore) Load(ctx context.Context, path string) ([]byte, error) {
	data, ok := m.images[path]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	return data, nil
}

func testTaxonomy() *domain.Taxonomy {
	return &domain.Taxonomy{
		LegacyCodes: map[string][]string{
			"sf": {"sofa", "couch"},
			"bd": {"bed", "bed frame"},
			"lt": {"lighting", "lamp"},
		},
		Labels: map[string][]string{
			"sofa":          {"sofa", "couch"},
			"bed":           {"bed", "bed frame"},
			"lighting":      {"lighting", "lamp"},
			"ceiling light": {"lighting", "ceiling light", "pendant light"},
			"floor light":   {"lighting", "floor lamp"},
			"plant":         {"plant"},
			"rug":           {"rug", "carpet"},
		},
		Exclusions: map[string][]string{
			"bed":      {"pet", "bedding"},
			"sofa":     {"sofa cover"},
			"lighting": {"bulb"},
		},
		StyleKeywords: map[domain.Style][]string{
			domain.StyleModern: {"modern", "sleek", "minimal"},
			domain.StyleNordic: {"nordic", "light wood", "cozy"},
		},
		DetectionSynonyms: map[string]string{
			"pendant light": "lighting",
			"ceiling light": "lighting",
			"floor lamp":    "lighting",
			"fake greenery": "plant",
			"couch":         "sofa",
		},
		CeilingLight: domain.CeilingLightRule{
			Positive: []string{"ceiling", "pendant", "chandelier"},
			Negative: []string{"floor", "table lamp", "desk", "ambient"},
		},
	}
}

func product(id, name, category string, reviews int, keywords ...string) domain.Product {
	p := domain.Product{ID: id, Name: name, Category: category, Keywords: keywords}
	if reviews > 0 {
		p.Links = []domain.PurchaseLink{{
			Source: "shop",
			URL:    "https://shop.example/" + id,
			Price:  100,
			Review: &domain.ReviewStats{Average: 4.5, Count: reviews},
		}}
	}
	return p
}

func newTestRetriever(catalog domain.CatalogRepository, tax *domain.Taxonomy, config RetrieverConfig) *CandidateRetriever {
	resolver := NewKeywordResolver(tax)
	return NewCandidateRetriever(catalog, resolver, NewExclusionFilter(tax, resolver), config, logger.NewNoOpLogger())
}

func candidateFor(p domain.Product, target string, tier domain.MatchTier, score int) domain.Candidate {
	return domain.Candidate{
		Product:        &p,
		TargetCategory: target,
		Tier:           tier,
		CategoryMatch:  tier != domain.TierKeywordOnly,
		Score:          score,
	}
}

func ids(items []domain.SelectedFurniture) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ProductID)
	}
	return out
}
