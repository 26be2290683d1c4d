package usecase

import (
	"context"
	"strings"

	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/logger"
	"github.com/decorlens/backend/internal/metrics"
)

// Default per-query document caps
const (
	defaultCategoryLimit = 30
	defaultKeywordLimit  = 20
)

// RetrieverConfig bounds how many raw documents each catalog query may return
type RetrieverConfig struct {
	CategoryLimit  int
	KeywordLimit   int
	CategoryLimits map[string]int // per target category override for both queries
}

// CandidateRetriever finds catalog candidates for one target category using
// three tiers, stopping at the first tier that yields anything
type CandidateRetriever struct {
	catalog        domain.CatalogRepository
	resolver       *KeywordResolver
	filter         *ExclusionFilter
	categoryLimit  int
	keywordLimit   int
	categoryLimits map[string]int
	logger         logger.Logger
}

// NewCandidateRetriever creates a retriever with the given config
func NewCandidateRetriever(
	catalog domain.CatalogRepository,
	resolver *KeywordResolver,
	filter *ExclusionFilter,
	config RetrieverConfig,
	log logger.Logger,
) *CandidateRetriever {
	categoryLimit := config.CategoryLimit
	if categoryLimit <= 0 {
		categoryLimit = defaultCategoryLimit
	}

	keywordLimit := config.KeywordLimit
	if keywordLimit <= 0 {
		keywordLimit = defaultKeywordLimit
	}

	overrides := make(map[string]int, len(config.CategoryLimits))
	for category, limit := range config.CategoryLimits {
		if limit > 0 {
			overrides[normalizeCategory(category)] = limit
		}
	}

	return &CandidateRetriever{
		catalog:        catalog,
		resolver:       resolver,
		filter:         filter,
		categoryLimit:  categoryLimit,
		keywordLimit:   keywordLimit,
		categoryLimits: overrides,
		logger:         log,
	}
}

func (r *CandidateRetriever) limits(target string) (int, int) {
	if limit, ok := r.categoryLimits[normalizeCategory(target)]; ok {
		return limit, limit
	}
	return r.categoryLimit, r.keywordLimit
}

// Retrieve returns tagged candidates for target. Tier A queries the category
// field; tiers B and C share one keyword query, B keeping only documents whose
// category overlaps the target. Query failures are logged and count as empty.
func (r *CandidateRetriever) Retrieve(ctx context.Context, target string) []domain.Candidate {
	keywords := r.resolver.Resolve(target)
	terms := r.resolver.SearchTerms(target)
	categoryLimit, keywordLimit := r.limits(target)

	products, err := r.catalog.FindByCategories(ctx, terms, categoryLimit)
	if err != nil {
		r.queryFailed(target, domain.TierCategoryExact, err)
	} else if survivors := r.filter.Filter(products, target); len(survivors) > 0 {
		r.logger.Debug("candidates retrieved", map[string]interface{}{
			"category": target,
			"tier":     domain.TierCategoryExact.String(),
			"count":    len(survivors),
		})
		return tag(survivors, target, domain.TierCategoryExact, true)
	}

	products, err = r.catalog.FindByKeywords(ctx, keywords, keywordLimit)
	if err != nil {
		r.queryFailed(target, domain.TierKeywordCross, err)
		return nil
	}

	survivors := r.filter.Filter(products, target)
	if len(survivors) == 0 {
		r.logger.Debug("no candidates for category", map[string]interface{}{"category": target})
		return nil
	}

	crossChecked := make([]domain.Product, 0, len(survivors))
	for i := range survivors {
		if categoryOverlaps(survivors[i].Category, terms) {
			crossChecked = append(crossChecked, survivors[i])
		}
	}

	if len(crossChecked) > 0 {
		r.logger.Debug("candidates retrieved", map[string]interface{}{
			"category": target,
			"tier":     domain.TierKeywordCross.String(),
			"count":    len(crossChecked),
		})
		return tag(crossChecked, target, domain.TierKeywordCross, true)
	}

	r.logger.Debug("candidates retrieved", map[string]interface{}{
		"category": target,
		"tier":     domain.TierKeywordOnly.String(),
		"count":    len(survivors),
	})
	return tag(survivors, target, domain.TierKeywordOnly, false)
}

func (r *CandidateRetriever) queryFailed(target string, tier domain.MatchTier, err error) {
	metrics.CatalogQueryFailures.WithLabelValues(tier.String()).Inc()
	r.logger.Warn("catalog query failed", map[string]interface{}{
		"category": target,
		"tier":     tier.String(),
		"error":    err.Error(),
	})
}

// categoryOverlaps is a case-insensitive substring test in either direction
func categoryOverlaps(category string, terms []string) bool {
	c := normalizeCategory(category)
	if c == "" {
		return false
	}
	for _, term := range terms {
		t := normalizeCategory(term)
		if t == "" {
			continue
		}
		if strings.Contains(c, t) || strings.Contains(t, c) {
			return true
		}
	}
	return false
}

func tag(products []domain.Product, target string, tier domain.MatchTier, categoryMatch bool) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(products))
	for i := range products {
		p := products[i]
		out = append(out, domain.Candidate{
			Product:        &p,
			TargetCategory: target,
			Tier:           tier,
			CategoryMatch:  categoryMatch,
		})
	}
	return out
}
