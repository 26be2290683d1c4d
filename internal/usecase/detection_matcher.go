package usecase

import (
	"context"
	"sort"

	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/logger"
	"github.com/decorlens/backend/internal/metrics"
)

// DetectionMatcher binds furniture detected in a generated image to concrete
// catalog products, one unique product per canonical category
type DetectionMatcher struct {
	taxonomy  *domain.Taxonomy
	retriever *CandidateRetriever
	scorer    *RelevanceScorer
	ceiling   *CeilingLightClassifier
	logger    logger.Logger
}

// NewDetectionMatcher creates a matcher
func NewDetectionMatcher(
	taxonomy *domain.Taxonomy,
	retriever *CandidateRetriever,
	scorer *RelevanceScorer,
	ceiling *CeilingLightClassifier,
	log logger.Logger,
) *DetectionMatcher {
	return &DetectionMatcher{
		taxonomy:  taxonomy,
		retriever: retriever,
		scorer:    scorer,
		ceiling:   ceiling,
		logger:    log,
	}
}

// Canonicalize collapses a detected label onto its canonical category.
// Unknown labels are returned normalized.
func (m *DetectionMatcher) Canonicalize(label string) string {
	key := normalizeCategory(label)
	if canonical, ok := m.taxonomy.DetectionSynonyms[key]; ok {
		return canonical
	}
	return key
}

// Match walks detections in position order, keeps the first detection per
// canonical category and binds it to the best-scoring product not yet used
func (m *DetectionMatcher) Match(ctx context.Context, style domain.Style, items []domain.DetectedItem) ([]domain.SelectedFurniture, error) {
	ordered := make([]domain.DetectedItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		if a.Position.Y != b.Position.Y {
			return a.Position.Y < b.Position.Y
		}
		return a.Position.X < b.Position.X
	})

	seen := make(map[string]bool)
	used := make(map[string]bool)
	ceilingTaken := false
	results := make([]domain.SelectedFurniture, 0, len(ordered))

	for _, item := range ordered {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		category := m.Canonicalize(item.Category)
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true

		ranked := m.scorer.Rank(m.retriever.Retrieve(ctx, category), style)

		var bound *domain.Candidate
		for i := range ranked {
			cand := &ranked[i]
			if used[cand.Product.ID] {
				continue
			}
			isCeiling := m.ceiling.IsCeilingLight(cand.Product)
			if isCeiling && ceilingTaken {
				continue
			}
			bound = cand
			used[cand.Product.ID] = true
			if isCeiling {
				ceilingTaken = true
			}
			break
		}

		if bound == nil {
			metrics.DetectionBindings.WithLabelValues("unmatched").Inc()
			m.logger.Debug("no product for detected item", map[string]interface{}{
				"number":   item.Number,
				"category": category,
			})
			continue
		}

		metrics.DetectionBindings.WithLabelValues("bound").Inc()
		position := clampPosition(item.Position)
		results = append(results, domain.SelectedFurniture{
			ProductID:   bound.Product.ID,
			Category:    category,
			Name:        bound.Product.Name,
			ImageURL:    bound.Product.PrimaryImage(),
			PurchaseURL: bound.Product.PurchaseURL(),
			Price:       bound.Product.Price(),
			Reason:      describeCandidate(bound),
			ItemNumber:  item.Number,
			Position:    &position,
		})
	}

	return results, nil
}

// clampPosition keeps both coordinates inside the 0-100 percentage space
func clampPosition(p domain.Position) domain.Position {
	return domain.Position{X: clampPercent(p.X), Y: clampPercent(p.Y)}
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
