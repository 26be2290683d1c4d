package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/logger"
	"github.com/decorlens/backend/internal/metrics"
)

// FurnishingServiceConfig holds configuration for the furnishing service
type FurnishingServiceConfig struct {
	DefaultMaxItems int
	PoolCap         int
	Retrieval       RetrieverConfig
}

// FurnishingService runs the selection pipeline:
// retrieve -> score -> coverage order -> optional model selection -> constrained choice
type FurnishingService struct {
	retriever       *CandidateRetriever
	scorer          *RelevanceScorer
	coverage        *CoverageSelector
	chooser         *ConstraintAwareChooser
	matcher         *DetectionMatcher
	vision          domain.VisionClient
	images          domain.ImageStore
	defaultMaxItems int
	logger          logger.Logger
}

// NewFurnishingService wires the engine components. vision and images may be
// nil, in which case selection is purely local and image paths are ignored.
func NewFurnishingService(
	catalog domain.CatalogRepository,
	taxonomy *domain.Taxonomy,
	vision domain.VisionClient,
	images domain.ImageStore,
	config FurnishingServiceConfig,
	log logger.Logger,
) *FurnishingService {
	resolver := NewKeywordResolver(taxonomy)
	filter := NewExclusionFilter(taxonomy, resolver)
	retriever := NewCandidateRetriever(catalog, resolver, filter, config.Retrieval, log)
	scorer := NewRelevanceScorer(taxonomy)
	ceiling := NewCeilingLightClassifier(taxonomy)

	maxItems := config.DefaultMaxItems
	if maxItems <= 0 {
		maxItems = domain.DefaultMaxItems
	}

	return &FurnishingService{
		retriever:       retriever,
		scorer:          scorer,
		coverage:        NewCoverageSelector(config.PoolCap),
		chooser:         NewConstraintAwareChooser(ceiling, log),
		matcher:         NewDetectionMatcher(taxonomy, retriever, scorer, ceiling, log),
		vision:          vision,
		images:          images,
		defaultMaxItems: maxItems,
		logger:          log,
	}
}

// Recommend selects furniture for a room. Categories are processed
// sequentially in request order. Catalog and model failures degrade to a
// partial or locally chosen result; only invalid input returns an error.
func (s *FurnishingService) Recommend(ctx context.Context, request *domain.SelectionRequest) (*domain.SelectionResult, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	targets := normalizeTargets(request.Categories)
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", domain.ErrInvalidRequest)
	}

	maxItems := request.MaxItems
	if maxItems < 0 {
		return nil, fmt.Errorf("%w: maxItems must not be negative", domain.ErrInvalidRequest)
	}
	if maxItems == 0 {
		maxItems = s.defaultMaxItems
	}

	start := time.Now()
	defer func() {
		metrics.SelectionDuration.WithLabelValues("recommend").Observe(time.Since(start).Seconds())
	}()

	var candidates []domain.Candidate
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		candidates = append(candidates, s.retriever.Retrieve(ctx, target)...)
	}

	ranked := s.scorer.Rank(candidates, request.Style)
	pool := s.coverage.Select(ranked, targets)

	picks := s.externalSelection(ctx, request, pool, targets, maxItems)
	mode := "local"
	if len(picks) > 0 {
		mode = "external"
	}
	metrics.SelectionRuns.WithLabelValues(mode).Inc()

	choices, uncovered := s.chooser.Choose(pool, picks, targets, maxItems)

	items := make([]domain.SelectedFurniture, 0, len(choices))
	for _, choice := range choices {
		items = append(items, toSelectedFurniture(choice))
	}

	s.logger.Info("selection completed", map[string]interface{}{
		"style":      string(request.Style),
		"categories": targets,
		"candidates": len(ranked),
		"pool":       len(pool),
		"mode":       mode,
		"items":      len(items),
		"uncovered":  len(uncovered),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &domain.SelectionResult{Items: items, Uncovered: uncovered}, nil
}

// externalSelection asks the vision model to choose from the pool. Any
// failure yields no picks so local ordering takes over entirely.
func (s *FurnishingService) externalSelection(
	ctx context.Context,
	request *domain.SelectionRequest,
	pool []domain.Candidate,
	targets []string,
	maxItems int,
) []domain.ExternalPick {
	if s.vision == nil || len(pool) == 0 {
		return nil
	}

	image := request.Image
	if len(image) == 0 && request.ImagePath != "" && s.images != nil {
		loaded, err := s.images.Load(ctx, request.ImagePath)
		if err != nil {
			s.logger.Warn("room image unavailable, using local selection", map[string]interface{}{
				"imagePath": request.ImagePath,
				"error":     err.Error(),
			})
			return nil
		}
		image = loaded
	}
	if len(image) == 0 {
		return nil
	}

	picks, err := s.vision.SelectProducts(ctx, domain.VisionSelectionInput{
		Image:              image,
		Style:              request.Style,
		MaxItems:           maxItems,
		RequiredCategories: targets,
		Candidates:         pool,
	})
	if err != nil {
		metrics.VisionFailures.WithLabelValues("selection").Inc()
		s.logger.Warn("vision selection failed, using local selection", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return picks
}

// MatchDetections binds detected items to catalog products. When the request
// carries no items but an image path, the vision model detects them first.
func (s *FurnishingService) MatchDetections(ctx context.Context, request *domain.DetectionRequest) ([]domain.SelectedFurniture, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	start := time.Now()
	defer func() {
		metrics.SelectionDuration.WithLabelValues("match").Observe(time.Since(start).Seconds())
	}()

	items := request.Items
	if len(items) == 0 {
		if request.ImagePath == "" {
			return nil, fmt.Errorf("%w: items or imagePath is required", domain.ErrInvalidRequest)
		}
		if s.vision == nil || s.images == nil {
			return nil, fmt.Errorf("%w: image detection is not configured", domain.ErrInvalidRequest)
		}

		image, err := s.images.Load(ctx, request.ImagePath)
		if err != nil {
			return nil, err
		}

		items, err = s.vision.DetectItems(ctx, image)
		if err != nil {
			metrics.VisionFailures.WithLabelValues("detection").Inc()
			s.logger.Warn("vision detection failed", map[string]interface{}{
				"imagePath": request.ImagePath,
				"error":     err.Error(),
			})
			return []domain.SelectedFurniture{}, nil
		}
	}

	results, err := s.matcher.Match(ctx, request.Style, items)
	if err != nil {
		return nil, err
	}

	s.logger.Info("detection matching completed", map[string]interface{}{
		"detected":   len(items),
		"bound":      len(results),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return results, nil
}

// normalizeTargets trims categories and drops blanks and duplicates, keeping request order
func normalizeTargets(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func toSelectedFurniture(choice Choice) domain.SelectedFurniture {
	p := choice.Candidate.Product
	return domain.SelectedFurniture{
		ProductID:   p.ID,
		Category:    choice.Candidate.TargetCategory,
		Name:        p.Name,
		ImageURL:    p.PrimaryImage(),
		PurchaseURL: p.PurchaseURL(),
		Price:       p.Price(),
		Reason:      choice.Reason,
	}
}
