package usecase

import (
	"fmt"

	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/logger"
	"github.com/decorlens/backend/internal/metrics"
)

// Choice is one accepted candidate with the reason shown to the user
type Choice struct {
	Candidate domain.Candidate
	Reason    string
	Fallback  bool
}

// ConstraintAwareChooser builds the final result from either an external
// selection or the ranked pool, enforcing the item cap, product uniqueness and
// the ceiling-light singleton, then back-fills uncovered categories
type ConstraintAwareChooser struct {
	ceiling *CeilingLightClassifier
	logger  logger.Logger
}

// NewConstraintAwareChooser creates a chooser
func NewConstraintAwareChooser(ceiling *CeilingLightClassifier, log logger.Logger) *ConstraintAwareChooser {
	return &ConstraintAwareChooser{ceiling: ceiling, logger: log}
}

type choiceState struct {
	chosen       []Choice
	used         map[string]bool
	covered      map[string]bool
	ceilingTaken bool
}

// Choose returns at most maxItems choices. picks may be empty, in which case
// the pool order is the primary selection. Ids in picks that are not in the
// pool are dropped. The second return value explains every target category
// left without an entry.
func (c *ConstraintAwareChooser) Choose(
	pool []domain.Candidate,
	picks []domain.ExternalPick,
	targets []string,
	maxItems int,
) ([]Choice, []domain.UncoveredCategory) {
	byID := make(map[string]domain.Candidate, len(pool))
	for _, cand := range pool {
		if _, ok := byID[cand.Product.ID]; !ok {
			byID[cand.Product.ID] = cand
		}
	}

	if len(picks) == 0 {
		picks = make([]domain.ExternalPick, 0, len(pool))
		for _, cand := range pool {
			picks = append(picks, domain.ExternalPick{ID: cand.Product.ID})
		}
	}

	state := &choiceState{
		used:    make(map[string]bool),
		covered: make(map[string]bool),
	}

	for _, pick := range picks {
		if len(state.chosen) >= maxItems {
			break
		}
		cand, ok := byID[pick.ID]
		if !ok {
			c.logger.Debug("dropping unknown product id", map[string]interface{}{"productId": pick.ID})
			continue
		}
		if state.used[pick.ID] || c.blocked(state, &cand) {
			continue
		}
		c.accept(state, cand, pick.Reason, false)
	}

	var uncovered []domain.UncoveredCategory
	usable := func(cand *domain.Candidate) bool {
		return !state.used[cand.Product.ID] && !c.blocked(state, cand)
	}
	for i, target := range targets {
		if state.covered[target] {
			continue
		}
		if len(state.chosen) >= maxItems {
			uncovered = append(uncovered, domain.UncoveredCategory{Category: target, Reason: domain.ReasonMaxItemsReached})
			continue
		}

		var later []string
		for _, t := range targets[i+1:] {
			if !state.covered[t] {
				later = append(later, t)
			}
		}

		if best := bestForTarget(pool, target, later, usable); best >= 0 {
			c.accept(state, pool[best].ForTarget(target), "", true)
			metrics.CoverageFallbacks.Inc()
			continue
		}

		reason := domain.ReasonNoCatalogMatch
		for j := range pool {
			cand := &pool[j]
			if cand.RetrievedFor(target) && !state.used[cand.Product.ID] && c.blocked(state, cand) {
				reason = domain.ReasonBlockedByConstraint
				break
			}
		}
		uncovered = append(uncovered, domain.UncoveredCategory{Category: target, Reason: reason})
	}

	for _, u := range uncovered {
		metrics.UncoveredCategories.WithLabelValues(string(u.Reason)).Inc()
	}

	return state.chosen, uncovered
}

func (c *ConstraintAwareChooser) blocked(state *choiceState, cand *domain.Candidate) bool {
	return state.ceilingTaken && c.ceiling.IsCeilingLight(cand.Product)
}

func (c *ConstraintAwareChooser) accept(state *choiceState, cand domain.Candidate, reason string, fallback bool) {
	if reason == "" {
		reason = describeCandidate(&cand)
	}
	state.chosen = append(state.chosen, Choice{Candidate: cand, Reason: reason, Fallback: fallback})
	state.used[cand.Product.ID] = true
	state.covered[cand.TargetCategory] = true
	if c.ceiling.IsCeilingLight(cand.Product) {
		state.ceilingTaken = true
	}
}

// describeCandidate formats the review summary used as a default reason
func describeCandidate(cand *domain.Candidate) string {
	review := cand.Product.BestReview()
	if review.Count > 0 {
		return fmt.Sprintf("Rated %.1f/5 from %d reviews", review.Average, review.Count)
	}
	return fmt.Sprintf("Matches the requested %s", cand.TargetCategory)
}
