package usecase

import "github.com/decorlens/backend/internal/domain"

const defaultPoolCap = 50

// CoverageSelector orders the candidate pool so every target category gets its
// best candidate before raw score decides the rest
type CoverageSelector struct {
	poolCap int
}

// NewCoverageSelector creates a selector. poolCap <= 0 selects the default.
func NewCoverageSelector(poolCap int) *CoverageSelector {
	if poolCap <= 0 {
		poolCap = defaultPoolCap
	}
	return &CoverageSelector{poolCap: poolCap}
}

// Select expects ranked sorted by score. The coverage pass commits, per target
// in request order, the unused candidate scoring highest for that target and
// attributes it there. The fill pass appends the remaining candidates by score
// until the pool cap.
func (s *CoverageSelector) Select(ranked []domain.Candidate, targets []string) []domain.Candidate {
	used := make(map[string]bool, len(ranked))
	pool := make([]domain.Candidate, 0, min(len(ranked), s.poolCap))
	unused := func(c *domain.Candidate) bool { return !used[c.Product.ID] }

	for i, target := range targets {
		best := bestForTarget(ranked, target, targets[i+1:], unused)
		if best < 0 {
			continue
		}
		used[ranked[best].Product.ID] = true
		pool = append(pool, ranked[best].ForTarget(target))
	}

	for _, c := range ranked {
		if len(pool) >= s.poolCap {
			break
		}
		if used[c.Product.ID] {
			continue
		}
		used[c.Product.ID] = true
		pool = append(pool, c)
	}

	return pool
}

// bestForTarget returns the index of the usable candidate scoring highest for
// target, or -1. Candidates that are the last usable option of a later target
// are passed over while another option for target exists. Ties keep order.
func bestForTarget(cands []domain.Candidate, target string, later []string, usable func(*domain.Candidate) bool) int {
	best, reserved := -1, -1
	bestScore, reservedScore := 0, 0

	for i := range cands {
		c := &cands[i]
		if !usable(c) {
			continue
		}
		m, ok := c.MatchFor(target)
		if !ok {
			continue
		}
		if soleOption(cands, i, later, usable) {
			if reserved < 0 || m.Score > reservedScore {
				reserved, reservedScore = i, m.Score
			}
			continue
		}
		if best < 0 || m.Score > bestScore {
			best, bestScore = i, m.Score
		}
	}

	if best >= 0 {
		return best
	}
	return reserved
}

// soleOption reports whether cands[i] is the only usable candidate left for
// any of the later targets
func soleOption(cands []domain.Candidate, i int, later []string, usable func(*domain.Candidate) bool) bool {
	for _, target := range later {
		if !cands[i].RetrievedFor(target) {
			continue
		}
		alone := true
		for j := range cands {
			if j != i && usable(&cands[j]) && cands[j].RetrievedFor(target) {
				alone = false
				break
			}
		}
		if alone {
			return true
		}
	}
	return false
}
