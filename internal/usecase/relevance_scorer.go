package usecase

import (
	"sort"
	"strings"

	"github.com/decorlens/backend/internal/domain"
)

// Tier bonuses dominate the score; style overlap and review volume only
// break ties within a tier
const (
	tierBonusCategoryExact = 20
	tierBonusKeywordCross  = 10
	tierBonusKeywordOnly   = 0
)

// RelevanceScorer computes the composite candidate score
type RelevanceScorer struct {
	taxonomy *domain.Taxonomy
}

// NewRelevanceScorer creates a scorer using the taxonomy's style keywords
func NewRelevanceScorer(taxonomy *domain.Taxonomy) *RelevanceScorer {
	return &RelevanceScorer{taxonomy: taxonomy}
}

// Score fills StyleAffinity and Score on c
func (s *RelevanceScorer) Score(c *domain.Candidate, style domain.Style) {
	c.StyleAffinity = styleOverlap(c.Product.Keywords, s.taxonomy.StyleKeywords[normalizeStyle(style)])
	c.Score = tierBonus(c.Tier) + c.StyleAffinity + reviewBonus(c.Product.BestReview().Count)
}

// Rank de-duplicates candidates by product id, keeping the best-scoring
// occurrence as primary, and returns them sorted by that score. Equal scores
// keep retrieval order. The other occurrences stay available per target in
// Alternates with their own tier and score.
func (s *RelevanceScorer) Rank(candidates []domain.Candidate, style domain.Style) []domain.Candidate {
	index := make(map[string]int, len(candidates))
	ranked := make([]domain.Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c.Product == nil {
			continue
		}
		s.Score(&c, style)

		i, seen := index[c.Product.ID]
		if !seen {
			c.Alternates = nil
			index[c.Product.ID] = len(ranked)
			ranked = append(ranked, c)
			continue
		}

		prev := ranked[i]
		if c.Score > prev.Score {
			c.Alternates = mergeMatches(c.TargetCategory, append([]domain.TargetMatch{prev.Match()}, prev.Alternates...)...)
			ranked[i] = c
		} else {
			ranked[i].Alternates = mergeMatches(prev.TargetCategory, append(prev.Alternates, c.Match())...)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// mergeMatches keeps the best match per category other than primary, in
// first-seen order
func mergeMatches(primary string, matches ...domain.TargetMatch) []domain.TargetMatch {
	out := make([]domain.TargetMatch, 0, len(matches))
	at := make(map[string]int, len(matches))
	for _, m := range matches {
		if m.Category == primary {
			continue
		}
		if i, ok := at[m.Category]; ok {
			if m.Score > out[i].Score {
				out[i] = m
			}
			continue
		}
		at[m.Category] = len(out)
		out = append(out, m)
	}
	return out
}

func tierBonus(tier domain.MatchTier) int {
	switch tier {
	case domain.TierCategoryExact:
		return tierBonusCategoryExact
	case domain.TierKeywordCross:
		return tierBonusKeywordCross
	default:
		return tierBonusKeywordOnly
	}
}

// reviewBonus buckets review volume: >=100 -> 3, >=10 -> 2, >0 -> 1
func reviewBonus(count int) int {
	switch {
	case count >= 100:
		return 3
	case count >= 10:
		return 2
	case count > 0:
		return 1
	default:
		return 0
	}
}

// styleOverlap counts style keywords that textually overlap any product keyword
func styleOverlap(productKeywords, styleKeywords []string) int {
	overlap := 0
	for _, sk := range styleKeywords {
		sk = strings.ToLower(strings.TrimSpace(sk))
		if sk == "" {
			continue
		}
		for _, pk := range productKeywords {
			pk = strings.ToLower(strings.TrimSpace(pk))
			if pk == "" {
				continue
			}
			if strings.Contains(pk, sk) || strings.Contains(sk, pk) {
				overlap++
				break
			}
		}
	}
	return overlap
}

func normalizeStyle(style domain.Style) domain.Style {
	return domain.Style(normalizeCategory(string(style)))
}
