package usecase

import (
	"testing"

	"github.com/decorlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolIDs(pool []domain.Candidate) []string {
	out := make([]string, 0, len(pool))
	for _, c := range pool {
		out = append(out, c.Product.ID)
	}
	return out
}

func TestCoverageSelector_CoverageBeforeScore(t *testing.T) {
	ranked := []domain.Candidate{
		candidateFor(product("s1", "Sofa 1", "sofa", 0), "sofa", domain.TierCategoryExact, 25),
		candidateFor(product("s2", "Sofa 2", "sofa", 0), "sofa", domain.TierCategoryExact, 24),
		candidateFor(product("s3", "Sofa 3", "sofa", 0), "sofa", domain.TierCategoryExact, 23),
		candidateFor(product("r1", "Rug 1", "rug", 0), "rug", domain.TierKeywordOnly, 1),
		candidateFor(product("l1", "Lamp 1", "lighting", 0), "lighting", domain.TierKeywordCross, 11),
	}

	pool := NewCoverageSelector(0).Select(ranked, []string{"rug", "sofa", "lighting"})
	assert.Equal(t, []string{"r1", "s1", "l1", "s2", "s3"}, poolIDs(pool))
}

func TestCoverageSelector_PoolCap(t *testing.T) {
	var ranked []domain.Candidate
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		ranked = append(ranked, candidateFor(product(id, id, "sofa", 0), "sofa", domain.TierCategoryExact, 20))
	}
	ranked = append(ranked, candidateFor(product("z", "z", "rug", 0), "rug", domain.TierCategoryExact, 1))

	pool := NewCoverageSelector(3).Select(ranked, []string{"sofa", "rug"})
	assert.Equal(t, []string{"a", "z", "b"}, poolIDs(pool))
}

func TestCoverageSelector_CategoryWithoutCandidates(t *testing.T) {
	ranked := []domain.Candidate{
		candidateFor(product("s1", "Sofa", "sofa", 0), "sofa", domain.TierCategoryExact, 20),
	}

	pool := NewCoverageSelector(50).Select(ranked, []string{"hammock", "sofa"})
	assert.Equal(t, []string{"s1"}, poolIDs(pool))
}

func TestCoverageSelector_SharedProductCoversSecondTarget(t *testing.T) {
	pendant := candidateFor(product("l1", "Ceiling Pendant Light", "lighting", 0), "ceiling light", domain.TierCategoryExact, 20)
	pendant.Alternates = []domain.TargetMatch{{Category: "floor light", Tier: domain.TierCategoryExact, CategoryMatch: true, Score: 20}}
	floor := candidateFor(product("l2", "Floor Lamp", "lighting", 0), "ceiling light", domain.TierCategoryExact, 20)
	floor.Alternates = []domain.TargetMatch{{Category: "floor light", Tier: domain.TierCategoryExact, CategoryMatch: true, Score: 20}}

	pool := NewCoverageSelector(50).Select([]domain.Candidate{pendant, floor}, []string{"ceiling light", "floor light"})
	require.Len(t, pool, 2)
	assert.Equal(t, "l1", pool[0].Product.ID)
	assert.Equal(t, "ceiling light", pool[0].TargetCategory)
	assert.Equal(t, "l2", pool[1].Product.ID)
	assert.Equal(t, "floor light", pool[1].TargetCategory)
	assert.True(t, pool[1].RetrievedFor("ceiling light"))
}

func TestCoverageSelector_ComparesScoresWithinTarget(t *testing.T) {
	// p scores 20 as a sofa but only 0 as a chair; q is the better chair
	p := candidateFor(product("p", "Sofa", "sofa", 0, "chair"), "sofa", domain.TierCategoryExact, 20)
	p.Alternates = []domain.TargetMatch{{Category: "chair", Tier: domain.TierKeywordOnly, Score: 0}}
	q := candidateFor(product("q", "Lounge Seat", "seating", 150, "chair"), "chair", domain.TierKeywordOnly, 3)

	pool := NewCoverageSelector(50).Select([]domain.Candidate{p, q}, []string{"chair", "sofa"})
	require.Len(t, pool, 2)
	assert.Equal(t, "q", pool[0].Product.ID)
	assert.Equal(t, "chair", pool[0].TargetCategory)
	assert.Equal(t, "p", pool[1].Product.ID)
	assert.Equal(t, "sofa", pool[1].TargetCategory)
	assert.Equal(t, 20, pool[1].Score)
}

func TestCoverageSelector_KeepsLastOptionForLaterTarget(t *testing.T) {
	shared := candidateFor(product("x", "Sofa Chair", "sofa", 0), "chair", domain.TierCategoryExact, 20)
	shared.Alternates = []domain.TargetMatch{{Category: "sofa", Tier: domain.TierCategoryExact, CategoryMatch: true, Score: 20}}
	chair := candidateFor(product("y", "Side Chair", "chair", 0), "chair", domain.TierKeywordCross, 10)

	pool := NewCoverageSelector(50).Select([]domain.Candidate{shared, chair}, []string{"chair", "sofa"})
	require.Len(t, pool, 2)
	assert.Equal(t, "y", pool[0].Product.ID)
	assert.Equal(t, "chair", pool[0].TargetCategory)
	assert.Equal(t, "x", pool[1].Product.ID)
	assert.Equal(t, "sofa", pool[1].TargetCategory)
}

func TestCoverageSelector_ReservedOptionUsedWhenNothingElse(t *testing.T) {
	shared := candidateFor(product("x", "Sofa Chair", "sofa", 0), "chair", domain.TierCategoryExact, 20)
	shared.Alternates = []domain.TargetMatch{{Category: "sofa", Tier: domain.TierCategoryExact, CategoryMatch: true, Score: 20}}

	pool := NewCoverageSelector(50).Select([]domain.Candidate{shared}, []string{"chair", "sofa"})
	require.Len(t, pool, 1)
	assert.Equal(t, "chair", pool[0].TargetCategory)
}
