package usecase

import (
	"testing"

	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/infrastructure/taxonomy"
	"github.com/stretchr/testify/assert"
)

func TestExclusionFilter_Excluded(t *testing.T) {
	tax := testTaxonomy()
	filter := NewExclusionFilter(tax, NewKeywordResolver(tax))

	tests := []struct {
		name    string
		product domain.Product
		target  string
		want    bool
	}{
		{name: "pet bed by name", product: product("b1", "Cozy Pet Bed", "bed", 0), target: "bed", want: true},
		{name: "pet bed by keyword", product: product("b2", "Cozy Nest", "bed", 0, "PET"), target: "bed", want: true},
		{name: "legacy code uses resolved keyword exclusions", product: product("b3", "Bedding Set", "bed", 0), target: "bd", want: true},
		{name: "real bed passes", product: product("b4", "Oak Bed Frame", "bed", 0), target: "bed", want: false},
		{name: "exclusions are per target", product: product("p1", "Pet Sofa", "sofa", 0), target: "sofa", want: false},
		{name: "unknown target has no exclusions", product: product("x", "Pet Hammock", "hammock", 0), target: "hammock", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Excluded(&tt.product, tt.target))
		})
	}
}

func TestExclusionFilter_WholeWords(t *testing.T) {
	tax := taxonomy.Default()
	filter := NewExclusionFilter(tax, NewKeywordResolver(tax))

	tests := []struct {
		name    string
		product domain.Product
		target  string
		want    bool
	}{
		{name: "cat inside delicate", product: product("b1", "Delicate Oak Bed", "bed", 0), target: "bed", want: false},
		{name: "pet inside petite", product: product("c1", "Petite Armchair", "chair", 0), target: "chair", want: false},
		{name: "pet inside carpet", product: product("s1", "Carpet-Friendly Sofa", "sofa", 0), target: "sofa", want: false},
		{name: "dog inside hotdog keyword", product: product("b2", "Bunk Bed", "bed", 0, "hotdog print"), target: "bed", want: false},
		{name: "pet as a word", product: product("b3", "Cozy Pet Bed", "bed", 0), target: "bed", want: true},
		{name: "hyphenated word", product: product("b4", "Dog-Bed Cushion", "bed", 0), target: "bed", want: true},
		{name: "plural listed", product: product("s2", "Sofa for Pets", "sofa", 0), target: "sofa", want: true},
		{name: "phrase", product: product("b5", "Linen Bed Sheet", "bed", 0), target: "bed", want: true},
		{name: "phrase does not span fields", product: product("b6", "Oak Bed", "bed", 0, "sheet music"), target: "bed", want: false},
		{name: "keyword match", product: product("c2", "Side Seat", "chair", 0, "Cushion"), target: "chair", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Excluded(&tt.product, tt.target); got != tt.want {
				t.Errorf("Excluded(%q, %q) = %v, want %v", tt.product.Name, tt.target, got, tt.want)
			}
		})
	}
}

func TestExclusionFilter_Filter(t *testing.T) {
	tax := testTaxonomy()
	filter := NewExclusionFilter(tax, NewKeywordResolver(tax))

	products := []domain.Product{
		product("b1", "Pet Bed", "bed", 0),
		product("b2", "Queen Bed", "bed", 0),
		product("b3", "Bedding Bundle", "bed", 0),
	}

	kept := filter.Filter(products, "bed")
	if assert.Len(t, kept, 1) {
		assert.Equal(t, "b2", kept[0].ID)
	}
}

func TestCeilingLightClassifier(t *testing.T) {
	classifier := NewCeilingLightClassifier(testTaxonomy())

	tests := []struct {
		name    string
		product domain.Product
		want    bool
	}{
		{name: "pendant", product: product("l1", "Brass Pendant", "lighting", 0), want: true},
		{name: "ceiling keyword", product: product("l2", "Disc Light", "lighting", 0, "ceiling"), want: true},
		{name: "floor lamp", product: product("l3", "Arc Floor Lamp", "lighting", 0), want: false},
		{name: "negative wins over positive", product: product("l4", "Pendant Style Floor Lamp", "lighting", 0), want: false},
		{name: "no positive term", product: product("l5", "Wall Sconce", "lighting", 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.IsCeilingLight(&tt.product))
		})
	}
}
