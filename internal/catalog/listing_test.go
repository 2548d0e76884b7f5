package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

func samplePackages() []models.Package {
	return []models.Package{
		{ID: "a", Name: "Plain", OriginalPrice: 12000, Duration: "4 Days", Rating: 4.0, Difficulty: "Easy"},
		{ID: "b", Name: "Featured", OriginalPrice: 30000, Duration: "6 Days", Rating: 4.8, Difficulty: "Moderate", Featured: true},
		{ID: "c", Name: "Trending", OriginalPrice: 8000, OfferPrice: 7000, Duration: "2 Days", Rating: 4.5, Difficulty: "Easy", Trending: true},
		{ID: "d", Name: "Both", OriginalPrice: 55000, Duration: "12 Days", Rating: 3.9, Difficulty: "Difficult", Featured: true, Trending: true},
	}
}

func ids(packages []models.Package) []string {
	out := make([]string, 0, len(packages))
	for _, pkg := range packages {
		out = append(out, pkg.ID)
	}
	return out
}

func TestSort_DefaultFeaturedAndTrendingFirst(t *testing.T) {
	packages := samplePackages()
	Sort(packages, SortFeatured)
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids(packages))
}

func TestSort_PriceUsesOfferWhenSet(t *testing.T) {
	packages := samplePackages()
	Sort(packages, SortPriceLowHigh)
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(packages))

	Sort(packages, SortPriceHighLow)
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(packages))
}

func TestSort_DurationByLeadingInteger(t *testing.T) {
	packages := samplePackages()
	packages[0].Duration = "10 Days / 9 Nights"
	Sort(packages, SortDuration)
	assert.Equal(t, []string{"c", "b", "a", "d"}, ids(packages))
}

func TestSort_DurationUnparseableSortsLast(t *testing.T) {
	packages := []models.Package{
		{ID: "x", Duration: "Flexible"},
		{ID: "y", Duration: "3 Days"},
	}
	Sort(packages, SortDuration)
	assert.Equal(t, []string{"y", "x"}, ids(packages))
}

func TestSort_RatingDescending(t *testing.T) {
	packages := samplePackages()
	Sort(packages, SortRating)
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(packages))
}

func TestApply_DifficultySubstring(t *testing.T) {
	packages := samplePackages()
	filtered := Apply(packages, Filters{Difficulty: "easy"})
	assert.Equal(t, []string{"a", "c"}, ids(filtered))
}

func TestApply_PriceRanges(t *testing.T) {
	packages := samplePackages()

	assert.Equal(t, []string{"c"}, ids(Apply(packages, Filters{PriceRange: PriceRangeLow})))
	assert.Equal(t, []string{"a"}, ids(Apply(packages, Filters{PriceRange: PriceRangeMid})))
	assert.Equal(t, []string{"b"}, ids(Apply(packages, Filters{PriceRange: PriceRangeHigh})))
	assert.Equal(t, []string{"d"}, ids(Apply(packages, Filters{PriceRange: PriceRangePremium})))
}

func TestApply_CombinedFilters(t *testing.T) {
	packages := samplePackages()
	filtered := Apply(packages, Filters{Difficulty: "easy", PriceRange: PriceRangeMid})
	assert.Equal(t, []string{"a"}, ids(filtered))
}

func TestApply_NoFilters(t *testing.T) {
	packages := samplePackages()
	assert.Len(t, Apply(packages, Filters{}), 4)
}
