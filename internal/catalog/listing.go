package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// SortOrder selects a listing sort
type SortOrder string

const (
	SortFeatured     SortOrder = "featured"
	SortPriceLowHigh SortOrder = "price-low-high"
	SortPriceHighLow SortOrder = "price-high-low"
	SortDuration     SortOrder = "duration"
	SortRating       SortOrder = "rating"
)

// Filters narrows a fetched listing. Zero values mean no filtering.
type Filters struct {
	Difficulty string
	PriceRange string
}

// Price range buckets offered by the listing UI
const (
	PriceRangeLow     = "0-10000"
	PriceRangeMid     = "10000-25000"
	PriceRangeHigh    = "25000-50000"
	PriceRangePremium = "50000+"
)

// Sort orders packages in place. The default puts featured packages
// first, trending ones next; ties keep their fetched order.
func Sort(packages []models.Package, order SortOrder) {
	switch order {
	case SortPriceLowHigh:
		sort.SliceStable(packages, func(i, j int) bool {
			return packages[i].UnitPrice() < packages[j].UnitPrice()
		})
	case SortPriceHighLow:
		sort.SliceStable(packages, func(i, j int) bool {
			return packages[i].UnitPrice() > packages[j].UnitPrice()
		})
	case SortDuration:
		sort.SliceStable(packages, func(i, j int) bool {
			return durationDays(packages[i].Duration) < durationDays(packages[j].Duration)
		})
	case SortRating:
		sort.SliceStable(packages, func(i, j int) bool {
			return packages[i].Rating > packages[j].Rating
		})
	default:
		sort.SliceStable(packages, func(i, j int) bool {
			return prominence(packages[i]) > prominence(packages[j])
		})
	}
}

// prominence ranks featured above trending above plain
func prominence(pkg models.Package) int {
	score := 0
	if pkg.Featured {
		score += 2
	}
	if pkg.Trending {
		score++
	}
	return score
}

// durationDays extracts the leading integer of a duration string like
// "6 Days / 5 Nights". Unparseable durations sort last.
func durationDays(duration string) int {
	trimmed := strings.TrimSpace(duration)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return int(^uint(0) >> 1)
	}
	days, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return days
}

// Apply filters a fetched listing. Difficulty matches as a
// case-insensitive substring; price ranges are the listing buckets.
func Apply(packages []models.Package, filters Filters) []models.Package {
	out := make([]models.Package, 0, len(packages))
	for _, pkg := range packages {
		if filters.Difficulty != "" &&
			!strings.Contains(strings.ToLower(pkg.Difficulty), strings.ToLower(filters.Difficulty)) {
			continue
		}
		if filters.PriceRange != "" && !inPriceRange(int64(pkg.UnitPrice()), filters.PriceRange) {
			continue
		}
		out = append(out, pkg)
	}
	return out
}

func inPriceRange(price int64, priceRange string) bool {
	switch priceRange {
	case PriceRangeLow:
		return price <= 10000
	case PriceRangeMid:
		return price > 10000 && price <= 25000
	case PriceRangeHigh:
		return price > 25000 && price <= 50000
	case PriceRangePremium:
		return price > 50000
	default:
		return true
	}
}
