package catalog

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// fakePackagesAPI scripts the upstream catalog endpoints
type fakePackagesAPI struct {
	byCategory    []models.Package
	all           []models.Package
	categoryCalls int
	allCalls      int
	failCategory  bool
	failAll       bool
}

func (f *fakePackagesAPI) All(ctx context.Context) ([]models.Package, models.Result) {
	f.allCalls++
	if f.failAll {
		return nil, models.Result{Success: false, Message: "Network error. Please try again."}
	}
	return f.all, models.Result{Success: true}
}

func (f *fakePackagesAPI) ByCategory(ctx context.Context, category string) ([]models.Package, models.Result) {
	f.categoryCalls++
	if f.failCategory {
		return nil, models.Result{Success: false, Message: "Network error. Please try again."}
	}
	return f.byCategory, models.Result{Success: true}
}

func (f *fakePackagesAPI) Featured(ctx context.Context) ([]models.Package, models.Result) {
	return f.all, models.Result{Success: true}
}

func (f *fakePackagesAPI) Trending(ctx context.Context) ([]models.Package, models.Result) {
	return f.all, models.Result{Success: true}
}

func (f *fakePackagesAPI) ByID(ctx context.Context, packageID string) (models.Package, models.Result) {
	for _, pkg := range f.all {
		if pkg.ID == packageID {
			return pkg, models.Result{Success: true}
		}
	}
	return models.Package{}, models.Result{Success: false, Message: "Package not found"}
}

func (f *fakePackagesAPI) BySlug(ctx context.Context, slug string) (models.Package, models.Result) {
	for _, pkg := range f.all {
		if pkg.Slug == slug {
			return pkg, models.Result{Success: true}
		}
	}
	return models.Package{}, models.Result{Success: false, Message: "Package not found"}
}

func newTestService(api PackagesAPI) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(api, NewCache(nil, time.Minute, logger), logger)
}

func TestBrowse_CategoryResults(t *testing.T) {
	api := &fakePackagesAPI{
		byCategory: []models.Package{
			{ID: "t1", Name: "Roopkund Trek", OriginalPrice: 15000},
			{ID: "t2", Name: "Hampta Pass Trek", OriginalPrice: 12000},
		},
	}
	service := newTestService(api)

	packages, result := service.Browse(context.Background(), ViewTreks, SortPriceLowHigh, Filters{})
	require.True(t, result.Success)
	require.Len(t, packages, 2)
	assert.Equal(t, "t2", packages[0].ID)
	assert.Equal(t, 0, api.allCalls)
}

func TestBrowse_EmptyCategoryFallsBackToClassification(t *testing.T) {
	api := &fakePackagesAPI{
		byCategory: nil,
		all: []models.Package{
			{ID: "t1", Name: "Roopkund Trek", Category: ""},
			{ID: "s1", Name: "Char Dham Yatra", Category: ""},
			{ID: "o1", Name: "Mystery Outing", Category: ""},
			{ID: "p1", Name: "Goa Beach Trip", Category: ""},
		},
	}
	service := newTestService(api)

	packages, result := service.Browse(context.Background(), ViewTreks, SortFeatured, Filters{})
	require.True(t, result.Success)
	require.Len(t, packages, 1)
	assert.Equal(t, "t1", packages[0].ID)
	assert.Equal(t, 1, api.allCalls)

	// The Trips view picks up both trips and unclassified packages
	packages, result = service.Browse(context.Background(), ViewTrips, SortFeatured, Filters{})
	require.True(t, result.Success)
	assert.Len(t, packages, 2)
}

func TestBrowse_UpstreamFailurePropagates(t *testing.T) {
	api := &fakePackagesAPI{failCategory: true}
	service := newTestService(api)

	_, result := service.Browse(context.Background(), ViewTreks, SortFeatured, Filters{})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestBrowse_FallbackFailurePropagates(t *testing.T) {
	api := &fakePackagesAPI{byCategory: nil, failAll: true}
	service := newTestService(api)

	_, result := service.Browse(context.Background(), ViewTreks, SortFeatured, Filters{})
	assert.False(t, result.Success)
}

func TestBatchDates_UsesPackageDates(t *testing.T) {
	service := newTestService(&fakePackagesAPI{})
	pkg := models.Package{BatchDates: []string{"2026-10-03", "2026-10-10"}}

	assert.Equal(t, pkg.BatchDates, service.BatchDates(pkg))
}

func TestBatchDates_WeeklyFallback(t *testing.T) {
	service := newTestService(&fakePackagesAPI{})
	service.SetClock(func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	})

	dates := service.BatchDates(models.Package{})
	require.Len(t, dates, FallbackBatchDateCount)
	assert.Equal(t, "2026-09-07", dates[0])
	assert.Equal(t, "2026-09-14", dates[1])
	assert.Equal(t, "2027-02-15", dates[23])
}

func TestDetail(t *testing.T) {
	api := &fakePackagesAPI{
		all: []models.Package{{ID: "p1", Slug: "roopkund-trek", Name: "Roopkund Trek"}},
	}
	service := newTestService(api)

	pkg, result := service.Detail(context.Background(), "p1")
	require.True(t, result.Success)
	assert.Equal(t, "Roopkund Trek", pkg.Name)

	pkg, result = service.DetailBySlug(context.Background(), "roopkund-trek")
	require.True(t, result.Success)
	assert.Equal(t, "p1", pkg.ID)

	_, result = service.Detail(context.Background(), "nope")
	assert.False(t, result.Success)
}
