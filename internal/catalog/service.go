// Package catalog renders the package listings: fetch by category
// with a classify-locally fallback, sorting, filtering and batch
// dates.
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/upstream"
)

// FallbackBatchDateCount is how many weekly dates are offered when a
// package carries none of its own.
const FallbackBatchDateCount = 24

// PackagesAPI is the slice of the upstream client the catalog needs
type PackagesAPI interface {
	All(ctx context.Context) ([]models.Package, models.Result)
	ByCategory(ctx context.Context, category string) ([]models.Package, models.Result)
	Featured(ctx context.Context) ([]models.Package, models.Result)
	Trending(ctx context.Context) ([]models.Package, models.Result)
	ByID(ctx context.Context, packageID string) (models.Package, models.Result)
	BySlug(ctx context.Context, slug string) (models.Package, models.Result)
}

// Service serves catalog listings
type Service struct {
	api    PackagesAPI
	cache  *Cache
	clock  func() time.Time
	logger *logrus.Logger
}

// NewService creates a catalog service. cache may be nil.
func NewService(api PackagesAPI, cache *Cache, logger *logrus.Logger) *Service {
	return &Service{
		api:    api,
		cache:  cache,
		clock:  time.Now,
		logger: logger,
	}
}

// SetClock replaces the time source, for tests
func (s *Service) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Browse lists the packages for a view, sorted and filtered. When the
// category endpoint returns nothing, the full catalog is fetched and
// classified locally so a sparsely tagged backend still fills the
// page.
func (s *Service) Browse(ctx context.Context, view View, order SortOrder, filters Filters) ([]models.Package, models.Result) {
	packages, result := s.cachedList(ctx, "catalog:category:"+string(view), func(ctx context.Context) ([]models.Package, models.Result) {
		return s.api.ByCategory(ctx, string(view))
	})
	if !result.Success {
		return nil, result
	}

	if len(packages) == 0 {
		all, allResult := s.cachedList(ctx, "catalog:all", s.api.All)
		if !allResult.Success {
			return nil, allResult
		}

		packages = packages[:0]
		for _, pkg := range all {
			if view.Includes(Classify(pkg.Category, pkg.Name)) {
				packages = append(packages, pkg)
			}
		}

		s.logger.WithFields(logrus.Fields{
			"view":    view,
			"matched": len(packages),
		}).Debug("Category fetch empty, classified full catalog")
	}

	packages = Apply(packages, filters)
	Sort(packages, order)
	return packages, models.Result{Success: true}
}

// Featured lists featured packages
func (s *Service) Featured(ctx context.Context) ([]models.Package, models.Result) {
	return s.cachedList(ctx, "catalog:featured", s.api.Featured)
}

// Trending lists trending packages
func (s *Service) Trending(ctx context.Context) ([]models.Package, models.Result) {
	return s.cachedList(ctx, "catalog:trending", s.api.Trending)
}

// Detail fetches one package by id
func (s *Service) Detail(ctx context.Context, packageID string) (models.Package, models.Result) {
	return s.api.ByID(ctx, packageID)
}

// DetailBySlug fetches one package by slug
func (s *Service) DetailBySlug(ctx context.Context, slug string) (models.Package, models.Result) {
	return s.api.BySlug(ctx, slug)
}

// BatchDates returns the package's departure dates, or the next 24
// weekly dates when it has none.
func (s *Service) BatchDates(pkg models.Package) []string {
	if len(pkg.BatchDates) > 0 {
		return pkg.BatchDates
	}

	dates := make([]string, 0, FallbackBatchDateCount)
	start := s.clock()
	for i := 1; i <= FallbackBatchDateCount; i++ {
		dates = append(dates, start.AddDate(0, 0, 7*i).Format("2006-01-02"))
	}
	return dates
}

// cachedList wraps a listing fetch in the read-through cache. Only
// successful responses are cached.
func (s *Service) cachedList(ctx context.Context, key string, fetch func(context.Context) ([]models.Package, models.Result)) ([]models.Package, models.Result) {
	if payload, ok := s.cache.Get(ctx, key); ok {
		var packages []models.Package
		if err := json.Unmarshal(payload, &packages); err == nil {
			return packages, models.Result{Success: true}
		}
	}

	packages, result := fetch(ctx)
	if !result.Success {
		return nil, result
	}

	if payload, err := json.Marshal(packages); err == nil {
		s.cache.Set(ctx, key, payload)
	}
	return packages, result
}

var _ PackagesAPI = (*upstream.PackagesClient)(nil)
