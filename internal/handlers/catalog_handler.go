package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/catalog"
	"github.com/opendoorexp/wildex-frontend/internal/currency"
	"github.com/opendoorexp/wildex-frontend/internal/middleware"
	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// CatalogHandler serves package listings and details
type CatalogHandler struct {
	catalog   *catalog.Service
	converter *currency.Converter
	logger    *logrus.Logger
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(service *catalog.Service, converter *currency.Converter, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:   service,
		converter: converter,
		logger:    logger,
	}
}

// PackageView decorates a package with prices rendered in the
// session's display currency.
type PackageView struct {
	models.Package
	DisplayPrice   string `json:"display_price"`
	DisplaySavings string `json:"display_savings,omitempty"`
}

func (h *CatalogHandler) decorate(c *gin.Context, packages []models.Package) []PackageView {
	code := "INR"
	if sess := middleware.CurrentSession(c); sess != nil && sess.Currency != "" {
		code = sess.Currency
	}

	views := make([]PackageView, 0, len(packages))
	for _, pkg := range packages {
		view := PackageView{Package: pkg}
		if price, err := h.converter.Format(pkg.UnitPrice(), code); err == nil {
			view.DisplayPrice = price
		}
		if savings := pkg.Savings(); savings > 0 {
			if formatted, err := h.converter.Format(savings, code); err == nil {
				view.DisplaySavings = formatted
			}
		}
		views = append(views, view)
	}
	return views
}

func parseView(raw string) catalog.View {
	switch raw {
	case string(catalog.ViewTrips):
		return catalog.ViewTrips
	case string(catalog.ViewExpeditions):
		return catalog.ViewExpeditions
	case string(catalog.ViewSpiritual):
		return catalog.ViewSpiritual
	default:
		return catalog.ViewTreks
	}
}

func parseSort(raw string) catalog.SortOrder {
	switch raw {
	case string(catalog.SortPriceLowHigh):
		return catalog.SortPriceLowHigh
	case string(catalog.SortPriceHighLow):
		return catalog.SortPriceHighLow
	case string(catalog.SortDuration):
		return catalog.SortDuration
	case string(catalog.SortRating):
		return catalog.SortRating
	default:
		return catalog.SortFeatured
	}
}

// List handles GET /api/v1/packages
func (h *CatalogHandler) List(c *gin.Context) {
	view := parseView(c.Query("view"))
	order := parseSort(c.Query("sort"))
	filters := catalog.Filters{
		Difficulty: c.Query("difficulty"),
		PriceRange: c.Query("price_range"),
	}

	packages, result := h.catalog.Browse(c.Request.Context(), view, order, filters)
	if !result.Success {
		c.JSON(http.StatusBadGateway, upstreamError(result.Message))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":     view,
		"packages": h.decorate(c, packages),
	})
}

// Featured handles GET /api/v1/packages/featured
func (h *CatalogHandler) Featured(c *gin.Context) {
	packages, result := h.catalog.Featured(c.Request.Context())
	if !result.Success {
		c.JSON(http.StatusBadGateway, upstreamError(result.Message))
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": h.decorate(c, packages)})
}

// Trending handles GET /api/v1/packages/trending
func (h *CatalogHandler) Trending(c *gin.Context) {
	packages, result := h.catalog.Trending(c.Request.Context())
	if !result.Success {
		c.JSON(http.StatusBadGateway, upstreamError(result.Message))
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": h.decorate(c, packages)})
}

// Detail handles GET /api/v1/packages/:id
func (h *CatalogHandler) Detail(c *gin.Context) {
	pkg, result := h.catalog.Detail(c.Request.Context(), c.Param("id"))
	if !result.Success {
		c.JSON(http.StatusNotFound, upstreamError(result.Message))
		return
	}

	views := h.decorate(c, []models.Package{pkg})
	c.JSON(http.StatusOK, gin.H{
		"package":     views[0],
		"batch_dates": h.catalog.BatchDates(pkg),
	})
}

// DetailBySlug handles GET /api/v1/packages/slug/:slug
func (h *CatalogHandler) DetailBySlug(c *gin.Context) {
	pkg, result := h.catalog.DetailBySlug(c.Request.Context(), c.Param("slug"))
	if !result.Success {
		c.JSON(http.StatusNotFound, upstreamError(result.Message))
		return
	}

	views := h.decorate(c, []models.Package{pkg})
	c.JSON(http.StatusOK, gin.H{
		"package":     views[0],
		"batch_dates": h.catalog.BatchDates(pkg),
	})
}
