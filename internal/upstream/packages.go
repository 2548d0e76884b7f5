package upstream

import (
	"context"
	"net/url"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// PackagesClient handles package catalog endpoints
type PackagesClient struct {
	client *Client
}

func (p *PackagesClient) list(ctx context.Context, path string) ([]models.Package, models.Result) {
	result := p.client.call(ctx, "GET", path, "", nil)

	var packages []models.Package
	if result.Success {
		if err := decodeData(result, &packages); err != nil {
			return nil, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return packages, result
}

// All fetches every package
func (p *PackagesClient) All(ctx context.Context) ([]models.Package, models.Result) {
	return p.list(ctx, routePackages)
}

// ByCategory fetches packages in one category
func (p *PackagesClient) ByCategory(ctx context.Context, category string) ([]models.Package, models.Result) {
	return p.list(ctx, routePackages+"?category="+url.QueryEscape(category))
}

// Featured fetches featured packages
func (p *PackagesClient) Featured(ctx context.Context) ([]models.Package, models.Result) {
	return p.list(ctx, routePackages+"?featured=true")
}

// Trending fetches trending packages
func (p *PackagesClient) Trending(ctx context.Context) ([]models.Package, models.Result) {
	return p.list(ctx, routePackages+"?trending=true")
}

// ByID fetches one package by id
func (p *PackagesClient) ByID(ctx context.Context, packageID string) (models.Package, models.Result) {
	path := buildPath(routePackageByID, map[string]string{"id": packageID})
	result := p.client.call(ctx, "GET", path, "", nil)

	var pkg models.Package
	if result.Success {
		if err := decodeData(result, &pkg); err != nil {
			return pkg, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return pkg, result
}

// BySlug fetches one package by slug
func (p *PackagesClient) BySlug(ctx context.Context, slug string) (models.Package, models.Result) {
	path := buildPath(routePackageBySlug, map[string]string{"slug": slug})
	result := p.client.call(ctx, "GET", path, "", nil)

	var pkg models.Package
	if result.Success {
		if err := decodeData(result, &pkg); err != nil {
			return pkg, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return pkg, result
}
