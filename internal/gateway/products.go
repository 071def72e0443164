// internal/gateway/products.go
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/pharmacy-storefront/internal/domain/product"
)

// ProductGateway wraps the backend catalog endpoints.
type ProductGateway struct {
	client *Client
}

// NewProductGateway creates a product gateway over the backend client
func NewProductGateway(client *Client) *ProductGateway {
	return &ProductGateway{client: client}
}

// SearchParams are the catalog search filters of the products page.
type SearchParams struct {
	Search     string
	CategoryID string
	VendorID   string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// SearchResult is one page of catalog search results.
type SearchResult struct {
	Data     []product.Product `json:"data"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	LastPage int               `json:"lastPage"`
}

// FetchProductsByIDs fetches any number of products in one batch call.
// Partial results are valid: the backend returns only the products it
// still knows, and callers must handle missing ids themselves. This is
// the single request the cart reconciliation is built on; never call it
// in a per-id loop.
func (g *ProductGateway) FetchProductsByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := url.Values{}
	for _, id := range ids {
		query.Add("product_ids", id)
	}

	var products []product.Product
	if err := g.client.do(ctx, http.MethodGet, "/products/batch", query, "", nil, &products); err != nil {
		return nil, fmt.Errorf("batch product fetch failed: %w", err)
	}
	return products, nil
}

// SearchProducts runs a paginated catalog search.
func (g *ProductGateway) SearchProducts(ctx context.Context, params SearchParams) (*SearchResult, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.CategoryID != "" {
		query.Set("categoryId", params.CategoryID)
	}
	if params.VendorID != "" {
		query.Set("vendorId", params.VendorID)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.SortBy != "" {
		query.Set("sortBy", params.SortBy)
		if params.SortOrder != "" {
			query.Set("sortOrder", params.SortOrder)
		}
	}

	var result SearchResult
	if err := g.client.do(ctx, http.MethodGet, "/products", query, "", nil, &result); err != nil {
		return nil, fmt.Errorf("product search failed: %w", err)
	}
	return &result, nil
}

// GetProduct fetches a single product by id.
func (g *ProductGateway) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	if err := g.client.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetCategories fetches all product categories.
func (g *ProductGateway) GetCategories(ctx context.Context) ([]product.Category, error) {
	var categories []product.Category
	if err := g.client.do(ctx, http.MethodGet, "/categories", nil, "", nil, &categories); err != nil {
		return nil, fmt.Errorf("category fetch failed: %w", err)
	}
	return categories, nil
}
