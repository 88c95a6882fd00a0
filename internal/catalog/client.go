// Package catalog is the read-only client for the external product API.
// Responses are converted into the storefront Product model (price
// conversion, rating synthesis) and cached for a short TTL. Failures never
// propagate: products degrade to an empty list, categories to a built-in
// table.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

// Prices arrive in USD and are converted with a fixed factor before they
// enter the Product model.
const priceConversionRate = 60

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	ttl        time.Duration
}

func NewClient(baseURL string, cache Cache, ttl time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache: cache,
		ttl:   ttl,
	}
}

type apiProduct struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
}

type productsResponse struct {
	Products []apiProduct `json:"products"`
}

// FetchProducts returns the catalog, optionally filtered by category slug.
// Transport or non-success failures log and return an empty list; the
// storefront shows "no products found" instead of an error page.
func (c *Client) FetchProducts(ctx context.Context, categorySlug string) []models.Product {
	l := logging.FromContext(ctx).With("client", "catalog.fetch_products", "category", categorySlug)

	url := c.baseURL + "/products?limit=0"
	if categorySlug != "" {
		url = c.baseURL + "/products/category/" + categorySlug
	}

	cacheKey := "catalog:products:" + categorySlug
	if cached, err := c.cacheGet(ctx, cacheKey); err == nil {
		var products []models.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products
		}
	}

	var resp productsResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		l.Warn("fetch_products_failed", "error", err)
		return []models.Product{}
	}

	products := make([]models.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, convertProduct(p))
	}

	c.cacheSet(ctx, cacheKey, products)

	return products
}

// FetchCategories lists the catalog categories with display names mapped
// through the fixed table. On any failure the table itself is the answer.
func (c *Client) FetchCategories(ctx context.Context) []models.Category {
	l := logging.FromContext(ctx).With("client", "catalog.fetch_categories")

	cacheKey := "catalog:categories"
	if cached, err := c.cacheGet(ctx, cacheKey); err == nil {
		var categories []models.Category
		if err := json.Unmarshal(cached, &categories); err == nil {
			return categories
		}
	}

	var slugs []string
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &slugs); err != nil {
		l.Warn("fetch_categories_failed", "error", err)
		return fallbackCategories()
	}

	categories := make([]models.Category, 0, len(slugs))
	for _, slug := range slugs {
		categories = append(categories, models.Category{Slug: slug, Name: displayName(slug)})
	}

	c.cacheSet(ctx, cacheKey, categories)

	return categories
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, error) {
	if c.cache == nil {
		return nil, ErrCacheMiss
	}
	return c.cache.Get(ctx, key)
}

func (c *Client) cacheSet(ctx context.Context, key string, value any) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		logging.FromContext(ctx).Warn("catalog_cache_set_failed", "key", key, "error", err)
	}
}

func convertProduct(p apiProduct) models.Product {
	image := p.Thumbnail
	if len(p.Images) > 0 && p.Images[0] != "" {
		image = p.Images[0]
	}
	return models.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       int(math.Round(p.Price * priceConversionRate)),
		Description: p.Description,
		Category:    p.Category,
		Image:       image,
		Rating:      synthesizeRating(),
	}
}

// synthesizeRating fabricates presentation-only ratings, since the mock
// API has none worth showing. Tests assert ranges, never exact values.
func synthesizeRating() models.Rating {
	rate := math.Round((3.6+rand.Float64()*1.4)*10) / 10
	return models.Rating{
		Rate:  rate,
		Count: rand.Intn(250) + 1,
	}
}
