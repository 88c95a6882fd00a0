package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/util"
)

type ProductHandler struct {
	Catalog *catalog.Client
	Indexer *search.Indexer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	category := c.QueryParam("category")
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	products := h.Catalog.FetchProducts(ctx, category)
	h.reindex(ctx, category, products)

	total := len(products)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	items := products[offset:end]

	l.Info("get_products_success", "total", total, "category", category)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + limit - 1) / limit,
			"has_prev":    page > 1,
			"has_next":    end < total,
		},
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	for _, p := range h.Catalog.FetchProducts(ctx, "") {
		if p.ID == id {
			return c.JSON(http.StatusOK, p)
		}
	}

	l.Warn("get_product_error", "status", 404, "product_id", id)
	return echo.NewHTTPError(http.StatusNotFound, "product not found")
}

func (h *ProductHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	categories := h.Catalog.FetchCategories(ctx)
	return c.JSON(http.StatusOK, categories)
}

// reindex pushes full catalog snapshots into the search index in the
// background. Best-effort only; category-filtered fetches are partial
// snapshots and are skipped.
func (h *ProductHandler) reindex(ctx context.Context, category string, products []models.Product) {
	if h.Indexer == nil || category != "" || len(products) == 0 {
		return
	}
	l := logging.FromContext(ctx)
	go func() {
		indexCtx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), l), 30*time.Second)
		defer cancel()
		if err := h.Indexer.IndexProducts(indexCtx, products); err != nil {
			l.Warn("catalog_index_failed", "error", err)
		}
	}()
}
