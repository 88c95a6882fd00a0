package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/store"
)

type WishlistHandler struct {
	Store    *store.Store
	Producer *mykafka.Producer
}

func (h *WishlistHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "wishlist_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}

func (h *WishlistHandler) payload() map[string]any {
	wl := h.Store.Wishlist
	return map[string]any{
		"items":     wl.Products(),
		"count":     wl.Count(),
		"animation": wl.Animation(),
	}
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	return c.JSON(http.StatusOK, h.payload())
}

func (h *WishlistHandler) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.toggle")

	var req models.Product
	if err := c.Bind(&req); err != nil {
		l.Warn("toggle_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID <= 0 {
		l.Warn("toggle_error", "status", 400, "reason", "product id required")
		return echo.NewHTTPError(http.StatusBadRequest, "product id required")
	}

	h.Store.Wishlist.ToggleWithFeedback(req)
	favorited := h.Store.Wishlist.Contains(req.ID)

	h.publish(c, map[string]any{
		"type":      "wishlist_toggled",
		"productID": req.ID,
		"favorited": favorited,
	})

	l.Info("wishlist toggled", "product_id", req.ID, "favorited", favorited)
	return c.JSON(http.StatusOK, h.payload())
}

func (h *WishlistHandler) Clear(c echo.Context) error {
	h.Store.Wishlist.Clear()

	h.publish(c, map[string]any{
		"type": "wishlist_cleared",
	})

	return c.JSON(http.StatusOK, h.payload())
}
