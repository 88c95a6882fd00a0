package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/checkout"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/store"
)

type CartHandler struct {
	Store    *store.Store
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}

func (h *CartHandler) payload() map[string]any {
	cart := h.Store.Cart
	return map[string]any{
		"items":       cart.Items(),
		"count":       cart.ItemCount(),
		"total_price": cart.TotalPrice(),
		"animation":   cart.Animation(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.payload())
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req models.Product
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID <= 0 {
		l.Warn("add_to_cart_error", "status", 400, "reason", "product id required")
		return echo.NewHTTPError(http.StatusBadRequest, "product id required")
	}

	h.Store.Cart.AddItemWithFeedback(req)

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID(c),
		"productID": req.ID,
	})

	l.Info("item added to cart", "product_id", req.ID)
	return c.JSON(http.StatusOK, h.payload())
}

// DecrementItem takes one unit off the line; the store drops the line when
// it hits zero. Unknown ids are a quiet no-op.
func (h *CartHandler) DecrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrement")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("decrement_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	h.Store.Cart.DecrementQuantity(id)

	h.publish(c, map[string]any{
		"type":      "cart_item_decremented",
		"userID":    userID(c),
		"productID": id,
	})

	return c.JSON(http.StatusOK, h.payload())
}

func (h *CartHandler) IncrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.increment")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("increment_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	h.Store.Cart.IncrementQuantity(id)

	h.publish(c, map[string]any{
		"type":      "cart_item_incremented",
		"userID":    userID(c),
		"productID": id,
	})

	return c.JSON(http.StatusOK, h.payload())
}

// RemoveItem drops the whole line regardless of quantity.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("remove_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	h.Store.Cart.RemoveItem(id)

	h.publish(c, map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID(c),
		"productID": id,
	})

	return c.JSON(http.StatusOK, h.payload())
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	h.Store.Cart.Clear()

	h.publish(c, map[string]any{
		"type":   "cart_cleared",
		"userID": userID(c),
	})

	return c.JSON(http.StatusOK, h.payload())
}

// Checkout runs the stateless validation step. On success the cart is
// emptied; nothing is recorded server-side beyond the published event.
func (h *CartHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	var req checkout.Request
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	conf, fieldErrs := checkout.Submit(req)
	if fieldErrs != nil {
		l.Warn("checkout_validation_failed", "status", 422, "fields", len(fieldErrs))
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"message": "Validation failed.",
			"errors":  fieldErrs,
		})
	}

	total := h.Store.Cart.TotalPrice()
	h.Store.Cart.Clear()

	h.publish(c, map[string]any{
		"type":     "order_placed",
		"userID":   userID(c),
		"orderRef": conf.OrderRef,
		"total":    total,
	})

	l.Info("order placed", "order_ref", conf.OrderRef)
	return c.JSON(http.StatusOK, conf)
}
