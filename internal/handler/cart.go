package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/palm-beach-resort/internal/cart"
	"github.com/iliyamo/palm-beach-resort/internal/middleware"
	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// CartHandler serves the food and room-service cart and its checkout.
// Carts are keyed by middleware.CartOwner.
type CartHandler struct {
	Upstream
	Carts cart.Store
}

type addItemReq struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

type quantityReq struct {
	Quantity *int `json:"quantity"`
}

type checkoutReq struct {
	RoomNumber string `json:"roomNumber"`
	Notes      string `json:"notes"`
}

func (h *CartHandler) load(c echo.Context) (*cart.Cart, error) {
	return h.Carts.Load(c.Request().Context(), middleware.CartOwner(c))
}

func storeError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart storage error"})
}

func (h *CartHandler) Get(c echo.Context) error {
	crt, err := h.load(c)
	if err != nil {
		return storeError(c)
	}
	return c.JSON(http.StatusOK, crt.View())
}

// AddItem adds a menu item. Name and price come from the backend, not
// from the request.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if req.MenuItemID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "menuItemId is required"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}

	api, ctx, cancel := h.api(c)
	defer cancel()
	item, err := api.GetMenuItem(ctx, req.MenuItemID)
	if err != nil {
		return respondError(c, err)
	}
	if !item.Available {
		return c.JSON(http.StatusConflict, echo.Map{"error": "menu item is not available"})
	}

	crt, err := h.load(c)
	if err != nil {
		return storeError(c)
	}
	crt.Add(item, req.Quantity)
	if err := h.Carts.Save(c.Request().Context(), crt); err != nil {
		return storeError(c)
	}
	return c.JSON(http.StatusOK, crt.View())
}

// UpdateItem sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var req quantityReq
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity is required"})
	}
	crt, err := h.load(c)
	if err != nil {
		return storeError(c)
	}
	if !crt.SetQuantity(id, *req.Quantity) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "item not in cart"})
	}
	if err := h.Carts.Save(c.Request().Context(), crt); err != nil {
		return storeError(c)
	}
	return c.JSON(http.StatusOK, crt.View())
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	crt, err := h.load(c)
	if err != nil {
		return storeError(c)
	}
	if !crt.Remove(id) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "item not in cart"})
	}
	if err := h.Carts.Save(c.Request().Context(), crt); err != nil {
		return storeError(c)
	}
	return c.JSON(http.StatusOK, crt.View())
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.Carts.Delete(c.Request().Context(), middleware.CartOwner(c)); err != nil {
		return storeError(c)
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout places the cart as an order and empties it once the backend
// accepted the order. A failed order leaves the cart untouched.
func (h *CartHandler) Checkout(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	crt, err := h.load(c)
	if err != nil {
		return storeError(c)
	}
	if crt.IsEmpty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	api, ctx, cancel := h.api(c)
	defer cancel()
	order, err := api.CreateOrder(ctx, crt.ToOrderRequest(strings.TrimSpace(req.RoomNumber), strings.TrimSpace(req.Notes)))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Carts.Delete(c.Request().Context(), crt.Owner); err != nil {
		return storeError(c)
	}
	return c.JSON(http.StatusCreated, order)
}

// ListOrders returns the caller's orders.
func (h *CartHandler) ListOrders(c echo.Context) error {
	api, ctx, cancel := h.api(c)
	defer cancel()
	orders, err := api.ListOrders(ctx)
	if err != nil {
		return respondError(c, err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}
