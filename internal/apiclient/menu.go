package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// ListMenuItems returns the menu, optionally narrowed to one category.
func (c *Client) ListMenuItems(ctx context.Context, category string) ([]model.MenuItem, error) {
	var q url.Values
	if category != "" {
		q = url.Values{"category": {category}}
	}
	return getList[model.MenuItem](ctx, c, call{method: http.MethodGet, path: "/api/menu-items", query: q})
}

// GetMenuItem returns one menu item.
func (c *Client) GetMenuItem(ctx context.Context, id int64) (model.MenuItem, error) {
	return getOne[model.MenuItem](ctx, c, call{path: fmt.Sprintf("/api/menu-items/%d", id)})
}

// CreateMenuItem adds a menu item (admin).
func (c *Client) CreateMenuItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	var out model.MenuItem
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/menu-items", body: item}, &out)
	return out, err
}

// UpdateMenuItem replaces a menu item (admin).
func (c *Client) UpdateMenuItem(ctx context.Context, id int64, item model.MenuItem) (model.MenuItem, error) {
	var out model.MenuItem
	err := c.do(ctx, call{method: http.MethodPut, path: fmt.Sprintf("/api/menu-items/%d", id), body: item}, &out)
	return out, err
}

// DeleteMenuItem removes a menu item (admin).
func (c *Client) DeleteMenuItem(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/api/menu-items/%d", id)}, nil)
}

// ListOrders returns the caller's orders.
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	return getList[model.Order](ctx, c, call{method: http.MethodGet, path: "/api/orders"})
}

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, req model.OrderRequest) (model.Order, error) {
	var out model.Order
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/orders", body: req}, &out)
	return out, err
}
