// Package cart implements the food and room-service cart: quantities,
// the header badge count, totals and persistence per guest.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// Cart is a guest's list of menu items. The zero value is an empty cart.
type Cart struct {
	Owner string           `json:"owner"`
	Items []model.CartItem `json:"items"`
}

// New returns an empty cart for owner.
func New(owner string) *Cart {
	return &Cart{Owner: owner, Items: []model.CartItem{}}
}

// Add puts qty units of item into the cart, merging with an existing line
// for the same menu item. Non-positive quantities are ignored.
func (c *Cart) Add(item model.MenuItem, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].MenuItemID == item.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, model.CartItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   qty,
	})
}

// SetQuantity changes the quantity of a line; qty <= 0 removes it. It
// reports whether the line existed.
func (c *Cart) SetQuantity(menuItemID int64, qty int) bool {
	for i := range c.Items {
		if c.Items[i].MenuItemID != menuItemID {
			continue
		}
		if qty <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = qty
		}
		return true
	}
	return false
}

// Remove drops a line and reports whether it existed.
func (c *Cart) Remove(menuItemID int64) bool {
	return c.SetQuantity(menuItemID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() { c.Items = []model.CartItem{} }

// Count is the badge number: the sum of all quantities.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of price times quantity.
func (c *Cart) Total() model.Money {
	total := model.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// IsEmpty reports whether the cart holds nothing.
func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// ToOrderRequest converts the cart into the backend order payload.
func (c *Cart) ToOrderRequest(roomNumber, notes string) model.OrderRequest {
	lines := make([]model.OrderLine, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, model.OrderLine{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}
	return model.OrderRequest{Items: lines, RoomNumber: roomNumber, Notes: notes}
}

// View is the JSON shape returned to the cart page.
type View struct {
	Owner string           `json:"owner"`
	Items []model.CartItem `json:"items"`
	Count int              `json:"count"`
	Total model.Money      `json:"total"`
}

// View renders the cart with its badge count and total.
func (c *Cart) View() View {
	items := c.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return View{Owner: c.Owner, Items: items, Count: c.Count(), Total: c.Total()}
}
